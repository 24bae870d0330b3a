package gosub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharlesChen0823/gosub-engine/dom"
)

// TestAdoptionAgencyReparentsAcrossMisnestedTags covers the canonical
// "<b>1<p>2</b>3" adoption-agency scenario: the </b> end tag, encountered
// while a <p> is still open, must clone the <b> formatting element inside
// the <p> rather than simply closing it.
func TestAdoptionAgencyReparentsAcrossMisnestedTags(t *testing.T) {
	doc, err := Parse("<b>1<p>2</b>3")
	require.NoError(t, err)

	body := doc.Body()
	require.NotEqual(t, dom.NoNode, body)

	bodyChildren := doc.Arena.Get(body).Children()
	require.Len(t, bodyChildren, 2, "body should contain <b> then <p>")

	outerB := doc.Arena.Get(bodyChildren[0])
	assert.Equal(t, "b", outerB.TagName())
	assert.Equal(t, "1", allText(doc.Arena, bodyChildren[0]))

	p := doc.Arena.Get(bodyChildren[1])
	assert.Equal(t, "p", p.TagName())

	pChildren := p.Children()
	require.NotEmpty(t, pChildren, "<p> should contain the cloned <b>")

	clonedB := doc.Arena.Get(pChildren[0])
	assert.Equal(t, "b", clonedB.TagName())
	assert.Equal(t, "2", allText(doc.Arena, pChildren[0]))

	assert.Contains(t, allText(doc.Arena, p.ID()), "3")
}

// TestAdoptionAgencyEmptyAnchorClone covers "<a><p></a>x": the active
// formatting element list clones the empty <a> into the following <p>.
func TestAdoptionAgencyEmptyAnchorClone(t *testing.T) {
	doc, err := Parse("<a><p></a>x")
	require.NoError(t, err)

	body := doc.Body()
	require.NotEqual(t, dom.NoNode, body)

	as := findAllByTag(doc.Arena, body, "a")
	require.Len(t, as, 2, "expects the original <a> plus its clone")

	ps := findAllByTag(doc.Arena, body, "p")
	require.Len(t, ps, 1)
}
