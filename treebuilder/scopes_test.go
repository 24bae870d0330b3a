package treebuilder

import (
	"testing"

	"github.com/CharlesChen0823/gosub-engine/dom"
)

// newTestBuilder constructs a TreeBuilder with a synthetic open-elements
// stack, bypassing the tokenizer entirely, to exercise the scope predicates
// in isolation from full parsing.
func newTestBuilder(tagNames ...string) *TreeBuilder {
	tb := New(nil)
	arena := tb.document.Arena
	tb.openElements = tb.openElements[:0]
	for _, name := range tagNames {
		el := arena.NewElement(name, dom.NamespaceHTML, nil)
		arena.Attach(el, tb.document.Root)
		tb.openElements = append(tb.openElements, el)
	}
	return tb
}

func TestHasElementInDefaultScopeStopsAtTableBoundary(t *testing.T) {
	tb := newTestBuilder("html", "body", "table", "tr", "td", "b")
	if !tb.hasElementInDefaultScope("td") {
		t.Fatal("expected td to be in default scope")
	}
	if tb.hasElementInDefaultScope("table") {
		t.Fatal("table should not be reachable in default scope from inside a cell: the cell itself is a terminator")
	}
}

func TestHasElementInButtonScopeStopsAtButton(t *testing.T) {
	tb := newTestBuilder("html", "body", "button", "p")
	if !tb.hasElementInButtonScope("p") {
		t.Fatal("expected p to be in button scope")
	}

	tb2 := newTestBuilder("html", "body", "p", "button")
	if tb2.hasElementInButtonScope("p") {
		t.Fatal("p should not be visible past an intervening button terminator")
	}
}

func TestHasElementInListItemScopeIncludesListTerminators(t *testing.T) {
	tb := newTestBuilder("html", "body", "ul", "li", "li")
	if !tb.hasElementInListItemScope("li") {
		t.Fatal("expected li to be in list-item scope")
	}
}

func TestHasElementInTableScopeNarrowTerminators(t *testing.T) {
	tb := newTestBuilder("html", "body", "table", "caption", "p")
	if tb.hasElementInTableScope("body") {
		t.Fatal("body sits above the table terminator, so it should not be reachable in table scope")
	}
	if !tb.hasElementInTableScope("table") {
		t.Fatal("expected table to be in table scope")
	}
}

func TestHasElementInSelectScopeInvertedTerminators(t *testing.T) {
	tb := newTestBuilder("html", "body", "select", "optgroup", "option")
	if !tb.hasElementInSelectScope("select") {
		t.Fatal("expected select to be in select scope")
	}

	tb2 := newTestBuilder("html", "body", "select", "div", "option")
	if tb2.hasElementInSelectScope("select") {
		t.Fatal("a div on the stack should terminate select scope immediately, per the inverted terminator set")
	}
}

func TestHasPElementInButtonScope(t *testing.T) {
	tb := newTestBuilder("html", "body", "p")
	if !tb.hasPElementInButtonScope() {
		t.Fatal("expected p to be in button scope")
	}
}
