package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttachSetsParentAndOrder(t *testing.T) {
	doc := NewDocument()
	html := doc.Arena.NewElement("html", NamespaceHTML, nil)
	head := doc.Arena.NewElement("head", NamespaceHTML, nil)
	body := doc.Arena.NewElement("body", NamespaceHTML, nil)

	doc.Arena.Attach(html, doc.Root)
	doc.Arena.Attach(body, html)
	doc.Arena.AttachBefore(head, html, body)

	if got := doc.Arena.Get(head).Parent(); got != html {
		t.Fatalf("head parent = %v, want html", got)
	}
	children := doc.Arena.Get(html).Children()
	if len(children) != 2 || children[0] != head || children[1] != body {
		t.Fatalf("html children = %v, want [head body]", children)
	}
}

func TestAttachPanicsIfAlreadyParented(t *testing.T) {
	doc := NewDocument()
	el := doc.Arena.NewElement("div", NamespaceHTML, nil)
	doc.Arena.Attach(el, doc.Root)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic attaching an already-parented node")
		}
	}()
	doc.Arena.Attach(el, doc.Root)
}

func TestRelocateMovesBetweenParents(t *testing.T) {
	doc := NewDocument()
	a := doc.Arena.NewElement("a", NamespaceHTML, nil)
	b := doc.Arena.NewElement("b", NamespaceHTML, nil)
	child := doc.Arena.NewElement("span", NamespaceHTML, nil)

	doc.Arena.Attach(a, doc.Root)
	doc.Arena.Attach(b, doc.Root)
	doc.Arena.Attach(child, a)

	doc.Arena.Relocate(child, b)

	if len(doc.Arena.Get(a).Children()) != 0 {
		t.Fatalf("expected a to have no children after relocate")
	}
	if got := doc.Arena.Get(child).Parent(); got != b {
		t.Fatalf("child parent = %v, want b", got)
	}
}

func TestMoveChildrenPreservesOrder(t *testing.T) {
	doc := NewDocument()
	from := doc.Arena.NewElement("div", NamespaceHTML, nil)
	to := doc.Arena.NewElement("span", NamespaceHTML, nil)
	doc.Arena.Attach(from, doc.Root)
	doc.Arena.Attach(to, doc.Root)

	first := doc.Arena.NewText("first")
	second := doc.Arena.NewText("second")
	doc.Arena.Attach(first, from)
	doc.Arena.Attach(second, from)

	doc.Arena.MoveChildren(from, to)

	got := doc.Arena.Get(to).Children()
	want := []NodeId{first, second}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MoveChildren reordered children (-want +got):\n%s", diff)
	}
	if len(doc.Arena.Get(from).Children()) != 0 {
		t.Fatalf("expected from to be emptied")
	}
}

func TestLastChildTextMergeTarget(t *testing.T) {
	doc := NewDocument()
	p := doc.Arena.NewElement("p", NamespaceHTML, nil)
	doc.Arena.Attach(p, doc.Root)

	if got := doc.Arena.LastChildText(p); got != NoNode {
		t.Fatalf("LastChildText on empty parent = %v, want NoNode", got)
	}

	text := doc.Arena.NewText("hello")
	doc.Arena.Attach(text, p)
	if got := doc.Arena.LastChildText(p); got != text {
		t.Fatalf("LastChildText = %v, want %v", got, text)
	}

	el := doc.Arena.NewElement("br", NamespaceHTML, nil)
	doc.Arena.Attach(el, p)
	if got := doc.Arena.LastChildText(p); got != NoNode {
		t.Fatalf("LastChildText after element sibling = %v, want NoNode", got)
	}
}

func TestCloneElementCopiesAttributesNotChildren(t *testing.T) {
	doc := NewDocument()
	attrs := NewAttributes()
	attrs.Add("id", "x")
	src := doc.Arena.NewElement("b", NamespaceHTML, attrs)
	doc.Arena.Attach(src, doc.Root)
	child := doc.Arena.NewText("hi")
	doc.Arena.Attach(child, src)

	clone := doc.Arena.CloneElement(src)
	if doc.Arena.Get(clone).Parent() != NoNode {
		t.Fatalf("clone should be detached")
	}
	if val, _ := doc.Arena.Get(clone).Attrs().Get("id"); val != "x" {
		t.Fatalf("clone attrs = %q, want x", val)
	}
	if len(doc.Arena.Get(clone).Children()) != 0 {
		t.Fatalf("clone should not copy children")
	}
}

func TestIsSpecialElementAcrossNamespaces(t *testing.T) {
	if !isSpecialElement(NamespaceHTML, "div") {
		t.Fatal("div should be special")
	}
	if isSpecialElement(NamespaceHTML, "span") {
		t.Fatal("span should not be special")
	}
	if !isSpecialElement(NamespaceSVG, "foreignObject") {
		t.Fatal("svg foreignObject should be special")
	}
	if !isSpecialElement(NamespaceMathML, "mi") {
		t.Fatal("mathml mi should be special")
	}
}
