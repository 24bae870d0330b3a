package serialize

import (
	"testing"

	"github.com/CharlesChen0823/gosub-engine/dom"
)

func TestDocumentWithDoctypePretty(t *testing.T) {
	doc := dom.NewDocument()
	doc.SetDoctype("html", "", "", false)

	html := doc.Arena.NewElement("html", dom.NamespaceHTML, nil)
	doc.Arena.Attach(html, doc.Root)

	out := Document(doc, Options{Pretty: true, IndentSize: 2})
	if out != "<!DOCTYPE html>\n<html></html>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTextEscaping(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.Arena.NewElement("div", dom.NamespaceHTML, nil)
	doc.Arena.Attach(div, doc.Root)
	text := doc.Arena.NewText("a<b&c")
	doc.Arena.Attach(text, div)

	out := Node(doc.Arena, div, DefaultOptions())
	if out != "<div>a&lt;b&amp;c</div>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAttributeEscaping(t *testing.T) {
	attrs := dom.NewAttributes()
	attrs.Add("data-val", `a&"b`)

	doc := dom.NewDocument()
	div := doc.Arena.NewElement("div", dom.NamespaceHTML, attrs)
	doc.Arena.Attach(div, doc.Root)

	out := Node(doc.Arena, div, DefaultOptions())
	if out != "<div data-val=\"a&amp;&quot;b\"></div>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestVoidElement(t *testing.T) {
	doc := dom.NewDocument()
	br := doc.Arena.NewElement("br", dom.NamespaceHTML, nil)
	doc.Arena.Attach(br, doc.Root)

	out := Node(doc.Arena, br, DefaultOptions())
	if out != "<br>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPrettyInlineChildren(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.Arena.NewElement("div", dom.NamespaceHTML, nil)
	doc.Arena.Attach(div, doc.Root)
	span := doc.Arena.NewElement("span", dom.NamespaceHTML, nil)
	doc.Arena.Attach(span, div)

	out := Node(doc.Arena, div, Options{Pretty: true, IndentSize: 2})
	if out != "<div><span></span></div>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPrettyBlockIndent(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.Arena.NewElement("div", dom.NamespaceHTML, nil)
	doc.Arena.Attach(div, doc.Root)
	p := doc.Arena.NewElement("p", dom.NamespaceHTML, nil)
	doc.Arena.Attach(p, div)

	out := Node(doc.Arena, div, Options{Pretty: true, IndentSize: 2})
	if out != "<div>\n  <p></p>\n</div>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPrettySkipsWhitespaceTextNodes(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.Arena.NewElement("div", dom.NamespaceHTML, nil)
	doc.Arena.Attach(div, doc.Root)

	lead := doc.Arena.NewText("\n  ")
	doc.Arena.Attach(lead, div)
	p := doc.Arena.NewElement("p", dom.NamespaceHTML, nil)
	doc.Arena.Attach(p, div)
	trail := doc.Arena.NewText("\n")
	doc.Arena.Attach(trail, div)

	out := Node(doc.Arena, div, Options{Pretty: true, IndentSize: 2})
	if out != "<div>\n  <p></p>\n</div>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPrettyCommentInline(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.Arena.NewElement("div", dom.NamespaceHTML, nil)
	doc.Arena.Attach(div, doc.Root)
	comment := doc.Arena.NewComment("x")
	doc.Arena.Attach(comment, div)

	out := Node(doc.Arena, div, Options{Pretty: true, IndentSize: 2})
	if out != "<div><!--x--></div>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := collapseWhitespace("  a   b  ")
	if got != " a b " {
		t.Fatalf("unexpected collapsed whitespace: %q", got)
	}
}

func TestIsWhitespaceOnly(t *testing.T) {
	if !isWhitespaceOnly(" \n\t\r") {
		t.Fatal("expected whitespace-only string to be true")
	}
	if isWhitespaceOnly(" a ") {
		t.Fatal("expected non-whitespace string to be false")
	}
}

func TestIsVoidAndBlockElements(t *testing.T) {
	if !isVoidElement("img") {
		t.Fatal("expected img to be void element")
	}
	if isVoidElement("div") {
		t.Fatal("expected div to not be void element")
	}
	if !isBlockElement("div") {
		t.Fatal("expected div to be block element")
	}
	if isBlockElement("span") {
		t.Fatal("expected span to not be block element")
	}
}
