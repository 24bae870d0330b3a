package gosub

import (
	"testing"

	"github.com/CharlesChen0823/gosub-engine/dom"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestParse(t *testing.T) {
	doc, err := Parse("<html><body><p>Hello</p></body></html>")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	html := doc.DocumentElement()
	if html == dom.NoNode || doc.Arena.Get(html).TagName() != "html" {
		t.Fatalf("Parse returned invalid document: %#v", doc)
	}
}

func TestParseBytes(t *testing.T) {
	doc, err := ParseBytes([]byte("<html><body><p>Hello</p></body></html>"))
	if err != nil {
		t.Fatalf("ParseBytes returned error: %v", err)
	}
	html := doc.DocumentElement()
	if html == dom.NoNode || doc.Arena.Get(html).TagName() != "html" {
		t.Fatalf("ParseBytes returned invalid document: %#v", doc)
	}
}

func TestParseFragment(t *testing.T) {
	doc, nodes, err := ParseFragment("<td>Cell</td>", "tr")
	if err != nil {
		t.Fatalf("ParseFragment returned error: %v", err)
	}
	if len(nodes) != 1 || doc.Arena.Get(nodes[0]).TagName() != "td" {
		t.Fatalf("ParseFragment nodes = %#v, want single <td>", nodes)
	}
}

// TestParseFragmentTableCellContext covers the fragment-context regression
// where the context element is already a <td>: the <tr> and <td> start tags
// in the input are ignored because cell content is already the insertion
// target, leaving only the text.
func TestParseFragmentTableCellContext(t *testing.T) {
	doc, nodes, err := ParseFragment("<tr><td>hi", "td")
	if err != nil {
		t.Fatalf("ParseFragment returned error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("ParseFragment nodes = %#v, want a single text node", nodes)
	}
	text := doc.Arena.Get(nodes[0])
	if text.Kind() != dom.KindText || text.Text() != "hi" {
		t.Fatalf("ParseFragment node = %#v, want Text(\"hi\")", text)
	}
}

func TestParseStrictModeReturnsFirstError(t *testing.T) {
	_, err := Parse("<html>\x00", WithStrictMode())
	if err == nil {
		t.Fatal("expected a parse error in strict mode")
	}
}

func TestParseCollectErrors(t *testing.T) {
	doc, err := Parse("<html>\x00", WithCollectErrors())
	if doc == nil {
		t.Fatal("expected a document even when errors are collected")
	}
	if err == nil {
		t.Fatal("expected collected parse errors")
	}
}
