// Package serialize renders a parsed document back to an HTML string.
package serialize

import (
	"strings"

	"github.com/CharlesChen0823/gosub-engine/dom"
)

// Options configures serialization behavior.
type Options struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool

	// IndentSize is the number of spaces per indentation level.
	IndentSize int
}

// DefaultOptions returns the default serialization options.
func DefaultOptions() Options {
	return Options{
		Pretty:     false,
		IndentSize: 2,
	}
}

// Document serializes an entire parsed document to HTML, including its
// DOCTYPE if present.
func Document(doc *dom.Document, opts Options) string {
	var sb strings.Builder
	if doc.Doctype != dom.NoNode {
		serializeDoctype(&sb, doc.Arena.Get(doc.Doctype))
		if opts.Pretty {
			sb.WriteByte('\n')
		}
	}
	for _, child := range doc.Children() {
		if child == doc.Doctype {
			continue
		}
		serializeNode(&sb, doc.Arena, child, opts, 0, false)
	}
	return sb.String()
}

// Node serializes a single node (and its descendants) to HTML.
func Node(arena *dom.Arena, id dom.NodeId, opts Options) string {
	var sb strings.Builder
	serializeNode(&sb, arena, id, opts, 0, false)
	return sb.String()
}

func serializeNode(sb *strings.Builder, arena *dom.Arena, id dom.NodeId, opts Options, depth int, inline bool) {
	n := arena.Get(id)
	switch n.Kind() {
	case dom.KindDoctype:
		serializeDoctype(sb, n)
	case dom.KindElement:
		serializeElement(sb, arena, n, opts, depth, inline)
	case dom.KindText:
		serializeText(sb, n, opts)
	case dom.KindComment:
		serializeComment(sb, n, opts, depth, inline)
	case dom.KindDocumentFragment:
		for _, child := range n.Children() {
			serializeNode(sb, arena, child, opts, depth, inline)
		}
	}
}

func serializeDoctype(sb *strings.Builder, dt *dom.Node) {
	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(dt.DoctypeName())
	if dt.DoctypePublicID() != "" {
		sb.WriteString(" PUBLIC \"")
		sb.WriteString(dt.DoctypePublicID())
		sb.WriteByte('"')
		if dt.DoctypeSystemID() != "" {
			sb.WriteString(" \"")
			sb.WriteString(dt.DoctypeSystemID())
			sb.WriteByte('"')
		}
	} else if dt.DoctypeSystemID() != "" {
		sb.WriteString(" SYSTEM \"")
		sb.WriteString(dt.DoctypeSystemID())
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
}

func serializeElement(sb *strings.Builder, arena *dom.Arena, n *dom.Node, opts Options, depth int, inline bool) {
	if opts.Pretty && depth > 0 && !inline {
		sb.WriteString(strings.Repeat(" ", depth*opts.IndentSize))
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName())

	for _, attr := range n.Attrs().All() {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString("=\"")
		sb.WriteString(escapeAttr(attr.Value))
		sb.WriteByte('"')
	}

	if isVoidElement(n.TagName()) {
		sb.WriteByte('>')
		return
	}

	sb.WriteByte('>')

	children := n.Children()
	if opts.Pretty {
		serializeChildrenPretty(sb, arena, children, opts, depth)
	} else {
		for _, child := range children {
			serializeNode(sb, arena, child, opts, depth+1, false)
		}
	}

	sb.WriteString("</")
	sb.WriteString(n.TagName())
	sb.WriteByte('>')
}

// serializeChildrenPretty handles pretty-printing of element children.
// It filters out whitespace-only text nodes and properly indents content.
func serializeChildrenPretty(sb *strings.Builder, arena *dom.Arena, children []dom.NodeId, opts Options, depth int) {
	significant := make([]dom.NodeId, 0, len(children))
	for _, child := range children {
		n := arena.Get(child)
		if n.Kind() == dom.KindText && isWhitespaceOnly(n.Text()) {
			continue
		}
		significant = append(significant, child)
	}

	if len(significant) == 0 {
		return
	}

	hasBlock := false
	for _, child := range significant {
		n := arena.Get(child)
		if n.Kind() == dom.KindElement && isBlockElement(n.TagName()) {
			hasBlock = true
			break
		}
	}

	for _, child := range significant {
		if hasBlock {
			sb.WriteByte('\n')
			serializeNode(sb, arena, child, opts, depth+1, false)
		} else {
			serializeNode(sb, arena, child, opts, depth, true)
		}
	}

	if hasBlock {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", depth*opts.IndentSize))
	}
}

// serializeText serializes a text node.
// In pretty mode, whitespace-only text nodes between block elements are skipped
// since the pretty printer handles formatting.
func serializeText(sb *strings.Builder, n *dom.Node, opts Options) {
	data := n.Text()

	if opts.Pretty && isWhitespaceOnly(data) {
		return
	}

	if opts.Pretty {
		data = collapseWhitespace(data)
	}

	sb.WriteString(escapeText(data))
}

func serializeComment(sb *strings.Builder, n *dom.Node, opts Options, depth int, inline bool) {
	if opts.Pretty && depth > 0 && !inline {
		sb.WriteString(strings.Repeat(" ", depth*opts.IndentSize))
	}
	sb.WriteString("<!--")
	sb.WriteString(n.Text())
	sb.WriteString("-->")
}

func isWhitespaceOnly(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' && r != '\f' {
			return false
		}
	}
	return true
}

// collapseWhitespace collapses runs of whitespace into single spaces
// but preserves a single leading/trailing space if present.
func collapseWhitespace(s string) string {
	if len(s) == 0 {
		return s
	}

	var sb strings.Builder
	hasLeadingSpace := isWhitespaceChar(rune(s[0]))
	hasTrailingSpace := isWhitespaceChar(rune(s[len(s)-1]))

	inWhitespace := true
	for _, r := range s {
		if isWhitespaceChar(r) {
			if !inWhitespace {
				sb.WriteByte(' ')
				inWhitespace = true
			}
		} else {
			sb.WriteRune(r)
			inWhitespace = false
		}
	}

	result := sb.String()
	if len(result) > 0 && result[len(result)-1] == ' ' {
		result = result[:len(result)-1]
	}
	if hasLeadingSpace && len(result) > 0 {
		result = " " + result
	}
	if hasTrailingSpace && len(result) > 0 {
		result += " "
	}

	return result
}

func isWhitespaceChar(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func escapeAttr(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func isBlockElement(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "body", "canvas", "dd", "div",
		"dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hr", "html", "li", "main",
		"nav", "noscript", "ol", "p", "pre", "section", "table", "tbody", "td", "tfoot",
		"th", "thead", "title", "tr", "ul", "video":
		return true
	}
	return false
}
