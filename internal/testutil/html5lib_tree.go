package testutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CharlesChen0823/gosub-engine/dom"
)

// SerializeHTML5LibTree serializes a parsed document to the html5lib tree-construction
// test "document" format.
//
// Format reference: https://github.com/html5lib/html5lib-tests
func SerializeHTML5LibTree(doc *dom.Document) string {
	var sb strings.Builder

	if doc.Doctype != dom.NoNode {
		dt := doc.Arena.Get(doc.Doctype)
		sb.WriteString("| <!DOCTYPE ")
		if dt.DoctypeName() == "" {
			sb.WriteString(">")
		} else {
			sb.WriteString(dt.DoctypeName())
			if dt.DoctypePublicID() != "" || dt.DoctypeSystemID() != "" {
				sb.WriteString(" \"")
				sb.WriteString(dt.DoctypePublicID())
				sb.WriteString("\" \"")
				sb.WriteString(dt.DoctypeSystemID())
				sb.WriteString("\">")
			} else {
				sb.WriteString(">")
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(SerializeHTML5LibNodes(doc.Arena, doc.Children()))

	return strings.TrimRight(sb.String(), "\n")
}

// SerializeHTML5LibNodes serializes a list of nodes using the html5lib tree-construction
// test format (used for document fragments).
func SerializeHTML5LibNodes(arena *dom.Arena, nodes []dom.NodeId) string {
	var sb strings.Builder
	for _, child := range nodes {
		serializeHTML5LibNode(&sb, arena, child, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func serializeHTML5LibNode(sb *strings.Builder, arena *dom.Arena, id dom.NodeId, depth int) {
	indent := strings.Repeat("  ", depth)
	n := arena.Get(id)

	switch n.Kind() {
	case dom.KindElement:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("<")
		sb.WriteString(formatHTML5LibTagName(n))
		sb.WriteString(">")
		sb.WriteByte('\n')

		attrs := n.Attrs().All()
		sort.Slice(attrs, func(i, j int) bool {
			return formatHTML5LibAttributeName(attrs[i]) < formatHTML5LibAttributeName(attrs[j])
		})
		for _, attr := range attrs {
			sb.WriteString("| ")
			sb.WriteString(indent)
			sb.WriteString("  ")
			sb.WriteString(formatHTML5LibAttributeName(attr))
			sb.WriteString("=\"")
			sb.WriteString(escapeHTML5LibString(attr.Value))
			sb.WriteString("\"")
			sb.WriteByte('\n')
		}

		if content := n.TemplateContent(); content != dom.NoNode {
			sb.WriteString("| ")
			sb.WriteString(strings.Repeat("  ", depth+1))
			sb.WriteString("content")
			sb.WriteByte('\n')
			for _, child := range arena.Get(content).Children() {
				serializeHTML5LibNode(sb, arena, child, depth+2)
			}
		}

		for _, child := range n.Children() {
			serializeHTML5LibNode(sb, arena, child, depth+1)
		}

	case dom.KindText:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("\"")
		sb.WriteString(escapeHTML5LibString(n.Text()))
		sb.WriteString("\"")
		sb.WriteByte('\n')

	case dom.KindComment:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("<!-- ")
		sb.WriteString(n.Text())
		sb.WriteString(" -->")
		sb.WriteByte('\n')

	case dom.KindDoctype:
		// Doctype nodes are represented via doc.Doctype; ignore here.
		return

	default:
		// Unknown node kinds are ignored in this representation.
		return
	}
}

func formatHTML5LibTagName(n *dom.Node) string {
	switch n.Namespace() {
	case "", dom.NamespaceHTML:
		return n.TagName()
	case dom.NamespaceSVG:
		return "svg " + n.TagName()
	case dom.NamespaceMathML:
		return "math " + n.TagName()
	default:
		// If we ever end up with an unexpected namespace, keep the output stable
		// and obvious rather than silently discarding the namespace information.
		return fmt.Sprintf("%s %s", n.Namespace(), n.TagName())
	}
}

func formatHTML5LibAttributeName(attr dom.Attribute) string {
	var designator string
	switch attr.Namespace {
	case "":
		designator = ""
	case "http://www.w3.org/1999/xlink":
		designator = "xlink "
	case "http://www.w3.org/XML/1998/namespace":
		designator = "xml "
	case "http://www.w3.org/2000/xmlns/":
		designator = "xmlns "
	default:
		// Unknown namespace - keep it explicit (and test-visible).
		designator = attr.Namespace + " "
	}

	if designator == "" {
		return attr.Name
	}

	local := attr.Name
	if idx := strings.IndexByte(local, ':'); idx >= 0 {
		local = local[idx+1:]
	}
	return designator + local
}

func escapeHTML5LibString(s string) string {
	return s
}
