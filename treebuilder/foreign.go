package treebuilder

import (
	"strings"

	"github.com/CharlesChen0823/gosub-engine/dom"
	htmlerrors "github.com/CharlesChen0823/gosub-engine/errors"
	"github.com/CharlesChen0823/gosub-engine/internal/constants"
	"github.com/CharlesChen0823/gosub-engine/tokenizer"
)

// shouldUseForeignContent implements the "tree construction dispatcher"
// rule that decides whether a token is processed by the "rules for parsing
// tokens in foreign content" instead of the current insertion mode's rules.
func (tb *TreeBuilder) shouldUseForeignContent(tok tokenizer.Token) bool {
	if len(tb.openElements) == 0 {
		return false
	}
	if tok.Type == tokenizer.EOF {
		return false
	}

	cur := tb.adjustedCurrentNode()
	n := tb.node(cur)
	if n.Namespace() == dom.NamespaceHTML {
		return false
	}

	if isMathMLTextIntegrationPoint(n) {
		if tok.Type == tokenizer.Character {
			return false
		}
		if tok.Type == tokenizer.StartTag && tok.Name != "mglyph" && tok.Name != "malignmark" {
			return false
		}
	}
	if n.Namespace() == dom.NamespaceMathML && n.TagName() == "annotation-xml" &&
		tok.Type == tokenizer.StartTag && tok.Name == "svg" {
		return false
	}
	if isHTMLIntegrationPoint(n) {
		if tok.Type == tokenizer.StartTag || tok.Type == tokenizer.Character {
			return false
		}
	}
	return true
}

func isHTMLIntegrationPoint(n *dom.Node) bool {
	return constants.HTMLIntegrationPoints[constants.IntegrationPoint{Namespace: n.Namespace(), LocalName: n.TagName()}]
}

func isMathMLTextIntegrationPoint(n *dom.Node) bool {
	return constants.MathMLTextIntegrationPoints[constants.IntegrationPoint{Namespace: n.Namespace(), LocalName: n.TagName()}]
}

// processForeignContent implements "the rules for parsing tokens in foreign
// content". It returns false if the token was fully consumed, true if the
// caller should reprocess it (a "breakout" into HTML content rules).
func (tb *TreeBuilder) processForeignContent(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if tok.Data == "\x00" {
			tb.insertText("�")
			return false
		}
		if !isAllWhitespace(tok.Data) {
			tb.framesetOK = false
		}
		tb.insertText(tok.Data)
		return false

	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false

	case tokenizer.DOCTYPE:
		return false

	case tokenizer.StartTag:
		if constants.ForeignBreakoutElements[tok.Name] || foreignBreakoutFont(tok) {
			tb.popUntilHTMLOrIntegrationPoint()
			tb.forceHTMLMode = true
			return true
		}

		namespace := tb.node(tb.adjustedCurrentNode()).Namespace()
		name := tok.Name
		if namespace == dom.NamespaceSVG {
			if adjusted, ok := constants.SVGTagNameAdjustments[name]; ok {
				name = adjusted
			}
		}
		attrs := prepareForeignAttributes(namespace, tok.Attrs)
		el := tb.document.Arena.NewElement(name, namespace, attrs)
		tb.insertElementNode(el)
		if tok.SelfClosing {
			tb.popCurrent()
		}
		return false

	case tokenizer.EndTag:
		lower := strings.ToLower(tok.Name)
		if lower == "br" || lower == "p" {
			tb.popUntilHTMLOrIntegrationPoint()
			tb.forceHTMLMode = true
			return true
		}

		if len(tb.openElements) == 0 {
			return false
		}
		i := len(tb.openElements) - 1
		if !strings.EqualFold(tb.node(tb.openElements[i]).TagName(), tok.Name) {
			tb.addError(htmlerrors.UnexpectedEndTag)
		}
		for i > 0 {
			el := tb.openElements[i]
			if strings.EqualFold(tb.node(el).TagName(), tok.Name) {
				for len(tb.openElements)-1 >= i {
					tb.popCurrent()
				}
				return false
			}
			i--
			if tb.node(tb.openElements[i]).Namespace() == dom.NamespaceHTML {
				tb.forceHTMLMode = true
				return true
			}
		}
		return false
	}
	return false
}

// popUntilHTMLOrIntegrationPoint pops elements until the current node is in
// the HTML namespace or is an HTML/MathML-text integration point, used
// before reprocessing a breakout token under ordinary HTML rules.
func (tb *TreeBuilder) popUntilHTMLOrIntegrationPoint() {
	for len(tb.openElements) > 0 {
		n := tb.node(tb.currentNode())
		if n.Namespace() == dom.NamespaceHTML || isHTMLIntegrationPoint(n) || isMathMLTextIntegrationPoint(n) {
			return
		}
		tb.popCurrent()
	}
}

// foreignBreakoutFont reports the special-cased "font" breakout: a <font>
// start tag with a color, face, or size attribute breaks out of foreign
// content even though "font" is not itself in the breakout element set.
func foreignBreakoutFont(tok tokenizer.Token) bool {
	if tok.Name != "font" {
		return false
	}
	for _, a := range tok.Attrs {
		switch a.Name {
		case "color", "face", "size":
			return true
		}
	}
	return false
}

// prepareForeignAttributes applies the SVG/MathML attribute-name
// adjustments and the xlink/xml/xmlns namespace adjustments to a start
// tag's attributes, per the "adjust foreign attributes" and
// "adjust SVG/MathML attributes" algorithms.
func prepareForeignAttributes(namespace string, attrs []tokenizer.Attr) *dom.Attributes {
	out := dom.NewAttributes()
	for _, a := range attrs {
		name := a.Name
		switch namespace {
		case dom.NamespaceSVG:
			if adjusted, ok := constants.SVGAttributeAdjustments[name]; ok {
				name = adjusted
			}
		case dom.NamespaceMathML:
			if adjusted, ok := constants.MathMLAttributeAdjustments[name]; ok {
				name = adjusted
			}
		}
		if fa, ok := constants.ForeignAttributeAdjustments[name]; ok {
			out.AddNS(fa.NamespaceURL, fa.LocalName, a.Value)
			continue
		}
		out.Add(name, a.Value)
	}
	return out
}
