package treebuilder

import (
	"strings"

	"github.com/CharlesChen0823/gosub-engine/dom"
	htmlerrors "github.com/CharlesChen0823/gosub-engine/errors"
	"github.com/CharlesChen0823/gosub-engine/internal/constants"
	"github.com/CharlesChen0823/gosub-engine/tokenizer"
)

var defListElements = map[string]bool{"dd": true, "dt": true}

var addressDivLikeElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true, "div": true,
	"dl": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "header": true, "hgroup": true, "main": true, "menu": true,
	"nav": true, "ol": true, "p": true, "search": true, "section": true,
	"summary": true, "ul": true,
}

func (tb *TreeBuilder) closePElementIfInButtonScope() {
	if tb.hasPElementInButtonScope() {
		tb.generateImpliedEndTags("p")
		if tb.node(tb.currentNode()).TagName() != "p" {
			tb.addError(htmlerrors.ClosedP)
		}
		tb.popUntil("p")
	}
}

// processInitial implements the "initial" insertion mode.
func (tb *TreeBuilder) processInitial(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, tb.document.Root)
		return false
	case tokenizer.DOCTYPE:
		name := tok.Name
		public := ptrToString(tok.PublicID)
		system := ptrToString(tok.SystemID)
		tb.document.SetDoctype(name, public, system, tok.ForceQuirks)
		if !tb.iframeSrcdoc {
			tb.document.QuirksMode = tb.doctypeErrorAndQuirks(name, public, system, tok.ForceQuirks,
				tok.PublicID != nil, tok.SystemID != nil)
		}
		tb.mode = BeforeHTML
		return false
	}
	if tok.Type != tokenizer.Comment {
		tb.addError(htmlerrors.MissingDoctype)
		if !tb.iframeSrcdoc {
			tb.document.QuirksMode = dom.Quirks
		}
	}
	tb.mode = BeforeHTML
	return true
}

func (tb *TreeBuilder) processBeforeHTML(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data, tb.document.Root)
		return false
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
	case tokenizer.StartTag:
		if tok.Name == "html" {
			el := tb.document.Arena.NewElement("html", dom.NamespaceHTML, attrsFromTokens(tok.Attrs))
			tb.document.Arena.Attach(el, tb.document.Root)
			tb.openElements = append(tb.openElements, el)
			tb.mode = BeforeHead
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
		default:
			return false
		}
	}
	el := tb.document.Arena.NewElement("html", dom.NamespaceHTML, nil)
	tb.document.Arena.Attach(el, tb.document.Root)
	tb.openElements = append(tb.openElements, el)
	tb.mode = BeforeHead
	return true
}

func (tb *TreeBuilder) processBeforeHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "head":
			head := tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.headElement = head
			tb.mode = InHead
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
		default:
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
	}
	head := tb.document.Arena.NewElement("head", dom.NamespaceHTML, nil)
	tb.insertElementNode(head)
	tb.headElement = head
	tb.mode = InHead
	return true
}

func (tb *TreeBuilder) processInHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "base", "basefont", "bgsound", "link", "meta":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return false
		case "title":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.tok.SetLastStartTag("title")
			tb.tok.SetState(tokenizer.RCDATAState)
			tb.originalMode = tb.mode
			tb.mode = Text
			return false
		case "noscript":
			if tb.scriptingEnabled {
				tb.insertElementForToken(tok, dom.NamespaceHTML)
				tb.tok.SetLastStartTag("noscript")
				tb.tok.SetState(tokenizer.RAWTEXTState)
				tb.originalMode = tb.mode
				tb.mode = Text
			} else {
				tb.insertElementForToken(tok, dom.NamespaceHTML)
				tb.mode = InHeadNoscript
			}
			return false
		case "noframes", "style":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.tok.SetLastStartTag(tok.Name)
			tb.tok.SetState(tokenizer.RAWTEXTState)
			tb.originalMode = tb.mode
			tb.mode = Text
			return false
		case "script":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.tok.SetLastStartTag("script")
			tb.tok.SetState(tokenizer.ScriptDataState)
			tb.originalMode = tb.mode
			tb.mode = Text
			return false
		case "template":
			head := tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.pushFormattingMarker()
			tb.framesetOK = false
			tb.mode = InTemplate
			tb.templateModes = append(tb.templateModes, InTemplate)
			_ = head
			return false
		case "head":
			tb.addError(htmlerrors.UnexpectedStartTagIgnored)
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head":
			tb.popCurrent()
			tb.mode = AfterHead
			return false
		case "body", "html", "br":
		case "template":
			if !tb.elementInStack("template") {
				tb.addError(htmlerrors.EndTagForUnopenedElement)
				return false
			}
			tb.generateImpliedEndTagsThoroughly()
			tb.popUntil("template")
			tb.clearActiveFormattingUpToMarker()
			if len(tb.templateModes) > 0 {
				tb.templateModes = tb.templateModes[:len(tb.templateModes)-1]
			}
			tb.resetInsertionModeAppropriately()
			return false
		default:
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
	}
	tb.popCurrent()
	tb.mode = AfterHead
	return true
}

func (tb *TreeBuilder) processInHeadNoscript(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return tb.processInHead(tok)
		case "head", "noscript":
			tb.addError(htmlerrors.UnexpectedStartTagIgnored)
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "noscript":
			tb.popCurrent()
			tb.mode = InHead
			return false
		case "br":
		default:
			tb.addError(htmlerrors.UnexpectedEndTag)
			return false
		}
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return tb.processInHead(tok)
		}
	case tokenizer.Comment:
		return tb.processInHead(tok)
	}
	tb.addError(htmlerrors.UnexpectedStartTagInHead)
	tb.popCurrent()
	tb.mode = InHead
	return true
}

func (tb *TreeBuilder) processAfterHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "body":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.framesetOK = false
			tb.mode = InBody
			return false
		case "frameset":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.mode = InFrameset
			return false
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			tb.openElements = append(tb.openElements, tb.headElement)
			tb.processInHead(tok)
			tb.removeFromOpenElements(tb.headElement)
			return false
		case "head":
			tb.addError(htmlerrors.UnexpectedStartTagIgnored)
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "body", "html", "br":
		case "template":
			return tb.processInHead(tok)
		default:
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
	}
	body := tb.document.Arena.NewElement("body", dom.NamespaceHTML, nil)
	tb.insertElementNode(body)
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processText(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		tb.insertText(tok.Data)
		return false
	case tokenizer.EOF:
		tb.popCurrent()
		tb.mode = tb.originalMode
		return true
	case tokenizer.EndTag:
		if tok.Name == "script" {
			tb.popCurrent()
			tb.mode = tb.originalMode
			return false
		}
		tb.popCurrent()
		tb.mode = tb.originalMode
		return false
	}
	return false
}

// processInBody implements the "in body" insertion mode — the largest and
// most heavily exercised of the 23 modes.
func (tb *TreeBuilder) processInBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if tok.Data == "\x00" {
			tb.addError(htmlerrors.UnexpectedNullCharacter)
			return false
		}
		tb.reconstructActiveFormattingElements()
		tb.insertText(tok.Data)
		if !isAllWhitespace(tok.Data) {
			tb.framesetOK = false
		}
		return false

	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false

	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false

	case tokenizer.EOF:
		if len(tb.templateModes) > 0 {
			return tb.processInTemplate(tok)
		}
		tb.checkUnclosedAtEOF()
		return false

	case tokenizer.StartTag:
		return tb.processInBodyStartTag(tok)

	case tokenizer.EndTag:
		return tb.processInBodyEndTag(tok)
	}
	return false
}

func (tb *TreeBuilder) checkUnclosedAtEOF() {
	allowed := map[string]bool{
		"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
		"p": true, "rb": true, "rp": true, "rt": true, "rtc": true, "tbody": true,
		"td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
		"body": true, "html": true,
	}
	for _, el := range tb.openElements {
		if !allowed[tb.node(el).TagName()] {
			tb.addError(htmlerrors.MissingEndTagBeforeEOF)
			return
		}
	}
}

func (tb *TreeBuilder) processInBodyStartTag(tok tokenizer.Token) bool {
	switch tok.Name {
	case "html":
		tb.addError(htmlerrors.UnexpectedStartTagIgnored)
		if len(tb.openElements) > 0 {
			cur := tb.node(tb.openElements[0])
			for _, a := range tok.Attrs {
				cur.Attrs().Add(a.Name, a.Value)
			}
		}
		return false

	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return tb.processInHead(tok)

	case "body":
		tb.addError(htmlerrors.UnexpectedStartTagIgnored)
		if len(tb.openElements) > 1 {
			body := tb.openElements[1]
			if tb.node(body).TagName() == "body" {
				tb.framesetOK = false
				for _, a := range tok.Attrs {
					tb.node(body).Attrs().Add(a.Name, a.Value)
				}
			}
		}
		return false

	case "frameset":
		tb.addError(htmlerrors.UnexpectedStartTagIgnored)
		return false

	case "address", "article", "aside", "blockquote", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"search", "section", "summary", "ul":
		tb.closePElementIfInButtonScope()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false

	case "h1", "h2", "h3", "h4", "h5", "h6":
		tb.closePElementIfInButtonScope()
		if isHeadingElement(tb.node(tb.currentNode()).TagName()) {
			tb.addError(htmlerrors.UnexpectedStartTagIgnored)
			tb.popCurrent()
		}
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false

	case "pre", "listing":
		tb.closePElementIfInButtonScope()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		return false

	case "form":
		if tb.formElement != dom.NoNode && !tb.elementInStack("template") {
			tb.addError(htmlerrors.UnexpectedStartTagIgnored)
			return false
		}
		tb.closePElementIfInButtonScope()
		el := tb.insertElementForToken(tok, dom.NamespaceHTML)
		if !tb.elementInStack("template") {
			tb.formElement = el
		}
		return false

	case "li":
		tb.framesetOK = false
		for i := len(tb.openElements) - 1; i >= 0; i-- {
			n := tb.node(tb.openElements[i])
			if n.TagName() == "li" {
				tb.generateImpliedEndTags("li")
				tb.popUntil("li")
				break
			}
			if n.IsSpecial() && !addressDivLikeElements[n.TagName()] && n.TagName() != "p" {
				break
			}
		}
		tb.closePElementIfInButtonScope()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false

	case "dd", "dt":
		tb.framesetOK = false
		for i := len(tb.openElements) - 1; i >= 0; i-- {
			n := tb.node(tb.openElements[i])
			if defListElements[n.TagName()] {
				tb.generateImpliedEndTags(n.TagName())
				tb.popUntil(n.TagName())
				break
			}
			if n.IsSpecial() && !addressDivLikeElements[n.TagName()] && n.TagName() != "p" {
				break
			}
		}
		tb.closePElementIfInButtonScope()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false

	case "plaintext":
		tb.closePElementIfInButtonScope()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.tok.SetState(tokenizer.PLAINTEXTState)
		return false

	case "button":
		if tb.hasElementInDefaultScope("button") {
			tb.addError(htmlerrors.UnexpectedStartTagIgnored)
			tb.generateImpliedEndTags("")
			tb.popUntil("button")
		}
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		return false

	case "a":
		if i := tb.findActiveFormattingIndex("a"); i >= 0 {
			tb.addError(htmlerrors.UnexpectedFormattingElementClose)
			node := tb.activeFormatting[i].node
			tb.adoptionAgency("a")
			tb.removeFormattingEntryByNode(node)
			tb.removeFromOpenElements(node)
		}
		tb.reconstructActiveFormattingElements()
		el := tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.appendActiveFormattingEntry(el)
		return false

	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		tb.reconstructActiveFormattingElements()
		el := tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.appendActiveFormattingEntry(el)
		return false

	case "nobr":
		tb.reconstructActiveFormattingElements()
		if tb.hasElementInDefaultScope("nobr") {
			tb.addError(htmlerrors.UnexpectedFormattingElementClose)
			tb.adoptionAgency("nobr")
			tb.reconstructActiveFormattingElements()
		}
		el := tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.appendActiveFormattingEntry(el)
		return false

	case "applet", "marquee", "object":
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.pushFormattingMarker()
		tb.framesetOK = false
		return false

	case "table":
		if tb.document.QuirksMode != dom.Quirks {
			tb.closePElementIfInButtonScope()
		}
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		tb.mode = InTable
		return false

	case "area", "br", "embed", "img", "keygen", "wbr":
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.popCurrent()
		tb.framesetOK = false
		return false

	case "input":
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.popCurrent()
		if !isHiddenInput(tok.Attrs) {
			tb.framesetOK = false
		}
		return false

	case "param", "source", "track":
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.popCurrent()
		return false

	case "hr":
		tb.closePElementIfInButtonScope()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.popCurrent()
		tb.framesetOK = false
		return false

	case "image":
		tok.Name = "img"
		return tb.processInBodyStartTag(tok)

	case "textarea":
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.tok.SetLastStartTag("textarea")
		tb.tok.SetState(tokenizer.RCDATAState)
		tb.originalMode = tb.mode
		tb.framesetOK = false
		tb.mode = Text
		return false

	case "xmp":
		tb.closePElementIfInButtonScope()
		tb.reconstructActiveFormattingElements()
		tb.framesetOK = false
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.tok.SetLastStartTag("xmp")
		tb.tok.SetState(tokenizer.RAWTEXTState)
		tb.originalMode = tb.mode
		tb.mode = Text
		return false

	case "iframe":
		tb.framesetOK = false
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.tok.SetLastStartTag("iframe")
		tb.tok.SetState(tokenizer.RAWTEXTState)
		tb.originalMode = tb.mode
		tb.mode = Text
		return false

	case "noembed":
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.tok.SetLastStartTag("noembed")
		tb.tok.SetState(tokenizer.RAWTEXTState)
		tb.originalMode = tb.mode
		tb.mode = Text
		return false

	case "select":
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		switch tb.mode {
		case InTable, InCaption, InTableBody, InRow, InCell:
			tb.mode = InSelectInTable
		default:
			tb.mode = InSelect
		}
		return false

	case "optgroup", "option":
		if tb.node(tb.currentNode()).TagName() == "option" {
			tb.popCurrent()
		}
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false

	case "rb", "rtc":
		if tb.hasElementInDefaultScope("ruby") {
			tb.generateImpliedEndTags("")
		}
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false

	case "rp", "rt":
		if tb.hasElementInDefaultScope("ruby") {
			tb.generateImpliedEndTags("rtc")
		}
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false

	case "math":
		tb.reconstructActiveFormattingElements()
		attrs := prepareForeignAttributes(dom.NamespaceMathML, adjustMathMLAttrNames(tok.Attrs))
		el := tb.document.Arena.NewElement("math", dom.NamespaceMathML, attrs)
		tb.insertElementNode(el)
		if tok.SelfClosing {
			tb.popCurrent()
		}
		return false

	case "svg":
		tb.reconstructActiveFormattingElements()
		attrs := prepareForeignAttributes(dom.NamespaceSVG, tok.Attrs)
		el := tb.document.Arena.NewElement("svg", dom.NamespaceSVG, attrs)
		tb.insertElementNode(el)
		if tok.SelfClosing {
			tb.popCurrent()
		}
		return false

	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		tb.addError(htmlerrors.UnexpectedStartTagIgnored)
		return false

	default:
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tok, dom.NamespaceHTML)
		return false
	}
}

// adjustMathMLAttrNames returns attrs unchanged. The "adjust MathML
// attributes" step (the definitionurl -> definitionURL rename) is applied
// by prepareForeignAttributes through constants.MathMLAttributeAdjustments.
func adjustMathMLAttrNames(attrs []tokenizer.Attr) []tokenizer.Attr {
	return attrs
}

func (tb *TreeBuilder) processInBodyEndTag(tok tokenizer.Token) bool {
	switch tok.Name {
	case "template":
		return tb.processInHead(tok)

	case "body":
		if !tb.hasElementInDefaultScope("body") {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.checkUnclosedAtEOF()
		tb.mode = AfterBody
		return false

	case "html":
		if !tb.hasElementInDefaultScope("body") {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.checkUnclosedAtEOF()
		tb.mode = AfterBody
		return true

	case "address", "article", "aside", "blockquote", "button", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption",
		"figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "search", "section", "summary", "ul":
		if !tb.hasElementInDefaultScope(tok.Name) {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.generateImpliedEndTags("")
		if tb.node(tb.currentNode()).TagName() != tok.Name {
			tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
		}
		tb.popUntil(tok.Name)
		return false

	case "form":
		if tb.elementInStack("template") {
			if !tb.hasElementInDefaultScope("form") {
				tb.addError(htmlerrors.EndTagForUnopenedElement)
				return false
			}
			tb.generateImpliedEndTags("")
			if tb.node(tb.currentNode()).TagName() != "form" {
				tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
			}
			tb.popUntil("form")
			return false
		}
		node := tb.formElement
		tb.formElement = dom.NoNode
		if node == dom.NoNode || !tb.hasElementInDefaultScope(tb.node(node).TagName()) {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.generateImpliedEndTags("")
		if tb.currentNode() != node {
			tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
		}
		tb.removeFromOpenElements(node)
		return false

	case "p":
		if !tb.hasPElementInButtonScope() {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			tb.insertElementForToken(tokenizer.Token{Name: "p"}, dom.NamespaceHTML)
		}
		tb.closePElementIfInButtonScope()
		return false

	case "li":
		if !tb.hasElementInListItemScope("li") {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.generateImpliedEndTags("li")
		if tb.node(tb.currentNode()).TagName() != "li" {
			tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
		}
		tb.popUntil("li")
		return false

	case "dd", "dt":
		if !tb.hasElementInScope(tok.Name, constants.DefaultScope) {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.generateImpliedEndTags(tok.Name)
		if tb.node(tb.currentNode()).TagName() != tok.Name {
			tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
		}
		tb.popUntil(tok.Name)
		return false

	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !tb.hasAnyHeadingInDefaultScope() {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.generateImpliedEndTags("")
		if tb.node(tb.currentNode()).TagName() != tok.Name {
			tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
		}
		tb.popUntilAny(headingElements)
		return false

	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		tb.adoptionAgency(tok.Name)
		return false

	case "applet", "marquee", "object":
		if !tb.hasElementInDefaultScope(tok.Name) {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		}
		tb.generateImpliedEndTags("")
		if tb.node(tb.currentNode()).TagName() != tok.Name {
			tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
		}
		tb.popUntil(tok.Name)
		tb.clearActiveFormattingUpToMarker()
		return false

	case "br":
		tb.addError(htmlerrors.UnexpectedEndTag)
		tb.reconstructActiveFormattingElements()
		tb.insertElementForToken(tokenizer.Token{Name: "br"}, dom.NamespaceHTML)
		tb.popCurrent()
		tb.framesetOK = false
		return false

	default:
		tb.anyOtherEndTag(tok.Name)
		return false
	}
}

func (tb *TreeBuilder) hasAnyHeadingInDefaultScope() bool {
	for h := range headingElements {
		if tb.hasElementInDefaultScope(h) {
			return true
		}
	}
	return false
}

// processInTable implements the "in table" insertion mode.
func (tb *TreeBuilder) processInTable(tok tokenizer.Token) bool {
	cur := tb.node(tb.currentNode()).TagName()
	if tok.Type == tokenizer.Character && (cur == "table" || cur == "tbody" || cur == "tfoot" || cur == "thead" || cur == "tr") {
		tb.pendingTableText = nil
		tb.tableTextOriginalMode = tb.mode
		tb.hasTableTextOriginal = true
		tb.mode = InTableText
		return true
	}

	switch tok.Type {
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption":
			tb.clearStackUntil(constants.TableScope)
			tb.pushFormattingMarker()
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.mode = InCaption
			return false
		case "colgroup":
			tb.clearStackUntil(constants.TableScope)
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.mode = InColumnGroup
			return false
		case "col":
			tb.clearStackUntil(constants.TableScope)
			colgroup := tb.document.Arena.NewElement("colgroup", dom.NamespaceHTML, nil)
			tb.insertElementNode(colgroup)
			tb.mode = InColumnGroup
			return true
		case "tbody", "tfoot", "thead":
			tb.clearStackUntil(constants.TableScope)
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.mode = InTableBody
			return false
		case "td", "th", "tr":
			tb.clearStackUntil(constants.TableScope)
			tbody := tb.document.Arena.NewElement("tbody", dom.NamespaceHTML, nil)
			tb.insertElementNode(tbody)
			tb.mode = InTableBody
			return true
		case "table":
			tb.addError(htmlerrors.UnexpectedStartTagInTable)
			if tb.hasElementInTableScope("table") {
				tb.popUntil("table")
				tb.resetInsertionModeAppropriately()
				return true
			}
			return false
		case "style", "script", "template":
			return tb.processInHead(tok)
		case "input":
			if isHiddenInput(tok.Attrs) {
				tb.addError(htmlerrors.UnexpectedStartTagInTable)
				tb.insertElementForToken(tok, dom.NamespaceHTML)
				tb.popCurrent()
				return false
			}
		case "form":
			if tb.formElement == dom.NoNode && !tb.elementInStack("template") {
				tb.addError(htmlerrors.UnexpectedStartTagInTable)
				el := tb.insertElementForToken(tok, dom.NamespaceHTML)
				tb.formElement = el
				tb.popCurrent()
			}
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "table":
			if !tb.hasElementInTableScope("table") {
				tb.addError(htmlerrors.UnexpectedEndTagInTable)
				return false
			}
			tb.popUntil("table")
			tb.resetInsertionModeAppropriately()
			return false
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			tb.addError(htmlerrors.UnexpectedEndTagInTable)
			return false
		case "template":
			return tb.processInHead(tok)
		}
	case tokenizer.EOF:
		return tb.processInBody(tok)
	}

	tb.addError(htmlerrors.UnexpectedStartTagInTable)
	tb.withFosterParenting(func() {
		tb.processInBody(tok)
	})
	return false
}

func (tb *TreeBuilder) processInTableText(tok tokenizer.Token) bool {
	if tok.Type == tokenizer.Character {
		if tok.Data == "\x00" {
			tb.addError(htmlerrors.UnexpectedNullCharacter)
			return false
		}
		tb.pendingTableText = append(tb.pendingTableText, tok.Data)
		return false
	}

	allWhitespace := true
	for _, s := range tb.pendingTableText {
		if !isAllWhitespace(s) {
			allWhitespace = false
			break
		}
	}
	text := strings.Join(tb.pendingTableText, "")
	tb.pendingTableText = nil

	if allWhitespace {
		tb.insertText(text)
	} else {
		tb.addError(htmlerrors.NonSpaceCharacterInTableText)
		tb.addError(htmlerrors.FosterParentedCharacter)
		tb.withFosterParenting(func() {
			tb.reconstructActiveFormattingElements()
			tb.insertText(text)
			tb.framesetOK = false
		})
	}

	if tb.hasTableTextOriginal {
		tb.mode = tb.tableTextOriginalMode
		tb.hasTableTextOriginal = false
	} else {
		tb.mode = InTable
	}
	return true
}

func (tb *TreeBuilder) processInCaption(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.EndTag:
		switch tok.Name {
		case "caption":
			return tb.closeCaption()
		case "table":
			if !tb.closeCaptionReprocess() {
				return false
			}
			return true
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			tb.addError(htmlerrors.UnexpectedEndTagInTable)
			return false
		}
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !tb.closeCaptionReprocess() {
				return false
			}
			return true
		}
	}
	return tb.processInBody(tok)
}

func (tb *TreeBuilder) closeCaption() bool {
	if !tb.hasElementInTableScope("caption") {
		tb.addError(htmlerrors.EndTagForUnopenedElement)
		return false
	}
	tb.generateImpliedEndTags("")
	if tb.node(tb.currentNode()).TagName() != "caption" {
		tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
	}
	tb.popUntil("caption")
	tb.clearActiveFormattingUpToMarker()
	tb.mode = InTable
	return false
}

func (tb *TreeBuilder) closeCaptionReprocess() bool {
	if !tb.hasElementInTableScope("caption") {
		tb.addError(htmlerrors.EndTagForUnopenedElement)
		return false
	}
	tb.generateImpliedEndTags("")
	tb.popUntil("caption")
	tb.clearActiveFormattingUpToMarker()
	tb.mode = InTable
	return true
}

func (tb *TreeBuilder) processInColumnGroup(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "col":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return false
		case "template":
			return tb.processInHead(tok)
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "colgroup":
			if tb.node(tb.currentNode()).TagName() != "colgroup" {
				tb.addError(htmlerrors.EndTagForUnopenedElement)
				return false
			}
			tb.popCurrent()
			tb.mode = InTable
			return false
		case "col":
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return false
		case "template":
			return tb.processInHead(tok)
		}
	case tokenizer.EOF:
		return tb.processInBody(tok)
	}
	if tb.node(tb.currentNode()).TagName() != "colgroup" {
		return false
	}
	tb.popCurrent()
	tb.mode = InTable
	return true
}

func (tb *TreeBuilder) processInTableBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "tr":
			tb.clearStackUntil(constants.TableBodyScope)
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.mode = InRow
			return false
		case "th", "td":
			tb.addError(htmlerrors.UnexpectedStartTagInTable)
			tb.clearStackUntil(constants.TableBodyScope)
			tr := tb.document.Arena.NewElement("tr", dom.NamespaceHTML, nil)
			tb.insertElementNode(tr)
			tb.mode = InRow
			return true
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !tb.hasAnyTableSectionInScope() {
				tb.addError(htmlerrors.UnexpectedStartTagInTable)
				return false
			}
			tb.clearStackUntil(constants.TableBodyScope)
			tb.popCurrent()
			tb.mode = InTable
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tbody", "tfoot", "thead":
			if !tb.hasElementInTableScope(tok.Name) {
				tb.addError(htmlerrors.UnexpectedEndTagInTable)
				return false
			}
			tb.clearStackUntil(constants.TableBodyScope)
			tb.popCurrent()
			tb.mode = InTable
			return false
		case "table":
			if !tb.hasAnyTableSectionInScope() {
				tb.addError(htmlerrors.UnexpectedEndTagInTable)
				return false
			}
			tb.clearStackUntil(constants.TableBodyScope)
			tb.popCurrent()
			tb.mode = InTable
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			tb.addError(htmlerrors.UnexpectedEndTagInTable)
			return false
		}
	}
	return tb.processInTable(tok)
}

func (tb *TreeBuilder) hasAnyTableSectionInScope() bool {
	return tb.hasElementInTableScope("tbody") || tb.hasElementInTableScope("thead") || tb.hasElementInTableScope("tfoot")
}

func (tb *TreeBuilder) processInRow(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "th", "td":
			tb.clearStackUntil(constants.TableRowScope)
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.mode = InCell
			tb.pushFormattingMarker()
			return false
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !tb.hasElementInTableRowScope("tr") {
				tb.addError(htmlerrors.UnexpectedStartTagInTable)
				return false
			}
			tb.clearStackUntil(constants.TableRowScope)
			tb.popCurrent()
			tb.mode = InTableBody
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tr":
			if !tb.hasElementInTableRowScope("tr") {
				tb.addError(htmlerrors.UnexpectedEndTagInTable)
				return false
			}
			tb.clearStackUntil(constants.TableRowScope)
			tb.popCurrent()
			tb.mode = InTableBody
			return false
		case "table":
			if !tb.hasElementInTableRowScope("tr") {
				tb.addError(htmlerrors.UnexpectedEndTagInTable)
				return false
			}
			tb.clearStackUntil(constants.TableRowScope)
			tb.popCurrent()
			tb.mode = InTableBody
			return true
		case "tbody", "tfoot", "thead":
			if !tb.hasElementInTableScope(tok.Name) || !tb.hasElementInTableRowScope("tr") {
				tb.addError(htmlerrors.UnexpectedEndTagInTable)
				return false
			}
			tb.clearStackUntil(constants.TableRowScope)
			tb.popCurrent()
			tb.mode = InTableBody
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			tb.addError(htmlerrors.UnexpectedEndTagInTable)
			return false
		}
	}
	return tb.processInTable(tok)
}

func (tb *TreeBuilder) processInCell(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.EndTag:
		switch tok.Name {
		case "td", "th":
			if !tb.hasElementInTableScope(tok.Name) {
				tb.addError(htmlerrors.UnexpectedCellEndTag)
				return false
			}
			tb.closeCaptionOrCellImplied(tok.Name)
			tb.clearActiveFormattingUpToMarker()
			tb.mode = InRow
			return false
		case "body", "caption", "col", "colgroup", "html":
			tb.addError(htmlerrors.UnexpectedEndTagInTable)
			return false
		case "table", "tbody", "tfoot", "thead", "tr":
			if !tb.hasElementInTableScope(tok.Name) {
				tb.addError(htmlerrors.UnexpectedEndTagInTable)
				return false
			}
			if tb.hasElementInTableScope("td") {
				tb.closeCaptionOrCellImplied("td")
			} else if tb.hasElementInTableScope("th") {
				tb.closeCaptionOrCellImplied("th")
			}
			tb.clearActiveFormattingUpToMarker()
			tb.mode = InRow
			return true
		}
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !tb.hasElementInTableScope("td") && !tb.hasElementInTableScope("th") {
				tb.addError(htmlerrors.UnexpectedStartTagInTable)
				return false
			}
			if tb.hasElementInTableScope("td") {
				tb.closeCaptionOrCellImplied("td")
			} else {
				tb.closeCaptionOrCellImplied("th")
			}
			tb.clearActiveFormattingUpToMarker()
			tb.mode = InRow
			return true
		}
	}
	return tb.processInBody(tok)
}

func (tb *TreeBuilder) processInSelect(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if tok.Data == "\x00" {
			tb.addError(htmlerrors.UnexpectedNullCharacter)
			return false
		}
		tb.insertText(tok.Data)
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.EOF:
		return tb.processInBody(tok)
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "option":
			if tb.node(tb.currentNode()).TagName() == "option" {
				tb.popCurrent()
			}
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			return false
		case "optgroup":
			if tb.node(tb.currentNode()).TagName() == "option" {
				tb.popCurrent()
			}
			if tb.node(tb.currentNode()).TagName() == "optgroup" {
				tb.popCurrent()
			}
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			return false
		case "hr":
			if tb.node(tb.currentNode()).TagName() == "option" {
				tb.popCurrent()
			}
			if tb.node(tb.currentNode()).TagName() == "optgroup" {
				tb.popCurrent()
			}
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return false
		case "select":
			tb.addError(htmlerrors.UnexpectedStartTagInSelect)
			if tb.hasElementInSelectScope("select") {
				tb.popUntil("select")
				tb.resetInsertionModeAppropriately()
			}
			return false
		case "input", "keygen", "textarea":
			tb.addError(htmlerrors.UnexpectedStartTagInSelect)
			if !tb.hasElementInSelectScope("select") {
				return false
			}
			tb.popUntil("select")
			tb.resetInsertionModeAppropriately()
			return true
		case "script", "template":
			return tb.processInHead(tok)
		default:
			tb.addError(htmlerrors.UnexpectedStartTagInSelect)
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "optgroup":
			if tb.node(tb.currentNode()).TagName() == "option" && len(tb.openElements) > 1 &&
				tb.node(tb.openElements[len(tb.openElements)-2]).TagName() == "optgroup" {
				tb.popCurrent()
			}
			if tb.node(tb.currentNode()).TagName() == "optgroup" {
				tb.popCurrent()
			} else {
				tb.addError(htmlerrors.EndTagForUnopenedElement)
			}
			return false
		case "option":
			if tb.node(tb.currentNode()).TagName() == "option" {
				tb.popCurrent()
			} else {
				tb.addError(htmlerrors.EndTagForUnopenedElement)
			}
			return false
		case "select":
			if !tb.hasElementInSelectScope("select") {
				tb.addError(htmlerrors.EndTagForUnopenedElement)
				return false
			}
			tb.popUntil("select")
			tb.resetInsertionModeAppropriately()
			return false
		case "template":
			return tb.processInHead(tok)
		}
	}
	tb.addError(htmlerrors.UnexpectedStartTagIgnored)
	return false
}

func (tb *TreeBuilder) processInSelectInTable(tok tokenizer.Token) bool {
	if tok.Type == tokenizer.StartTag {
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			tb.addError(htmlerrors.UnexpectedStartTagInSelect)
			tb.popUntil("select")
			tb.resetInsertionModeAppropriately()
			return true
		}
	}
	if tok.Type == tokenizer.EndTag {
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			tb.addError(htmlerrors.UnexpectedEndTagInTable)
			if !tb.hasElementInTableScope(tok.Name) {
				return false
			}
			tb.popUntil("select")
			tb.resetInsertionModeAppropriately()
			return true
		}
	}
	return tb.processInSelect(tok)
}

// processInTemplate implements the "in template" insertion mode, which
// maintains its own stack of template insertion modes rather than falling
// through to "in body" unconditionally.
func (tb *TreeBuilder) processInTemplate(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character, tokenizer.Comment, tokenizer.DOCTYPE:
		return tb.processInBody(tok)
	case tokenizer.EOF:
		if !tb.elementInStack("template") {
			return false
		}
		tb.addError(htmlerrors.MissingEndTagBeforeEOF)
		tb.popUntil("template")
		tb.clearActiveFormattingUpToMarker()
		if len(tb.templateModes) > 0 {
			tb.templateModes = tb.templateModes[:len(tb.templateModes)-1]
		}
		tb.resetInsertionModeAppropriately()
		return true
	case tokenizer.StartTag:
		switch tok.Name {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			return tb.processInHead(tok)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			tb.popTemplateMode()
			tb.pushTemplateMode(InTable)
			tb.mode = InTable
			return true
		case "col":
			tb.popTemplateMode()
			tb.pushTemplateMode(InColumnGroup)
			tb.mode = InColumnGroup
			return true
		case "tr":
			tb.popTemplateMode()
			tb.pushTemplateMode(InTableBody)
			tb.mode = InTableBody
			return true
		case "td", "th":
			tb.popTemplateMode()
			tb.pushTemplateMode(InRow)
			tb.mode = InRow
			return true
		default:
			tb.popTemplateMode()
			tb.pushTemplateMode(InBody)
			tb.mode = InBody
			return true
		}
	case tokenizer.EndTag:
		if tok.Name == "template" {
			return tb.processInHead(tok)
		}
		tb.addError(htmlerrors.UnexpectedEndTag)
		return false
	}
	return false
}

func (tb *TreeBuilder) pushTemplateMode(m InsertionMode) {
	tb.templateModes = append(tb.templateModes, m)
}

func (tb *TreeBuilder) popTemplateMode() {
	if len(tb.templateModes) > 0 {
		tb.templateModes = tb.templateModes[:len(tb.templateModes)-1]
	}
}

func (tb *TreeBuilder) processAfterBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return tb.processInBody(tok)
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, tb.openElements[0])
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		if tok.Name == "html" {
			return tb.processInBody(tok)
		}
	case tokenizer.EndTag:
		if tok.Name == "html" {
			tb.mode = AfterAfterBody
			return false
		}
	case tokenizer.EOF:
		return false
	}
	tb.addError(htmlerrors.UnexpectedEndTag)
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processInFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "frameset":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			return false
		case "frame":
			tb.insertElementForToken(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return false
		case "noframes":
			return tb.processInHead(tok)
		}
	case tokenizer.EndTag:
		if tok.Name == "frameset" {
			if len(tb.openElements) > 1 || tb.node(tb.currentNode()).TagName() != "html" {
				tb.popCurrent()
			}
			if len(tb.openElements) > 0 && tb.node(tb.currentNode()).TagName() != "frameset" {
				tb.mode = AfterFrameset
			}
			return false
		}
	case tokenizer.EOF:
		return false
	}
	tb.addError(htmlerrors.UnexpectedStartTagIgnored)
	return false
}

func (tb *TreeBuilder) processAfterFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data, dom.NoNode)
		return false
	case tokenizer.DOCTYPE:
		tb.addError(htmlerrors.UnexpectedDoctype)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "noframes":
			return tb.processInHead(tok)
		}
	case tokenizer.EndTag:
		if tok.Name == "html" {
			tb.mode = AfterAfterFrameset
			return false
		}
	case tokenizer.EOF:
		return false
	}
	tb.addError(htmlerrors.UnexpectedStartTagIgnored)
	return false
}

func (tb *TreeBuilder) processAfterAfterBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Comment:
		tb.insertComment(tok.Data, tb.document.Root)
		return false
	case tokenizer.DOCTYPE:
		return tb.processInBody(tok)
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return tb.processInBody(tok)
		}
	case tokenizer.StartTag:
		if tok.Name == "html" {
			return tb.processInBody(tok)
		}
	case tokenizer.EOF:
		return false
	}
	tb.addError(htmlerrors.UnexpectedStartTagIgnored)
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processAfterAfterFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Comment:
		tb.insertComment(tok.Data, tb.document.Root)
		return false
	case tokenizer.DOCTYPE:
		return tb.processInBody(tok)
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return tb.processInBody(tok)
		}
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "noframes":
			return tb.processInHead(tok)
		}
	case tokenizer.EOF:
		return false
	}
	return false
}
