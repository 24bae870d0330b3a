package treebuilder

import (
	"github.com/CharlesChen0823/gosub-engine/dom"
	htmlerrors "github.com/CharlesChen0823/gosub-engine/errors"
	"github.com/CharlesChen0823/gosub-engine/internal/constants"
	"github.com/CharlesChen0823/gosub-engine/tokenizer"
)

// TreeBuilder drives the HTML5 tree construction algorithm: it pulls
// tokens, dispatches them to the handler for the current insertion mode,
// and mutates the open-elements stack, the active formatting elements list,
// and the document arena.
type TreeBuilder struct {
	document *dom.Document

	openElements []dom.NodeId

	mode         InsertionMode
	originalMode InsertionMode

	headElement dom.NodeId
	formElement dom.NodeId

	activeFormatting []formattingEntry

	// templateModes is the stack of insertion modes to resume when a
	// <template> element is popped.
	templateModes []InsertionMode

	// Table text buffering (InTableText insertion mode).
	pendingTableText      []string
	tableTextOriginalMode InsertionMode
	hasTableTextOriginal  bool

	framesetOK      bool
	fosterParenting bool
	scriptingEnabled bool

	fragmentContext *FragmentContext
	fragmentRoot    dom.NodeId
	fragmentElement dom.NodeId

	tok *tokenizer.Tokenizer

	errs []*htmlerrors.ParseError

	// forceHTMLMode is set by processForeignContent when a token must be
	// reprocessed under ordinary HTML insertion-mode rules (a "breakout").
	// It prevents re-entering foreign-content dispatch for that token.
	forceHTMLMode bool

	iframeSrcdoc bool
}

// Option configures a TreeBuilder at construction time.
type Option func(*TreeBuilder)

// WithScriptingEnabled toggles the scripting flag, which controls whether
// <noscript> content is parsed as raw text (scripting enabled, the default
// browsers use) or as ordinary markup (scripting disabled).
func WithScriptingEnabled(enabled bool) Option {
	return func(tb *TreeBuilder) { tb.scriptingEnabled = enabled }
}

// New creates a tree builder that parses a full document.
func New(tok *tokenizer.Tokenizer, opts ...Option) *TreeBuilder {
	tb := &TreeBuilder{
		document:        dom.NewDocument(),
		mode:            Initial,
		originalMode:    Initial,
		framesetOK:      true,
		scriptingEnabled: true,
		headElement:     dom.NoNode,
		formElement:     dom.NoNode,
		fragmentRoot:    dom.NoNode,
		fragmentElement: dom.NoNode,
		tok:             tok,
	}
	for _, o := range opts {
		o(tb)
	}
	return tb
}

// NewFragment creates a tree builder for fragment ("innerHTML") parsing in
// the given context.
func NewFragment(tok *tokenizer.Tokenizer, ctx *FragmentContext, opts ...Option) *TreeBuilder {
	tb := &TreeBuilder{
		document:        dom.NewDocument(),
		mode:            Initial,
		originalMode:    Initial,
		framesetOK:      false,
		scriptingEnabled: true,
		headElement:     dom.NoNode,
		formElement:     dom.NoNode,
		fragmentContext: ctx,
		fragmentRoot:    dom.NoNode,
		fragmentElement: dom.NoNode,
		tok:             tok,
	}
	for _, o := range opts {
		o(tb)
	}

	arena := tb.document.Arena
	html := arena.NewElement("html", dom.NamespaceHTML, nil)
	arena.Attach(html, tb.document.Root)
	tb.openElements = append(tb.openElements, html)
	tb.fragmentRoot = html

	if ctx != nil && ctx.TagName != "" {
		namespace := dom.NamespaceHTML
		switch ctx.Namespace {
		case "svg":
			namespace = dom.NamespaceSVG
		case "mathml":
			namespace = dom.NamespaceMathML
		}
		// The context element is never attached to the document or pushed
		// onto the stack of open elements: per the fragment-parsing algorithm
		// the stack holds only the synthetic root above, and the context
		// element is consulted virtually -- for the initial insertion mode,
		// the adjusted current node, and the tokenizer raw-text state below.
		// Pushing it for real would let scope checks like "has a td element
		// in table scope" find it and incorrectly close it.
		contextEl := arena.NewElement(ctx.TagName, namespace, nil)
		tb.fragmentElement = contextEl

		if namespace == dom.NamespaceHTML {
			switch ctx.TagName {
			case "title", "textarea":
				tb.tok.SetLastStartTag(ctx.TagName)
				tb.tok.SetState(tokenizer.RCDATAState)
			case "style", "xmp", "iframe", "noembed", "noframes":
				tb.tok.SetLastStartTag(ctx.TagName)
				tb.tok.SetState(tokenizer.RAWTEXTState)
			case "script":
				tb.tok.SetLastStartTag(ctx.TagName)
				tb.tok.SetState(tokenizer.ScriptDataState)
			case "plaintext":
				tb.tok.SetLastStartTag(ctx.TagName)
				tb.tok.SetState(tokenizer.PLAINTEXTState)
			}
		}

		// The insertion mode is derived entirely by "reset the insertion
		// mode appropriately", which consults the context element's tag
		// name only when the stack of open elements is exhausted (the
		// fragment case). Notably a td/th context lands in "in body", not
		// "in cell": the algorithm's td/th rule only fires when last is
		// false, so a lone context cell falls through to the fragment-case
		// default.
		tb.resetInsertionModeAppropriately()
		tb.originalMode = tb.mode
	}

	return tb
}

// SetIframeSrcdoc toggles srcdoc parsing mode, which affects the DOCTYPE
// quirks-mode decision (an absent DOCTYPE never triggers quirks mode when
// parsing an iframe's srcdoc document).
func (tb *TreeBuilder) SetIframeSrcdoc(enabled bool) {
	tb.iframeSrcdoc = enabled
}

// Document returns the constructed document.
func (tb *TreeBuilder) Document() *dom.Document {
	return tb.document
}

// Errors returns the tree-construction parse errors accumulated so far.
func (tb *TreeBuilder) Errors() []*htmlerrors.ParseError {
	return tb.errs
}

// FragmentNodes returns the ids of the synthetic root element's children —
// the output of fragment ("innerHTML") parsing. The context element itself
// is never part of the document, so it is never among the returned nodes.
func (tb *TreeBuilder) FragmentNodes() []dom.NodeId {
	root := tb.fragmentRoot
	if root == dom.NoNode {
		return nil
	}
	return append([]dom.NodeId(nil), tb.document.Arena.Get(root).Children()...)
}

// AllowCDATA reports whether the tokenizer should treat "<![CDATA[" as a
// CDATA section rather than a bogus comment: true whenever the adjusted
// current node is in a foreign (non-HTML) namespace.
func (tb *TreeBuilder) AllowCDATA() bool {
	cur := tb.currentElement()
	return cur != dom.NoNode && tb.node(cur).Namespace() != dom.NamespaceHTML
}

func (tb *TreeBuilder) node(id dom.NodeId) *dom.Node {
	return tb.document.Arena.Get(id)
}

func (tb *TreeBuilder) addError(code string) {
	tb.errs = append(tb.errs, &htmlerrors.ParseError{Code: code, Message: htmlerrors.Message(code)})
}

// ProcessToken consumes one tokenizer token, dispatching to foreign-content
// handling or the current insertion mode's handler, and reprocessing as
// many times as the algorithm asks for.
func (tb *TreeBuilder) ProcessToken(tok tokenizer.Token) {
	for {
		if !tb.forceHTMLMode && tb.shouldUseForeignContent(tok) {
			if !tb.processForeignContent(tok) {
				return
			}
			continue
		}
		tb.forceHTMLMode = false

		var reprocess bool
		switch tb.mode {
		case Initial:
			reprocess = tb.processInitial(tok)
		case BeforeHTML:
			reprocess = tb.processBeforeHTML(tok)
		case BeforeHead:
			reprocess = tb.processBeforeHead(tok)
		case InHead:
			reprocess = tb.processInHead(tok)
		case InHeadNoscript:
			reprocess = tb.processInHeadNoscript(tok)
		case AfterHead:
			reprocess = tb.processAfterHead(tok)
		case Text:
			reprocess = tb.processText(tok)
		case InBody:
			reprocess = tb.processInBody(tok)
		case InTable:
			reprocess = tb.processInTable(tok)
		case InTableText:
			reprocess = tb.processInTableText(tok)
		case InCaption:
			reprocess = tb.processInCaption(tok)
		case InColumnGroup:
			reprocess = tb.processInColumnGroup(tok)
		case InTableBody:
			reprocess = tb.processInTableBody(tok)
		case InRow:
			reprocess = tb.processInRow(tok)
		case InCell:
			reprocess = tb.processInCell(tok)
		case InSelect:
			reprocess = tb.processInSelect(tok)
		case InSelectInTable:
			reprocess = tb.processInSelectInTable(tok)
		case InTemplate:
			reprocess = tb.processInTemplate(tok)
		case AfterBody:
			reprocess = tb.processAfterBody(tok)
		case InFrameset:
			reprocess = tb.processInFrameset(tok)
		case AfterFrameset:
			reprocess = tb.processAfterFrameset(tok)
		case AfterAfterBody:
			reprocess = tb.processAfterAfterBody(tok)
		case AfterAfterFrameset:
			reprocess = tb.processAfterAfterFrameset(tok)
		default:
			reprocess = tb.processInBody(tok)
		}
		if !reprocess {
			return
		}
	}
}

func (tb *TreeBuilder) currentNode() dom.NodeId {
	if len(tb.openElements) == 0 {
		return tb.document.Root
	}
	return tb.openElements[len(tb.openElements)-1]
}

func (tb *TreeBuilder) currentElement() dom.NodeId {
	if len(tb.openElements) == 0 {
		return dom.NoNode
	}
	return tb.openElements[len(tb.openElements)-1]
}

// adjustedCurrentNode is the current node, except during fragment parsing
// with exactly one open element, where it is the fragment context element
// rather than the (nonexistent) element below it.
func (tb *TreeBuilder) adjustedCurrentNode() dom.NodeId {
	if tb.fragmentElement != dom.NoNode && len(tb.openElements) == 1 {
		return tb.fragmentElement
	}
	return tb.currentElement()
}

func (tb *TreeBuilder) popCurrent() dom.NodeId {
	if len(tb.openElements) == 0 {
		return dom.NoNode
	}
	el := tb.openElements[len(tb.openElements)-1]
	tb.openElements = tb.openElements[:len(tb.openElements)-1]
	return el
}

// popUntil pops elements (inclusive) until one named name has been popped.
func (tb *TreeBuilder) popUntil(name string) {
	for len(tb.openElements) > 0 {
		el := tb.popCurrent()
		if tb.node(el).TagName() == name {
			return
		}
	}
}

// popUntilAny pops elements (inclusive) until one whose name is in names
// has been popped.
func (tb *TreeBuilder) popUntilAny(names map[string]bool) {
	for len(tb.openElements) > 0 {
		el := tb.popCurrent()
		if names[tb.node(el).TagName()] {
			return
		}
	}
}

func (tb *TreeBuilder) elementInStack(name string) bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.node(tb.openElements[i]).TagName() == name {
			return true
		}
	}
	return false
}

func (tb *TreeBuilder) indexOfOpenElement(target dom.NodeId) int {
	for i, el := range tb.openElements {
		if el == target {
			return i
		}
	}
	return -1
}

func (tb *TreeBuilder) removeOpenElementAt(index int) {
	if index < 0 || index >= len(tb.openElements) {
		return
	}
	tb.openElements = append(tb.openElements[:index], tb.openElements[index+1:]...)
}

func (tb *TreeBuilder) insertOpenElementAt(index int, el dom.NodeId) {
	if index < 0 {
		index = 0
	}
	if index > len(tb.openElements) {
		index = len(tb.openElements)
	}
	tb.openElements = append(tb.openElements, dom.NoNode)
	copy(tb.openElements[index+1:], tb.openElements[index:])
	tb.openElements[index] = el
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
			continue
		default:
			return false
		}
	}
	return true
}

func ptrToString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func attrsFromTokens(attrs []tokenizer.Attr) *dom.Attributes {
	out := dom.NewAttributes()
	for _, a := range attrs {
		out.Add(a.Name, a.Value)
	}
	return out
}

func shouldFosterForTag(tagName string) bool {
	return constants.TableFosterTargets[tagName]
}
