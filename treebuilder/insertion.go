package treebuilder

import (
	"github.com/CharlesChen0823/gosub-engine/dom"
	"github.com/CharlesChen0823/gosub-engine/tokenizer"
)

// insertionLocation names where a new node should be attached: as the last
// child of parent, or as parent's child immediately before before (NoNode
// meaning "at the end").
type insertionLocation struct {
	parent dom.NodeId
	before dom.NodeId
}

// appropriateInsertionLocation implements "appropriate place for inserting a
// node", including the foster parenting special case for table-scoped
// insertion. target defaults to the current node.
func (tb *TreeBuilder) appropriateInsertionLocation(target dom.NodeId) insertionLocation {
	if target == dom.NoNode {
		target = tb.currentNode()
	}

	if tb.fosterParenting {
		tn := tb.node(target).TagName()
		if shouldFosterForTag(tn) {
			return tb.fosterInsertionLocation()
		}
	}

	n := tb.node(target)
	if n.TagName() == "template" && n.Namespace() == dom.NamespaceHTML {
		content := n.TemplateContent()
		if content != dom.NoNode {
			return insertionLocation{parent: content, before: dom.NoNode}
		}
	}
	return insertionLocation{parent: target, before: dom.NoNode}
}

// fosterInsertionLocation implements the foster parenting algorithm: insert
// before the last table on the stack, inside its parent, unless there is a
// template further down the stack, in which case insert inside that
// template's content, or if no table is open, insert inside the topmost
// (html) element on the stack.
func (tb *TreeBuilder) fosterInsertionLocation() insertionLocation {
	lastTable := dom.NoNode
	lastTableIndex := -1
	lastTemplate := dom.NoNode
	lastTemplateIndex := -1
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		el := tb.openElements[i]
		name := tb.node(el).TagName()
		if name == "table" && lastTable == dom.NoNode {
			lastTable = el
			lastTableIndex = i
		}
		if name == "template" && lastTemplate == dom.NoNode {
			lastTemplate = el
			lastTemplateIndex = i
		}
	}

	if lastTemplate != dom.NoNode && (lastTable == dom.NoNode || lastTemplateIndex > lastTableIndex) {
		content := tb.node(lastTemplate).TemplateContent()
		return insertionLocation{parent: content, before: dom.NoNode}
	}

	if lastTable == dom.NoNode {
		return insertionLocation{parent: tb.openElements[0], before: dom.NoNode}
	}

	parent := tb.node(lastTable).Parent()
	if parent != dom.NoNode {
		return insertionLocation{parent: parent, before: lastTable}
	}

	// The table has no parent (e.g. it's the fragment root's only child and
	// somehow detached); fall back to inserting before it among whatever
	// sibling list it would have had, which in practice means its enclosing
	// node on the stack just below it.
	if lastTableIndex > 0 {
		return insertionLocation{parent: tb.openElements[lastTableIndex-1], before: dom.NoNode}
	}
	return insertionLocation{parent: tb.openElements[0], before: dom.NoNode}
}

// insertElementNode attaches an already-allocated element node at the
// appropriate insertion location and pushes it onto the stack of open
// elements.
func (tb *TreeBuilder) insertElementNode(el dom.NodeId) {
	loc := tb.appropriateInsertionLocation(dom.NoNode)
	tb.document.Arena.AttachBefore(el, loc.parent, loc.before)
	tb.openElements = append(tb.openElements, el)
}

// insertElementForToken creates an element for a start tag token, attaches
// it at the appropriate insertion location, and pushes it onto the stack.
func (tb *TreeBuilder) insertElementForToken(tok tokenizer.Token, namespace string) dom.NodeId {
	el := tb.document.Arena.NewElement(tok.Name, namespace, attrsFromTokens(tok.Attrs))
	if tok.Name == "template" && namespace == dom.NamespaceHTML {
		content := tb.document.Arena.NewDocumentFragment()
		tb.document.Arena.SetTemplateContent(el, content)
	}
	tb.insertElementNode(el)
	return el
}

// insertText inserts character data at the appropriate insertion location,
// merging with an adjacent text node if one is already there.
func (tb *TreeBuilder) insertText(data string) {
	if data == "" {
		return
	}
	loc := tb.appropriateInsertionLocation(dom.NoNode)

	var mergeTarget dom.NodeId
	if loc.before == dom.NoNode {
		mergeTarget = tb.document.Arena.LastChildText(loc.parent)
	} else {
		mergeTarget = tb.document.Arena.PrecedingSiblingText(loc.parent, loc.before)
	}

	if mergeTarget != dom.NoNode {
		tb.node(mergeTarget).AppendText(data)
		return
	}

	text := tb.document.Arena.NewText(data)
	tb.document.Arena.AttachBefore(text, loc.parent, loc.before)
}

// insertComment inserts a comment node. If target is NoNode, the appropriate
// insertion location for the current node is used; otherwise the comment is
// appended as target's last child (used for comments before/after the root
// element, where target is the Document or DocumentFragment node).
func (tb *TreeBuilder) insertComment(data string, target dom.NodeId) {
	comment := tb.document.Arena.NewComment(data)
	if target != dom.NoNode {
		tb.document.Arena.Attach(comment, target)
		return
	}
	loc := tb.appropriateInsertionLocation(dom.NoNode)
	tb.document.Arena.AttachBefore(comment, loc.parent, loc.before)
}

func (tb *TreeBuilder) withFosterParenting(fn func()) {
	prev := tb.fosterParenting
	tb.fosterParenting = true
	fn()
	tb.fosterParenting = prev
}
