package treebuilder

import (
	"github.com/CharlesChen0823/gosub-engine/dom"
	htmlerrors "github.com/CharlesChen0823/gosub-engine/errors"
)

// adoptionAgency implements the "adoption agency algorithm", run for end
// tags whose name matches a formatting element (a, b, big, code, em, font,
// i, nobr, s, small, strike, strong, tt, u).
func (tb *TreeBuilder) adoptionAgency(subject string) {
	for outer := 0; outer < 8; outer++ {
		formattingIndex := -1
		for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
			e := tb.activeFormatting[i]
			if e.marker {
				break
			}
			if e.name == subject {
				formattingIndex = i
				break
			}
		}
		if formattingIndex == -1 {
			tb.anyOtherEndTag(subject)
			return
		}
		formattingElement := tb.activeFormatting[formattingIndex].node

		feStackIndex := tb.indexOfOpenElement(formattingElement)
		if feStackIndex == -1 {
			tb.addError(htmlerrors.UnexpectedFormattingElementClose)
			tb.removeFormattingEntryAt(formattingIndex)
			return
		}
		if !tb.hasElementInDefaultScope(subject) {
			tb.addError(htmlerrors.UnexpectedFormattingElementClose)
			return
		}
		if formattingElement != tb.currentNode() {
			tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
		}

		furthestBlockIndex := -1
		for i := feStackIndex + 1; i < len(tb.openElements); i++ {
			if tb.node(tb.openElements[i]).IsSpecial() {
				furthestBlockIndex = i
				break
			}
		}

		if furthestBlockIndex == -1 {
			for len(tb.openElements)-1 >= feStackIndex {
				tb.popCurrent()
			}
			tb.removeFormattingEntryAt(formattingIndex)
			return
		}

		furthestBlock := tb.openElements[furthestBlockIndex]
		commonAncestor := tb.openElements[feStackIndex-1]
		bookmark := formattingIndex + 1

		node := furthestBlock
		nodeIndex := furthestBlockIndex
		lastNode := furthestBlock

		for inner := 0; ; {
			inner++
			nodeIndex--
			if nodeIndex <= feStackIndex {
				break
			}
			node = tb.openElements[nodeIndex]

			afIndex := tb.findActiveFormattingIndexByNode(node)
			if afIndex == -1 {
				tb.removeOpenElementAt(nodeIndex)
				furthestBlockIndex--
				continue
			}

			if inner > 3 {
				tb.removeFormattingEntryAt(afIndex)
				tb.removeOpenElementAt(nodeIndex)
				furthestBlockIndex--
				if afIndex < bookmark {
					bookmark--
				}
				continue
			}

			newNode := tb.document.Arena.CloneElement(node)
			tb.activeFormatting[afIndex] = formattingEntry{
				name:  tb.activeFormatting[afIndex].name,
				attrs: tb.activeFormatting[afIndex].attrs,
				node:  newNode,
			}
			tb.openElements[nodeIndex] = newNode
			node = newNode

			if lastNode == furthestBlock {
				bookmark = afIndex + 1
			}

			if tb.node(lastNode).Parent() != dom.NoNode {
				tb.document.Arena.Detach(lastNode)
			}
			tb.document.Arena.Attach(lastNode, node)
			lastNode = node
		}

		if tb.node(lastNode).Parent() != dom.NoNode {
			tb.document.Arena.Detach(lastNode)
		}
		loc := tb.appropriateInsertionLocation(commonAncestor)
		tb.document.Arena.AttachBefore(lastNode, loc.parent, loc.before)

		newElement := tb.document.Arena.CloneElement(formattingElement)
		tb.document.Arena.MoveChildren(furthestBlock, newElement)
		tb.document.Arena.Attach(newElement, furthestBlock)

		tb.removeFormattingEntryAt(formattingIndex)
		if bookmark > len(tb.activeFormatting) {
			bookmark = len(tb.activeFormatting)
		}
		newEntry := formattingEntry{name: subject, attrs: tb.node(newElement).Attrs(), node: newElement}
		tb.activeFormatting = append(tb.activeFormatting, formattingEntry{})
		copy(tb.activeFormatting[bookmark+1:], tb.activeFormatting[bookmark:])
		tb.activeFormatting[bookmark] = newEntry

		tb.removeFromOpenElements(formattingElement)
		fbIndex := tb.indexOfOpenElement(furthestBlock)
		tb.insertOpenElementAt(fbIndex+1, newElement)
	}
}

// anyOtherEndTag implements the "any other end tag" step of the "in body"
// insertion mode, also used as the adoption agency's fallback.
func (tb *TreeBuilder) anyOtherEndTag(name string) {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		el := tb.openElements[i]
		n := tb.node(el)
		if n.TagName() == name && n.Namespace() == dom.NamespaceHTML {
			tb.generateImpliedEndTags(name)
			if tb.currentNode() != el {
				tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
			}
			for len(tb.openElements)-1 >= i {
				tb.popCurrent()
			}
			return
		}
		if n.IsSpecial() {
			tb.addError(htmlerrors.EndTagForUnopenedElement)
			return
		}
	}
}
