package treebuilder

import (
	"github.com/CharlesChen0823/gosub-engine/dom"
)

// formattingEntry is a slot in the active formatting elements list: either a
// scope Marker (inserted when entering a template, applet, object, marquee,
// td, th, or caption) or a formatting element, identified by its NodeId, that
// may later need to be reconstructed.
type formattingEntry struct {
	marker bool
	name   string
	attrs  *dom.Attributes
	node   dom.NodeId
}

func (tb *TreeBuilder) pushFormattingMarker() {
	tb.activeFormatting = append(tb.activeFormatting, formattingEntry{marker: true})
}

// clearActiveFormattingUpToMarker implements "clear the list of active
// formatting elements up to the last marker", run when a template, applet,
// marquee, object, caption or table cell is closed.
func (tb *TreeBuilder) clearActiveFormattingUpToMarker() {
	for len(tb.activeFormatting) > 0 {
		last := tb.activeFormatting[len(tb.activeFormatting)-1]
		tb.activeFormatting = tb.activeFormatting[:len(tb.activeFormatting)-1]
		if last.marker {
			return
		}
	}
}

// appendActiveFormattingEntry pushes a new formatting entry, first applying
// the Noah's Ark clause: if there are already three elements after the last
// marker with the same tag name, namespace, and attributes, the earliest of
// them is removed.
func (tb *TreeBuilder) appendActiveFormattingEntry(node dom.NodeId) {
	n := tb.node(node)
	entry := formattingEntry{name: n.TagName(), attrs: n.Attrs(), node: node}

	matches := 0
	earliest := -1
	for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
		e := tb.activeFormatting[i]
		if e.marker {
			break
		}
		if e.name == entry.name && e.attrs.Equal(entry.attrs) {
			matches++
			earliest = i
		}
	}
	if matches >= 3 && earliest >= 0 {
		tb.activeFormatting = append(tb.activeFormatting[:earliest], tb.activeFormatting[earliest+1:]...)
	}

	tb.activeFormatting = append(tb.activeFormatting, entry)
}

func (tb *TreeBuilder) findActiveFormattingIndex(name string) int {
	for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
		e := tb.activeFormatting[i]
		if e.marker {
			return -1
		}
		if e.name == name {
			return i
		}
	}
	return -1
}

func (tb *TreeBuilder) findActiveFormattingIndexByNode(node dom.NodeId) int {
	for i, e := range tb.activeFormatting {
		if !e.marker && e.node == node {
			return i
		}
	}
	return -1
}

func (tb *TreeBuilder) hasActiveFormattingEntry(name string) bool {
	return tb.findActiveFormattingIndex(name) >= 0
}

func (tb *TreeBuilder) removeFormattingEntryAt(index int) {
	tb.activeFormatting = append(tb.activeFormatting[:index], tb.activeFormatting[index+1:]...)
}

func (tb *TreeBuilder) removeFormattingEntryByNode(node dom.NodeId) {
	if i := tb.findActiveFormattingIndexByNode(node); i >= 0 {
		tb.removeFormattingEntryAt(i)
	}
}

// reconstructActiveFormattingElements implements the algorithm of the same
// name: walk back to the last marker (or the start of the list), then walk
// forward re-inserting and re-pushing a clone of each formatting element not
// already on the stack of open elements.
func (tb *TreeBuilder) reconstructActiveFormattingElements() {
	if len(tb.activeFormatting) == 0 {
		return
	}
	last := tb.activeFormatting[len(tb.activeFormatting)-1]
	if last.marker || tb.indexOfOpenElement(last.node) >= 0 {
		return
	}

	i := len(tb.activeFormatting) - 1
	for i > 0 {
		i--
		e := tb.activeFormatting[i]
		if e.marker || tb.indexOfOpenElement(e.node) >= 0 {
			i++
			break
		}
	}

	for ; i < len(tb.activeFormatting); i++ {
		e := tb.activeFormatting[i]
		clone := tb.document.Arena.CloneElement(e.node)
		tb.insertElementNode(clone)
		tb.activeFormatting[i] = formattingEntry{name: e.name, attrs: e.attrs, node: clone}
	}
}
