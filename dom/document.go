package dom

// QuirksMode records the document's rendering mode, decided from the
// DOCTYPE (or its absence) during tree construction.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

func (q QuirksMode) String() string {
	switch q {
	case NoQuirks:
		return "no-quirks"
	case Quirks:
		return "quirks"
	case LimitedQuirks:
		return "limited-quirks"
	default:
		return "unknown"
	}
}

// Document is the root handle produced by a parse: an Arena plus the
// document node's own id and the DOCTYPE/quirks-mode state that lives
// outside the arena's tree shape.
//
// A Document owns every node created during the parse for its lifetime;
// there is no separate release step; the whole arena is reclaimed when the
// Document becomes unreachable.
type Document struct {
	Arena *Arena
	Root  NodeId

	// Doctype is the id of the DOCTYPE node, or NoNode if none was seen.
	Doctype NodeId

	QuirksMode QuirksMode
}

// NewDocument creates an empty document: an arena containing a single
// Document-kind root node.
func NewDocument() *Document {
	arena := NewArena()
	root := arena.AddNewNode(Node{kind: KindDocument, templateContent: NoNode})
	return &Document{Arena: arena, Root: root, Doctype: NoNode}
}

// NewDocumentFragment creates a throwaway document whose root is a
// DocumentFragment node, used as the backing arena for fragment parsing.
// The fragment's NodeId is returned alongside the owning Document so the
// caller can later read back FragmentNodes.
func NewDocumentFragment() (*Document, NodeId) {
	arena := NewArena()
	root := arena.AddNewNode(Node{kind: KindDocumentFragment, templateContent: NoNode})
	return &Document{Arena: arena, Root: root, Doctype: NoNode}, root
}

// Children returns the document root's direct children.
func (d *Document) Children() []NodeId {
	return d.Arena.Get(d.Root).children
}

// DocumentElement returns the id of the root <html> element, or NoNode.
func (d *Document) DocumentElement() NodeId {
	for _, c := range d.Children() {
		if n := d.Arena.Get(c); n.kind == KindElement {
			return c
		}
	}
	return NoNode
}

// Head returns the id of the <head> element, or NoNode.
func (d *Document) Head() NodeId {
	return d.firstElementChildNamed(d.DocumentElement(), "head")
}

// Body returns the id of the <body> element, or NoNode.
func (d *Document) Body() NodeId {
	return d.firstElementChildNamed(d.DocumentElement(), "body")
}

func (d *Document) firstElementChildNamed(parent NodeId, name string) NodeId {
	if parent == NoNode {
		return NoNode
	}
	for _, c := range d.Arena.Get(parent).children {
		n := d.Arena.Get(c)
		if n.kind == KindElement && n.tagName == name {
			return c
		}
	}
	return NoNode
}

// SetDoctype allocates a doctype node, attaches it as the last child of the
// document root, and records it as d.Doctype.
func (d *Document) SetDoctype(name, publicID, systemID string, forceQuirks bool) NodeId {
	id := d.Arena.NewDoctype(name, publicID, systemID, forceQuirks)
	d.Arena.Attach(id, d.Root)
	d.Doctype = id
	return id
}
