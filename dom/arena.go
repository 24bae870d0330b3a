// Package dom implements the node arena that backs a parsed HTML document.
//
// Nodes are identified by a stable, never-reused NodeId rather than by
// pointer: the tree builder holds stacks of NodeId values (the open-elements
// stack, the active formatting elements list) and the arena is the single
// place that owns parent/child structure. This mirrors the arena-oriented
// design of the source system this package was modeled after, and sidesteps
// the cycle and aliasing hazards of a pointer-linked tree under the
// repeated reparenting the adoption agency algorithm performs.
package dom

// NodeId is a stable, opaque identifier for a node inside an Arena.
// Ids are assigned from zero upwards; the negative value NoNode is reserved.
type NodeId int32

// NoNode is the sentinel "no node" / "no parent" identifier.
const NoNode NodeId = -1

// Kind distinguishes the six node shapes the arena can hold.
type Kind int

const (
	KindDocument Kind = iota
	KindDocumentFragment
	KindDoctype
	KindElement
	KindText
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindDocumentFragment:
		return "DocumentFragment"
	case KindDoctype:
		return "Doctype"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Namespace constants for the three namespaces the tree builder cares about.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// Node is a single entry in an Arena. Which fields are meaningful depends on
// Kind; this plays the role of a tagged union ("one of Document,
// DocumentFragment, Doctype, Element, Text, Comment") while staying a flat
// struct, which is cheaper to store in a growable slice than a Go interface.
type Node struct {
	id       NodeId
	parent   NodeId
	children []NodeId

	kind      Kind
	namespace string

	// Element fields.
	tagName         string
	attrs           *Attributes
	templateContent NodeId // NoNode unless this is a <template> element
	isSpecial       bool

	// Text / Comment fields.
	text string

	// Doctype fields.
	doctypeName     string
	doctypePublicID string
	doctypeSystemID string
	forceQuirks     bool
}

// ID returns the node's stable identifier.
func (n *Node) ID() NodeId { return n.id }

// Kind returns the node's shape discriminator.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the parent's id, or NoNode for a detached/root node.
func (n *Node) Parent() NodeId { return n.parent }

// Children returns the ordered child id list. Callers must not mutate the
// returned slice.
func (n *Node) Children() []NodeId { return n.children }

// TagName returns the element's local name. Empty for non-elements.
func (n *Node) TagName() string { return n.tagName }

// Namespace returns the element's namespace URI. Empty for non-elements.
func (n *Node) Namespace() string { return n.namespace }

// Attrs returns the element's attribute set, or nil for non-elements.
func (n *Node) Attrs() *Attributes { return n.attrs }

// TemplateContent returns the id of the <template> element's content
// document fragment, or NoNode if this is not a template element.
func (n *Node) TemplateContent() NodeId { return n.templateContent }

// IsSpecial reports whether this element is a member of the HTML standard's
// fixed "special" element set, precomputed at creation time.
func (n *Node) IsSpecial() bool { return n.isSpecial }

// Text returns the character data of a Text or Comment node.
func (n *Node) Text() string { return n.text }

// SetText overwrites the character data of a Text or Comment node. Used when
// merging consecutive character tokens into a preceding text node.
func (n *Node) SetText(s string) { n.text = s }

// AppendText appends to the character data of a Text or Comment node.
func (n *Node) AppendText(s string) { n.text += s }

// DoctypeName, DoctypePublicID, and DoctypeSystemID expose a Doctype node's
// fields.
func (n *Node) DoctypeName() string     { return n.doctypeName }
func (n *Node) DoctypePublicID() string { return n.doctypePublicID }
func (n *Node) DoctypeSystemID() string { return n.doctypeSystemID }
func (n *Node) ForceQuirks() bool       { return n.forceQuirks }

// Arena owns every node allocated during a single parse. It is not safe for
// concurrent use; the tree builder that owns an Arena runs on one goroutine
// for the lifetime of the parse, per the single-threaded cooperative model
// the tree construction algorithm assumes.
type Arena struct {
	nodes []Node
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 0, 64)}
}

// AddNewNode allocates a node and returns its id. The node starts detached
// (NoNode parent, no children); callers attach it with Attach.
func (a *Arena) AddNewNode(n Node) NodeId {
	id := NodeId(len(a.nodes))
	n.id = id
	n.parent = NoNode
	if n.templateContent == 0 && n.kind != KindElement {
		n.templateContent = NoNode
	}
	a.nodes = append(a.nodes, n)
	return id
}

// Get returns a pointer to the node. It is a programmer error to pass an id
// that was never allocated by this arena; such a call panics rather than
// silently returning a zero node, per the "absence is a programmer error"
// contract.
func (a *Arena) Get(id NodeId) *Node {
	if id < 0 || int(id) >= len(a.nodes) {
		panic("dom: invalid NodeId")
	}
	return &a.nodes[id]
}

// Position reports the index of child within parent's children, or -1.
func (a *Arena) Position(parent, child NodeId) int {
	for i, c := range a.Get(parent).children {
		if c == child {
			return i
		}
	}
	return -1
}

// Attach inserts child as the last child of parent. It panics if child
// already has a parent, matching the arena's "no silent reparenting"
// contract; callers that want to move a node call Relocate instead.
func (a *Arena) Attach(child, parent NodeId) {
	if a.Get(child).parent != NoNode {
		panic("dom: Attach called on a node that already has a parent")
	}
	p := a.Get(parent)
	p.children = append(p.children, child)
	a.Get(child).parent = parent
}

// AttachBefore inserts child as parent's child immediately before
// reference. If reference is NoNode, this behaves like Attach.
func (a *Arena) AttachBefore(child, parent, reference NodeId) {
	if a.Get(child).parent != NoNode {
		panic("dom: AttachBefore called on a node that already has a parent")
	}
	if reference == NoNode {
		a.Attach(child, parent)
		return
	}
	p := a.Get(parent)
	idx := -1
	for i, c := range p.children {
		if c == reference {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.Attach(child, parent)
		return
	}
	p.children = append(p.children, NoNode)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = child
	a.Get(child).parent = parent
}

// Detach removes child from its parent's children list, leaving the node
// itself intact in the arena (it may be reattached elsewhere).
func (a *Arena) Detach(child NodeId) {
	c := a.Get(child)
	if c.parent == NoNode {
		return
	}
	p := a.Get(c.parent)
	for i, id := range p.children {
		if id == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	c.parent = NoNode
}

// Relocate detaches child from its current parent, if any, and appends it
// as the last child of newParent.
func (a *Arena) Relocate(child, newParent NodeId) {
	if a.Get(child).parent != NoNode {
		a.Detach(child)
	}
	a.Attach(child, newParent)
}

// RelocateBefore detaches child and inserts it as newParent's child
// immediately before reference.
func (a *Arena) RelocateBefore(child, newParent, reference NodeId) {
	if a.Get(child).parent != NoNode {
		a.Detach(child)
	}
	a.AttachBefore(child, newParent, reference)
}

// MoveChildren relocates every child of from to be a child (appended, in
// order) of to. Used by the adoption agency algorithm to migrate a furthest
// block's children into its replacement clone.
func (a *Arena) MoveChildren(from, to NodeId) {
	children := append([]NodeId(nil), a.Get(from).children...)
	for _, c := range children {
		a.Relocate(c, to)
	}
}

// NewElement allocates a detached element node.
func (a *Arena) NewElement(tagName, namespace string, attrs *Attributes) NodeId {
	if attrs == nil {
		attrs = NewAttributes()
	}
	return a.AddNewNode(Node{
		kind:            KindElement,
		tagName:         tagName,
		namespace:       namespace,
		attrs:           attrs,
		templateContent: NoNode,
		isSpecial:       isSpecialElement(namespace, tagName),
	})
}

// NewText allocates a detached text node.
func (a *Arena) NewText(data string) NodeId {
	return a.AddNewNode(Node{kind: KindText, text: data, templateContent: NoNode})
}

// NewComment allocates a detached comment node.
func (a *Arena) NewComment(data string) NodeId {
	return a.AddNewNode(Node{kind: KindComment, text: data, templateContent: NoNode})
}

// NewDoctype allocates a detached doctype node.
func (a *Arena) NewDoctype(name, publicID, systemID string, forceQuirks bool) NodeId {
	return a.AddNewNode(Node{
		kind:            KindDoctype,
		doctypeName:     name,
		doctypePublicID: publicID,
		doctypeSystemID: systemID,
		forceQuirks:     forceQuirks,
		templateContent: NoNode,
	})
}

// NewDocumentFragment allocates a detached document fragment node.
func (a *Arena) NewDocumentFragment() NodeId {
	return a.AddNewNode(Node{kind: KindDocumentFragment, templateContent: NoNode})
}

// SetTemplateContent records the id of a <template> element's content
// fragment. id must refer to an Element node.
func (a *Arena) SetTemplateContent(id, content NodeId) {
	a.Get(id).templateContent = content
}

// CloneElement creates a new, detached element node with the same tag name,
// namespace, and a copy of the attribute set as the original. This is the
// "create a new element that matches formatting_element" step used by
// reconstruct-active-formatting-elements and the adoption agency algorithm;
// it never copies children.
func (a *Arena) CloneElement(id NodeId) NodeId {
	src := a.Get(id)
	return a.NewElement(src.tagName, src.namespace, src.attrs.Clone())
}

// LastChildText returns the id of the last child of parent if it is a Text
// node, else NoNode. Used to implement the "merge with preceding text
// sibling" rule for inserted character tokens.
func (a *Arena) LastChildText(parent NodeId) NodeId {
	children := a.Get(parent).children
	if len(children) == 0 {
		return NoNode
	}
	last := children[len(children)-1]
	if a.Get(last).kind == KindText {
		return last
	}
	return NoNode
}

// PrecedingSiblingText returns the id of the sibling immediately before
// reference within parent if that sibling is a Text node, else NoNode.
// Used when inserting at a SiblingBefore location: the text merge target
// is the node before the insertion point, not the last child overall.
func (a *Arena) PrecedingSiblingText(parent, reference NodeId) NodeId {
	children := a.Get(parent).children
	for i, c := range children {
		if c == reference {
			if i == 0 {
				return NoNode
			}
			prev := children[i-1]
			if a.Get(prev).kind == KindText {
				return prev
			}
			return NoNode
		}
	}
	return NoNode
}
