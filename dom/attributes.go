package dom

import "strings"

// Attribute represents a single HTML, SVG, or MathML attribute.
type Attribute struct {
	// Namespace is the attribute namespace (empty for plain HTML attributes).
	Namespace string

	// Name is the attribute name.
	Name string

	// Value is the attribute value.
	Value string
}

// Attributes holds a collection of attributes for an element, in insertion
// order. Lookups against the empty namespace are case-insensitive, matching
// the tree construction algorithm's comparison rules for HTML attributes.
type Attributes struct {
	items []Attribute
}

// NewAttributes creates a new empty Attributes collection.
func NewAttributes() *Attributes {
	return &Attributes{}
}

// Get returns the value of an unnamespaced attribute by name.
func (a *Attributes) Get(name string) (string, bool) {
	for _, attr := range a.items {
		if attr.Namespace == "" && strings.EqualFold(attr.Name, name) {
			return attr.Value, true
		}
	}
	return "", false
}

// GetNS returns the value of a namespaced attribute.
func (a *Attributes) GetNS(namespace, name string) (string, bool) {
	for _, attr := range a.items {
		if attr.Namespace == namespace && attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Add appends an attribute, keeping the first occurrence on duplicate names.
// This implements the "duplicate attribute" rule from the start tag token:
// the first value wins and later duplicates are dropped.
func (a *Attributes) Add(name, value string) (added bool) {
	return a.AddNS("", name, value)
}

// AddNS is the namespaced form of Add.
func (a *Attributes) AddNS(namespace, name, value string) (added bool) {
	if _, exists := a.GetNS(namespace, name); exists {
		return false
	}
	a.items = append(a.items, Attribute{Namespace: namespace, Name: name, Value: value})
	return true
}

// Set sets or overwrites an attribute value, unlike Add which preserves the
// first value on conflict. Used by algorithms that mutate elements directly
// rather than processing a start tag token.
func (a *Attributes) Set(name, value string) {
	a.SetNS("", name, value)
}

// SetNS is the namespaced form of Set.
func (a *Attributes) SetNS(namespace, name, value string) {
	for i := range a.items {
		if a.items[i].Namespace == namespace && a.items[i].Name == name {
			a.items[i].Value = value
			return
		}
	}
	a.items = append(a.items, Attribute{Namespace: namespace, Name: name, Value: value})
}

// Has returns true if an unnamespaced attribute with the given name exists.
func (a *Attributes) Has(name string) bool {
	_, found := a.Get(name)
	return found
}

// Remove removes an unnamespaced attribute by name.
func (a *Attributes) Remove(name string) {
	for i := range a.items {
		if a.items[i].Namespace == "" && strings.EqualFold(a.items[i].Name, name) {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return
		}
	}
}

// All returns a copy of all attributes in insertion order.
func (a *Attributes) All() []Attribute {
	result := make([]Attribute, len(a.items))
	copy(result, a.items)
	return result
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.items)
}

// Clone returns a deep copy of the attribute set.
func (a *Attributes) Clone() *Attributes {
	clone := &Attributes{items: make([]Attribute, len(a.items))}
	copy(clone.items, a.items)
	return clone
}

// Equal reports whether two attribute sets carry the same attributes,
// ignoring order. Used by the Noah's Ark rule, which compares a candidate
// formatting element's attribute set against earlier entries.
func (a *Attributes) Equal(other *Attributes) bool {
	if a.Len() != other.Len() {
		return false
	}
	for _, attr := range a.items {
		val, ok := other.GetNS(attr.Namespace, attr.Name)
		if !ok || val != attr.Value {
			return false
		}
	}
	return true
}
