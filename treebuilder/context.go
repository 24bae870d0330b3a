// Package treebuilder implements the HTML5 tree construction algorithm: the
// state machine that turns a stream of tokenizer tokens into a DOM-shaped
// node tree in a dom.Arena.
package treebuilder

// FragmentContext specifies the context element for fragment parsing (the
// "innerHTML" entry point). The initial insertion mode and a handful of
// InBody behaviors (e.g. the form pointer) are derived from it.
type FragmentContext struct {
	// TagName is the context element's local name (e.g. "div", "tr", "td").
	TagName string

	// Namespace is the context element's namespace: "html" (default), "svg",
	// or "mathml".
	Namespace string
}
