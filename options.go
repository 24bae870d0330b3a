package gosub

import (
	"github.com/CharlesChen0823/gosub-engine/treebuilder"
)

// config holds parser configuration.
type config struct {
	encoding        string
	fragmentContext *treebuilder.FragmentContext
	iframeSrcdoc    bool
	strict          bool
	collectErrors   bool
	xmlCoercion     bool
}

// newConfig creates a new config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures the parser behavior.
type Option func(*config)

// WithEncoding sets the character encoding to use for parsing.
// This overrides automatic encoding detection.
//
// Common values: "utf-8", "windows-1252", "iso-8859-1"
func WithEncoding(enc string) Option {
	return func(c *config) {
		c.encoding = enc
	}
}

// WithFragment stores an HTML-namespace fragment context in the config.
// Parse does not read it, and ParseFragment replaces it with a context built
// from its own context argument.
func WithFragment(tagName string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{
			TagName:   tagName,
			Namespace: "html",
		}
	}
}

// WithFragmentNS stores a fragment context with the given namespace in the
// config. Parse does not read it, and ParseFragment replaces it with an
// HTML-namespace context, so neither entry point parses SVG or MathML
// fragments through this option.
func WithFragmentNS(tagName, namespace string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{
			TagName:   tagName,
			Namespace: namespace,
		}
	}
}

// WithIframeSrcdoc enables iframe srcdoc parsing mode.
// In this mode, the parser treats the input as the srcdoc attribute value.
func WithIframeSrcdoc() Option {
	return func(c *config) {
		c.iframeSrcdoc = true
	}
}

// WithStrictMode enables strict parsing mode.
// In this mode, the first parse error causes Parse to return an error.
// By default, parse errors are handled according to the HTML5 spec
// and parsing continues.
func WithStrictMode() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithCollectErrors enables error collection mode.
// Parse errors are collected and returned as a ParseErrors error
// (which can be unwrapped to get individual errors).
// Without this option, parse errors are silently recovered from.
func WithCollectErrors() Option {
	return func(c *config) {
		c.collectErrors = true
	}
}

// WithXMLCoercion enables XHTML/XML-flavored tokenizing coercion, used when
// the input is known to be XML-serialized HTML (e.g. an XHTML document
// served as application/xhtml+xml). The tokenizer then turns U+000C FORM FEED
// in text into a space, replaces some non-XML characters with U+FFFD, and
// rewrites "--" inside comments as "- -". Tag and character-reference
// tokenizing is unchanged.
func WithXMLCoercion() Option {
	return func(c *config) {
		c.xmlCoercion = true
	}
}
