// Package gosub implements the WHATWG HTML5 tree construction algorithm: it
// turns a byte or string input into a DOM-shaped node tree the same way a
// browser's HTML parser does, including the error-recovery behavior for
// malformed markup (misnested tags, missing end tags, foster-parented table
// content, foreign SVG/MathML content, and so on).
//
// # Basic Usage
//
//	doc, err := gosub.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		log.Fatal(err)
//	}
//	body := doc.Arena.Get(doc.Body())
//	fmt.Println(body.TagName())
//
// # Features
//
//   - Full insertion-mode dispatcher, active formatting elements list, and
//     adoption agency algorithm
//   - Foster parenting for misplaced table content
//   - Foreign content handling for SVG and MathML
//   - Fragment ("innerHTML") parsing for a given context element
//   - Encoding detection per the HTML5 spec
package gosub

import (
	"github.com/CharlesChen0823/gosub-engine/dom"
	"github.com/CharlesChen0823/gosub-engine/encoding"
	htmlerrors "github.com/CharlesChen0823/gosub-engine/errors"
	"github.com/CharlesChen0823/gosub-engine/tokenizer"
	"github.com/CharlesChen0823/gosub-engine/treebuilder"
)

// Version is the current version of gosub-engine.
const Version = "0.1.0-dev"

// Parse parses an HTML string and returns a Document.
//
// The parser handles malformed HTML according to the WHATWG HTML5 specification,
// ensuring the same behavior as web browsers.
//
// Example:
//
//	doc, err := gosub.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		// err contains parse errors if WithCollectErrors() was used
//	}
func Parse(html string, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)
	return parse(html, cfg)
}

// ParseBytes parses HTML from a byte slice with automatic encoding detection.
//
// The encoding is chosen in this order:
//  1. The label given via WithEncoding, if it names a known encoding
//     (a leading BOM is stripped but does not override it)
//  2. BOM (Byte Order Mark)
//  3. <meta charset> or <meta http-equiv="Content-Type">
//  4. Fallback to windows-1252
//
// Example:
//
//	data, _ := os.ReadFile("page.html")
//	doc, err := gosub.ParseBytes(data)
func ParseBytes(html []byte, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)

	// Detect and decode encoding
	decoded, enc, err := encoding.Decode(html, cfg.encoding)
	if err != nil {
		return nil, err
	}
	_ = enc // TODO: store detected encoding in document

	return parse(decoded, cfg)
}

// ParseFragment parses an HTML fragment in a specific context element.
//
// This is equivalent to setting element.innerHTML in browsers. The context
// determines how the fragment is parsed (e.g., parsing "<td>" in a "tr" context
// vs. in a "div" context produces different results).
//
// Example:
//
//	doc, nodes, err := gosub.ParseFragment("<td>Cell</td>", "tr")
func ParseFragment(html string, context string, opts ...Option) (*dom.Document, []dom.NodeId, error) {
	cfg := newConfig(opts...)
	cfg.fragmentContext = &treebuilder.FragmentContext{
		TagName:   context,
		Namespace: "html",
	}
	return parseFragment(html, cfg)
}

// parse is the internal parsing implementation.
func parse(html string, cfg *config) (*dom.Document, error) {
	tok := tokenizer.New(html)
	if cfg.xmlCoercion {
		tok.SetXMLCoercion(true)
	}
	tb := treebuilder.New(tok)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}

	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	if cfg.strict || cfg.collectErrors {
		parseErrs := append(convertTokenizerErrors(tok.Errors()), tb.Errors()...)
		if len(parseErrs) > 0 && cfg.strict {
			return nil, parseErrs[0]
		}
		if len(parseErrs) > 0 && cfg.collectErrors {
			return tb.Document(), htmlerrors.ParseErrors(parseErrs)
		}
	}

	return tb.Document(), nil
}

// parseFragment is the internal fragment parsing implementation.
func parseFragment(html string, cfg *config) (*dom.Document, []dom.NodeId, error) {
	tok := tokenizer.New(html)
	if cfg.xmlCoercion {
		tok.SetXMLCoercion(true)
	}
	tb := treebuilder.NewFragment(tok, cfg.fragmentContext)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}

	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	if cfg.strict || cfg.collectErrors {
		parseErrs := append(convertTokenizerErrors(tok.Errors()), tb.Errors()...)
		if len(parseErrs) > 0 && cfg.strict {
			return nil, nil, parseErrs[0]
		}
		if len(parseErrs) > 0 && cfg.collectErrors {
			return tb.Document(), tb.FragmentNodes(), htmlerrors.ParseErrors(parseErrs)
		}
	}

	return tb.Document(), tb.FragmentNodes(), nil
}

func convertTokenizerErrors(errs []tokenizer.ParseError) []*htmlerrors.ParseError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]*htmlerrors.ParseError, 0, len(errs))
	for _, e := range errs {
		out = append(out, &htmlerrors.ParseError{
			Code:    e.Code,
			Message: htmlerrors.Message(e.Code),
			Line:    e.Line,
			Column:  e.Column,
		})
	}
	return out
}
