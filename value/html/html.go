// Package html provides the opaque "safe HTML fragment" type that the
// evaluator writes to its output sink. Values of this type are assumed to
// already be safe for direct inclusion in an HTML document. Escape builds
// one from arbitrary text by HTML-escaping it first; UnsafeRaw wraps text
// as-is, leaving its safety to the caller.
package html

import "html"

// HTML is a fragment of text that is safe to emit into an HTML document
// verbatim. It carries no structure beyond that guarantee.
type HTML string

// UnsafeRaw wraps s as HTML without escaping it. Callers are responsible
// for the safety of s; this is the escape hatch the `raw` builtin and
// literal template text (§4.1.2 Literal) both use.
func UnsafeRaw(s string) HTML {
	return HTML(s)
}

// Escape HTML-escapes s and wraps the result.
func Escape(s string) HTML {
	return HTML(html.EscapeString(s))
}

// Append concatenates h and other, returning a new fragment.
func (h HTML) Append(other HTML) HTML {
	return h + other
}

// String returns the fragment's underlying text.
func (h HTML) String() string {
	return string(h)
}
