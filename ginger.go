// Package ginger is the public façade: parse a template against an
// include resolver, then render it against a host context. The
// sub-packages (parser, eval, ast, value, resolver) can be used directly
// by an embedder that wants finer control; this package just wires the
// common path together the way a host normally wants it.
package ginger

import (
	"github.com/motching/ginger-go/ast"
	"github.com/motching/ginger-go/eval"
	"github.com/motching/ginger-go/parser"
	"github.com/motching/ginger-go/perror"
	"github.com/motching/ginger-go/resolver"
	"github.com/motching/ginger-go/value"
	"github.com/motching/ginger-go/value/html"
)

// Template is the parser's output, re-exported so callers of this
// package never need to import ast directly for the common path.
type Template = ast.Template

// ParserError is returned by Parse/ParseFile on syntactic failure,
// unresolved include, or invalid numeric literal.
type ParserError = perror.ParserError

// Parse parses src as a template named sourceName, resolving any
// `include`/`extends` targets through resolve.
func Parse(resolve resolver.Func, sourceName string, src string) (*Template, *ParserError) {
	return parser.Parse(resolve, sourceName, src)
}

// ParseFile parses the source named sourceName, itself obtained from
// resolve.
func ParseFile(resolve resolver.Func, sourceName string) (*Template, *ParserError) {
	return parser.ParseFile(resolve, sourceName)
}

// Lookup resolves a top-level variable the template's own scope does not
// bind.
type Lookup = eval.Lookup

// Writer emits one HTML fragment.
type Writer = eval.Writer

// Render evaluates tmpl, streaming each emitted HTML fragment to write as
// soon as it is produced.
func Render(lookup Lookup, write Writer, tmpl *Template) error {
	ctx := eval.NewContext(lookup, write)
	return eval.Eval(ctx, tmpl)
}

// RenderPure evaluates tmpl against a pure lookup function and returns
// the fully accumulated HTML.
func RenderPure(lookup Lookup, tmpl *Template) (html.HTML, error) {
	ctx, buf := eval.NewPureContext(lookup)
	if err := eval.Eval(ctx, tmpl); err != nil {
		return html.HTML(""), err
	}
	return buf.HTML(), nil
}

// MapLookup builds a Lookup backed by a fixed table, returning value.Null
// for any name the table does not contain.
func MapLookup(vars map[string]value.Value) Lookup {
	return func(name string) value.Value {
		if v, ok := vars[name]; ok {
			return v
		}
		return value.Null()
	}
}
