// Package token holds the small position type shared by the lexer, the
// parser, and the error model, so none of them need to import each other
// just to talk about "where in the source" something happened.
package token

// Position is a 1-based line/column location in a template source.
type Position struct {
	Line   int
	Column int
}
