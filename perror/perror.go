// Package perror implements the parse error model: a message plus
// optional source name and 1-based line/column, wrapped with
// golang.org/x/xerrors so an include chain's child error can be embedded
// in the parent's, mirroring pgavlin/yomlette's own FormatError
// (parser/error.go), minus the YAML-specific colorized source-snippet
// machinery this engine has no analogue for.
package perror

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/motching/ginger-go/token"
)

// ParserError is returned by Parse/ParseFile on syntactic failure,
// unresolved include, or invalid numeric literal.
type ParserError struct {
	Message string
	Source  *string
	Pos     *token.Position

	wrapped error
}

// New builds a ParserError with no location attached.
func New(message string) *ParserError {
	return &ParserError{Message: strings.TrimLeft(message, "\n")}
}

// At attaches a source name and position to err, returning err for
// chaining.
func (e *ParserError) At(source string, pos token.Position) *ParserError {
	e.Source = &source
	p := pos
	e.Pos = &p
	return e
}

// NotFound builds the distinguished "include resolver returned nothing"
// error.
func NotFound(name string) *ParserError {
	return New("Template source not found: " + name)
}

// Wrap embeds cause (typically a child include's ParserError) into a new
// error at the include site: a nested include parse that fails surfaces
// as a parse failure at the include site whose message embeds the child
// error.
func Wrap(source string, pos token.Position, cause error) *ParserError {
	e := New(xerrors.Errorf("failed to parse include: %w", cause).Error())
	e.wrapped = cause
	return e.At(source, pos)
}

// Unwrap exposes the wrapped cause, if any, for xerrors.Is/As.
func (e *ParserError) Unwrap() error {
	return e.wrapped
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	var sb strings.Builder
	if e.Source != nil {
		sb.WriteString(*e.Source)
		if e.Pos != nil {
			sb.WriteString(":")
		}
	}
	if e.Pos != nil {
		sb.WriteString(strconv.Itoa(e.Pos.Line))
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(e.Pos.Column))
	}
	if sb.Len() > 0 {
		sb.WriteString(": ")
	}
	sb.WriteString(strings.TrimLeft(e.Message, "\n"))
	return sb.String()
}
