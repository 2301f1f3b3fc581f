// Package ast defines the statement and expression node types the parser
// builds and the evaluator walks. Node shapes follow
// pgavlin/yomlette's ast_template.go: one struct per kind, a cheap marker
// method that closes the sum, and a String() for debug output.
package ast

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Stmt is a statement node. The unexported marker method closes the sum
// to the kinds declared in this file.
type Stmt interface {
	stmtNode()
	String() string
}

// Expr is an expression node.
type Expr interface {
	exprNode()
	String() string
}

// NullStmt is the empty statement: comments and filtered-out productions
// parse to this.
type NullStmt struct{}

func (NullStmt) stmtNode()      {}
func (NullStmt) String() string { return "" }

// MultiStmt is a sequence of statements, evaluated left to right.
type MultiStmt struct {
	Stmts []Stmt
}

func (*MultiStmt) stmtNode() {}
func (m *MultiStmt) String() string {
	var sb strings.Builder
	for _, s := range m.Stmts {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Multi builds a MultiStmt, filtering out NullStmt children so that no
// caller has to remember to filter them out itself.
// A single surviving child is returned unwrapped; zero children yields
// NullStmt{}.
func Multi(stmts ...Stmt) Stmt {
	filtered := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		if s == nil {
			continue
		}
		if _, isNull := s.(NullStmt); isNull {
			continue
		}
		if m, isMulti := s.(*MultiStmt); isMulti {
			filtered = append(filtered, m.Stmts...)
			continue
		}
		filtered = append(filtered, s)
	}
	switch len(filtered) {
	case 0:
		return NullStmt{}
	case 1:
		return filtered[0]
	default:
		return &MultiStmt{Stmts: filtered}
	}
}

// LiteralStmt is raw HTML text captured verbatim from between tags.
type LiteralStmt struct {
	Text string
}

func (*LiteralStmt) stmtNode()      {}
func (l *LiteralStmt) String() string { return l.Text }

// InterpolationStmt is `{{ expr }}`.
type InterpolationStmt struct {
	Expr Expr
}

func (*InterpolationStmt) stmtNode() {}
func (i *InterpolationStmt) String() string {
	return "{{ " + i.Expr.String() + " }}"
}

// IfStmt is a conditional; Else may be nil.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfStmt) stmtNode() {}
func (n *IfStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{% if ")
	sb.WriteString(n.Cond.String())
	sb.WriteString(" %}")
	sb.WriteString(n.Then.String())
	if n.Else != nil {
		sb.WriteString("{% else %}")
		sb.WriteString(n.Else.String())
	}
	sb.WriteString("{% endif %}")
	return sb.String()
}

// ForStmt is `{% for valueVar[, indexVar] in iteree %} body {% endfor %}`.
// IndexVar is nil for the single-identifier form.
type ForStmt struct {
	ValueVar string
	IndexVar *string
	Iteree   Expr
	Body     Stmt
}

func (*ForStmt) stmtNode() {}
func (n *ForStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{% for ")
	if n.IndexVar != nil {
		sb.WriteString(*n.IndexVar)
		sb.WriteString(", ")
	}
	sb.WriteString(n.ValueVar)
	sb.WriteString(" in ")
	sb.WriteString(n.Iteree.String())
	sb.WriteString(" %}")
	sb.WriteString(n.Body.String())
	sb.WriteString("{% endfor %}")
	return sb.String()
}

// SetVarStmt binds Name to Expr in the current scope frame.
type SetVarStmt struct {
	Name string
	Expr Expr
}

func (*SetVarStmt) stmtNode() {}
func (n *SetVarStmt) String() string {
	return "{% set " + n.Name + " = " + n.Expr.String() + " %}"
}

// Macro is a named parameterized statement body, shared by DefMacroStmt
// and the `{% call %}` desugaring.
type Macro struct {
	Args []string
	Body Stmt
}

// DefMacroStmt defines Name as a callable bound to Macro.
type DefMacroStmt struct {
	Name  string
	Macro *Macro
}

func (*DefMacroStmt) stmtNode() {}
func (n *DefMacroStmt) String() string {
	return "{% macro " + n.Name + "(" + strings.Join(n.Macro.Args, ", ") + ") %}" +
		n.Macro.Body.String() + "{% endmacro %}"
}

// BlockRefStmt references a named block; its body lives in the owning
// Template's Blocks table.
type BlockRefStmt struct {
	Name string
}

func (*BlockRefStmt) stmtNode()      {}
func (n *BlockRefStmt) String() string { return "{% block " + n.Name + " %}" }

// ScopedStmt introduces a fresh scope frame that is discarded on exit.
type ScopedStmt struct {
	Body Stmt
}

func (*ScopedStmt) stmtNode()      {}
func (n *ScopedStmt) String() string { return "{% scope %}" + n.Body.String() + "{% endscope %}" }

// PreprocessedIncludeStmt is an include whose target was parsed at parse
// time and inlined by reference.
type PreprocessedIncludeStmt struct {
	Template *Template
}

func (*PreprocessedIncludeStmt) stmtNode() {}
func (n *PreprocessedIncludeStmt) String() string {
	return "{% include " + n.Template.Name + " %}"
}

// Expression node kinds.

// StringExpr is a string literal.
type StringExpr struct{ Value string }

func (StringExpr) exprNode()        {}
func (e StringExpr) String() string { return `"` + e.Value + `"` }

// NumberExpr is a numeric literal, parsed as an arbitrary-precision
// decimal.
type NumberExpr struct{ Value decimal.Decimal }

func (NumberExpr) exprNode()        {}
func (e NumberExpr) String() string { return e.Value.String() }

// BoolExpr is a boolean literal.
type BoolExpr struct{ Value bool }

func (BoolExpr) exprNode() {}
func (e BoolExpr) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// NullExpr is the `null` literal.
type NullExpr struct{}

func (NullExpr) exprNode()        {}
func (NullExpr) String() string { return "null" }

// VarExpr is a scope lookup.
type VarExpr struct{ Name string }

func (VarExpr) exprNode()        {}
func (e VarExpr) String() string { return e.Name }

// ListExpr is a list literal.
type ListExpr struct{ Items []Expr }

func (ListExpr) exprNode() {}
func (e ListExpr) String() string {
	parts := make([]string, len(e.Items))
	for i, it := range e.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPair is one `key: value` entry of an ObjectExpr.
type ObjectPair struct {
	Key   Expr
	Value Expr
}

// ObjectExpr is an object literal.
type ObjectExpr struct{ Pairs []ObjectPair }

func (ObjectExpr) exprNode() {}
func (e ObjectExpr) String() string {
	parts := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MemberLookupExpr covers both dot access (`a.b`, desugared to this with
// Index being a StringExpr) and bracket access (`a[x]`).
type MemberLookupExpr struct {
	Base  Expr
	Index Expr
}

func (MemberLookupExpr) exprNode() {}
func (e MemberLookupExpr) String() string {
	return e.Base.String() + "[" + e.Index.String() + "]"
}

// Arg is a single call argument: an optional name paired with its
// expression, in source order.
type Arg struct {
	Name *string
	Expr Expr
}

// CallExpr is a function call with positional and/or named arguments.
type CallExpr struct {
	Callee Expr
	Args   []Arg
}

func (CallExpr) exprNode() {}
func (e CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		if a.Name != nil {
			parts[i] = *a.Name + "=" + a.Expr.String()
		} else {
			parts[i] = a.Expr.String()
		}
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// LambdaExpr is an anonymous function: `(name, …) -> expr`.
type LambdaExpr struct {
	Params []string
	Body   Expr
}

func (LambdaExpr) exprNode() {}
func (e LambdaExpr) String() string {
	return "(" + strings.Join(e.Params, ", ") + ") -> " + e.Body.String()
}

// Block wraps the body of a `{% block name %}…{% endblock %}` section.
type Block struct {
	Body Stmt
}

// Template is the parser's output: a body statement, an optional parent
// (for `extends`), and the block table accumulated while parsing it.
//
// Invariant: a Template with a non-nil Parent has Body == NullStmt{}; all
// of its meaningful content lives in Blocks.
type Template struct {
	Name   string
	Body   Stmt
	Parent *Template
	Blocks map[string]*Block
}

// ResolveBlock walks the template chain from the most-derived template
// (receiver) outward, returning the first Block found for name. This is
// the classic "child overrides parent" rule template inheritance needs.
func (t *Template) ResolveBlock(name string) (*Block, bool) {
	for cur := t; cur != nil; cur = cur.Parent {
		if b, ok := cur.Blocks[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Root returns the outermost ancestor in the extends chain: the template
// whose Body actually drives rendering (a derived template's Body is
// always NullStmt{}).
func (t *Template) Root() *Template {
	cur := t
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}
