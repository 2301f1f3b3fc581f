// Package eval walks an *ast.Template against a host Context: statement
// execution, expression evaluation, scope management for for-loops,
// macros and lambdas, and template-inheritance block resolution.
package eval

import (
	"fmt"
	"strings"

	"github.com/motching/ginger-go/ast"
	"github.com/motching/ginger-go/value"
	"github.com/motching/ginger-go/value/html"
)

// evaluator carries the two pieces of state a single render thread needs
// beyond the scope stack: the host context and which Template's block
// table a BlockRefStmt should resolve against.
type evaluator struct {
	ctx      *Context
	blockCtx *ast.Template
}

// Eval renders tmpl against ctx. The root ginger package's
// Render/RenderPure wrap it with a friendlier signature.
func Eval(ctx *Context, tmpl *ast.Template) error {
	e := &evaluator{ctx: ctx}
	sc := newScope(nil)
	seedBuiltins(sc)
	return e.renderTemplate(tmpl, sc)
}

// renderTemplate evaluates t's content under sc, with BlockRefStmt nodes
// encountered along the way resolving against t's own extends chain. A
// derived template's Body is always Null (ast.go's invariant), so the
// actual content comes from t.Root().Body; t itself (not its root) is
// what "most-derived" means for ResolveBlock.
func (e *evaluator) renderTemplate(t *ast.Template, sc *scope) error {
	prevBlockCtx := e.blockCtx
	e.blockCtx = t
	defer func() { e.blockCtx = prevBlockCtx }()
	return e.execStmt(t.Root().Body, sc)
}

func (e *evaluator) execStmt(s ast.Stmt, sc *scope) error {
	switch n := s.(type) {
	case ast.NullStmt:
		return nil

	case *ast.MultiStmt:
		for _, child := range n.Stmts {
			if err := e.execStmt(child, sc); err != nil {
				return err
			}
		}
		return nil

	case *ast.LiteralStmt:
		return e.ctx.Write(html.UnsafeRaw(n.Text))

	case *ast.InterpolationStmt:
		v, err := e.evalExpr(n.Expr, sc)
		if err != nil {
			return err
		}
		return e.ctx.Write(value.ToHTML(v))

	case *ast.IfStmt:
		cond, err := e.evalExpr(n.Cond, sc)
		if err != nil {
			return err
		}
		if value.ToBoolean(cond) {
			return e.execStmt(n.Then, sc)
		}
		if n.Else != nil {
			return e.execStmt(n.Else, sc)
		}
		return nil

	case *ast.ForStmt:
		return e.execFor(n, sc)

	case *ast.SetVarStmt:
		v, err := e.evalExpr(n.Expr, sc)
		if err != nil {
			return err
		}
		sc.set(n.Name, v)
		return nil

	case *ast.DefMacroStmt:
		sc.set(n.Name, e.closeMacro(n.Macro, sc))
		return nil

	case *ast.BlockRefStmt:
		if e.blockCtx != nil {
			if b, ok := e.blockCtx.ResolveBlock(n.Name); ok {
				return e.execStmt(b.Body, sc)
			}
		}
		return nil // dangling block reference soft-fails

	case *ast.ScopedStmt:
		return e.execStmt(n.Body, newScope(sc))

	case *ast.PreprocessedIncludeStmt:
		return e.renderTemplate(n.Template, sc)

	default:
		return fmt.Errorf("eval: unhandled statement type %T", s)
	}
}

// execFor evaluates the iteree once and walks ToList/IterKeys in
// lockstep, binding ValueVar (and IndexVar, if present) in a fresh scope
// frame per iteration.
func (e *evaluator) execFor(n *ast.ForStmt, sc *scope) error {
	iteree, err := e.evalExpr(n.Iteree, sc)
	if err != nil {
		return err
	}
	keys := value.IterKeys(iteree)
	vals := value.ToList(iteree)
	count := len(vals)
	if len(keys) < count {
		count = len(keys)
	}
	for i := 0; i < count; i++ {
		inner := newScope(sc)
		inner.set(n.ValueVar, vals[i])
		if n.IndexVar != nil {
			inner.set(*n.IndexVar, keys[i])
		}
		if err := e.execStmt(n.Body, inner); err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) evalExpr(expr ast.Expr, sc *scope) (value.Value, error) {
	switch n := expr.(type) {
	case ast.StringExpr:
		return value.String(n.Value), nil

	case ast.NumberExpr:
		return value.DecimalNumber(n.Value), nil

	case ast.BoolExpr:
		return value.Bool(n.Value), nil

	case ast.NullExpr:
		return value.Null(), nil

	case ast.VarExpr:
		if v, ok := sc.lookup(n.Name); ok {
			return v, nil
		}
		return e.ctx.Lookup(n.Name), nil

	case ast.ListExpr:
		items := make([]value.Value, len(n.Items))
		for i, it := range n.Items {
			v, err := e.evalExpr(it, sc)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return value.List(items), nil

	case ast.ObjectExpr:
		b := value.NewObjectBuilder()
		for _, pair := range n.Pairs {
			k, err := e.evalExpr(pair.Key, sc)
			if err != nil {
				return nil, err
			}
			v, err := e.evalExpr(pair.Value, sc)
			if err != nil {
				return nil, err
			}
			b.Set(value.ToText(k), v)
		}
		return b.Build(), nil

	case ast.MemberLookupExpr:
		base, err := e.evalExpr(n.Base, sc)
		if err != nil {
			return nil, err
		}
		idx, err := e.evalExpr(n.Index, sc)
		if err != nil {
			return nil, err
		}
		v, _ := value.LookupLoose(idx, base)
		return v, nil

	case ast.CallExpr:
		return e.evalCall(n, sc)

	case ast.LambdaExpr:
		return e.closeLambda(n, sc), nil

	default:
		return nil, fmt.Errorf("eval: unhandled expression type %T", expr)
	}
}

func (e *evaluator) evalCall(n ast.CallExpr, sc *scope) (value.Value, error) {
	callee, err := e.evalExpr(n.Callee, sc)
	if err != nil {
		return nil, err
	}
	args := make([]value.Argument, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(a.Expr, sc)
		if err != nil {
			return nil, err
		}
		args[i] = value.Argument{Name: a.Name, Value: v}
	}
	fn, ok := value.ToFunction(callee)
	if !ok {
		return value.Null(), nil
	}
	return fn(args)
}

// closeMacro builds the callable a DefMacroStmt binds: calling it renders
// the macro body against a fresh argument-bound scope chained off the
// macro's defining scope (lexical, not dynamic) and returns the
// accumulated output as an already-HTML value, so it is never
// re-escaped at the call site.
func (e *evaluator) closeMacro(m *ast.Macro, defScope *scope) value.Value {
	return value.Func(func(args []value.Argument) (value.Value, error) {
		callScope := newScope(defScope)
		bindArgs(callScope, m.Args, args)

		var out strings.Builder
		sub := &evaluator{
			ctx: &Context{Lookup: e.ctx.Lookup, Write: func(h html.HTML) error {
				out.WriteString(h.String())
				return nil
			}},
			blockCtx: e.blockCtx,
		}
		if err := sub.execStmt(m.Body, callScope); err != nil {
			return nil, err
		}
		return value.FromHTML(html.UnsafeRaw(out.String())), nil
	})
}

// closeLambda builds the callable a LambdaExpr evaluates to: its body is
// an expression, evaluated and returned directly rather than rendered.
func (e *evaluator) closeLambda(n ast.LambdaExpr, defScope *scope) value.Value {
	return value.Func(func(args []value.Argument) (value.Value, error) {
		callScope := newScope(defScope)
		bindArgs(callScope, n.Params, args)
		sub := &evaluator{ctx: e.ctx, blockCtx: e.blockCtx}
		return sub.evalExpr(n.Body, callScope)
	})
}
