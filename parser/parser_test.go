package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motching/ginger-go/ast"
	"github.com/motching/ginger-go/resolver"
)

func mustParse(t *testing.T, src string) *ast.Template {
	t.Helper()
	tmpl, perr := Parse(resolver.Map(nil), "main", src)
	require.Nil(t, perr, "unexpected parse error: %v", perr)
	return tmpl
}

func mustParseErr(t *testing.T, src string) {
	t.Helper()
	_, perr := Parse(resolver.Map(nil), "main", src)
	require.NotNil(t, perr, "expected a parse error for %q", src)
}

func TestParseLiteralText(t *testing.T) {
	tmpl := mustParse(t, "hello")
	lit, ok := tmpl.Body.(*ast.LiteralStmt)
	require.True(t, ok)
	assert.Equal(t, "hello", lit.Text)
}

func TestParseInterpolationPrecedence(t *testing.T) {
	tmpl := mustParse(t, "{{ 2 + 3 * 4 }}")
	interp, ok := tmpl.Body.(*ast.InterpolationStmt)
	require.True(t, ok)

	call, ok := interp.Expr.(ast.CallExpr)
	require.True(t, ok)
	callee, ok := call.Callee.(ast.VarExpr)
	require.True(t, ok)
	assert.Equal(t, "sum", callee.Name, "a + b*c parses with + at the outer call")

	require.Len(t, call.Args, 2)
	_, ok = call.Args[0].Expr.(ast.NumberExpr)
	assert.True(t, ok)
	inner, ok := call.Args[1].Expr.(ast.CallExpr)
	require.True(t, ok)
	innerCallee, _ := inner.Callee.(ast.VarExpr)
	assert.Equal(t, "product", innerCallee.Name)
}

func TestParseUnspacedSubtractionIsBinaryNotNegativeLiteral(t *testing.T) {
	tmpl := mustParse(t, "{{ 3-2 }}")
	interp, ok := tmpl.Body.(*ast.InterpolationStmt)
	require.True(t, ok)

	call, ok := interp.Expr.(ast.CallExpr)
	require.True(t, ok)
	callee, ok := call.Callee.(ast.VarExpr)
	require.True(t, ok)
	assert.Equal(t, "difference", callee.Name)

	require.Len(t, call.Args, 2)
	a, ok := call.Args[0].Expr.(ast.NumberExpr)
	require.True(t, ok)
	assert.Equal(t, "3", a.Value.String())
	b, ok := call.Args[1].Expr.(ast.NumberExpr)
	require.True(t, ok)
	assert.Equal(t, "2", b.Value.String())
}

func TestParseFilterRewriteMatchesDirectCall(t *testing.T) {
	viaFilter := mustParse(t, "{{ 3 | difference(1) }}")
	direct := mustParse(t, "{{ difference(3, 1) }}")
	diff := cmp.Diff(direct.Body, viaFilter.Body)
	assert.Empty(t, diff, "x | f(y) must parse identically to f(x, y)")
}

func TestParseForInForm(t *testing.T) {
	tmpl := mustParse(t, "{% for x in xs %}{{ x }}{% endfor %}")
	f, ok := tmpl.Body.(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "x", f.ValueVar)
	assert.Nil(t, f.IndexVar)
	iteree, ok := f.Iteree.(ast.VarExpr)
	require.True(t, ok)
	assert.Equal(t, "xs", iteree.Name)
}

func TestParseForAsForm(t *testing.T) {
	tmpl := mustParse(t, "{% for xs as x %}{{ x }}{% endfor %}")
	f, ok := tmpl.Body.(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "x", f.ValueVar)
	iteree, ok := f.Iteree.(ast.VarExpr)
	require.True(t, ok)
	assert.Equal(t, "xs", iteree.Name)
}

func TestParseForIndexedForm(t *testing.T) {
	tmpl := mustParse(t, "{% for i, x in xs %}{{ i }}{{ x }}{% endfor %}")
	f, ok := tmpl.Body.(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, f.IndexVar)
	assert.Equal(t, "i", *f.IndexVar)
	assert.Equal(t, "x", f.ValueVar)
}

func TestParseForWithLongItereeExpression(t *testing.T) {
	// The iteree can be an arbitrarily long expression before the 'in'/'as'
	// separator is found, which is why the header needs unbounded lookahead.
	tmpl := mustParse(t, "{% for x in (a + b) * (c - d) %}{{ x }}{% endfor %}")
	f, ok := tmpl.Body.(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "x", f.ValueVar)
	call, ok := f.Iteree.(ast.CallExpr)
	require.True(t, ok)
	callee, _ := call.Callee.(ast.VarExpr)
	assert.Equal(t, "product", callee.Name)
}

func TestParseIfElifElseDesugaring(t *testing.T) {
	tmpl := mustParse(t, "{% if a %}A{% elif b %}B{% else %}C{% endif %}")
	outer, ok := tmpl.Body.(*ast.IfStmt)
	require.True(t, ok)
	inner, ok := outer.Else.(*ast.IfStmt)
	require.True(t, ok)
	elseLit, ok := inner.Else.(*ast.LiteralStmt)
	require.True(t, ok)
	assert.Equal(t, "C", elseLit.Text)
}

func TestParseLambdaVsParenthesizedExpression(t *testing.T) {
	lambda := mustParse(t, "{{ (a, b) -> a + b }}")
	interp, ok := lambda.Body.(*ast.InterpolationStmt)
	require.True(t, ok)
	_, ok = interp.Expr.(ast.LambdaExpr)
	assert.True(t, ok, "(a, b) -> expr must parse as a lambda")

	paren := mustParse(t, "{{ (a + b) }}")
	interp, ok = paren.Body.(*ast.InterpolationStmt)
	require.True(t, ok)
	_, ok = interp.Expr.(ast.CallExpr)
	assert.True(t, ok, "(a + b) with no arrow must parse as a plain parenthesized expression")
}

func TestParseZeroArgLambda(t *testing.T) {
	tmpl := mustParse(t, "{{ () -> 1 }}")
	interp := tmpl.Body.(*ast.InterpolationStmt)
	lam, ok := interp.Expr.(ast.LambdaExpr)
	require.True(t, ok)
	assert.Empty(t, lam.Params)
}

func TestParseMacroDefinition(t *testing.T) {
	tmpl := mustParse(t, "{% macro greet(name) %}hi {{ name }}{% endmacro %}")
	def, ok := tmpl.Body.(*ast.DefMacroStmt)
	require.True(t, ok)
	assert.Equal(t, "greet", def.Name)
	assert.Equal(t, []string{"name"}, def.Macro.Args)
}

func TestParseBlockRegistersIntoBlocksTable(t *testing.T) {
	tmpl := mustParse(t, "{% block title %}hi{% endblock %}")
	ref, ok := tmpl.Body.(*ast.BlockRefStmt)
	require.True(t, ok)
	assert.Equal(t, "title", ref.Name)
	require.Contains(t, tmpl.Blocks, "title")
}

func TestParseExtendsBuildsParentChain(t *testing.T) {
	sources := map[string]string{
		"base": "<{% block title %}default{% endblock %}>",
	}
	tmpl, perr := Parse(resolver.Map(sources), "child", `{% extends "base" %}{% block title %}mine{% endblock %}`)
	require.Nil(t, perr)
	require.NotNil(t, tmpl.Parent)
	assert.Equal(t, ast.NullStmt{}, tmpl.Body)

	b, ok := tmpl.ResolveBlock("title")
	require.True(t, ok)
	lit, ok := b.Body.(*ast.LiteralStmt)
	require.True(t, ok)
	assert.Equal(t, "mine", lit.Text)
}

func TestParseIncludeCycleIsAnError(t *testing.T) {
	src := `{% include "main" %}`
	_, perr := Parse(resolver.Map(map[string]string{"main": src}), "main", src)
	require.NotNil(t, perr, "expected a parse error for %q", src)
	assert.Contains(t, perr.Error(), "include cycle")
}

func TestParseMismatchedEndblockNameIsAnError(t *testing.T) {
	mustParseErr(t, "{% block a %}x{% endblock b %}")
}

func TestParseMismatchedEndmacroNameIsAnError(t *testing.T) {
	mustParseErr(t, "{% macro a() %}x{% endmacro b %}")
}

func TestParseMatchingEndblockNameIsAccepted(t *testing.T) {
	mustParse(t, "{% block a %}x{% endblock a %}")
}

func TestParseExtendsMustBeFirstStatement(t *testing.T) {
	mustParseErr(t, `hi{% extends "base" %}`)
}

func TestParseCallDesugarsToScopedCallerBinding(t *testing.T) {
	tmpl := mustParse(t, "{% call twice(caller) %}X{% endcall %}")
	scoped, ok := tmpl.Body.(*ast.ScopedStmt)
	require.True(t, ok)
	multi, ok := scoped.Body.(*ast.MultiStmt)
	require.True(t, ok)
	require.Len(t, multi.Stmts, 2)

	def, ok := multi.Stmts[0].(*ast.DefMacroStmt)
	require.True(t, ok)
	assert.Equal(t, "caller", def.Name)

	interp, ok := multi.Stmts[1].(*ast.InterpolationStmt)
	require.True(t, ok)
	call, ok := interp.Expr.(ast.CallExpr)
	require.True(t, ok)
	callee, _ := call.Callee.(ast.VarExpr)
	assert.Equal(t, "twice", callee.Name)
}

func TestParseLongestMatchOperators(t *testing.T) {
	tmpl := mustParse(t, "{{ 1 >= 2 }}")
	interp := tmpl.Body.(*ast.InterpolationStmt)
	call, ok := interp.Expr.(ast.CallExpr)
	require.True(t, ok)
	callee, _ := call.Callee.(ast.VarExpr)
	assert.Equal(t, "greaterEquals", callee.Name, ">= must not lex/parse as > followed by =")
}

func TestParseMemberAndIndexPostfixChain(t *testing.T) {
	tmpl := mustParse(t, "{{ a.b[c] }}")
	interp := tmpl.Body.(*ast.InterpolationStmt)
	outer, ok := interp.Expr.(ast.MemberLookupExpr)
	require.True(t, ok)
	_, ok = outer.Index.(ast.VarExpr)
	require.True(t, ok)

	inner, ok := outer.Base.(ast.MemberLookupExpr)
	require.True(t, ok)
	key, ok := inner.Index.(ast.StringExpr)
	require.True(t, ok)
	assert.Equal(t, "b", key.Value)
}

func TestParseNamedCallArguments(t *testing.T) {
	tmpl := mustParse(t, "{{ f(x=1, 2) }}")
	interp := tmpl.Body.(*ast.InterpolationStmt)
	call, ok := interp.Expr.(ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	require.NotNil(t, call.Args[0].Name)
	assert.Equal(t, "x", *call.Args[0].Name)
	assert.Nil(t, call.Args[1].Name)
}

func TestParseStringEscapes(t *testing.T) {
	tmpl := mustParse(t, `{{ "a\tb" }}`)
	interp := tmpl.Body.(*ast.InterpolationStmt)
	s, ok := interp.Expr.(ast.StringExpr)
	require.True(t, ok)
	assert.Equal(t, "a\tb", s.Value)
}

func TestParseCommentProducesNoStatement(t *testing.T) {
	tmpl := mustParse(t, "a{# hidden #}b")
	m, ok := tmpl.Body.(*ast.MultiStmt)
	require.True(t, ok)
	require.Len(t, m.Stmts, 2)
	first := m.Stmts[0].(*ast.LiteralStmt)
	second := m.Stmts[1].(*ast.LiteralStmt)
	assert.Equal(t, "a", first.Text)
	assert.Equal(t, "b", second.Text)
}
