// Package parser turns a lexer.Item stream into an *ast.Template. The
// recursive-descent shape, panic/recover error unwinding, and token
// lookahead buffer are lifted from pgavlin/yomlette's
// parser/parser_template.go (templateContext: next/backup/peek, errorf +
// deferred recover), generalized from a fixed 3-token window to an
// unbounded pushback queue — the `for` loop's two alternative forms
// (`for <iter> in <expr>` vs `for <expr> as <iter>`) need to scan ahead to
// an unbounded `in`/`as` keyword before the grammar can be disambiguated,
// which a fixed window cannot express.
package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/motching/ginger-go/ast"
	"github.com/motching/ginger-go/lexer"
	"github.com/motching/ginger-go/perror"
	"github.com/motching/ginger-go/resolver"
	"github.com/motching/ginger-go/token"
)

// parseCtx is the read-only parse context shared across the recursive
// parses an `include`/`extends` triggers, plus the cyclic-include guard
// layered on top of it.
type parseCtx struct {
	resolve  resolver.Func
	visiting map[string]bool
}

// parser holds one template's mutable parse state: its token source and
// the block table accumulated while parsing it.
type parser struct {
	ctx        *parseCtx
	sourceName string

	lex *lexer.Lexer // nil for a token-slice sub-parser (see parseExprFromTokens)
	buf []lexer.Item

	blocks map[string]*ast.Block
}

// parsePanic is the sentinel panic value errorf raises; Parse's deferred
// recover distinguishes it from a genuine programming bug.
type parsePanic struct {
	err *perror.ParserError
}

// Parse parses src as a template named sourceName, resolving any
// `include`/`extends` targets through resolve.
func Parse(resolve resolver.Func, sourceName string, src string) (*ast.Template, *perror.ParserError) {
	ctx := &parseCtx{resolve: resolve, visiting: map[string]bool{}}
	return parseWithCtx(ctx, sourceName, src)
}

// ParseFile parses the source named sourceName, obtained from resolve
// itself.
func ParseFile(resolve resolver.Func, sourceName string) (*ast.Template, *perror.ParserError) {
	src, ok := resolve(sourceName)
	if !ok {
		return nil, perror.NotFound(sourceName)
	}
	return Parse(resolve, sourceName, src)
}

func parseWithCtx(ctx *parseCtx, sourceName, src string) (tmpl *ast.Template, perr *perror.ParserError) {
	lx := lexer.New(sourceName, src)
	p := &parser{ctx: ctx, sourceName: sourceName, lex: lx, blocks: map[string]*ast.Block{}}
	defer func() {
		if r := recover(); r != nil {
			pp, ok := r.(parsePanic)
			if !ok {
				panic(r)
			}
			lx.Drain()
			tmpl, perr = nil, pp.err
		}
	}()
	tmpl = p.parseTemplate()
	return tmpl, nil
}

// --- token source -----------------------------------------------------

func (p *parser) next() lexer.Item {
	if len(p.buf) > 0 {
		it := p.buf[0]
		p.buf = p.buf[1:]
		return it
	}
	if p.lex == nil {
		return lexer.Item{Type: lexer.ItemEOF}
	}
	return p.lex.NextItem()
}

// peekN returns the nth upcoming item (1-based) without consuming it,
// pulling from the lexer into buf as needed.
func (p *parser) peekN(n int) lexer.Item {
	for len(p.buf) < n {
		var it lexer.Item
		if p.lex == nil {
			it = lexer.Item{Type: lexer.ItemEOF}
		} else {
			it = p.lex.NextItem()
		}
		p.buf = append(p.buf, it)
		if it.Type == lexer.ItemEOF {
			// Padding keeps peekN(n) well-defined past end of input without
			// ever pulling from a lexer goroutine that has already closed.
			for len(p.buf) < n {
				p.buf = append(p.buf, it)
			}
		}
	}
	return p.buf[n-1]
}

func (p *parser) peek() lexer.Item { return p.peekN(1) }

func (p *parser) errorf(format string, args ...interface{}) {
	pos := p.peek().Pos
	err := perror.New(fmt.Sprintf(format, args...)).At(p.sourceName, pos)
	panic(parsePanic{err})
}

func (p *parser) expect(t lexer.ItemType, context string) lexer.Item {
	it := p.next()
	if it.Type != t {
		p.errorf("unexpected %s, expecting %s in %s", it, describeItemType(t), context)
	}
	return it
}

// expectTag consumes the `{%` open plus a specific keyword token.
func (p *parser) expectTag(kw lexer.ItemType) {
	p.expect(lexer.ItemStmtOpen, "tag")
	p.expect(kw, "tag")
}

func (p *parser) expectClose() {
	p.expect(lexer.ItemStmtClose, "tag close")
}

// expectEndTag consumes a nameless closing tag, e.g. `{% endif %}`.
func (p *parser) expectEndTag(kw lexer.ItemType) {
	p.expectTag(kw)
	p.expectClose()
}

// expectEndTagNamed consumes a closing tag that may carry a trailing
// name (`{% endblock name %}`, `{% endmacro name %}`), checking the
// trailing name against openName when present.
func (p *parser) expectEndTagNamed(kw lexer.ItemType, openName string) {
	p.expectTag(kw)
	if p.peek().Type == lexer.ItemIdentifier {
		trailing := p.next()
		if trailing.Val != openName {
			p.errorf("mismatched closing tag name: opened %q, closed %q", openName, trailing.Val)
		}
	}
	p.expectClose()
}

// peekStmtKeyword reports the keyword of the upcoming `{% kw %}` tag
// without consuming anything, or ok=false if the next token is not a
// statement-tag open at all.
func (p *parser) peekStmtKeyword() (kw lexer.ItemType, ok bool) {
	if p.peekN(1).Type != lexer.ItemStmtOpen {
		return 0, false
	}
	return p.peekN(2).Type, true
}

func containsType(types []lexer.ItemType, t lexer.ItemType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// --- template / body ---------------------------------------------------

func (p *parser) parseTemplate() *ast.Template {
	if kw, ok := p.peekStmtKeyword(); ok && kw == lexer.ItemExtends {
		return p.parseDerivedTemplate()
	}
	body := p.parseBody()
	p.expect(lexer.ItemEOF, "end of template")
	return &ast.Template{Name: p.sourceName, Body: body, Blocks: p.blocks}
}

func (p *parser) parseDerivedTemplate() *ast.Template {
	p.expectTag(lexer.ItemExtends)
	nameTok := p.expect(lexer.ItemString, "extends target")
	parentName := p.unquote(nameTok)
	p.expectClose()
	parent := p.resolveAndParseInclude(parentName, nameTok.Pos)

	for {
		kw, ok := p.peekStmtKeyword()
		if !ok || kw != lexer.ItemBlock {
			break
		}
		p.parseOneStatement() // registers into p.blocks as a side effect
	}
	p.expect(lexer.ItemEOF, "end of template")
	return &ast.Template{Name: p.sourceName, Body: ast.NullStmt{}, Parent: parent, Blocks: p.blocks}
}

// parseBody parses statements until it sees one of the stop keywords (as
// the keyword of an upcoming `{% %}` tag, not consumed) or, if stop is
// empty, until EOF (which it leaves unconsumed for the top-level caller
// to expect).
func (p *parser) parseBody(stop ...lexer.ItemType) ast.Stmt {
	var stmts []ast.Stmt
	for {
		if p.peek().Type == lexer.ItemEOF {
			if len(stop) == 0 {
				break
			}
			p.errorf("unexpected end of input, expecting %s", describeStopSet(stop))
		}
		if kw, ok := p.peekStmtKeyword(); ok && containsType(stop, kw) {
			break
		}
		stmts = append(stmts, p.parseOneStatement())
	}
	return ast.Multi(stmts...)
}

func (p *parser) parseOneStatement() ast.Stmt {
	it := p.next()
	switch it.Type {
	case lexer.ItemText:
		return &ast.LiteralStmt{Text: it.Val}
	case lexer.ItemExprOpen:
		expr := p.parseExpr()
		p.expect(lexer.ItemExprClose, "interpolation")
		return &ast.InterpolationStmt{Expr: expr}
	case lexer.ItemStmtOpen:
		kw := p.next()
		switch kw.Type {
		case lexer.ItemIf:
			return p.parseIf()
		case lexer.ItemFor:
			return p.parseFor()
		case lexer.ItemSet:
			return p.parseSet()
		case lexer.ItemInclude:
			return p.parseInclude()
		case lexer.ItemMacro:
			return p.parseMacro()
		case lexer.ItemBlock:
			return p.parseBlock()
		case lexer.ItemCall:
			return p.parseCall()
		case lexer.ItemScope:
			return p.parseScope()
		case lexer.ItemExtends:
			p.errorf("extends must be the first statement in a template")
		default:
			p.errorf("unexpected %s, expecting a statement keyword", kw)
		}
	default:
		p.errorf("unexpected %s, expecting an expression, a tag, or text", it)
	}
	panic("unreachable")
}

// --- statement forms ----------------------------------------------------

func (p *parser) parseIf() ast.Stmt {
	cond := p.parseExpr()
	p.expectClose()
	then := p.parseBody(lexer.ItemElif, lexer.ItemElse, lexer.ItemEndif)
	elseStmt := p.parseIfTail()
	p.expectEndTag(lexer.ItemEndif)
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt}
}

// parseIfTail parses the (elif)*(else)? portion of an if, leaving the
// final `{% endif %}` for the outermost parseIf to consume: an elif
// chain desugars to nested ifs, and the endif belongs to the outermost
// one.
func (p *parser) parseIfTail() ast.Stmt {
	kw, ok := p.peekStmtKeyword()
	if !ok {
		p.errorf("expecting elif, else, or endif")
	}
	switch kw {
	case lexer.ItemElif:
		p.expectTag(lexer.ItemElif)
		cond := p.parseExpr()
		p.expectClose()
		then := p.parseBody(lexer.ItemElif, lexer.ItemElse, lexer.ItemEndif)
		elseStmt := p.parseIfTail()
		return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt}
	case lexer.ItemElse:
		p.expectTag(lexer.ItemElse)
		p.expectClose()
		return p.parseBody(lexer.ItemEndif)
	case lexer.ItemEndif:
		return nil
	default:
		p.errorf("expecting elif, else, or endif")
	}
	panic("unreachable")
}

func (p *parser) parseFor() ast.Stmt {
	header := p.collectTagHeader()
	sepIdx, sep := findForSeparator(header)
	switch sep {
	case lexer.ItemIn:
		valVar, idxVar := p.parseIterSpec(header[:sepIdx])
		iteree := p.parseExprFromTokens(header[sepIdx+1:])
		body := p.parseBody(lexer.ItemEndfor)
		p.expectEndTag(lexer.ItemEndfor)
		return &ast.ForStmt{ValueVar: valVar, IndexVar: idxVar, Iteree: iteree, Body: body}
	case lexer.ItemAs:
		iteree := p.parseExprFromTokens(header[:sepIdx])
		valVar, idxVar := p.parseIterSpec(header[sepIdx+1:])
		body := p.parseBody(lexer.ItemEndfor)
		p.expectEndTag(lexer.ItemEndfor)
		return &ast.ForStmt{ValueVar: valVar, IndexVar: idxVar, Iteree: iteree, Body: body}
	default:
		p.errorf("expecting 'in' or 'as' in for loop")
	}
	panic("unreachable")
}

// collectTagHeader consumes tokens up to (and including) the next
// ItemStmtClose, returning everything before it. Used where a tag's
// grammar is ambiguous until an unbounded amount of it has been seen.
func (p *parser) collectTagHeader() []lexer.Item {
	var items []lexer.Item
	for {
		it := p.next()
		if it.Type == lexer.ItemStmtClose || it.Type == lexer.ItemEOF {
			return items
		}
		items = append(items, it)
	}
}

func findForSeparator(header []lexer.Item) (int, lexer.ItemType) {
	for i, it := range header {
		if it.Type == lexer.ItemIn || it.Type == lexer.ItemAs {
			return i, it.Type
		}
	}
	return -1, lexer.ItemError
}

func (p *parser) parseIterSpec(tokens []lexer.Item) (valueVar string, indexVar *string) {
	switch len(tokens) {
	case 1:
		if tokens[0].Type != lexer.ItemIdentifier {
			p.errorf("expecting a loop variable, got %s", tokens[0])
		}
		return tokens[0].Val, nil
	case 3:
		if tokens[0].Type != lexer.ItemIdentifier || tokens[1].Type != lexer.ItemComma || tokens[2].Type != lexer.ItemIdentifier {
			p.errorf("expecting 'index, value' loop variables")
		}
		idx := tokens[0].Val
		return tokens[2].Val, &idx
	default:
		p.errorf("expecting a loop variable or 'index, value'")
	}
	panic("unreachable")
}

// parseExprFromTokens parses tokens as a complete expression, erroring if
// anything is left over. Used for the portions of a `for` header that
// unbounded lookahead already sliced out.
func (p *parser) parseExprFromTokens(tokens []lexer.Item) ast.Expr {
	sub := &parser{ctx: p.ctx, sourceName: p.sourceName, buf: append([]lexer.Item(nil), tokens...)}
	e := sub.parseExpr()
	if sub.peek().Type != lexer.ItemEOF {
		sub.errorf("unexpected %s after expression", sub.peek())
	}
	return e
}

func (p *parser) parseSet() ast.Stmt {
	name := p.expect(lexer.ItemIdentifier, "set")
	p.expect(lexer.ItemAssign, "set")
	expr := p.parseExpr()
	p.expectClose()
	return &ast.SetVarStmt{Name: name.Val, Expr: expr}
}

func (p *parser) parseInclude() ast.Stmt {
	nameTok := p.expect(lexer.ItemString, "include target")
	name := p.unquote(nameTok)
	p.expectClose()
	tmpl := p.resolveAndParseInclude(name, nameTok.Pos)
	return &ast.PreprocessedIncludeStmt{Template: tmpl}
}

func (p *parser) resolveAndParseInclude(name string, pos token.Position) *ast.Template {
	resolved := joinIncludePath(p.sourceName, name)
	if p.ctx.visiting[resolved] {
		p.errorf("include cycle: %s", resolved)
	}
	src, ok := p.ctx.resolve(resolved)
	if !ok {
		panic(parsePanic{perror.NotFound(resolved).At(p.sourceName, pos)})
	}
	p.ctx.visiting[resolved] = true
	defer delete(p.ctx.visiting, resolved)

	tmpl, perr := parseWithCtx(p.ctx, resolved, src)
	if perr != nil {
		panic(parsePanic{perror.Wrap(p.sourceName, pos, perr)})
	}
	return tmpl
}

func (p *parser) parseMacro() ast.Stmt {
	name := p.expect(lexer.ItemIdentifier, "macro name")
	p.expect(lexer.ItemLeftParen, "macro parameter list")
	args := p.parseIdentList(lexer.ItemRightParen)
	p.expect(lexer.ItemRightParen, "macro parameter list")
	p.expectClose()
	body := p.parseBody(lexer.ItemEndmacro)
	p.expectEndTagNamed(lexer.ItemEndmacro, name.Val)
	return &ast.DefMacroStmt{Name: name.Val, Macro: &ast.Macro{Args: args, Body: body}}
}

func (p *parser) parseBlock() ast.Stmt {
	name := p.expect(lexer.ItemIdentifier, "block name")
	p.expectClose()
	body := p.parseBody(lexer.ItemEndblock)
	p.expectEndTagNamed(lexer.ItemEndblock, name.Val)
	p.blocks[name.Val] = &ast.Block{Body: body}
	return &ast.BlockRefStmt{Name: name.Val}
}

func (p *parser) parseCall() ast.Stmt {
	var args []string
	if p.peek().Type == lexer.ItemLeftParen {
		p.next()
		args = p.parseIdentList(lexer.ItemRightParen)
		p.expect(lexer.ItemRightParen, "call parameter list")
	}
	target := p.parseExpr()
	p.expectClose()
	body := p.parseBody(lexer.ItemEndcall)
	p.expectEndTag(lexer.ItemEndcall)
	return &ast.ScopedStmt{Body: ast.Multi(
		&ast.DefMacroStmt{Name: "caller", Macro: &ast.Macro{Args: args, Body: body}},
		&ast.InterpolationStmt{Expr: target},
	)}
}

func (p *parser) parseScope() ast.Stmt {
	p.expectClose()
	body := p.parseBody(lexer.ItemEndscope)
	p.expectEndTag(lexer.ItemEndscope)
	return &ast.ScopedStmt{Body: body}
}

func (p *parser) parseIdentList(closeTok lexer.ItemType) []string {
	var names []string
	if p.peek().Type == closeTok {
		return names
	}
	for {
		tok := p.expect(lexer.ItemIdentifier, "parameter name")
		names = append(names, tok.Val)
		if p.peek().Type == lexer.ItemComma {
			p.next()
			continue
		}
		break
	}
	return names
}

// --- expressions ---------------------------------------------------------

func (p *parser) parseExpr() ast.Expr {
	if lam, ok := p.tryParseLambda(); ok {
		return lam
	}
	return p.parseBoolean()
}

// tryParseLambda checks, using only non-destructive lookahead, whether
// the upcoming tokens form `(name, ...) -> expr`. Because the check never
// consumes anything until the whole pattern is confirmed, no backtracking
// machinery is needed: if the opening `(` does not lead to `) ->`, the
// caller falls through to parsing a parenthesized boolean expression.
func (p *parser) tryParseLambda() (ast.Expr, bool) {
	if p.peekN(1).Type != lexer.ItemLeftParen {
		return nil, false
	}
	i := 2
	if p.peekN(2).Type == lexer.ItemRightParen {
		i = 3
	} else {
		for {
			if p.peekN(i).Type != lexer.ItemIdentifier {
				return nil, false
			}
			i++
			switch p.peekN(i).Type {
			case lexer.ItemComma:
				i++
				continue
			case lexer.ItemRightParen:
				i++
			default:
				return nil, false
			}
			break
		}
	}
	if p.peekN(i).Type != lexer.ItemArrow {
		return nil, false
	}

	p.next() // '('
	var params []string
	if p.peek().Type != lexer.ItemRightParen {
		params = p.parseIdentList(lexer.ItemRightParen)
	}
	p.expect(lexer.ItemRightParen, "lambda parameter list")
	p.expect(lexer.ItemArrow, "lambda")
	body := p.parseExpr()
	return ast.LambdaExpr{Params: params, Body: body}, true
}

func (p *parser) parseBoolean() ast.Expr {
	left := p.parseComparative()
	for {
		switch p.peek().Type {
		case lexer.ItemOpOr:
			p.next()
			left = callBuiltin("any", left, p.parseComparative())
		case lexer.ItemOpAnd:
			p.next()
			left = callBuiltin("all", left, p.parseComparative())
		default:
			return left
		}
	}
}

func (p *parser) parseComparative() ast.Expr {
	left := p.parseAdditive()
	for {
		var name string
		switch p.peek().Type {
		case lexer.ItemOpEq:
			name = "equals"
		case lexer.ItemOpNe:
			name = "nequals"
		case lexer.ItemOpGe:
			name = "greaterEquals"
		case lexer.ItemOpLe:
			name = "lessEquals"
		case lexer.ItemOpGt:
			name = "greater"
		case lexer.ItemOpLt:
			name = "less"
		default:
			return left
		}
		p.next()
		left = callBuiltin(name, left, p.parseAdditive())
	}
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var name string
		switch p.peek().Type {
		case lexer.ItemOpPlus:
			name = "sum"
		case lexer.ItemOpMinus:
			name = "difference"
		case lexer.ItemOpConcat:
			name = "concat"
		default:
			return left
		}
		p.next()
		left = callBuiltin(name, left, p.parseMultiplicative())
	}
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parsePostfix()
	for {
		var name string
		switch p.peek().Type {
		case lexer.ItemOpMul:
			name = "product"
		case lexer.ItemOpIntDiv:
			name = "int_ratio"
		case lexer.ItemOpDiv:
			name = "ratio"
		case lexer.ItemOpMod:
			name = "modulo"
		default:
			return left
		}
		p.next()
		left = callBuiltin(name, left, p.parsePostfix())
	}
}

func callBuiltin(name string, args ...ast.Expr) ast.Expr {
	callArgs := make([]ast.Arg, len(args))
	for i, a := range args {
		callArgs[i] = ast.Arg{Expr: a}
	}
	return ast.CallExpr{Callee: ast.VarExpr{Name: name}, Args: callArgs}
}

func (p *parser) parsePostfix() ast.Expr {
	e := p.parseAtomic()
	for {
		switch p.peek().Type {
		case lexer.ItemDot:
			p.next()
			nameTok := p.expect(lexer.ItemIdentifier, "member access")
			e = ast.MemberLookupExpr{Base: e, Index: ast.StringExpr{Value: nameTok.Val}}
		case lexer.ItemLeftBracket:
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.ItemRightBracket, "index expression")
			e = ast.MemberLookupExpr{Base: e, Index: idx}
		case lexer.ItemLeftParen:
			p.next()
			args := p.parseArgList(lexer.ItemRightParen)
			p.expect(lexer.ItemRightParen, "call arguments")
			e = ast.CallExpr{Callee: e, Args: args}
		case lexer.ItemPipe:
			p.next()
			fn := p.parseFilterCallee()
			var args []ast.Arg
			if p.peek().Type == lexer.ItemLeftParen {
				p.next()
				args = p.parseArgList(lexer.ItemRightParen)
				p.expect(lexer.ItemRightParen, "filter arguments")
			}
			allArgs := append([]ast.Arg{{Expr: e}}, args...)
			e = ast.CallExpr{Callee: fn, Args: allArgs}
		default:
			return e
		}
	}
}

// parseFilterCallee parses the function-naming part of `x | f.g[h](...)`:
// an atomic expression followed by dot/bracket postfix only (not another
// call or filter, which belong to the outer parsePostfix loop).
func (p *parser) parseFilterCallee() ast.Expr {
	e := p.parseAtomic()
	for {
		switch p.peek().Type {
		case lexer.ItemDot:
			p.next()
			nameTok := p.expect(lexer.ItemIdentifier, "member access")
			e = ast.MemberLookupExpr{Base: e, Index: ast.StringExpr{Value: nameTok.Val}}
		case lexer.ItemLeftBracket:
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.ItemRightBracket, "index expression")
			e = ast.MemberLookupExpr{Base: e, Index: idx}
		default:
			return e
		}
	}
}

func (p *parser) parseArgList(closeTok lexer.ItemType) []ast.Arg {
	var args []ast.Arg
	if p.peek().Type == closeTok {
		return args
	}
	for {
		if p.peek().Type == lexer.ItemIdentifier && p.peekN(2).Type == lexer.ItemAssign {
			nameTok := p.next()
			p.next() // '='
			name := nameTok.Val
			args = append(args, ast.Arg{Name: &name, Expr: p.parseExpr()})
		} else {
			args = append(args, ast.Arg{Expr: p.parseExpr()})
		}
		if p.peek().Type == lexer.ItemComma {
			p.next()
			continue
		}
		break
	}
	return args
}

func (p *parser) parseAtomic() ast.Expr {
	it := p.peek()
	switch it.Type {
	case lexer.ItemLeftParen:
		p.next()
		e := p.parseExpr()
		p.expect(lexer.ItemRightParen, "parenthesized expression")
		return e
	case lexer.ItemLeftBrace:
		return p.parseObjectLiteral()
	case lexer.ItemLeftBracket:
		return p.parseListLiteral()
	case lexer.ItemString:
		p.next()
		return ast.StringExpr{Value: p.unquote(it)}
	case lexer.ItemNumber:
		p.next()
		d, err := decimal.NewFromString(it.Val)
		if err != nil {
			p.errorf("bad number literal %q: %v", it.Val, err)
		}
		return ast.NumberExpr{Value: d}
	case lexer.ItemTrue:
		p.next()
		return ast.BoolExpr{Value: true}
	case lexer.ItemFalse:
		p.next()
		return ast.BoolExpr{Value: false}
	case lexer.ItemNull:
		p.next()
		return ast.NullExpr{}
	case lexer.ItemIdentifier:
		p.next()
		return ast.VarExpr{Name: it.Val}
	default:
		p.errorf("unexpected %s, expecting an expression", it)
	}
	panic("unreachable")
}

func (p *parser) parseObjectLiteral() ast.Expr {
	p.expect(lexer.ItemLeftBrace, "object literal")
	var pairs []ast.ObjectPair
	if p.peek().Type != lexer.ItemRightBrace {
		for {
			key := p.parseExpr()
			p.expect(lexer.ItemColon, "object literal")
			val := p.parseExpr()
			pairs = append(pairs, ast.ObjectPair{Key: key, Value: val})
			if p.peek().Type == lexer.ItemComma {
				p.next()
				continue
			}
			break
		}
	}
	p.expect(lexer.ItemRightBrace, "object literal")
	return ast.ObjectExpr{Pairs: pairs}
}

func (p *parser) parseListLiteral() ast.Expr {
	p.expect(lexer.ItemLeftBracket, "list literal")
	var items []ast.Expr
	if p.peek().Type != lexer.ItemRightBracket {
		for {
			items = append(items, p.parseExpr())
			if p.peek().Type == lexer.ItemComma {
				p.next()
				continue
			}
			break
		}
	}
	p.expect(lexer.ItemRightBracket, "list literal")
	return ast.ListExpr{Items: items}
}

// --- literal helpers -----------------------------------------------------

// unquote strips the surrounding quote characters from a raw ItemString
// value and applies the `\n \b \v \0 \t` escapes; any other `\c` yields
// `c` verbatim.
func (p *parser) unquote(tok lexer.Item) string {
	raw := tok.Val
	if len(raw) < 2 {
		p.errorf("malformed string literal %q", raw)
	}
	body := raw[1 : len(raw)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'b':
				sb.WriteByte('\b')
			case 'v':
				sb.WriteByte('\v')
			case '0':
				sb.WriteByte(0)
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(body[i])
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// joinIncludePath resolves an include/extends target relative to the
// directory of the currently parsing source.
func joinIncludePath(currentSource, target string) string {
	dir := ""
	if idx := strings.LastIndexByte(currentSource, '/'); idx >= 0 {
		dir = currentSource[:idx]
	}
	if dir == "" {
		return target
	}
	return dir + "/" + strings.TrimPrefix(target, "./")
}

func describeStopSet(types []lexer.ItemType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = describeItemType(t)
	}
	return strings.Join(names, " or ")
}

func describeItemType(t lexer.ItemType) string {
	switch t {
	case lexer.ItemEOF:
		return "end of input"
	case lexer.ItemStmtOpen:
		return "'{%'"
	case lexer.ItemStmtClose:
		return "'%}'"
	case lexer.ItemExprClose:
		return "'}}'"
	case lexer.ItemIdentifier:
		return "an identifier"
	case lexer.ItemString:
		return "a string literal"
	case lexer.ItemNumber:
		return "a number literal"
	case lexer.ItemAssign:
		return "'='"
	case lexer.ItemComma:
		return "','"
	case lexer.ItemColon:
		return "':'"
	case lexer.ItemArrow:
		return "'->'"
	case lexer.ItemLeftParen:
		return "'('"
	case lexer.ItemRightParen:
		return "')'"
	case lexer.ItemLeftBracket:
		return "'['"
	case lexer.ItemRightBracket:
		return "']'"
	case lexer.ItemLeftBrace:
		return "'{'"
	case lexer.ItemRightBrace:
		return "'}'"
	case lexer.ItemIf:
		return "'if'"
	case lexer.ItemElif:
		return "'elif'"
	case lexer.ItemElse:
		return "'else'"
	case lexer.ItemEndif:
		return "'endif'"
	case lexer.ItemFor:
		return "'for'"
	case lexer.ItemEndfor:
		return "'endfor'"
	case lexer.ItemIn:
		return "'in'"
	case lexer.ItemAs:
		return "'as'"
	case lexer.ItemMacro:
		return "'macro'"
	case lexer.ItemEndmacro:
		return "'endmacro'"
	case lexer.ItemBlock:
		return "'block'"
	case lexer.ItemEndblock:
		return "'endblock'"
	case lexer.ItemCall:
		return "'call'"
	case lexer.ItemEndcall:
		return "'endcall'"
	case lexer.ItemScope:
		return "'scope'"
	case lexer.ItemEndscope:
		return "'endscope'"
	case lexer.ItemExtends:
		return "'extends'"
	case lexer.ItemInclude:
		return "'include'"
	case lexer.ItemSet:
		return "'set'"
	default:
		return "a token"
	}
}
