// Package parser is a recursive-descent parser over the token stream
// produced by internal/lexer, building the pointer-graph AST defined by
// internal/ast. Syntax errors panic with a report.LocalCompileError, to be
// recovered by the caller via report.CatchErrors -- the same contract the
// lexer uses for lexical errors.
package parser

import (
	"vex/internal/ast"
	"vex/internal/report"
	"vex/internal/token"
)

// Parser holds one file's token stream plus the tokenizer that produced it,
// needed only to resolve a token's position when raising a syntax error.
type Parser struct {
	toks      []token.Token
	pos       int
	fileIndex uint32
	tz        token.Tokenizer
}

func NewParser(fileIndex uint32, toks []token.Token, tz token.Tokenizer) *Parser {
	return &Parser{toks: toks, fileIndex: fileIndex, tz: tz}
}

// ParseProgram parses every top-level declaration in the token stream.
func (p *Parser) ParseProgram() *ast.Program {
	var decs []ast.Declaration
	for !p.at(token.EOF) {
		decs = append(decs, p.parseDecl())
	}
	return &ast.Program{Decs: decs}
}

// -----------------------------------------------------------------------------
// Token stream primitives.

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind, what string) token.Token {
	if !p.at(k) {
		panic(report.Raise(p.errPos(p.peek()), "expected %s", what))
	}
	return p.advance()
}

func (p *Parser) errPos(tok token.Token) *report.TextPosition {
	pos := p.tz.PositionInfo(tok)
	return &report.TextPosition{StartLine: pos.Line - 1, StartCol: pos.Col - 1, EndLine: pos.Line - 1, EndCol: pos.Col}
}

// -----------------------------------------------------------------------------
// Declarations.

func (p *Parser) parseDecl() ast.Declaration {
	switch p.peek().Kind {
	case token.Func:
		return p.parseFuncDecl()
	case token.Struct:
		return p.parseStructDecl()
	case token.Template:
		return p.parseTemplateDecl()
	case token.Create:
		return p.parseTemplateCreateDecl()
	case token.Include:
		return p.parseIncludeDecl()
	case token.Enum:
		return p.parseEnumDecl()
	case token.Let:
		return p.parseGlobalVarDecl()
	default:
		panic(report.Raise(p.errPos(p.peek()), "expected a top-level declaration"))
	}
}

func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	p.expect(token.Func, "'func'")
	name := p.expect(token.Identifier, "a function name")
	p.expect(token.LParen, "'('")

	var params []ast.Param
	for !p.at(token.RParen) {
		pname := p.expect(token.Identifier, "a parameter name")
		p.expect(token.Colon, "':'")
		params = append(params, ast.Param{NameTok: pname, Type: p.parseType()})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	p.expect(token.Colon, "':'")
	retType := p.parseType()

	var body *ast.ScopeStmt
	if p.at(token.LBrace) {
		body = p.parseScope()
	} else {
		p.expect(token.Semicolon, "';'")
	}

	return ast.NewFuncDecl(name, p.fileIndex, params, retType, body)
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	p.expect(token.Struct, "'struct'")
	name := p.expect(token.Identifier, "a struct name")
	p.expect(token.LBrace, "'{'")

	var members []*ast.StructMember
	for !p.at(token.RBrace) {
		if p.at(token.Func) {
			fn := p.parseFuncDecl()
			members = append(members, &ast.StructMember{Kind: ast.MemberFunc, NameTok: fn.NameToken(), FuncSig: fn})
			continue
		}
		mname := p.expect(token.Identifier, "a member name")
		p.expect(token.Colon, "':'")
		mtype := p.parseType()
		p.expect(token.Semicolon, "';'")
		members = append(members, &ast.StructMember{Kind: ast.MemberVar, NameTok: mname, VarType: mtype})
	}
	p.expect(token.RBrace, "'}'")

	return ast.NewStructDecl(name, p.fileIndex, members)
}

func (p *Parser) parseTemplateDecl() *ast.TemplateDecl {
	p.expect(token.Template, "'template'")
	p.expect(token.Less, "'<'")

	var params []token.Token
	for {
		params = append(params, p.expect(token.Identifier, "a type parameter name"))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.Greater, "'>'")

	var inner ast.Declaration
	switch p.peek().Kind {
	case token.Struct:
		inner = p.parseStructDecl()
	case token.Func:
		inner = p.parseFuncDecl()
	default:
		panic(report.Raise(p.errPos(p.peek()), "a struct or function declaration after a template parameter list"))
	}

	return ast.NewTemplateDecl(p.fileIndex, params, inner)
}

func (p *Parser) parseTemplateCreateDecl() *ast.TemplateCreateDecl {
	p.expect(token.Create, "'create'")
	name := p.expect(token.Identifier, "a template name")
	p.expect(token.Less, "'<'")

	var args []token.Token
	for {
		arg := p.peek()
		if token.IsBuiltinType(arg.Kind) || arg.Kind == token.Identifier {
			args = append(args, arg)
			p.advance()
		} else {
			panic(report.Raise(p.errPos(arg), "a type argument"))
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.Greater, "'>'")
	p.expect(token.Semicolon, "';'")

	return ast.NewTemplateCreateDecl(name, p.fileIndex, args)
}

func (p *Parser) parseIncludeDecl() *ast.IncludeDecl {
	p.expect(token.Include, "'include'")
	path := p.expect(token.StringLiteral, "a string path")
	p.expect(token.Semicolon, "';'")
	return ast.NewIncludeDecl(path, p.fileIndex)
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	p.expect(token.Enum, "'enum'")
	name := p.expect(token.Identifier, "an enum name")
	p.expect(token.LBrace, "'{'")

	var members []token.Token
	for !p.at(token.RBrace) {
		members = append(members, p.expect(token.Identifier, "an enum member name"))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace, "'}'")

	return ast.NewEnumDecl(name, p.fileIndex, members)
}

func (p *Parser) parseGlobalVarDecl() *ast.VarDecl {
	p.expect(token.Let, "'let'")
	name := p.expect(token.Identifier, "a variable name")
	p.expect(token.Colon, "':'")
	typ := p.parseType()

	var init ast.Expr = ast.NoneNode
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")

	return ast.NewVarDecl(name, p.fileIndex, typ, init)
}

// parseType builds a TypeList: an optional leading Reference, zero or more
// Pointer qualifiers, then exactly one base token (spec.md §3's canonical
// form; checkType validates this shape in Pass 2).
func (p *Parser) parseType() ast.TypeList {
	var list ast.TypeList

	if p.at(token.Reference) {
		list = append(list, ast.TypeElem{Kind: token.Reference, NameTok: p.advance()})
	}
	for p.at(token.Pointer) {
		list = append(list, ast.TypeElem{Kind: token.Pointer, NameTok: p.advance()})
	}

	base := p.peek()
	if token.IsBuiltinType(base.Kind) || base.Kind == token.Identifier {
		p.advance()
		return append(list, ast.TypeElem{Kind: base.Kind, NameTok: base})
	}

	panic(report.Raise(p.errPos(base), "a type"))
}

// -----------------------------------------------------------------------------
// Statements.

func (p *Parser) parseScope() *ast.ScopeStmt {
	p.expect(token.LBrace, "'{'")
	var stmts []ast.Stmt
	for !p.at(token.RBrace) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(token.RBrace, "'}'")
	return &ast.ScopeStmt{Stmts: stmts}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseScope()
	case token.Semicolon:
		p.advance()
		return &ast.NothingStmt{}
	case token.Break, token.Continue:
		tok := p.advance()
		p.expect(token.Semicolon, "';'")
		return &ast.KeywordStmt{Tok: tok}
	case token.Return:
		return p.parseReturnStmt()
	case token.If:
		return p.parseConditionalStmt()
	case token.For:
		return p.parseForStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.Switch:
		return p.parseSwitchStmt()
	case token.Identifier:
		if p.peekAt(1).Kind == token.Colon {
			return p.parseLocalVarDecStmt()
		}
		return p.parseExpressionStmt()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseLocalVarDecStmt() *ast.VarDecStmt {
	name := p.advance()
	p.expect(token.Colon, "':'")
	typ := p.parseType()

	var init ast.Expr = ast.NoneNode
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")

	return &ast.VarDecStmt{Decl: ast.NewVarDecl(name, p.fileIndex, typ, init)}
}

func (p *Parser) parseExpressionStmt() *ast.ExpressionStmt {
	e := p.parseExpr()
	p.expect(token.Semicolon, "';'")
	return &ast.ExpressionStmt{Expr: e}
}

func (p *Parser) parseReturnStmt() *ast.ControlFlowStmt {
	tok := p.expect(token.Return, "'return'")

	var val ast.Expr = ast.NoneNode
	if !p.at(token.Semicolon) {
		val = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")

	return &ast.ControlFlowStmt{CFKind: ast.CFReturn, Return: &ast.ReturnCF{Tok: tok, Value: val}}
}

func (p *Parser) parseConditionalStmt() *ast.ControlFlowStmt {
	var branches []ast.CondBranch

	p.expect(token.If, "'if'")
	p.expect(token.LParen, "'('")
	cond := p.parseExpr()
	p.expect(token.RParen, "')'")
	branches = append(branches, ast.CondBranch{Condition: cond, Body: p.parseStmt()})

	for p.at(token.Elif) {
		p.advance()
		p.expect(token.LParen, "'('")
		c := p.parseExpr()
		p.expect(token.RParen, "')'")
		branches = append(branches, ast.CondBranch{Condition: c, Body: p.parseStmt()})
	}

	if p.at(token.Else) {
		p.advance()
		branches = append(branches, ast.CondBranch{Condition: ast.NoneNode, Body: p.parseStmt()})
	}

	return &ast.ControlFlowStmt{CFKind: ast.CFConditional, Conditional: &ast.ConditionalCF{Branches: branches}}
}

func (p *Parser) parseForStmt() *ast.ControlFlowStmt {
	p.expect(token.For, "'for'")
	p.expect(token.LParen, "'('")

	var initStmt ast.Stmt
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.peek().Kind == token.Identifier && p.peekAt(1).Kind == token.Colon:
		initStmt = p.parseLocalVarDecStmt()
	default:
		e := p.parseExpr()
		p.expect(token.Semicolon, "';'")
		initStmt = &ast.ExpressionStmt{Expr: e}
	}

	var cond ast.Expr = ast.NoneNode
	if !p.at(token.Semicolon) {
		cond = p.parseExpr()
	}
	p.expect(token.Semicolon, "';'")

	var iter ast.Expr = ast.NoneNode
	if !p.at(token.RParen) {
		iter = p.parseExpr()
	}
	p.expect(token.RParen, "')'")

	body := p.parseStmt()

	return &ast.ControlFlowStmt{CFKind: ast.CFForLoop, ForLoop: &ast.ForLoopCF{
		Initialize: initStmt, Condition: cond, Iteration: iter, Body: body,
	}}
}

func (p *Parser) parseWhileStmt() *ast.ControlFlowStmt {
	p.expect(token.While, "'while'")
	p.expect(token.LParen, "'('")
	cond := p.parseExpr()
	p.expect(token.RParen, "')'")
	body := p.parseStmt()
	return &ast.ControlFlowStmt{CFKind: ast.CFWhile, While: &ast.WhileCF{Condition: cond, Body: body}}
}

func (p *Parser) parseSwitchStmt() *ast.ControlFlowStmt {
	p.expect(token.Switch, "'switch'")
	p.expect(token.LParen, "'('")
	subject := p.parseExpr()
	p.expect(token.RParen, "')'")
	p.expect(token.LBrace, "'{'")

	var cases []ast.SwitchCase
	for !p.at(token.RBrace) {
		if p.at(token.Case) {
			p.advance()
			val := p.parseExpr()
			p.expect(token.Colon, "':'")
			cases = append(cases, ast.SwitchCase{Value: val, Body: p.parseCaseBody()})
			continue
		}
		p.expect(token.Default, "'case' or 'default'")
		p.expect(token.Colon, "':'")
		cases = append(cases, ast.SwitchCase{Value: nil, Body: p.parseCaseBody()})
	}
	p.expect(token.RBrace, "'}'")

	return &ast.ControlFlowStmt{CFKind: ast.CFSwitch, Switch: &ast.SwitchCF{Subject: subject, Cases: cases}}
}

// parseCaseBody collects statements up to the next case label, matching the
// fallthrough-free C-style switch case bodies this language has no braces
// requirement for.
func (p *Parser) parseCaseBody() *ast.ScopeStmt {
	var stmts []ast.Stmt
	for !p.at(token.Case) && !p.at(token.Default) && !p.at(token.RBrace) {
		stmts = append(stmts, p.parseStmt())
	}
	return &ast.ScopeStmt{Stmts: stmts}
}

// -----------------------------------------------------------------------------
// Expressions: precedence-climbing over a left-to-right binary operator
// table, with `.`/`->` deliberately given the highest binary precedence so
// member access binds tighter than arithmetic.

var binPrec = map[token.Kind]int{
	token.Assign: 1, token.PlusEq: 1, token.MinusEq: 1, token.StarEq: 1, token.DivideEq: 1, token.ModEq: 1,
	token.LogicalOr:  2,
	token.LogicalAnd: 3,
	token.Equal:      4,
	token.NotEqual:   4,
	token.Less:       5,
	token.Greater:    5,
	token.LessEq:     5,
	token.GreaterEq:  5,
	token.Pipe:       6,
	token.Caret:      7,
	token.Amp:        8,
	token.LeftShift:  9,
	token.RightShift: 9,
	token.Plus:       10,
	token.Minus:      10,
	token.Star:       11,
	token.Divide:      11,
	token.Mod:        11,
	token.Dot:        13,
	token.Arrow:      13,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		prec, ok := binPrec[p.peek().Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := p.advance()

		nextMin := prec + 1
		if token.IsAssignment(op.Kind) {
			nextMin = prec // right-associative
		}

		left = &ast.BinaryExpr{Op: op, Left: left, Right: p.parseBinary(nextMin)}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.peek().Kind {
	case token.Not, token.Minus, token.Amp, token.Star, token.Increment, token.Decrement:
		op := p.advance()
		return &ast.UnaryExpr{Op: op, Operand: p.parseUnary(), Postfix: false}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case token.LParen:
			e = p.finishCall(e)
		case token.LBracket:
			p.advance()
			offset := p.parseExpr()
			p.expect(token.RBracket, "']'")
			e = &ast.ArrayAccessExpr{Array: e, Offset: offset}
		case token.Increment, token.Decrement:
			op := p.advance()
			e = &ast.UnaryExpr{Op: op, Operand: e, Postfix: true}
		default:
			return e
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	v, ok := callee.(*ast.ValueExpr)
	if !ok || v.Tok.Kind != token.Identifier {
		panic(report.Raise(p.errPos(p.peek()), "a callable name before '('"))
	}
	p.expect(token.LParen, "'('")

	var args []ast.Expr
	for !p.at(token.RParen) {
		args = append(args, p.parseExpr())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")

	return &ast.CallExpr{NameTok: v.Tok, Args: args}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Identifier, token.DecimalNumber, token.StringLiteral, token.CharLiteral, token.NullPtrLit, token.True, token.False:
		p.advance()
		return &ast.ValueExpr{Tok: tok}
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, "')'")
		return &ast.WrappedExpr{Inner: inner}
	case token.LBrace:
		return p.parseArrayOrStructLiteral()
	default:
		panic(report.Raise(p.errPos(tok), "an expression"))
	}
}

func (p *Parser) parseArrayOrStructLiteral() ast.Expr {
	p.expect(token.LBrace, "'{'")
	var values []ast.Expr
	for !p.at(token.RBrace) {
		values = append(values, p.parseExpr())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBrace, "'}'")
	return &ast.ArrayOrStructLiteralExpr{Values: values}
}
