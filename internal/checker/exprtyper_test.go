package checker

import (
	"testing"

	"vex/internal/ast"
	"vex/internal/lexer"
	"vex/internal/token"
)

// newExprChecker builds a Checker over src purely to get a tokenizer and a
// symbol table to populate by hand; it never runs a pass.
func newExprChecker(t *testing.T, src string) (*Checker, []token.Token) {
	t.Helper()
	l := lexer.NewLexer("test.vex", []byte(src))
	toks := l.Tokens(0)
	return NewChecker(&ast.Program{}, []token.Tokenizer{l}), toks
}

// Property 5: an identifier bound to a variable types as an lvalue; a
// binary arithmetic expression built from it does not.
func TestLvaluePreservationForIdentifier(t *testing.T) {
	c, toks := newExprChecker(t, "x")
	xTok := toks[0]

	c.Sym.Define("x", ast.NewVarDecl(xTok, 0, ast.I32Type, nil))

	typ, isLvalue := c.checkExpression(&ast.ValueExpr{Tok: xTok}, nil, 0)
	if !isLvalue {
		t.Error("an identifier bound to a variable should type as an lvalue")
	}
	if !ast.TypeEq(typ, ast.I32Type) {
		t.Errorf("expected i32, got %v", typ)
	}
}

func TestLvaluePreservationForArithmeticExpression(t *testing.T) {
	c, toks := newExprChecker(t, "x + 1")
	xTok, plusTok, oneTok := toks[0], toks[1], toks[2]

	c.Sym.Define("x", ast.NewVarDecl(xTok, 0, ast.I32Type, nil))

	expr := &ast.BinaryExpr{
		Op:   plusTok,
		Left: &ast.ValueExpr{Tok: xTok},
		Right: &ast.ValueExpr{Tok: oneTok},
	}

	_, isLvalue := c.checkExpression(expr, nil, 0)
	if isLvalue {
		t.Error("an arithmetic expression should never type as an lvalue")
	}
	if !c.Sink.Empty() {
		t.Errorf("expected no diagnostics, got %v", errorKinds(c))
	}
}

func TestDereferenceOfNonPointerIsRejected(t *testing.T) {
	c, toks := newExprChecker(t, "x *")
	xTok, starTok := toks[0], toks[1]

	c.Sym.Define("x", ast.NewVarDecl(xTok, 0, ast.I32Type, nil))

	expr := &ast.UnaryExpr{Op: starTok, Operand: &ast.ValueExpr{Tok: xTok}}
	typ, isLvalue := c.checkExpression(expr, nil, 0)

	if !typ.IsBad() || isLvalue {
		t.Errorf("expected (Bad, rvalue), got (%v, %v)", typ, isLvalue)
	}
	assertErrors(t, c, CannotDereferenceNonPointerType)
}

func TestAddressOfTemporaryIsRejected(t *testing.T) {
	c, toks := newExprChecker(t, "1 &")
	oneTok, ampTok := toks[0], toks[1]

	expr := &ast.UnaryExpr{Op: ampTok, Operand: &ast.ValueExpr{Tok: oneTok}}
	typ, isLvalue := c.checkExpression(expr, nil, 0)

	if !typ.IsBad() || isLvalue {
		t.Errorf("expected (Bad, rvalue), got (%v, %v)", typ, isLvalue)
	}
	assertErrors(t, c, CannotOperateOnTemporary)
}

func TestAddressOfLvalueYieldsPointerRvalue(t *testing.T) {
	c, toks := newExprChecker(t, "x &")
	xTok, ampTok := toks[0], toks[1]

	c.Sym.Define("x", ast.NewVarDecl(xTok, 0, ast.I32Type, nil))

	expr := &ast.UnaryExpr{Op: ampTok, Operand: &ast.ValueExpr{Tok: xTok}}
	typ, isLvalue := c.checkExpression(expr, nil, 0)

	if isLvalue {
		t.Error("address-of should always yield an rvalue")
	}
	if !typ.IsPointer() || !ast.TypeEq(typ.Deref(), ast.I32Type) {
		t.Errorf("expected ptr i32, got %v", typ)
	}
}
