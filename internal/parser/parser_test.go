package parser

import (
	"testing"

	"vex/internal/ast"
	"vex/internal/lexer"
	"vex/internal/token"
)

// mustParse lexes and parses src, failing the test if either stage panics
// (the parser's and lexer's shared contract for syntax errors).
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()

	var prog *ast.Program
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("unexpected parse failure on %q: %v", src, r)
			}
		}()
		l := lexer.NewLexer("test.vex", []byte(src))
		toks := l.Tokens(0)
		p := NewParser(0, toks, l)
		prog = p.ParseProgram()
	}()
	return prog
}

func TestParseEmptyProgram(t *testing.T) {
	prog := mustParse(t, "")
	if len(prog.Decs) != 0 {
		t.Errorf("expected no declarations, got %d", len(prog.Decs))
	}
}

func TestParseFuncDecl(t *testing.T) {
	prog := mustParse(t, "func add(x: i32, y: i32): i32 { return x + y; }")
	if len(prog.Decs) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Decs))
	}

	fn, ok := prog.Decs[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", prog.Decs[0])
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected a 1-statement body")
	}
	if fn.ReturnType.Base().Kind != token.I32 {
		t.Errorf("expected i32 return type, got %v", fn.ReturnType.Base().Kind)
	}
}

func TestParseFuncDeclWithNoBodyIsASignature(t *testing.T) {
	prog := mustParse(t, "func extern(): void;")
	fn := prog.Decs[0].(*ast.FuncDecl)
	if fn.Body != nil {
		t.Error("expected a nil body for a bodyless signature")
	}
}

func TestParseStructDeclWithFieldsAndMethod(t *testing.T) {
	prog := mustParse(t, `struct Point {
		x: i32;
		y: i32;
		func len(): i32;
	}`)
	s := prog.Decs[0].(*ast.StructDecl)
	if len(s.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(s.Members))
	}
	if s.Members[0].Kind != ast.MemberVar || s.Members[2].Kind != ast.MemberFunc {
		t.Error("unexpected member kinds")
	}
}

func TestParsePointerAndReferenceTypes(t *testing.T) {
	prog := mustParse(t, "func f(p: ptr ptr void, r: ref i32): ptr char { return p; }")
	fn := prog.Decs[0].(*ast.FuncDecl)

	pType := fn.Params[0].Type
	if pType[0].Kind != token.Pointer || pType[1].Kind != token.Pointer || pType[2].Kind != token.Void {
		t.Errorf("unexpected ptr ptr void chain: %+v", pType)
	}

	rType := fn.Params[1].Type
	if rType[0].Kind != token.Reference || rType[1].Kind != token.I32 {
		t.Errorf("unexpected ref i32 chain: %+v", rType)
	}
}

func TestParseGlobalVarDecl(t *testing.T) {
	prog := mustParse(t, "let counter: i32 = 0;")
	v := prog.Decs[0].(*ast.VarDecl)
	if v.Init.Kind() != ast.ExprValue {
		t.Errorf("expected an initializer expression, got kind %v", v.Init.Kind())
	}
}

func TestParseLocalVarDecDisambiguatedFromExpressionStmt(t *testing.T) {
	prog := mustParse(t, "func f(): void { x: i32 = 1; x = x + 1; }")
	fn := prog.Decs[0].(*ast.FuncDecl)
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[0].(*ast.VarDecStmt); !ok {
		t.Errorf("expected first statement to be a VarDecStmt, got %T", fn.Body.Stmts[0])
	}
	if _, ok := fn.Body.Stmts[1].(*ast.ExpressionStmt); !ok {
		t.Errorf("expected second statement to be an ExpressionStmt, got %T", fn.Body.Stmts[1])
	}
}

func TestParseIfElifElse(t *testing.T) {
	prog := mustParse(t, `func f(): void {
		if (true) { }
		elif (false) { }
		else { }
	}`)
	fn := prog.Decs[0].(*ast.FuncDecl)
	cf := fn.Body.Stmts[0].(*ast.ControlFlowStmt)
	if cf.CFKind != ast.CFConditional {
		t.Fatalf("expected a conditional control-flow statement")
	}
	if len(cf.Conditional.Branches) != 3 {
		t.Fatalf("expected 3 branches (if/elif/else), got %d", len(cf.Conditional.Branches))
	}
	if cf.Conditional.Branches[2].Condition.Kind() != ast.ExprNone {
		t.Error("expected the else branch's condition to be None")
	}
}

func TestParseForLoopWithVarDecInitializer(t *testing.T) {
	prog := mustParse(t, "func f(): void { for (i: i32 = 0; i < 10; i++) { } }")
	fn := prog.Decs[0].(*ast.FuncDecl)
	cf := fn.Body.Stmts[0].(*ast.ControlFlowStmt)
	if cf.CFKind != ast.CFForLoop {
		t.Fatalf("expected a for-loop control-flow statement")
	}
	if _, ok := cf.ForLoop.Initialize.(*ast.VarDecStmt); !ok {
		t.Errorf("expected a VarDecStmt initializer, got %T", cf.ForLoop.Initialize)
	}
}

func TestParseSwitchWithDefault(t *testing.T) {
	prog := mustParse(t, `func f(): void {
		switch (1) {
		case 1:
			break;
		default:
			break;
		}
	}`)
	fn := prog.Decs[0].(*ast.FuncDecl)
	cf := fn.Body.Stmts[0].(*ast.ControlFlowStmt)
	if cf.CFKind != ast.CFSwitch {
		t.Fatalf("expected a switch control-flow statement")
	}
	if len(cf.Switch.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cf.Switch.Cases))
	}
	if cf.Switch.Cases[1].Value != nil {
		t.Error("expected the default case's value to be nil")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 must group as 1 + (2 * 3), not (1 + 2) * 3.
	prog := mustParse(t, "func f(): i32 { return 1 + 2 * 3; }")
	fn := prog.Decs[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ControlFlowStmt).Return.Value.(*ast.BinaryExpr)
	if ret.Op.Kind != token.Plus {
		t.Fatalf("expected a top-level '+', got %v", ret.Op.Kind)
	}
	rhs, ok := ret.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op.Kind != token.Star {
		t.Errorf("expected the right operand to be a '*' expression, got %T", ret.Right)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	prog := mustParse(t, "func f(): void { x = y = 1; }")
	fn := prog.Decs[0].(*ast.FuncDecl)
	top := fn.Body.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.BinaryExpr)
	if top.Op.Kind != token.Assign {
		t.Fatalf("expected top-level assignment")
	}
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected a nested assignment on the right, got %T", top.Right)
	}
}

func TestParseMemberAccessAndCall(t *testing.T) {
	prog := mustParse(t, "func f(): void { s.method(1, 2); }")
	fn := prog.Decs[0].(*ast.FuncDecl)
	dot := fn.Body.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.BinaryExpr)
	if dot.Op.Kind != token.Dot {
		t.Fatalf("expected a '.' expression")
	}
	call, ok := dot.Right.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected a call on the right of '.', got %T", dot.Right)
	}
	if len(call.Args) != 2 {
		t.Errorf("expected 2 call arguments, got %d", len(call.Args))
	}
}

func TestParseTemplateDeclAndCreate(t *testing.T) {
	prog := mustParse(t, `template <T> struct Box { value: T; }
		create Box<i32>;`)
	if len(prog.Decs) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Decs))
	}
	tmpl, ok := prog.Decs[0].(*ast.TemplateDecl)
	if !ok {
		t.Fatalf("expected *ast.TemplateDecl, got %T", prog.Decs[0])
	}
	if len(tmpl.TypeParams) != 1 {
		t.Errorf("expected 1 type parameter, got %d", len(tmpl.TypeParams))
	}
	if _, ok := prog.Decs[1].(*ast.TemplateCreateDecl); !ok {
		t.Errorf("expected *ast.TemplateCreateDecl, got %T", prog.Decs[1])
	}
}

func TestParseEnumDecl(t *testing.T) {
	prog := mustParse(t, "enum Color { Red, Green, Blue }")
	e := prog.Decs[0].(*ast.EnumDecl)
	if len(e.Members) != 3 {
		t.Errorf("expected 3 enum members, got %d", len(e.Members))
	}
}

func TestParseIncludeDecl(t *testing.T) {
	prog := mustParse(t, `include "other.vex";`)
	if _, ok := prog.Decs[0].(*ast.IncludeDecl); !ok {
		t.Fatalf("expected *ast.IncludeDecl, got %T", prog.Decs[0])
	}
}

func TestParseSyntaxErrorPanics(t *testing.T) {
	l := lexer.NewLexer("test.vex", []byte("func ("))
	toks := l.Tokens(0)
	p := NewParser(0, toks, l)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a missing function name")
		}
	}()
	p.ParseProgram()
}
