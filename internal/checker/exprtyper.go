package checker

import (
	"vex/internal/ast"
	"vex/internal/token"
)

// checkExpression is the recursive expression typer of spec.md §4.H:
// check_expression(expr, struct_context) -> (type, is_lvalue). structCtx is
// non-nil only while evaluating the right-hand side of `.`/`->`, in which
// case identifiers and calls resolve against that struct's members instead
// of the global scope.
func (c *Checker) checkExpression(expr ast.Expr, structCtx *ast.StructDecl, fileIndex uint32) (ast.TypeList, bool) {
	switch e := expr.(type) {
	case *ast.ValueExpr:
		return c.checkValue(e, structCtx, fileIndex)
	case *ast.UnaryExpr:
		return c.checkUnary(e, structCtx, fileIndex)
	case *ast.BinaryExpr:
		return c.checkBinary(e, structCtx, fileIndex)
	case *ast.CallExpr:
		return c.checkCall(e, structCtx, fileIndex)
	case *ast.ArrayAccessExpr:
		// Non-goal: array-access typing. Both sides are still typed so any
		// errors they carry are still surfaced.
		c.checkExpression(e.Array, structCtx, fileIndex)
		c.checkExpression(e.Offset, structCtx, fileIndex)
		return ast.BadType, false
	case *ast.WrappedExpr:
		return c.checkExpression(e.Inner, structCtx, fileIndex)
	case *ast.ArrayOrStructLiteralExpr:
		// Non-goal: struct/array literal typing.
		for _, v := range e.Values {
			c.checkExpression(v, structCtx, fileIndex)
		}
		return ast.BadType, false
	case *ast.NoneExpr:
		return ast.NothingType, false
	default:
		return ast.BadType, false
	}
}

func (c *Checker) checkValue(v *ast.ValueExpr, structCtx *ast.StructDecl, fileIndex uint32) (ast.TypeList, bool) {
	switch v.Tok.Kind {
	case token.Identifier:
		return c.resolveIdentifierValue(v, structCtx, fileIndex)
	case token.DecimalNumber:
		// Width inference is a Non-goal (spec.md §9 open question 3): every
		// decimal numeral is typed I32 regardless of magnitude.
		return ast.I32Type, false
	case token.NullPtrLit:
		return ast.NullPtrType, false
	case token.True, token.False:
		return ast.BoolType, false
	case token.StringLiteral:
		return ast.PtrToCharType, false
	case token.CharLiteral:
		return ast.CharType, false
	default:
		return ast.BadType, false
	}
}

func (c *Checker) resolveIdentifierValue(v *ast.ValueExpr, structCtx *ast.StructDecl, fileIndex uint32) (ast.TypeList, bool) {
	name := c.name(fileIndex, v.Tok)

	if structCtx != nil {
		structName := c.name(structCtx.FileIndex(), structCtx.NameToken())
		m, ok := c.Sym.Member(structName, name)
		if !ok {
			c.Sink.AddTok(NoSuchMemberVariable, v.Tok, fileIndex, structCtx,
				"struct %q has no member variable %q", structName, name)
			return ast.BadType, false
		}
		if m.Kind != ast.MemberVar {
			c.Sink.AddTok(NotAVariable, v.Tok, fileIndex, relatedForMember(m), "%q is not a variable", name)
			return ast.BadType, false
		}
		return m.VarType.StripReference(), true
	}

	decl, ok := c.Sym.Lookup(name)
	if !ok {
		c.Sink.AddTok(NoSuchVariable, v.Tok, fileIndex, nil, "no such variable %q", name)
		return ast.BadType, false
	}
	varDecl, ok := decl.(*ast.VarDecl)
	if !ok {
		c.Sink.AddTok(NotAVariable, v.Tok, fileIndex, decl, "%q is not a variable", name)
		return ast.BadType, false
	}
	return varDecl.Type.StripReference(), true
}

func (c *Checker) checkUnary(u *ast.UnaryExpr, structCtx *ast.StructDecl, fileIndex uint32) (ast.TypeList, bool) {
	operandType, operandLvalue := c.checkExpression(u.Operand, structCtx, fileIndex)

	switch u.Op.Kind {
	case token.Star: // dereference
		if operandType.IsBad() {
			return ast.BadType, false
		}
		if !operandType.IsPointer() {
			c.Sink.AddTok(CannotDereferenceNonPointerType, u.Op, fileIndex, nil, "cannot dereference a non-pointer type")
			return ast.BadType, false
		}
		return operandType.Deref(), true

	case token.Not:
		if !operandType.IsBad() && !canBeConvertedToBool(operandType) {
			c.Sink.AddTok(CannotBeConvertedToBool, u.Op, fileIndex, nil, "operand cannot be converted to bool")
		}
		return ast.BoolType, false

	case token.Amp: // address-of
		if !operandLvalue {
			c.Sink.AddTok(CannotOperateOnTemporary, u.Op, fileIndex, nil, "cannot take the address of a temporary")
			return ast.BadType, false
		}
		return ast.WithPointer(operandType), false

	case token.Increment, token.Decrement:
		if !operandLvalue {
			c.Sink.AddTok(CannotOperateOnTemporary, u.Op, fileIndex, nil, "cannot increment or decrement a temporary")
			return ast.BadType, false
		}
		return operandType, false

	case token.Minus: // unary negative: no numeric checks in this design (spec.md §9)
		return operandType, false

	default:
		return ast.BadType, false
	}
}

func (c *Checker) checkBinary(b *ast.BinaryExpr, structCtx *ast.StructDecl, fileIndex uint32) (ast.TypeList, bool) {
	switch b.Op.Kind {
	case token.Dot:
		return c.checkDot(b, structCtx, fileIndex, false)
	case token.Arrow:
		return c.checkDot(b, structCtx, fileIndex, true)
	}

	lType, lLvalue := c.checkExpression(b.Left, structCtx, fileIndex)

	if token.IsAssignment(b.Op.Kind) {
		rType, _ := c.checkExpression(b.Right, structCtx, fileIndex)
		if !lLvalue {
			c.Sink.AddTok(CannotAssignToTemporary, b.Op, fileIndex, nil, "cannot assign to a temporary")
			return ast.BadType, false
		}
		if !lType.IsBad() && !rType.IsBad() && !AssignmentCompatible(lType, rType) {
			c.Sink.AddTok(CannotAssign, b.Op, fileIndex, nil, "cannot assign a value of this type")
		}
		return lType, true
	}

	if b.Op.Kind == token.LogicalAnd || b.Op.Kind == token.LogicalOr {
		rType, _ := c.checkExpression(b.Right, structCtx, fileIndex)
		if !lType.IsBad() && !canBeConvertedToBool(lType) {
			c.Sink.AddTok(CannotBeConvertedToBool, b.Op, fileIndex, nil, "left operand cannot be converted to bool")
		}
		if !rType.IsBad() && !canBeConvertedToBool(rType) {
			c.Sink.AddTok(CannotBeConvertedToBool, b.Op, fileIndex, nil, "right operand cannot be converted to bool")
		}
		return ast.BoolType, false
	}

	if token.IsLogicalComparison(b.Op.Kind) {
		rType, _ := c.checkExpression(b.Right, structCtx, fileIndex)
		if !lType.IsBad() && !rType.IsBad() {
			if lType.IsIdentifierBase() || rType.IsIdentifierBase() || lType.IsVoid() || rType.IsVoid() {
				c.Sink.AddTok(CannotCompareType, b.Op, fileIndex, nil, "operands of this type cannot be compared")
			}
		}
		return ast.BoolType, false
	}

	// Arithmetic / bitwise.
	rType, _ := c.checkExpression(b.Right, structCtx, fileIndex)
	if lType.IsBad() || rType.IsBad() {
		return ast.BadType, false
	}
	if lType.IsIdentifierBase() || rType.IsIdentifierBase() {
		c.Sink.AddTok(OperationNotDefined, b.Op, fileIndex, nil, "this operation is not defined on a struct type")
		return ast.BadType, false
	}
	if lType.IsVoid() || rType.IsVoid() {
		c.Sink.AddTok(OperationOnVoid, b.Op, fileIndex, nil, "this operation is not defined on void")
		return ast.BadType, false
	}
	return ast.LargestType(lType, rType), false
}

// checkDot implements both `.` and `->`. A DecimalNumber left operand is the
// lexer's int-DOT-int float split (spec.md §4.H, §9 open question 4): it is
// reconstituted as an F64 literal rather than treated as member access.
func (c *Checker) checkDot(b *ast.BinaryExpr, structCtx *ast.StructDecl, fileIndex uint32, arrow bool) (ast.TypeList, bool) {
	if !arrow {
		if lv, ok := b.Left.(*ast.ValueExpr); ok && lv.Tok.Kind == token.DecimalNumber {
			return ast.F64Type, false
		}
	}

	lType, _ := c.checkExpression(b.Left, structCtx, fileIndex)

	if arrow {
		if lType.IsBad() {
			return ast.BadType, false
		}
		if !lType.IsPointer() {
			c.Sink.AddTok(NotAStruct, b.Op, fileIndex, nil, "left side of -> is not a pointer")
			return ast.BadType, false
		}
		lType = lType.Deref()
	}

	target := lType.ResolvedStruct()
	if target == nil {
		if !lType.IsBad() {
			c.Sink.AddTok(NotAStruct, b.Op, fileIndex, nil, "left side is not a struct")
		}
		return ast.BadType, false
	}

	return c.checkExpression(b.Right, target, fileIndex)
}

func (c *Checker) checkCall(call *ast.CallExpr, structCtx *ast.StructDecl, fileIndex uint32) (ast.TypeList, bool) {
	name := c.name(fileIndex, call.NameTok)
	var sig *ast.FuncDecl

	if structCtx != nil {
		structName := c.name(structCtx.FileIndex(), structCtx.NameToken())
		m, ok := c.Sym.Member(structName, name)
		switch {
		case !ok:
			c.Sink.AddTok(NoSuchMemberFunction, call.NameTok, fileIndex, structCtx,
				"struct %q has no member function %q", structName, name)
		case m.Kind != ast.MemberFunc:
			c.Sink.AddTok(NotAFunction, call.NameTok, fileIndex, relatedForMember(m), "%q is not a function", name)
		default:
			sig = m.FuncSig
		}
	} else {
		decl, ok := c.Sym.Lookup(name)
		switch {
		case !ok:
			c.Sink.AddTok(NoSuchFunction, call.NameTok, fileIndex, nil, "no such function %q", name)
		default:
			fd, isFunc := decl.(*ast.FuncDecl)
			if !isFunc {
				c.Sink.AddTok(NotAFunction, call.NameTok, fileIndex, decl, "%q is not a function", name)
			} else {
				sig = fd
			}
		}
	}

	c.checkCallArgs(call, fileIndex, sig)

	if sig == nil {
		return ast.BadType, false
	}
	if sig.ReturnType.IsReference() {
		return sig.ReturnType.StripReference(), true
	}
	return sig.ReturnType, false
}

// checkCallArgs types every argument -- in the enclosing (non-member)
// context, never the callee's own struct context -- then, when the callee
// resolved, checks arity and pairwise assignment-compatibility.
func (c *Checker) checkCallArgs(call *ast.CallExpr, fileIndex uint32, sig *ast.FuncDecl) {
	argTypes := make([]ast.TypeList, len(call.Args))
	for i, a := range call.Args {
		t, _ := c.checkExpression(a, nil, fileIndex)
		argTypes[i] = t
	}

	if sig == nil {
		return
	}

	if len(call.Args) != len(sig.Params) {
		c.Sink.AddTok(WrongNumberOfArgs, call.NameTok, fileIndex, sig,
			"function %q expects %d argument(s), got %d",
			c.name(sig.FileIndex(), sig.NameToken()), len(sig.Params), len(call.Args))
		return
	}

	for i, p := range sig.Params {
		if argTypes[i].IsBad() {
			continue
		}
		if !AssignmentCompatible(p.Type, argTypes[i]) {
			c.Sink.AddTok(TypeDoesNotMatch, call.NameTok, fileIndex, sig,
				"argument %d does not match the declared parameter type", i+1)
		}
	}
}

// canBeConvertedToBool implements spec.md §4.H/GLOSSARY: true iff t's base
// kind is a built-in type other than Void, and t is not itself a pointer
// (pointer-to-bool via implicit non-null test is explicitly not accepted).
func canBeConvertedToBool(t ast.TypeList) bool {
	if t.IsPointer() {
		return false
	}
	k := t.Base().Kind
	return token.IsBuiltinType(k) && k != token.Void
}
