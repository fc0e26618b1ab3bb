package checker

import (
	"vex/internal/ast"
	"vex/internal/report"
	"vex/internal/token"
)

// pass4BodyChecking implements spec.md §4.G: walk every function body --
// free functions, member functions, and function/struct bodies reached
// through a TemplateDecl wrapper -- checking scopes, locals, control flow,
// and expressions.
func (c *Checker) pass4BodyChecking() {
	for _, d := range c.Prog.Decs {
		c.checkBodiesIn(d)
	}
}

func (c *Checker) checkBodiesIn(d ast.Declaration) {
	switch v := d.(type) {
	case *ast.FuncDecl:
		c.checkFuncBody(v)
	case *ast.StructDecl:
		c.checkStructMemberBodies(v)
	case *ast.TemplateDecl:
		switch inner := v.Inner.(type) {
		case *ast.FuncDecl:
			c.checkFuncBody(inner)
		case *ast.StructDecl:
			c.checkStructMemberBodies(inner)
		}
	}
}

func (c *Checker) checkStructMemberBodies(s *ast.StructDecl) {
	for _, m := range s.Members {
		if m.Kind == ast.MemberFunc && m.FuncSig != nil {
			c.checkFuncBody(m.FuncSig)
		}
	}
}

// checkFuncBody registers parameter names into lookup (duplicates abort
// checking this function's body -- spec.md §4.G), then enters check_scope
// with in_loop=in_switch=false, and finally enforces
// NotAllCodePathsReturn.
func (c *Checker) checkFuncBody(f *ast.FuncDecl) {
	if f.Body == nil {
		return
	}

	var names []string
	aborted := false

	for _, p := range f.Params {
		pname := c.name(f.FileIndex(), p.NameTok)
		paramAsVar := ast.NewVarDecl(p.NameTok, f.FileIndex(), p.Type, nil)
		if prior, ok := c.Sym.Define(pname, paramAsVar); !ok {
			c.Sink.AddTok(NameAlreadyInUse, p.NameTok, f.FileIndex(), prior, "parameter %q is already defined", pname)
			aborted = true
			break
		}
		names = append(names, pname)
	}

	if !aborted {
		returned := c.checkScope(f.Body, f.ReturnType, false, false, f.FileIndex())
		if !f.ReturnType.IsVoid() && !returned {
			c.Sink.AddTok(NotAllCodePathsReturn, f.NameToken(), f.FileIndex(), nil, "not all code paths return a value")
		}
	}

	for i := len(names) - 1; i >= 0; i-- {
		c.Sym.Remove(names[i])
	}
}

// checkScope runs every statement of scope in order and reports whether the
// scope guarantees a return on every path reaching its end (the corrected
// conjunction/disjunction behavior from spec.md §9 open question 1: a
// sequence guarantees a return as soon as any statement in it does, and a
// conditional guarantees a return only when it has an unconditional else
// and every branch does). On exit, every local this scope added is removed
// from lookup in LIFO order, regardless of which path was taken.
func (c *Checker) checkScope(scope *ast.ScopeStmt, returnType ast.TypeList, inLoop, inSwitch bool, fileIndex uint32) bool {
	var locals []string
	returned := false

	for _, stmt := range scope.Stmts {
		if c.checkStmt(stmt, returnType, inLoop, inSwitch, fileIndex, &locals) {
			returned = true
		}
	}

	for i := len(locals) - 1; i >= 0; i-- {
		c.Sym.Remove(locals[i])
	}

	return returned
}

// checkStmt dispatches on statement kind and reports whether this statement
// alone guarantees a return. locals accumulates names this statement (a
// VarDec at this exact syntactic level) adds to lookup, for the caller to
// remove in LIFO order.
func (c *Checker) checkStmt(stmt ast.Stmt, returnType ast.TypeList, inLoop, inSwitch bool, fileIndex uint32, locals *[]string) bool {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		c.checkExpression(s.Expr, nil, fileIndex)
		return false

	case *ast.VarDecStmt:
		c.checkVarDec(s.Decl, fileIndex, locals)
		return false

	case *ast.KeywordStmt:
		c.checkKeywordStmt(s, inLoop, inSwitch, fileIndex)
		return false

	case *ast.ScopeStmt:
		return c.checkScope(s, returnType, inLoop, inSwitch, fileIndex)

	case *ast.NothingStmt:
		return false

	case *ast.ControlFlowStmt:
		return c.checkControlFlow(s, returnType, inLoop, inSwitch, fileIndex)

	default:
		report.ReportICE("checker: unknown statement kind reached pass 4")
		return false
	}
}

func (c *Checker) checkKeywordStmt(s *ast.KeywordStmt, inLoop, inSwitch bool, fileIndex uint32) {
	switch s.Tok.Kind {
	case token.Continue:
		if !inLoop {
			c.Sink.AddTok(CannotHaveContinueHere, s.Tok, fileIndex, nil, "continue outside of a loop")
		}
	case token.Break:
		if !inLoop && !inSwitch {
			c.Sink.AddTok(CannotHaveBreakHere, s.Tok, fileIndex, nil, "break outside of a loop or switch")
		}
	default:
		// Parser-contract violation: no other keyword-statement kind
		// exists (spec.md §4.G, fatal condition 1 of §7).
		report.ReportICE("checker: unknown keyword-statement kind %d", s.Tok.Kind)
	}
}

func (c *Checker) checkVarDec(decl *ast.VarDecl, fileIndex uint32, locals *[]string) {
	c.checkType(&decl.Type, fileIndex)

	if _, isNone := decl.Init.(*ast.NoneExpr); !isNone {
		initType, _ := c.checkExpression(decl.Init, nil, fileIndex)
		if !decl.Type.IsBad() && !initType.IsBad() && !AssignmentCompatible(decl.Type, initType) {
			c.Sink.AddTok(CannotAssign, decl.NameToken(), fileIndex, nil, "initializer type does not match declared type")
		}
	}

	name := c.name(fileIndex, decl.NameToken())
	if prior, ok := c.Sym.Define(name, decl); !ok {
		c.Sink.AddTok(NameAlreadyInUse, decl.NameToken(), fileIndex, prior, "name %q is already defined", name)
		return
	}
	*locals = append(*locals, name)
}

func (c *Checker) checkControlFlow(s *ast.ControlFlowStmt, returnType ast.TypeList, inLoop, inSwitch bool, fileIndex uint32) bool {
	switch s.CFKind {
	case ast.CFForLoop:
		c.checkForLoop(s.ForLoop, returnType, fileIndex)
		return false
	case ast.CFWhile:
		c.checkWhile(s.While, returnType, fileIndex)
		return false
	case ast.CFConditional:
		return c.checkConditional(s.Conditional, returnType, inLoop, inSwitch, fileIndex)
	case ast.CFSwitch:
		return c.checkSwitch(s.Switch, returnType, inLoop, fileIndex)
	case ast.CFReturn:
		c.checkReturn(s.Return, returnType, fileIndex)
		return true
	default:
		return false
	}
}

func (c *Checker) checkForLoop(f *ast.ForLoopCF, returnType ast.TypeList, fileIndex uint32) {
	var locals []string

	if f.Initialize != nil {
		switch init := f.Initialize.(type) {
		case *ast.VarDecStmt:
			c.checkVarDec(init.Decl, fileIndex, &locals)
		case *ast.ExpressionStmt:
			c.checkExpression(init.Expr, nil, fileIndex)
		case nil:
		default:
			// Parser-contract violation: spec.md §4.G names VarDec and
			// Expression as the only legal initialize kinds (fatal
			// condition 2 of §7).
			_ = init
			report.ReportICE("checker: unknown for-loop initialize statement kind")
		}
	}

	c.checkCondition(f.Condition, fileIndex)
	c.checkExpression(f.Iteration, nil, fileIndex)
	c.checkStmt(f.Body, returnType, true, false, fileIndex, &locals)

	for i := len(locals) - 1; i >= 0; i-- {
		c.Sym.Remove(locals[i])
	}
}

func (c *Checker) checkWhile(w *ast.WhileCF, returnType ast.TypeList, fileIndex uint32) {
	c.checkCondition(w.Condition, fileIndex)

	var locals []string
	c.checkStmt(w.Body, returnType, true, false, fileIndex, &locals)
	for i := len(locals) - 1; i >= 0; i-- {
		c.Sym.Remove(locals[i])
	}
}

// checkConditional implements the corrected NotAllCodePathsReturn rule:
// a conditional guarantees a return only when every branch does AND the
// chain ends in an unconditional else (spec.md §9 open question 1).
func (c *Checker) checkConditional(cf *ast.ConditionalCF, returnType ast.TypeList, inLoop, inSwitch bool, fileIndex uint32) bool {
	allReturn := len(cf.Branches) > 0
	hasElse := false

	for _, br := range cf.Branches {
		if _, isNone := br.Condition.(*ast.NoneExpr); isNone {
			hasElse = true
		} else {
			c.checkCondition(br.Condition, fileIndex)
		}

		var locals []string
		branchReturns := c.checkStmt(br.Body, returnType, inLoop, inSwitch, fileIndex, &locals)
		for i := len(locals) - 1; i >= 0; i-- {
			c.Sym.Remove(locals[i])
		}

		if !branchReturns {
			allReturn = false
		}
	}

	return hasElse && allReturn
}

// checkSwitch implements the resolved spec.md §9 open question 2: case
// bodies are actually descended into with in_switch=true (rather than left
// a no-op), and a switch guarantees a return under the same
// default-plus-conjunction rule as checkConditional's else-plus-conjunction.
func (c *Checker) checkSwitch(sw *ast.SwitchCF, returnType ast.TypeList, inLoop bool, fileIndex uint32) bool {
	subjType, _ := c.checkExpression(sw.Subject, nil, fileIndex)

	allReturn := len(sw.Cases) > 0
	hasDefault := false

	for _, cs := range sw.Cases {
		if cs.Value == nil {
			hasDefault = true
		} else {
			valType, _ := c.checkExpression(cs.Value, nil, fileIndex)
			if !subjType.IsBad() && !valType.IsBad() && !AssignmentCompatible(subjType, valType) {
				c.Sink.AddExpr(TypeDoesNotMatch, cs.Value, fileIndex, nil, "case value does not match the switch subject's type")
			}
		}

		var locals []string
		caseReturns := c.checkStmt(cs.Body, returnType, inLoop, true, fileIndex, &locals)
		for i := len(locals) - 1; i >= 0; i-- {
			c.Sym.Remove(locals[i])
		}

		if !caseReturns {
			allReturn = false
		}
	}

	return hasDefault && allReturn
}

func (c *Checker) checkReturn(r *ast.ReturnCF, returnType ast.TypeList, fileIndex uint32) {
	if _, isNone := r.Value.(*ast.NoneExpr); isNone {
		if !returnType.IsVoid() {
			c.Sink.AddTok(IncorrectReturnType, r.Tok, fileIndex, nil, "missing return value")
		}
		return
	}

	exprType, _ := c.checkExpression(r.Value, nil, fileIndex)

	if returnType.IsVoid() && (exprType.IsVoid() || exprType.IsNothing()) {
		return
	}
	if exprType.IsBad() {
		return
	}
	if !AssignmentCompatible(returnType, exprType) {
		c.Sink.AddTok(IncorrectReturnType, r.Tok, fileIndex, nil, "return value type does not match the declared return type")
	}
}

// checkCondition types cond and, unless it is None or already Bad, requires
// it be convertible-to-bool (spec.md §4.G).
func (c *Checker) checkCondition(cond ast.Expr, fileIndex uint32) {
	if _, isNone := cond.(*ast.NoneExpr); isNone {
		return
	}
	t, _ := c.checkExpression(cond, nil, fileIndex)
	if !t.IsBad() && !canBeConvertedToBool(t) {
		c.Sink.AddExpr(CannotBeConvertedToBool, cond, fileIndex, nil, "condition cannot be converted to bool")
	}
}
