package checker

import (
	"testing"

	"vex/internal/ast"
	"vex/internal/token"
)

// Property 4: void* is universally assignable in both directions, for any
// pointer chain.
func TestVoidPointerUniversalityBothDirections(t *testing.T) {
	chains := []ast.TypeList{
		ast.WithPointer(ast.CharType),
		ast.WithPointer(ast.WithPointer(ast.I32Type)),
		ast.PtrToVoidType,
	}

	for _, p := range chains {
		if !AssignmentCompatible(ast.PtrToVoidType, p) {
			t.Errorf("ptr void <- %v should be compatible", p)
		}
		if !AssignmentCompatible(p, ast.PtrToVoidType) {
			t.Errorf("%v <- ptr void should be compatible", p)
		}
	}
}

func TestAssignmentRejectsVoidAndBad(t *testing.T) {
	if AssignmentCompatible(ast.VoidType, ast.I32Type) {
		t.Error("void lhs should never be assignment-compatible")
	}
	if AssignmentCompatible(ast.I32Type, ast.BadType) {
		t.Error("a Bad rhs should never be assignment-compatible")
	}
}

func TestAssignmentAcceptsScalarInterconversion(t *testing.T) {
	if !AssignmentCompatible(ast.I32Type, ast.CharType) {
		t.Error("built-in scalars should interconvert under this design")
	}
	if !AssignmentCompatible(ast.BoolType, ast.F64Type) {
		t.Error("built-in scalars should interconvert under this design")
	}
}

func TestAssignmentRequiresMatchingStructIdentity(t *testing.T) {
	sa := &ast.StructDecl{}
	sb := &ast.StructDecl{}

	lhs := ast.TypeList{{Kind: token.Identifier}, {Kind: token.DecPtr, Struct: sa}}
	rhsSame := ast.TypeList{{Kind: token.Identifier}, {Kind: token.DecPtr, Struct: sa}}
	rhsOther := ast.TypeList{{Kind: token.Identifier}, {Kind: token.DecPtr, Struct: sb}}

	if !AssignmentCompatible(lhs, rhsSame) {
		t.Error("identical struct identities should be assignment-compatible")
	}
	if AssignmentCompatible(lhs, rhsOther) {
		t.Error("distinct struct identities should not be assignment-compatible")
	}
}

func TestAssignmentRejectsStructToScalar(t *testing.T) {
	s := &ast.StructDecl{}
	structType := ast.TypeList{{Kind: token.Identifier}, {Kind: token.DecPtr, Struct: s}}
	if AssignmentCompatible(structType, ast.I32Type) {
		t.Error("a struct lhs should not accept a scalar rhs")
	}
	if AssignmentCompatible(ast.I32Type, structType) {
		t.Error("a scalar lhs should not accept a struct rhs")
	}
}

func TestPointerChainRejectsMismatchedNonVoidBases(t *testing.T) {
	lhs := ast.WithPointer(ast.CharType)
	rhs := ast.WithPointer(ast.I32Type)
	if AssignmentCompatible(lhs, rhs) {
		t.Error("ptr char should not accept ptr i32")
	}
}

func TestPointerAcceptsNullPtrLiteralType(t *testing.T) {
	if !AssignmentCompatible(ast.WithPointer(ast.CharType), ast.NullPtrType) {
		t.Error("any pointer type should accept nullptr_t")
	}
}
