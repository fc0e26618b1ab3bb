package ast

import (
	"testing"

	"vex/internal/token"
)

func TestTypeEqSimpleScalars(t *testing.T) {
	if !TypeEq(I32Type, I32Type) {
		t.Error("I32Type should equal itself")
	}
	if TypeEq(I32Type, F64Type) {
		t.Error("I32Type should not equal F64Type")
	}
}

func TestTypeEqDecPtrIdentity(t *testing.T) {
	sa := &StructDecl{declBase: declBase{kind: DeclStruct, nameTok: token.Token{}}}
	sb := &StructDecl{declBase: declBase{kind: DeclStruct, nameTok: token.Token{}}}

	a := TypeList{{Kind: token.Identifier}, {Kind: token.DecPtr, Struct: sa}}
	b := TypeList{{Kind: token.Identifier}, {Kind: token.DecPtr, Struct: sa}}
	c := TypeList{{Kind: token.Identifier}, {Kind: token.DecPtr, Struct: sb}}

	if !TypeEq(a, b) {
		t.Error("types resolving to the same struct should be equal")
	}
	if TypeEq(a, c) {
		t.Error("types resolving to different structs should not be equal")
	}
}

func TestLargestTypePointerAlwaysWins(t *testing.T) {
	got := LargestType(WithPointer(CharType), I64Type)
	if !TypeEq(got, PtrToVoidType) {
		t.Errorf("expected ptr void, got %v", got)
	}
}

func TestLargestTypeFloorsAtI32(t *testing.T) {
	got := LargestType(CharType, BoolType)
	if !TypeEq(got, I32Type) {
		t.Errorf("expected i32 floor, got %v", got)
	}
}

func TestLargestTypePicksWiderOperand(t *testing.T) {
	got := LargestType(I32Type, F64Type)
	if !TypeEq(got, F64Type) {
		t.Errorf("expected f64 to win over i32, got %v", got)
	}
}

func TestWithPointerAndDeref(t *testing.T) {
	ptr := WithPointer(CharType)
	if !ptr.IsPointer() {
		t.Error("WithPointer result should report IsPointer")
	}
	if !TypeEq(ptr.Deref(), CharType) {
		t.Errorf("Deref should recover the original type, got %v", ptr.Deref())
	}
}

func TestStripReferenceNoOpWithoutReference(t *testing.T) {
	if !TypeEq(I32Type.StripReference(), I32Type) {
		t.Error("StripReference on a non-reference type should be a no-op")
	}
}

func TestStripReferenceRemovesLeadingReference(t *testing.T) {
	ref := TypeList{{Kind: token.Reference}, {Kind: token.I32}}
	if !TypeEq(ref.StripReference(), I32Type) {
		t.Errorf("expected i32 after stripping reference, got %v", ref.StripReference())
	}
}

func TestIsIdentifierBase(t *testing.T) {
	ident := TypeList{{Kind: token.Identifier}}
	if !ident.IsIdentifierBase() {
		t.Error("identifier-based type should report IsIdentifierBase")
	}
	if I32Type.IsIdentifierBase() {
		t.Error("builtin scalar should not report IsIdentifierBase")
	}
}
