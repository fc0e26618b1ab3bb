package ast

import "vex/internal/token"

// TypeElem is one link of a TypeList: a qualifier, a built-in base, an
// Identifier base awaiting (or having completed) resolution, or the
// synthetic DecPtr sentinel Pass 2 appends after a resolved struct
// identifier.
type TypeElem struct {
	Kind    token.Kind
	NameTok token.Token // meaningful when Kind == token.Identifier
	Struct  *StructDecl // meaningful when Kind == token.DecPtr
}

// TypeList is the canonical representation of a declared type: an ordered,
// non-empty chain `[q0, q1, ..., base]` (spec.md §3).  After Pass 2, an
// identifier base is augmented with a trailing DecPtr element.
type TypeList []TypeElem

// Base returns the rightmost non-DecPtr element: the type's base kind.
func (t TypeList) Base() TypeElem {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Kind != token.DecPtr {
			return t[i]
		}
	}
	return TypeElem{}
}

// ResolvedStruct returns the struct a DecPtr-augmented identifier base
// resolves to, or nil if this type's base isn't a resolved struct.
func (t TypeList) ResolvedStruct() *StructDecl {
	if len(t) == 0 {
		return nil
	}
	last := t[len(t)-1]
	if last.Kind == token.DecPtr {
		return last.Struct
	}
	return nil
}

// IsPointer reports whether this type's leading qualifier is Pointer.
func (t TypeList) IsPointer() bool {
	return len(t) > 0 && t[0].Kind == token.Pointer
}

// IsReference reports whether this type's leading qualifier is Reference.
func (t TypeList) IsReference() bool {
	return len(t) > 0 && t[0].Kind == token.Reference
}

// Deref strips one leading Pointer qualifier.  The caller must have already
// checked IsPointer.
func (t TypeList) Deref() TypeList {
	return t[1:]
}

// StripReference strips one leading Reference qualifier, if present.
func (t TypeList) StripReference() TypeList {
	if t.IsReference() {
		return t[1:]
	}
	return t
}

// IsIdentifierBase reports whether the type's base is a user-defined
// (Identifier) type, as opposed to a built-in scalar.
func (t TypeList) IsIdentifierBase() bool {
	return t.Base().Kind == token.Identifier
}

// IsVoid reports whether this type is the bare Void base with no leading
// qualifier. ptr void / ref void are pointer/reference types whose base
// happens to be Void, not Void themselves -- callers that mean "any chain
// bottoming out in Void" want Base().Kind == token.Void instead.
func (t TypeList) IsVoid() bool    { return len(t) == 1 && t[0].Kind == token.Void }
func (t TypeList) IsBad() bool     { return t.Base().Kind == badKind }
func (t TypeList) IsNothing() bool { return t.Base().Kind == nothingKind }

// withPointer returns a new TypeList that is `ptr` prepended to t.
func withPointer(t TypeList) TypeList {
	out := make(TypeList, len(t)+1)
	out[0] = TypeElem{Kind: token.Pointer}
	copy(out[1:], t)
	return out
}

// WithPointer is withPointer exported for callers outside this package that
// construct a fresh pointer type, e.g. the expression typer's AddressOf rule
// (spec.md §4.H).
func WithPointer(t TypeList) TypeList { return withPointer(t) }

// -----------------------------------------------------------------------------
// Process-wide immutable singleton types (spec.md §4.A).  BadType and
// NothingType use sentinel Kind values far above the lexer's own kinds so
// they can never collide with a real token produced by the lexer.

const (
	badKind     token.Kind = 1 << 20
	nothingKind token.Kind = 1<<20 + 1
)

func simple(k token.Kind) TypeList { return TypeList{{Kind: k}} }

var (
	BoolType      = simple(token.Bool)
	CharType      = simple(token.Char)
	I32Type       = simple(token.I32)
	U32Type       = simple(token.U32)
	I64Type       = simple(token.I64)
	U64Type       = simple(token.U64)
	F32Type       = simple(token.F32)
	F64Type       = simple(token.F64)
	VoidType      = simple(token.Void)
	NullPtrType   = simple(token.NullPtr)
	BadType       = simple(badKind)
	NothingType   = simple(nothingKind)
	PtrToVoidType = withPointer(VoidType)
	PtrToCharType = withPointer(CharType) // spec.md §4.A: "PTR_TO_CHAR (= string)"
)

// numericRank orders built-in numeric bases for largest_type's "largest
// wins" rule (spec.md §4.A).  Types absent from this table (e.g. bool,
// char) are treated by largest_type as i32, the floor.
var numericRank = map[token.Kind]int{
	token.I8: 0, token.U8: 0,
	token.I16: 1, token.U16: 1,
	token.I32: 2, token.U32: 2,
	token.I64: 3, token.U64: 3,
	token.F32: 4, token.F64: 5,
}

// TypeEq reports structural equality of two type chains: same length, same
// kind at each position, and -- for DecPtr sentinels -- the same resolved
// struct identity.  This is the `type_eq` of spec.md §4.A: an exact
// comparison of two already-resolved types.  The checker's passes do not call
// it; they use AssignmentCompatible's looser structural comparison.
func TypeEq(a, b TypeList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
		if a[i].Kind == token.DecPtr && a[i].Struct != b[i].Struct {
			return false
		}
	}
	return true
}

// LargestType implements spec.md §4.A's `largest_type`: if either operand is
// a pointer, the result is `ptr void`; otherwise the result is whichever
// operand's base has the greater numeric rank, floored at i32.
func LargestType(a, b TypeList) TypeList {
	if a.IsPointer() || b.IsPointer() {
		return PtrToVoidType
	}

	ra, aok := numericRank[a.Base().Kind]
	rb, bok := numericRank[b.Base().Kind]
	if !aok {
		ra = numericRank[token.I32]
		a = I32Type
	}
	if !bok {
		rb = numericRank[token.I32]
		b = I32Type
	}

	floor := numericRank[token.I32]
	best := ra
	result := a
	if rb > best {
		best = rb
		result = b
	}
	if best < floor {
		return I32Type
	}
	return result
}
