package token

// Kind is the closed enumeration of lexical token kinds (spec.md §3).  Three
// groups of kinds matter to the checker: built-in type tokens, qualifiers,
// and the operators/literals/keywords consulted by the expression typer.
// Everything else (punctuation, keywords that only matter to the parser) is
// here too, since the lexer and parser live in this module as well, but the
// checker only ever switches on the subset spec.md names.
type Kind int

const (
	// Identifiers and literals.
	Identifier Kind = iota
	DecimalNumber
	StringLiteral
	CharLiteral
	NullPtrLit
	True
	False

	// Built-in type tokens.
	Bool
	Char
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
	Void
	Pointer // also a qualifier, see IsQualifier
	NullPtr // the *type* `nullptr_t`, distinct from the NullPtrLit literal

	// Qualifiers.
	Reference

	// DecPtr is a sentinel never produced by the lexer.  Pass 2 appends it
	// (with the resolved struct declaration riding alongside it) to an
	// identifier-based TypeList so later passes can compare struct
	// identities without re-resolving names.
	DecPtr

	// Keywords.
	Func
	Struct
	Template
	Create
	Include
	Enum
	Let
	If
	Elif
	Else
	For
	While
	Switch
	Case
	Default
	Break
	Continue
	Return

	// Operators.
	Plus
	Minus
	Star
	Divide
	Mod
	Assign
	PlusEq
	MinusEq
	StarEq
	DivideEq
	ModEq
	Equal
	NotEqual
	Less
	Greater
	LessEq
	GreaterEq
	LogicalAnd
	LogicalOr
	Not
	Amp
	Pipe
	Caret
	Compl
	LeftShift
	RightShift
	Increment
	Decrement
	Dot
	Arrow

	// Punctuation.
	Comma
	Colon
	Semicolon
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket

	EOF
)

// IsBuiltinType reports whether kind is one of the built-in type tokens that
// may terminate a TypeList as a base.
func IsBuiltinType(k Kind) bool {
	switch k {
	case Bool, Char, I8, U8, I16, U16, I32, U32, I64, U64, F32, F64, Void, Pointer, NullPtr:
		return true
	default:
		return false
	}
}

// IsQualifier reports whether kind is a type-chain qualifier token.
func IsQualifier(k Kind) bool {
	return k == Reference || k == Pointer
}

// IsAssignment reports whether kind is a (possibly compound) assignment
// operator.
func IsAssignment(k Kind) bool {
	switch k {
	case Assign, PlusEq, MinusEq, StarEq, DivideEq, ModEq:
		return true
	default:
		return false
	}
}

// IsLogicalComparison reports whether kind is an equality/ordering
// comparison operator (the kind that can never apply to a struct or void
// operand and always yields bool).
func IsLogicalComparison(k Kind) bool {
	switch k {
	case Equal, NotEqual, Less, Greater, LessEq, GreaterEq:
		return true
	default:
		return false
	}
}

// IsBinaryOp reports whether kind can appear as a Binary expression's
// operator.
func IsBinaryOp(k Kind) bool {
	if IsAssignment(k) || IsLogicalComparison(k) {
		return true
	}
	switch k {
	case Plus, Minus, Star, Divide, Mod,
		LogicalAnd, LogicalOr,
		Amp, Pipe, Caret, LeftShift, RightShift,
		Dot, Arrow:
		return true
	default:
		return false
	}
}

// IsUnaryOp reports whether kind can appear as a Unary expression's
// operator.
func IsUnaryOp(k Kind) bool {
	switch k {
	case Not, Minus, Amp, Star, Increment, Decrement:
		return true
	default:
		return false
	}
}
