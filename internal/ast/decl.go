package ast

import "vex/internal/token"

// Param is one parameter of a function signature.
type Param struct {
	NameTok token.Token
	Type    TypeList
}

// FuncDecl is a function (or member-function) declaration.  Body is nil for
// a member-function signature that is never given a body in this profile of
// the language (member functions are declared but their bodies, if present,
// are checked the same way free functions are).
type FuncDecl struct {
	declBase
	Params     []Param
	ReturnType TypeList
	Body       *ScopeStmt
}

func NewFuncDecl(nameTok token.Token, fileIndex uint32, params []Param, returnType TypeList, body *ScopeStmt) *FuncDecl {
	return &FuncDecl{
		declBase: declBase{kind: DeclFunction, fileIndex: fileIndex, nameTok: nameTok},
		Params:   params, ReturnType: returnType, Body: body,
	}
}

// VarDecl is a global variable declaration.  Local variable declarations
// reuse this same type from within a VarDecStmt.
type VarDecl struct {
	declBase
	Type TypeList
	Init Expr // None if there is no initializer
}

func NewVarDecl(nameTok token.Token, fileIndex uint32, typ TypeList, init Expr) *VarDecl {
	if init == nil {
		init = NoneNode
	}
	return &VarDecl{declBase: declBase{kind: DeclVariable, fileIndex: fileIndex, nameTok: nameTok}, Type: typ, Init: init}
}

// StructMemberKind distinguishes a struct's variable members from its member
// functions.
type StructMemberKind int

const (
	MemberVar StructMemberKind = iota
	MemberFunc
)

// StructMember is one entry of struct_lookup[struct_name]: either a typed
// field or a member function.
type StructMember struct {
	Kind     StructMemberKind
	NameTok  token.Token
	VarType  TypeList  // set when Kind == MemberVar
	FuncSig  *FuncDecl // set when Kind == MemberFunc
	Struct   *StructDecl
}

// StructDecl is a struct declaration.  Checked/HasCycle are the Pass 3
// bookkeeping bits described in spec.md §3's invariants.
type StructDecl struct {
	declBase
	Members  []*StructMember
	Checked  bool
	HasCycle bool
}

func NewStructDecl(nameTok token.Token, fileIndex uint32, members []*StructMember) *StructDecl {
	s := &StructDecl{declBase: declBase{kind: DeclStruct, fileIndex: fileIndex, nameTok: nameTok}, Members: members}
	for _, m := range s.Members {
		m.Struct = s
	}
	return s
}

// TemplateDecl wraps a struct or function declaration with a list of
// template type parameter names.  Full instantiation (deep copy with type
// substitution) is a Non-goal; this models only the declaration/skeleton
// half of spec.md §1.
type TemplateDecl struct {
	declBase
	TypeParams []token.Token
	Inner      Declaration // *StructDecl or *FuncDecl
}

func NewTemplateDecl(fileIndex uint32, typeParams []token.Token, inner Declaration) *TemplateDecl {
	return &TemplateDecl{
		declBase:   declBase{kind: DeclTemplate, fileIndex: fileIndex, nameTok: inner.NameToken()},
		TypeParams: typeParams, Inner: inner,
	}
}

// TemplateCreateDecl requests an instantiation of a template with concrete
// type arguments.  Instantiation proper is deferred (Non-goal); the checker
// only validates argument arity and that each identifier argument resolves.
type TemplateCreateDecl struct {
	declBase
	Args []token.Token // each is either a builtin type token or an Identifier
}

func NewTemplateCreateDecl(templateNameTok token.Token, fileIndex uint32, args []token.Token) *TemplateCreateDecl {
	return &TemplateCreateDecl{
		declBase: declBase{kind: DeclTemplateCreate, fileIndex: fileIndex, nameTok: templateNameTok},
		Args:     args,
	}
}

// IncludeDecl records a source-level `include`.  No cross-file symbol
// binding is performed (Non-goal: "modules/imports beyond include").
type IncludeDecl struct {
	declBase
	PathTok token.Token
}

func NewIncludeDecl(pathTok token.Token, fileIndex uint32) *IncludeDecl {
	return &IncludeDecl{declBase: declBase{kind: DeclInclude, fileIndex: fileIndex, nameTok: pathTok}}
}

// EnumDecl is an enum declaration: a flat set of member names with no
// explicit discriminants or underlying type (Non-goal by omission, see
// SPEC_FULL.md).
type EnumDecl struct {
	declBase
	Members []token.Token
}

func NewEnumDecl(nameTok token.Token, fileIndex uint32, members []token.Token) *EnumDecl {
	return &EnumDecl{declBase: declBase{kind: DeclEnum, fileIndex: fileIndex, nameTok: nameTok}, Members: members}
}
