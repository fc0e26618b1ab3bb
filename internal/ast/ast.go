// Package ast defines the pointer-graph AST the parser produces and the
// checker walks: a forest of top-level Declarations linked by identifier
// Tokens into the source buffers owned by the lexer/tokenizer collaborators.
//
// Every cross-reference in this package is a plain Go pointer rather than an
// arena index.  Declarations are heap-allocated once by the parser (or, for
// template scratch placeholders, by the checker) and are never freed
// individually -- this mirrors the teacher's arena discipline without
// needing an arena, since the Go runtime already owns that problem.  See
// DESIGN.md for why the DeclId/ExprId-index alternative sketched in
// spec.md §9 was not adopted.
package ast

import "vex/internal/token"

// DeclKind is the closed set of top-level declaration variants.
type DeclKind int

const (
	DeclFunction DeclKind = iota
	DeclVariable
	DeclStruct
	DeclTemplate
	DeclTemplateCreate
	DeclInclude
	DeclEnum
)

// Declaration is the tagged-union interface every top-level declaration
// implements.  Kind answers a type switch; the rest of the accessors are the
// fields Pass 1-4 need regardless of which concrete variant they're holding.
type Declaration interface {
	Kind() DeclKind
	NameToken() token.Token
	FileIndex() uint32
	IsValid() bool
	SetValid(bool)
}

// declBase is embedded by every concrete declaration type.
type declBase struct {
	kind      DeclKind
	fileIndex uint32
	nameTok   token.Token
	valid     bool
}

func (d *declBase) Kind() DeclKind        { return d.kind }
func (d *declBase) NameToken() token.Token { return d.nameTok }
func (d *declBase) FileIndex() uint32      { return d.fileIndex }
func (d *declBase) IsValid() bool          { return d.valid }
func (d *declBase) SetValid(v bool)        { d.valid = v }

// Program is the root of the AST: every top-level declaration across every
// file of a module, in source order across files in module-file order.
type Program struct {
	Decs []Declaration
}
