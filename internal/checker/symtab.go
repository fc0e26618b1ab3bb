package checker

import "vex/internal/ast"

// Symtab is the two-level symbol table of spec.md §4.B: a flat map of
// global names to their declaration, and a struct-name -> member-name map
// for struct bodies.  Insertion is exclusive: the first registration of a
// name wins and every later attempt is reported by the caller as
// NameAlreadyInUse against the winner (spec.md §3's invariants).
//
// lookup also serves as the scope stack's storage: Pass 4 inserts and
// removes local/parameter names from the very same map it reads global
// names from, using strict LIFO discipline, which is spec.md §3's stated
// "sole mechanism for lexical scoping".
type Symtab struct {
	lookup       map[string]ast.Declaration
	structLookup map[string]map[string]*ast.StructMember
	enumLookup   map[string]map[string]bool
}

func NewSymtab() *Symtab {
	return &Symtab{
		lookup:       make(map[string]ast.Declaration),
		structLookup: make(map[string]map[string]*ast.StructMember),
		enumLookup:   make(map[string]map[string]bool),
	}
}

// Lookup resolves name against the currently-visible scope.
func (st *Symtab) Lookup(name string) (ast.Declaration, bool) {
	d, ok := st.lookup[name]
	return d, ok
}

// Define registers name -> decl if name is not already taken.  It returns
// false and the prior declaration when name is already in use; the caller
// is responsible for reporting NameAlreadyInUse with that prior declaration
// as Related, per spec.md §4.B.
func (st *Symtab) Define(name string, decl ast.Declaration) (ast.Declaration, bool) {
	if prior, ok := st.lookup[name]; ok {
		return prior, false
	}
	st.lookup[name] = decl
	return nil, true
}

// Remove deletes name from the current scope.  Scopes must call this in
// strict LIFO order as they unwind (spec.md §3, §5).
func (st *Symtab) Remove(name string) {
	delete(st.lookup, name)
}

// DefineMember registers structName.memberName -> member, with the same
// first-wins conflict semantics as Define.
func (st *Symtab) DefineMember(structName, memberName string, member *ast.StructMember) (*ast.StructMember, bool) {
	sub, ok := st.structLookup[structName]
	if !ok {
		sub = make(map[string]*ast.StructMember)
		st.structLookup[structName] = sub
	}
	if prior, ok := sub[memberName]; ok {
		return prior, false
	}
	sub[memberName] = member
	return nil, true
}

// Member looks up structName.memberName.
func (st *Symtab) Member(structName, memberName string) (*ast.StructMember, bool) {
	sub, ok := st.structLookup[structName]
	if !ok {
		return nil, false
	}
	m, ok := sub[memberName]
	return m, ok
}

// DefineEnumMember registers enumName.memberName for uniqueness checking
// (SPEC_FULL.md's supplemented enum-member-uniqueness feature).
func (st *Symtab) DefineEnumMember(enumName, memberName string) bool {
	sub, ok := st.enumLookup[enumName]
	if !ok {
		sub = make(map[string]bool)
		st.enumLookup[enumName] = sub
	}
	if sub[memberName] {
		return false
	}
	sub[memberName] = true
	return true
}

// GlobalNames returns the set of names currently registered in the top
// (global) scope -- used by tests asserting symbol-table hygiene (spec.md
// §8, property 2).
func (st *Symtab) GlobalNames() []string {
	names := make([]string, 0, len(st.lookup))
	for name := range st.lookup {
		names = append(names, name)
	}
	return names
}
