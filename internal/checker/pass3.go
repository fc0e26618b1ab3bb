package checker

import (
	"vex/internal/ast"
	"vex/internal/token"
)

// pass3StructAcyclicity implements spec.md §4.F: a DFS over value-typed
// struct fields, grounded on the teacher's three-color
// depm.CheckForInfiniteTypes walk. Every struct in the program not yet
// Checked is entered; Checked/HasCycle are set directly on the
// *ast.StructDecl nodes so later passes never need to re-walk the graph.
func (c *Checker) pass3StructAcyclicity() {
	for _, d := range c.Prog.Decs {
		s := structOf(d)
		if s == nil || s.Checked {
			continue
		}
		c.walkStructCycle(s, nil)
	}
}

// structOf unwraps a top-level declaration to the *ast.StructDecl it
// carries, if any (including through a TemplateDecl wrapper).
func structOf(d ast.Declaration) *ast.StructDecl {
	switch v := d.(type) {
	case *ast.StructDecl:
		return v
	case *ast.TemplateDecl:
		if inner, ok := v.Inner.(*ast.StructDecl); ok {
			return inner
		}
	}
	return nil
}

// walkStructCycle visits s, recursing into every value-typed struct field.
// chain is the DFS stack of structs currently on the search path (grey).
func (c *Checker) walkStructCycle(s *ast.StructDecl, chain []*ast.StructDecl) {
	chain = append(chain, s)

	for _, m := range s.Members {
		if m.Kind != ast.MemberVar {
			continue
		}

		target, fieldTok := valueTypedStructField(m)
		if target == nil {
			continue
		}

		if target.Checked {
			continue
		}

		if idx := indexInChain(chain, target); idx >= 0 {
			c.Sink.AddTok(StructCycle, fieldTok, s.FileIndex(), target,
				"struct %q has a cyclic value-typed field through %q",
				c.name(s.FileIndex(), s.NameToken()), c.name(target.FileIndex(), target.NameToken()))
			// "set has_cycle on the matched chain link (not on earlier
			// links)" -- spec.md §4.F rule 2.
			chain[idx].HasCycle = true
			continue
		}

		c.walkStructCycle(target, chain)
	}

	s.Checked = true
}

// valueTypedStructField returns the struct a member's declared type refers
// to when that reference is value-typed (spec.md §4.F: "strip one leading
// Reference; if the base is a Pointer qualifier, skip"), plus the token a
// cycle diagnostic should be anchored to.
func valueTypedStructField(m *ast.StructMember) (*ast.StructDecl, token.Token) {
	t := m.VarType.StripReference()
	if t.IsPointer() {
		return nil, token.Token{}
	}
	target := t.ResolvedStruct()
	if target == nil {
		return nil, token.Token{}
	}
	return target, m.NameTok
}

func indexInChain(chain []*ast.StructDecl, target *ast.StructDecl) int {
	for i, s := range chain {
		if s == target {
			return i
		}
	}
	return -1
}
