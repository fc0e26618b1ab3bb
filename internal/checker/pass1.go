package checker

import (
	"vex/internal/ast"
	"vex/internal/token"
)

// pass1DeclarationCollection implements spec.md §4.D: register every
// top-level name and every struct member name, detecting duplicates against
// the first registration.
func (c *Checker) pass1DeclarationCollection() {
	for _, d := range c.Prog.Decs {
		c.collectDecl(d)
	}
}

func (c *Checker) collectDecl(d ast.Declaration) {
	switch v := d.(type) {
	case *ast.FuncDecl:
		c.defineGlobal(v.NameToken(), v.FileIndex(), v)
	case *ast.VarDecl:
		c.defineGlobal(v.NameToken(), v.FileIndex(), v)
	case *ast.StructDecl:
		c.defineGlobal(v.NameToken(), v.FileIndex(), v)
		c.collectStructMembers(v)
	case *ast.TemplateDecl:
		// Registers under the inner declaration's name (spec.md §4.D).
		c.defineGlobal(v.Inner.NameToken(), v.FileIndex(), v)
		if inner, ok := v.Inner.(*ast.StructDecl); ok {
			c.collectStructMembers(inner)
		}
	case *ast.TemplateCreateDecl:
		// TemplateCreate introduces no name of its own; it is validated in
		// Pass 2 against the template it names.
	case *ast.IncludeDecl:
		// No-op placeholder declaration (SPEC_FULL.md supplemented
		// feature): include never registers a name and never binds
		// anything cross-file.
	case *ast.EnumDecl:
		c.defineGlobal(v.NameToken(), v.FileIndex(), v)
		c.collectEnumMembers(v)
	}
}

// defineGlobal registers d under the spelling of nameTok, reporting
// NameAlreadyInUse against the prior registration on conflict (spec.md
// §4.B/§4.D: "do not overwrite").
func (c *Checker) defineGlobal(nameTok token.Token, fileIndex uint32, d ast.Declaration) {
	name := c.name(fileIndex, nameTok)
	if prior, ok := c.Sym.Define(name, d); !ok {
		c.Sink.AddTok(NameAlreadyInUse, nameTok, fileIndex, prior,
			"name %q is already defined", name)
	}
}

func (c *Checker) collectStructMembers(s *ast.StructDecl) {
	structName := c.name(s.FileIndex(), s.NameToken())

	if len(s.Members) == 0 {
		c.Sink.AddTok(EmptyStruct, s.NameToken(), s.FileIndex(), nil,
			"struct %q has no members", structName)
		return
	}

	for _, m := range s.Members {
		memberName := c.name(s.FileIndex(), m.NameTok)
		if prior, ok := c.Sym.DefineMember(structName, memberName, m); !ok {
			c.Sink.AddTok(NameAlreadyInUse, m.NameTok, s.FileIndex(), relatedForMember(prior),
				"member %q is already defined on struct %q", memberName, structName)
		}
	}
}

func (c *Checker) collectEnumMembers(e *ast.EnumDecl) {
	enumName := c.name(e.FileIndex(), e.NameToken())
	for _, memberTok := range e.Members {
		memberName := c.name(e.FileIndex(), memberTok)
		if !c.Sym.DefineEnumMember(enumName, memberName) {
			c.Sink.AddTok(NameAlreadyInUse, memberTok, e.FileIndex(), nil,
				"member %q is already defined on enum %q", memberName, enumName)
		}
	}
}

// relatedForMember synthesizes the "prior declaration" a NameAlreadyInUse
// for a struct member points at. Member functions carry a FuncSig that is
// itself an ast.Declaration; plain fields have none, so the struct itself is
// used as the closest available anchor (spec.md §3's "Error-report
// declarations ... allocated ... and owned by the diagnostic" -- here,
// no fresh node is needed since the struct is already a stable declaration).
func relatedForMember(m *ast.StructMember) ast.Declaration {
	if m.Kind == ast.MemberFunc && m.FuncSig != nil {
		return m.FuncSig
	}
	return m.Struct
}
