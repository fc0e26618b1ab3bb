package checker

import (
	"strings"

	"vex/internal/ast"
	"vex/internal/token"
)

// Signature produces the one-line pretty-printed declaration signature a
// CheckerError appends when it carries a Related declaration (spec.md
// §4.C). This is deliberately minimal: the full pretty-printer is an
// external collaborator (spec.md §1) the checker only needs enough of to
// label "the other thing you clashed with" in a diagnostic.
func Signature(d ast.Declaration, tokenizers []token.Tokenizer) string {
	tz := tokenizers[d.FileIndex()]
	name := tz.ExtractToken(d.NameToken())

	switch v := d.(type) {
	case *ast.FuncDecl:
		var params []string
		for _, p := range v.Params {
			params = append(params, tz.ExtractToken(p.NameTok)+": "+TypeString(p.Type, tokenizers))
		}
		return "func " + name + "(" + strings.Join(params, ", ") + "): " + TypeString(v.ReturnType, tokenizers)
	case *ast.VarDecl:
		return name + ": " + TypeString(v.Type, tokenizers)
	case *ast.StructDecl:
		return "struct " + name
	case *ast.TemplateDecl:
		return "template " + name
	case *ast.TemplateCreateDecl:
		return "create " + name
	case *ast.IncludeDecl:
		return "include " + name
	case *ast.EnumDecl:
		return "enum " + name
	default:
		return name
	}
}

// TypeString renders a TypeList back to source-like syntax for diagnostics.
func TypeString(t ast.TypeList, tokenizers []token.Tokenizer) string {
	var b strings.Builder
	for _, elem := range t {
		switch elem.Kind {
		case token.Reference:
			b.WriteString("ref ")
		case token.Pointer:
			b.WriteString("ptr ")
		case token.DecPtr:
			// Carries no independent spelling; the preceding Identifier
			// element already printed the struct's name.
		case token.Identifier:
			b.WriteString(tokenizers[elem.NameTok.FileIndex].ExtractToken(elem.NameTok))
		default:
			b.WriteString(builtinTypeName(elem.Kind))
		}
	}
	return strings.TrimSpace(b.String())
}

func builtinTypeName(k token.Kind) string {
	switch k {
	case token.Bool:
		return "bool"
	case token.Char:
		return "char"
	case token.I8:
		return "i8"
	case token.U8:
		return "u8"
	case token.I16:
		return "i16"
	case token.U16:
		return "u16"
	case token.I32:
		return "i32"
	case token.U32:
		return "u32"
	case token.I64:
		return "i64"
	case token.U64:
		return "u64"
	case token.F32:
		return "f32"
	case token.F64:
		return "f64"
	case token.Void:
		return "void"
	case token.NullPtr:
		return "nullptr_t"
	default:
		return "<bad>"
	}
}
