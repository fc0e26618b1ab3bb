package checker

import (
	"fmt"
	"strings"

	"vex/internal/ast"
	"vex/internal/report"
	"vex/internal/token"
)

// CheckerError is one accumulated diagnostic: spec.md §4.C's
// CheckerError{kind, token, file_index, optional related_decl}.
type CheckerError struct {
	Kind      ErrorKind
	Token     token.Token
	FileIndex uint32
	Message   string
	Related   ast.Declaration
}

// Sink is the ordered, append-only diagnostic accumulator every pass writes
// into (spec.md §4.C, §5's "append-only" guarantee).
type Sink struct {
	Errors []*CheckerError
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Empty() bool { return len(s.Errors) == 0 }

// add is the single internal path every public AddX helper funnels through.
func (s *Sink) add(kind ErrorKind, tok token.Token, fileIndex uint32, msg string, related ast.Declaration) {
	s.Errors = append(s.Errors, &CheckerError{Kind: kind, Token: tok, FileIndex: fileIndex, Message: msg, Related: related})
}

// AddTok records a diagnostic anchored directly to a token.
func (s *Sink) AddTok(kind ErrorKind, tok token.Token, fileIndex uint32, related ast.Declaration, format string, args ...interface{}) {
	s.add(kind, tok, fileIndex, fmt.Sprintf(format, args...), related)
}

// AddExpr records a diagnostic anchored to an expression's representative
// token (spec.md §4.C): the operator token for Unary/Binary, the name token
// for Call/Value, and recursively through Wrapped/ArrayOrStructLiteral. An
// expression kind with no representative token at all is a parser-contract
// violation (spec.md §7, fatal condition 3) and is reported as an internal
// checker error rather than silently swallowed.
func (s *Sink) AddExpr(kind ErrorKind, expr ast.Expr, fileIndex uint32, related ast.Declaration, format string, args ...interface{}) {
	tok, ok := ast.RepresentativeToken(expr)
	if !ok {
		report.ReportICE("unable to extract a representative token from expression kind %d", expr.Kind())
		return
	}
	s.add(kind, tok, fileIndex, fmt.Sprintf(format, args...), related)
}

// Render formats every accumulated error as spec.md §6 describes:
// "file:line:col\n<kind-message>\n" and, when Related is present, a
// trailing pretty-printed declaration signature.
func (s *Sink) Render(tokenizers []token.Tokenizer) string {
	var b strings.Builder
	for _, e := range s.Errors {
		b.WriteString(e.Render(tokenizers))
	}
	return b.String()
}

func (e *CheckerError) Render(tokenizers []token.Tokenizer) string {
	tz := tokenizers[e.FileIndex]
	pos := tz.PositionInfo(e.Token)

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d\n", tz.FilePath(), pos.Line, pos.Col)
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Related != nil {
		b.WriteString("Declaration defined as such: ")
		b.WriteString(Signature(e.Related, tokenizers))
		b.WriteString("\n")
	}

	return b.String()
}
