package checker

import (
	"vex/internal/ast"
	"vex/internal/token"
)

// Checker is the stateful orchestrator of spec.md §2: a shared mutable
// symbol table plus an append-only diagnostic sink, run once over a whole
// Program.
type Checker struct {
	Prog       *ast.Program
	Tokenizers []token.Tokenizer
	Sym        *Symtab
	Sink       *Sink
}

func NewChecker(prog *ast.Program, tokenizers []token.Tokenizer) *Checker {
	return &Checker{
		Prog:       prog,
		Tokenizers: tokenizers,
		Sym:        NewSymtab(),
		Sink:       NewSink(),
	}
}

// name extracts the spelling of tok using the tokenizer for fileIndex.
func (c *Checker) name(fileIndex uint32, tok token.Token) string {
	return c.Tokenizers[fileIndex].ExtractToken(tok)
}

// Check runs Pass 1 through Pass 4 in order (spec.md §2's "A→B→...→H
// sequentially"). Each pass short-circuits the next if it left the sink
// non-empty (spec.md §7: "prevents cascading errors that depend on earlier
// validation"). It returns true iff the sink is empty at the end of
// whichever pass actually ran last.
func (c *Checker) Check() bool {
	c.pass1DeclarationCollection()
	if !c.Sink.Empty() {
		return false
	}

	c.pass2HeaderValidation()
	if !c.Sink.Empty() {
		return false
	}

	c.pass3StructAcyclicity()
	if !c.Sink.Empty() {
		return false
	}

	c.pass4BodyChecking()
	return c.Sink.Empty()
}
