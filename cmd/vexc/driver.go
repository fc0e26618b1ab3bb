package main

import (
	"fmt"
	"os"
	"path/filepath"

	"vex/internal/ast"
	"vex/internal/checker"
	"vex/internal/common"
	"vex/internal/lexer"
	"vex/internal/parser"
	"vex/internal/project"
	"vex/internal/report"
	"vex/internal/token"
)

// execCheckCommand resolves path to a list of source files (either the
// single file itself, or every file listed by the vex-mod.toml a directory
// contains), parses each into a Program, runs the checker over their
// concatenation, and renders any diagnostics. It returns whether the
// checked program is free of errors.
func execCheckCommand(path string) bool {
	files, ok := resolveSourceFiles(path)
	if !ok {
		return false
	}

	var decs []ast.Declaration
	var tokenizers []token.Tokenizer

	for fileIndex, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			report.ReportStdError(file, err)
			return false
		}

		lx := lexer.NewLexer(file, src)
		tokenizers = append(tokenizers, lx)

		toks, lexOK := lexFile(lx, uint32(fileIndex), file)
		if !lexOK {
			return false
		}

		p := parser.NewParser(uint32(fileIndex), toks, lx)
		prog, parseOK := parseFile(p, file)
		if !parseOK {
			return false
		}
		decs = append(decs, prog.Decs...)
	}

	prog := &ast.Program{Decs: decs}
	c := checker.NewChecker(prog, tokenizers)
	if c.Check() {
		return true
	}

	fmt.Print(c.Sink.Render(tokenizers))
	return false
}

// lexFile runs one file's lexer to completion, recovering a
// report.LocalCompileError thrown on a lexical error.
func lexFile(lx *lexer.Lexer, fileIndex uint32, file string) (toks []token.Token, ok bool) {
	defer report.CatchErrors(file)
	toks = lx.Tokens(fileIndex)
	return toks, report.ShouldProceed()
}

// parseFile runs one file's parser to completion, recovering a
// report.LocalCompileError the same way lexFile recovers lexical errors.
func parseFile(p *parser.Parser, file string) (prog *ast.Program, ok bool) {
	defer report.CatchErrors(file)
	prog = p.ParseProgram()
	return prog, report.ShouldProceed()
}

// resolveSourceFiles accepts either a single .vex file or a directory
// containing a vex-mod.toml module descriptor.
func resolveSourceFiles(path string) ([]string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		report.ReportFatal("unable to access `%s`: %s", path, err.Error())
		return nil, false
	}

	if !info.IsDir() {
		if filepath.Ext(path) != common.VexFileExt {
			report.ReportFatal("`%s` is not a %s file", path, common.VexFileExt)
			return nil, false
		}
		return []string{path}, true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		report.ReportFatal("unable to resolve `%s`: %s", path, err.Error())
		return nil, false
	}
	mod, ok := project.LoadModule(absPath)
	if !ok {
		return nil, false
	}
	// A module with warnings-as-errors set may have just promoted one of
	// its own loading warnings (e.g. a mis-named source file) to an error.
	if !report.ShouldProceed() {
		return nil, false
	}
	return mod.SourceFiles, true
}
