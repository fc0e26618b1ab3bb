package project

import (
	"os"
	"path/filepath"
	"testing"

	"vex/internal/report"
)

func writeModuleFile(t *testing.T, dir, contents string) {
	t.Helper()
	path := filepath.Join(dir, "vex-mod.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadModuleSuccess(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()
	writeModuleFile(t, dir, `
name = "widgets"
files = ["main.vex", "util.vex"]

[checker]
warnings-as-errors = true
`)

	mod, ok := LoadModule(dir)
	if !ok {
		t.Fatal("expected LoadModule to succeed")
	}
	if mod.Name != "widgets" {
		t.Errorf("expected name %q, got %q", "widgets", mod.Name)
	}
	if !mod.WarningsAsError {
		t.Error("expected warnings-as-errors to be true")
	}
	if len(mod.SourceFiles) != 2 {
		t.Fatalf("expected 2 source files, got %d", len(mod.SourceFiles))
	}
	want := filepath.Join(dir, "main.vex")
	if mod.SourceFiles[0] != want {
		t.Errorf("expected %q, got %q", want, mod.SourceFiles[0])
	}
}

func TestLoadModuleDefaultsWarningsAsErrorToFalse(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()
	writeModuleFile(t, dir, `
name = "widgets"
files = ["main.vex"]
`)

	mod, ok := LoadModule(dir)
	if !ok {
		t.Fatal("expected LoadModule to succeed")
	}
	if mod.WarningsAsError {
		t.Error("expected warnings-as-errors to default to false")
	}
}

// A module with warnings-as-errors set promotes even its own loading
// warnings (e.g. a mis-named source file) to errors: LoadModule still
// succeeds (the file is only a warning, not a validation failure), but
// ShouldProceed reports false afterward.
func TestWarningsAsErrorsPromotesModuleWarningToError(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()
	writeModuleFile(t, dir, `
name = "widgets"
files = ["main.txt"]

[checker]
warnings-as-errors = true
`)

	_, ok := LoadModule(dir)
	if !ok {
		t.Fatal("a mis-named source file is only a warning; LoadModule should still succeed")
	}
	if report.ShouldProceed() {
		t.Error("expected the mis-named-file warning to be promoted to an error")
	}
}

// Without warnings-as-errors, the same mis-named file is a non-fatal
// warning: LoadModule succeeds and ShouldProceed stays true.
func TestWarningsAsErrorsOffLeavesWarningNonFatal(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)
	dir := t.TempDir()
	writeModuleFile(t, dir, `
name = "widgets"
files = ["main.txt"]
`)

	_, ok := LoadModule(dir)
	if !ok {
		t.Fatal("expected LoadModule to succeed")
	}
	if !report.ShouldProceed() {
		t.Error("a plain warning should not block proceeding when warnings-as-errors is unset")
	}
}

func TestValidateModuleRejectsMissingName(t *testing.T) {
	mod := &Module{}
	tm := &tomlModule{Files: []string{"main.vex"}}
	if validateModule(mod, tm, "/tmp/whatever") {
		t.Error("expected validateModule to reject a missing name")
	}
}

func TestValidateModuleRejectsInvalidIdentifierName(t *testing.T) {
	mod := &Module{}
	tm := &tomlModule{Name: "123bad", Files: []string{"main.vex"}}
	if validateModule(mod, tm, "/tmp/whatever") {
		t.Error("expected validateModule to reject a non-identifier name")
	}
}

func TestValidateModuleRejectsNoFiles(t *testing.T) {
	mod := &Module{}
	tm := &tomlModule{Name: "widgets"}
	if validateModule(mod, tm, "/tmp/whatever") {
		t.Error("expected validateModule to reject an empty file list")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"widgets", "_private", "a1", "CamelCase"}
	invalid := []string{"", "1abc", "has space", "has-dash"}

	for _, id := range valid {
		if !IsValidIdentifier(id) {
			t.Errorf("expected %q to be a valid identifier", id)
		}
	}
	for _, id := range invalid {
		if IsValidIdentifier(id) {
			t.Errorf("expected %q to be an invalid identifier", id)
		}
	}
}
