// Package project loads a vex-mod.toml module descriptor: a module name,
// the list of source files that make up the module, and a [checker] table
// of checker-behavior toggles (spec.md names none of this; it is the
// ambient project-loading layer a CLI driver needs to have something
// realistic to hand the checker).
package project

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"vex/internal/common"
	"vex/internal/report"
)

// tomlModule is a vex-mod.toml file as TOML decodes it.
type tomlModule struct {
	Name  string   `toml:"name"`
	Files []string `toml:"files"`

	Checker struct {
		WarningsAsErrors bool `toml:"warnings-as-errors"`
	} `toml:"checker"`
}

// Module is a loaded and validated vex module: a name plus the absolute
// paths of every source file it owns.
type Module struct {
	Name            string
	AbsPath         string
	SourceFiles     []string
	WarningsAsError bool
}

// LoadModule loads and validates the vex-mod.toml found in abspath. abspath
// must be the directory containing the descriptor, not the descriptor file
// itself.
func LoadModule(abspath string) (*Module, bool) {
	descPath := filepath.Join(abspath, common.VexModuleFileName)

	f, err := os.Open(descPath)
	if err != nil {
		report.ReportFatal("unable to open module file at `%s`: %s", descPath, err.Error())
		return nil, false
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		report.ReportFatal("error reading module file at `%s`: %s", descPath, err.Error())
		return nil, false
	}

	tm := &tomlModule{}
	if err := toml.Unmarshal(buff, tm); err != nil {
		report.ReportFatal("error parsing module file at `%s`: %s", descPath, err.Error())
		return nil, false
	}

	mod := &Module{AbsPath: abspath}
	if !validateModule(mod, tm, abspath) {
		return nil, false
	}

	return mod, true
}

func validateModule(mod *Module, tm *tomlModule, abspath string) bool {
	if tm.Name == "" {
		report.ReportModuleError(abspath, "missing module name")
		return false
	}
	if !IsValidIdentifier(tm.Name) {
		report.ReportModuleError(abspath, "module name must be a valid identifier")
		return false
	}
	if len(tm.Files) == 0 {
		report.ReportModuleError(tm.Name, "module must list at least one source file")
		return false
	}

	mod.Name = tm.Name
	mod.WarningsAsError = tm.Checker.WarningsAsErrors
	// Set before the file-extension warnings below are emitted so a module
	// that promotes warnings to errors actually promotes its own warnings.
	report.SetWarnAsError(mod.WarningsAsError)

	for _, relPath := range tm.Files {
		abs := filepath.Join(abspath, relPath)
		if filepath.Ext(abs) != common.VexFileExt {
			report.ReportModuleWarning(tm.Name, "source file `"+relPath+"` does not have the "+common.VexFileExt+" extension")
		}
		mod.SourceFiles = append(mod.SourceFiles, abs)
	}

	return true
}

// IsValidIdentifier reports whether idstr is a valid vex identifier: a
// leading letter or underscore, followed by letters, digits, or
// underscores.
func IsValidIdentifier(idstr string) bool {
	if len(idstr) == 0 {
		return false
	}

	c := idstr[0]
	if !(c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return false
	}

	for _, c := range idstr[1:] {
		if c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
			continue
		}
		return false
	}

	return true
}
