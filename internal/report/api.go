package report

import (
	"fmt"
	"os"
)

// ReportCompileError prints a compile error tied to a source position and
// bumps the reporter's error count.
func ReportCompileError(reprPath string, pos *TextPosition, msg string) {
	rep.m.Lock()
	rep.errorCount++
	lvl := rep.logLevel
	rep.m.Unlock()

	if lvl > LogLevelSilent {
		displayCompileMessage("error", reprPath, pos, msg)
	}
}

// ReportCompileWarning prints a compile warning. If the loaded module set
// [checker] warnings-as-errors, the warning is promoted: it bumps the
// error count like ReportCompileError and displays at error, not warning,
// visibility.
func ReportCompileWarning(reprPath string, pos *TextPosition, msg string) {
	rep.m.Lock()
	promoted := rep.warnAsError
	if promoted {
		rep.errorCount++
	}
	lvl := rep.logLevel
	rep.m.Unlock()

	if promoted {
		if lvl > LogLevelSilent {
			displayCompileMessage("error", reprPath, pos, msg)
		}
		return
	}
	if lvl > LogLevelWarn {
		displayCompileMessage("warning", reprPath, pos, msg)
	}
}

// ReportStdError prints a plain Go error attributed to a file.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	rep.errorCount++
	rep.m.Unlock()

	displayStdError(reprPath, err)
}

// ReportModuleError reports an error loading or validating a vex-mod.toml.
func ReportModuleError(modName, msg string) {
	rep.m.Lock()
	rep.errorCount++
	rep.m.Unlock()

	displayModuleMessage("error", modName, msg)
}

// ReportModuleWarning reports a warning from loading a module. Promoted to
// an error the same way ReportCompileWarning is when warnings-as-errors is
// set.
func ReportModuleWarning(modName, msg string) {
	rep.m.Lock()
	promoted := rep.warnAsError
	if promoted {
		rep.errorCount++
	}
	rep.m.Unlock()

	if promoted {
		displayModuleMessage("error", modName, msg)
		return
	}
	displayModuleMessage("warning", modName, msg)
}

// ReportFatal reports a fatal, non-recoverable error and exits the process.
func ReportFatal(format string, args ...interface{}) {
	displayFatal(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// ReportICE reports an internal checker error: a parser-contract violation
// or other condition the checker asserts can never happen (spec.md §7).
func ReportICE(format string, args ...interface{}) {
	displayICE(fmt.Sprintf(format, args...))
	os.Exit(2)
}
