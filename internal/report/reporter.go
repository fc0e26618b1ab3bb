package report

import "sync"

// Enumeration of log levels controlling how much the reporter prints.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// reporter is the process-wide diagnostic sink used for everything that
// happens outside of one checker run: module loading, CLI argument errors,
// and internal compiler errors.  The checker itself keeps its own ordered
// error slice (see the checker package) since spec.md requires diagnostics
// to be inspectable per-run rather than accumulated globally.
type reporter struct {
	logLevel    int
	errorCount  int
	warnAsError bool
	m           sync.Mutex
}

var rep reporter

// InitReporter resets the global reporter with the given log level.
func InitReporter(logLevel int) {
	rep = reporter{logLevel: logLevel}
}

// SetWarnAsError sets whether ReportCompileWarning/ReportModuleWarning
// promote their warnings to errors, per a loaded module's
// [checker] warnings-as-errors toggle.
func SetWarnAsError(promote bool) {
	rep.m.Lock()
	defer rep.m.Unlock()
	rep.warnAsError = promote
}

// ShouldProceed reports whether no errors have been counted so far.
func ShouldProceed() bool {
	rep.m.Lock()
	defer rep.m.Unlock()
	return rep.errorCount == 0
}

// LogLevel returns the reporter's current log level.
func LogLevel() int {
	return rep.logLevel
}
