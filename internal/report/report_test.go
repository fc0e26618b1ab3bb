package report

import (
	"errors"
	"testing"
)

func TestShouldProceedAfterCompileError(t *testing.T) {
	InitReporter(LogLevelSilent)
	if !ShouldProceed() {
		t.Fatal("a freshly initialized reporter should allow proceeding")
	}

	ReportCompileError("test.vex", nil, "something went wrong")
	if ShouldProceed() {
		t.Error("ShouldProceed should be false after a compile error")
	}
}

func TestCompileWarningDoesNotAffectShouldProceedByDefault(t *testing.T) {
	InitReporter(LogLevelSilent)
	ReportCompileWarning("test.vex", nil, "a warning")
	if !ShouldProceed() {
		t.Error("a plain warning should not affect ShouldProceed")
	}
}

func TestModuleWarningDoesNotAffectShouldProceedByDefault(t *testing.T) {
	InitReporter(LogLevelSilent)
	ReportModuleWarning("widgets", "a warning")
	if !ShouldProceed() {
		t.Error("a plain module warning should not affect ShouldProceed")
	}
}

// Property: with warnings-as-errors set, a compile warning is promoted to
// an error and bumps the count like ReportCompileError would.
func TestCompileWarningIsPromotedWhenWarnAsErrorIsSet(t *testing.T) {
	InitReporter(LogLevelSilent)
	SetWarnAsError(true)
	ReportCompileWarning("test.vex", nil, "a warning")
	if ShouldProceed() {
		t.Error("expected a promoted compile warning to affect ShouldProceed")
	}
}

func TestModuleWarningIsPromotedWhenWarnAsErrorIsSet(t *testing.T) {
	InitReporter(LogLevelSilent)
	SetWarnAsError(true)
	ReportModuleWarning("widgets", "a warning")
	if ShouldProceed() {
		t.Error("expected a promoted module warning to affect ShouldProceed")
	}
}

func TestModuleErrorAffectsShouldProceed(t *testing.T) {
	InitReporter(LogLevelSilent)
	ReportModuleError("widgets", "missing name")
	if ShouldProceed() {
		t.Error("ShouldProceed should be false after a module error")
	}
}

func TestStdErrorAffectsShouldProceed(t *testing.T) {
	InitReporter(LogLevelSilent)
	ReportStdError("test.vex", errors.New("boom"))
	if ShouldProceed() {
		t.Error("ShouldProceed should be false after a std error")
	}
}

func TestLogLevelRoundTrips(t *testing.T) {
	InitReporter(LogLevelWarn)
	if LogLevel() != LogLevelWarn {
		t.Errorf("expected LogLevelWarn, got %d", LogLevel())
	}
}

func TestCatchErrorsRecoversLocalCompileError(t *testing.T) {
	InitReporter(LogLevelSilent)

	func() {
		defer CatchErrors("test.vex")
		panic(Raise(nil, "unexpected %s", "token"))
	}()

	if ShouldProceed() {
		t.Error("a recovered LocalCompileError should have bumped the error count")
	}
}

func TestCatchErrorsRecoversPlainError(t *testing.T) {
	InitReporter(LogLevelSilent)

	func() {
		defer CatchErrors("test.vex")
		panic(errors.New("plain failure"))
	}()

	if ShouldProceed() {
		t.Error("a recovered plain error should have bumped the error count")
	}
}

func TestCatchErrorsIsANoOpWithoutAPanic(t *testing.T) {
	InitReporter(LogLevelSilent)

	func() {
		defer CatchErrors("test.vex")
	}()

	if !ShouldProceed() {
		t.Error("CatchErrors should not touch the reporter when nothing panicked")
	}
}

func TestPositionFromRangeSpansBothEndpoints(t *testing.T) {
	start := &TextPosition{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}
	end := &TextPosition{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 4}

	got := PositionFromRange(start, end)
	want := &TextPosition{StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 4}
	if *got != *want {
		t.Errorf("PositionFromRange = %+v, want %+v", *got, *want)
	}
}
