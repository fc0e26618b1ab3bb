package report

import "fmt"

// LocalCompileError is a compile error raised within a single file/definition
// being processed.  It is thrown with panic and caught by CatchErrors at the
// boundary of whatever unit is allowed to fail independently -- here, one
// file.  The lexer and parser raise it for lexical and syntax errors.
type LocalCompileError struct {
	Message  string
	Position *TextPosition
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new LocalCompileError ready to be panicked.
func Raise(pos *TextPosition, format string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(format, args...), Position: pos}
}

// CatchErrors recovers from a panicked LocalCompileError (or any other Go
// error) and reports it through the reporter instead of crashing the
// process.  It must always be deferred.
func CatchErrors(reprPath string) {
	if x := recover(); x != nil {
		if lce, ok := x.(*LocalCompileError); ok {
			ReportCompileError(reprPath, lce.Position, lce.Message)
		} else if err, ok := x.(error); ok {
			ReportStdError(reprPath, err)
		} else {
			ReportFatal("%v", x)
		}
	}
}
