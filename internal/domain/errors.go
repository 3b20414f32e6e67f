package domain

import "errors"

var (
	ErrCancelled          = errors.New("installation cancelled")
	ErrUnsupportedHost    = errors.New("unsupported operating system")
	ErrBackendUnsupported = errors.New("backend not supported on this system")
	ErrInvalidModelDir    = errors.New("invalid model directory")
	ErrDownloadFailed     = errors.New("download failed")
	ErrPythonNotFound     = errors.New("python interpreter not found")
)

// Severity classifies a failure so callers cannot confuse a warning with a
// fatal condition.
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityRecoverable
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityRecoverable:
		return "recoverable"
	case SeverityWarning:
		return "warning"
	default:
		return "fatal"
	}
}

// Fault wraps an error with its severity and an optional remediation hint
// shown to the user.
type Fault struct {
	Severity Severity
	Err      error
	Hint     string
}

func (f *Fault) Error() string {
	return f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Fatal wraps err as a fatal fault with a remediation hint.
func Fatal(err error, hint string) *Fault {
	return &Fault{Severity: SeverityFatal, Err: err, Hint: hint}
}

// IsFatal reports whether err carries fatal severity. Errors without a
// Fault wrapper are treated as fatal, since only code that explicitly
// downgrades a failure may continue past it.
func IsFatal(err error) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Severity == SeverityFatal
	}
	return err != nil
}

// HintOf returns the remediation hint attached to err, if any.
func HintOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Hint
	}
	return ""
}
