package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the hosting lifecycle the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // opening the runtime library
	PhaseBind     Phase = "bind"     // resolving entry points
	PhaseInit     Phase = "init"     // coreclr_initialize
	PhaseExecute  Phase = "execute"  // coreclr_execute_assembly
	PhaseDelegate Phase = "delegate" // coreclr_create_delegate
	PhaseShutdown Phase = "shutdown" // coreclr_shutdown_2
	PhaseConfig   Phase = "config"   // host configuration files
)

// Kind categorizes the error
type Kind string

const (
	KindBindFailure  Kind = "bind_failure"
	KindStatus       Kind = "status"
	KindInvalidInput Kind = "invalid_input"
	KindInvalidData  Kind = "invalid_data"
	KindShutdown     Kind = "shutdown"
	KindUnsupported  Kind = "unsupported"
	KindNotFound     Kind = "not_found"
)

// Error is the structured error type used throughout the host
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Path   string
	Symbol string
	Detail string
	Status Status
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Symbol != "" {
		b.WriteString(": symbol ")
		b.WriteString(e.Symbol)
	}

	if e.Detail != "" {
		if e.Symbol != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Status != StatusSuccess {
		b.WriteString(" (status ")
		b.WriteString(e.Status.String())
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the file system path involved
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Symbol sets the entry point name involved
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Status sets the status code reported by the runtime
func (b *Builder) Status(s Status) *Builder {
	b.err.Status = s
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// BindFailure creates the error reported when the runtime library cannot be bound
func BindFailure(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindBindFailure,
		Path:   path,
		Status: StatusCoreClrBindFailure,
		Cause:  cause,
	}
}

// StatusFailure creates an error for a failing status returned by an entry point.
// The status is kept verbatim.
func StatusFailure(phase Phase, symbol string, status Status) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStatus,
		Symbol: symbol,
		Status: status,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
		Status: StatusInvalidArgFailure,
	}
}

// AlreadyShutdown creates the error returned when a runtime is used after shutdown
func AlreadyShutdown(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShutdown,
		Detail: "runtime has been shut down",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingSymbolsError is returned when a loaded library lacks required entry points
type MissingSymbolsError struct {
	Library string
	Symbols []string
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[bind] not_found: no symbols specified"
	}

	var b strings.Builder
	b.WriteString("[bind] not_found: ")
	if e.Library != "" {
		b.WriteString(e.Library)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "is missing %d required entry point", len(e.Symbols))
	if len(e.Symbols) > 1 {
		b.WriteByte('s')
	}
	b.WriteByte(':')
	for _, sym := range e.Symbols {
		b.WriteString("\n  - ")
		b.WriteString(sym)
	}
	return b.String()
}

// Is reports whether target is a bind-phase not_found error
func (e *MissingSymbolsError) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Phase == PhaseBind && t.Kind == KindNotFound
	}
	return false
}
