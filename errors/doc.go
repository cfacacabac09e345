// Package errors provides structured error types for the runtime host.
//
// Errors are categorized by Phase (which hosting step failed) and Kind (error category).
// The Error type carries the library path, the entry point symbol, the status code
// reported by the runtime and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBind, errors.KindNotFound).
//		Path(libPath).
//		Symbol("coreclr_initialize").
//		Detail("symbol not exported").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BindFailure(libPath, cause)
//	err := errors.StatusFailure(errors.PhaseExecute, "coreclr_execute_assembly", status)
//
// Status codes returned by the runtime are never reinterpreted; StatusOf recovers
// the exact code from any error in the chain.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
