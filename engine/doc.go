// Package engine binds the native managed-runtime library.
//
// The runtime ships as a shared library exporting four entry points:
//
//	coreclr_initialize        - start a hosting session from a property set
//	coreclr_execute_assembly  - run an assembly's entry point
//	coreclr_create_delegate   - get a native-callable pointer to a static method
//	coreclr_shutdown_2        - tear the session down, reporting the exit code
//
// A Binder opens the library from a directory and resolves all four symbols
// into an Exports value. Binding is all-or-nothing: if the library cannot be
// opened or any symbol is missing, Bind returns an error and keeps no state.
//
// # Process-wide binding
//
// The runtime library can be bound once per process. Default returns the
// process-wide Binder, created on first use. Calling Bind again after it
// succeeded is a programming error and panics.
//
// # Platforms
//
// On darwin, freebsd and linux the library is opened with dlopen through
// purego. On windows it is loaded with LoadLibrary. Entry points are turned
// into Go function values with purego.RegisterFunc, so no cgo is required.
package engine
