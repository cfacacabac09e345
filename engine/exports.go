package engine

// InitializeFunc is coreclr_initialize.
type InitializeFunc func(
	exePath string,
	appDomainFriendlyName string,
	propertyCount int32,
	propertyKeys **byte,
	propertyValues **byte,
	hostHandle *uintptr,
	domainID *uint32,
) int32

// ShutdownFunc is coreclr_shutdown_2.
type ShutdownFunc func(
	hostHandle uintptr,
	domainID uint32,
	latchedExitCode *int32,
) int32

// ExecuteAssemblyFunc is coreclr_execute_assembly.
type ExecuteAssemblyFunc func(
	hostHandle uintptr,
	domainID uint32,
	argc int32,
	argv **byte,
	managedAssemblyPath string,
	exitCode *uint32,
) int32

// CreateDelegateFunc is coreclr_create_delegate.
type CreateDelegateFunc func(
	hostHandle uintptr,
	domainID uint32,
	entryPointAssemblyName string,
	entryPointTypeName string,
	entryPointMethodName string,
	delegate *uintptr,
) int32

// Exports holds the bound entry points of the runtime library.
// String arguments are passed as NUL-terminated C strings; callers must
// reject strings containing NUL bytes.
type Exports struct {
	Initialize      InitializeFunc
	Shutdown        ShutdownFunc
	ExecuteAssembly ExecuteAssemblyFunc
	CreateDelegate  CreateDelegateFunc
}

// Complete reports whether every entry point is set.
func (e *Exports) Complete() bool {
	return e != nil &&
		e.Initialize != nil &&
		e.Shutdown != nil &&
		e.ExecuteAssembly != nil &&
		e.CreateDelegate != nil
}
