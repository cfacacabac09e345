package engine

import goruntime "runtime"

// Entry points exported by the runtime library.
const (
	SymbolInitialize      = "coreclr_initialize"
	SymbolShutdown        = "coreclr_shutdown_2"
	SymbolExecuteAssembly = "coreclr_execute_assembly"
	SymbolCreateDelegate  = "coreclr_create_delegate"
)

// requiredSymbols lists every entry point Bind must resolve.
var requiredSymbols = []string{
	SymbolInitialize,
	SymbolShutdown,
	SymbolExecuteAssembly,
	SymbolCreateDelegate,
}

// LibraryName returns the runtime library file name for the current platform.
func LibraryName() string {
	return libraryNameFor(goruntime.GOOS)
}

func libraryNameFor(goos string) string {
	switch goos {
	case "windows":
		return "coreclr.dll"
	case "darwin", "ios":
		return "libcoreclr.dylib"
	default:
		return "libcoreclr.so"
	}
}
