// Package clrhost hosts a managed runtime shipped as a native shared library.
//
// The runtime library exports the coreclr_* hosting entry points. This module
// loads it, binds those entry points, and drives a hosting session through
// initialize, execute or create-delegate, and shutdown.
//
// # Architecture Overview
//
//	clrhost/          Root package with SetLogger
//	├── runtime/      Hosting session: New, ExecuteAssembly, CreateDelegate, Shutdown
//	├── engine/       Library loading and entry point binding
//	├── property/     Property bag and the well-known property names
//	├── config/       Host configuration files (YAML, HCL)
//	├── errors/       Structured error types and status codes
//	└── cmd/clrhost/  Command line host
//
// # Quick Start
//
//	props := property.NewBag()
//	props.AddCommon(property.TrustedPlatformAssemblies, tpa)
//	props.AddCommon(property.AppPaths, appDir)
//
//	rt, err := runtime.New(runtimeDir, exePath, "app", props)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	code, err := rt.ExecuteAssembly(args, assemblyPath)
//	...
//	rt.Shutdown()
//
// # Process-wide state
//
// The runtime library is bound once per process and is never unloaded. A
// second runtime.New in the same process panics unless it is given its own
// binder with runtime.WithBinder.
//
// # Logging
//
// Packages log through zap and are silent by default. Use SetLogger to
// route their output.
package clrhost
