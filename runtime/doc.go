// Package runtime drives a managed runtime through a hosting session.
//
// # Quick Start
//
//	props := property.NewBag()
//	props.AddCommon(property.TrustedPlatformAssemblies, tpa)
//	props.AddCommon(property.AppPaths, appDir)
//
//	rt, err := runtime.New(runtimeDir, os.Args[0], "app", props)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := rt.ExecuteAssembly(os.Args[1:], appDir+"/app.dll")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := rt.Shutdown(); err != nil {
//	    log.Fatal(err)
//	}
//	os.Exit(int(code))
//
// # Lifecycle
//
// New binds the runtime library through the process-wide engine.Binder and
// calls coreclr_initialize. The library is bound once per process and never
// unloaded. Once a bind has succeeded, a second New on the default binder
// panics, even if the first New failed in coreclr_initialize. Supply a
// separate Binder with WithBinder to bind again.
//
// A Runtime can execute assemblies and create delegates any number of
// times. Shutdown ends the session; it forwards to the runtime only once
// and later calls report success. Calls after Shutdown fail with an
// errors.KindShutdown error.
//
// # Status codes
//
// Failing status codes returned by the runtime are surfaced as
// errors.KindStatus errors. errors.StatusOf recovers the exact code.
package runtime
