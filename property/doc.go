// Package property builds the configuration handed to the runtime at
// initialization.
//
// A Bag maps string keys to string values. Thirteen keys are well known to
// the runtime and are available as CommonProperty values whose String method
// returns the exact name the runtime expects:
//
//	props := property.NewBag()
//	props.AddCommon(property.AppPaths, "/srv/app")
//	props.Add("System.GC.Server", "true")
//
// The bag is flattened into parallel key and value arrays when a runtime is
// created; later changes do not affect an initialized runtime.
package property
