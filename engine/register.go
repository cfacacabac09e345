//go:build darwin || freebsd || linux || windows

package engine

import "github.com/ebitengine/purego"

// registerExports turns resolved symbol addresses into callable Go functions.
func registerExports(addrs map[string]uintptr) (*Exports, error) {
	e := &Exports{}
	purego.RegisterFunc(&e.Initialize, addrs[SymbolInitialize])
	purego.RegisterFunc(&e.Shutdown, addrs[SymbolShutdown])
	purego.RegisterFunc(&e.ExecuteAssembly, addrs[SymbolExecuteAssembly])
	purego.RegisterFunc(&e.CreateDelegate, addrs[SymbolCreateDelegate])
	return e, nil
}
