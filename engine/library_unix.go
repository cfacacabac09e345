//go:build darwin || freebsd || linux

package engine

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type dlLibrary struct {
	handle uintptr
}

func openLibrary(path string) (Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	return &dlLibrary{handle: handle}, nil
}

func (l *dlLibrary) Lookup(name string) (uintptr, error) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, err
	}
	if addr == 0 {
		return 0, fmt.Errorf("symbol %s resolved to nil", name)
	}
	return addr, nil
}

func (l *dlLibrary) Close() error {
	return purego.Dlclose(l.handle)
}
