//go:build windows

package engine

import "golang.org/x/sys/windows"

type dllLibrary struct {
	dll *windows.DLL
}

func openLibrary(path string) (Library, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, err
	}
	return &dllLibrary{dll: dll}, nil
}

func (l *dllLibrary) Lookup(name string) (uintptr, error) {
	proc, err := l.dll.FindProc(name)
	if err != nil {
		return 0, err
	}
	return proc.Addr(), nil
}

func (l *dllLibrary) Close() error {
	return l.dll.Release()
}
