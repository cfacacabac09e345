package engine

// Library is an opened shared library.
type Library interface {
	// Lookup returns the address of an exported symbol.
	Lookup(name string) (uintptr, error)
	// Close releases the library handle.
	Close() error
}

// Opener opens the shared library at path.
type Opener func(path string) (Library, error)

// OpenLibrary opens a shared library with the platform loader.
func OpenLibrary(path string) (Library, error) {
	return openLibrary(path)
}
