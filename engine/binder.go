package engine

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/clrhost/errors"
)

// Binder loads the runtime library and resolves its entry points.
// A Binder binds at most once.
type Binder struct {
	open        Opener
	libraryName string

	mu      sync.Mutex
	lib     Library
	path    string
	exports *Exports
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithLibraryName overrides the platform library file name.
func WithLibraryName(name string) BinderOption {
	return func(b *Binder) {
		b.libraryName = name
	}
}

// WithOpener replaces the platform library loader.
func WithOpener(open Opener) BinderOption {
	return func(b *Binder) {
		b.open = open
	}
}

// NewBinder creates an unbound Binder.
func NewBinder(opts ...BinderOption) *Binder {
	b := &Binder{
		open:        OpenLibrary,
		libraryName: LibraryName(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var processBinder = sync.OnceValue(func() *Binder {
	return NewBinder()
})

// Default returns the process-wide Binder.
func Default() *Binder {
	return processBinder()
}

// Bind opens the runtime library in dir and resolves all required entry
// points. On failure nothing is retained and the returned error carries
// errors.StatusCoreClrBindFailure.
//
// Bind panics if the Binder is already bound.
func (b *Binder) Bind(dir string) (*Exports, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.exports != nil {
		panic("engine: runtime library already bound from " + b.path)
	}

	path := filepath.Join(dir, b.libraryName)

	lib, err := b.open(path)
	if err != nil {
		return nil, errors.BindFailure(path, errors.Wrap(errors.PhaseLoad, errors.KindBindFailure, err, "open library"))
	}

	addrs, missing := resolve(lib)
	if len(missing) > 0 {
		closeLibrary(lib, path)
		return nil, errors.BindFailure(path, &errors.MissingSymbolsError{Library: path, Symbols: missing})
	}

	exports, err := registerExports(addrs)
	if err != nil {
		closeLibrary(lib, path)
		return nil, errors.BindFailure(path, err)
	}

	b.lib = lib
	b.path = path
	b.exports = exports

	Logger().Debug("bound runtime library", zap.String("path", path))
	return exports, nil
}

// Exports returns the bound entry points, or false if Bind has not succeeded.
func (b *Binder) Exports() (*Exports, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exports, b.exports != nil
}

// Path returns the path of the bound library, or "" if unbound.
func (b *Binder) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

func resolve(lib Library) (map[string]uintptr, []string) {
	addrs := make(map[string]uintptr, len(requiredSymbols))
	var missing []string
	for _, name := range requiredSymbols {
		addr, err := lib.Lookup(name)
		if err != nil || addr == 0 {
			Logger().Debug("symbol not found", zap.String("symbol", name), zap.Error(err))
			missing = append(missing, name)
			continue
		}
		addrs[name] = addr
	}
	return addrs, missing
}

func closeLibrary(lib Library, path string) {
	if err := lib.Close(); err != nil {
		Logger().Warn("close runtime library", zap.String("path", path), zap.Error(err))
	}
}
