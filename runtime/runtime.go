package runtime

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/clrhost/engine"
	"github.com/wippyai/clrhost/errors"
	"github.com/wippyai/clrhost/property"
)

// HostHandle identifies a hosting session. It is owned by the runtime and
// never dereferenced by the host.
type HostHandle uintptr

// DomainID identifies the execution domain within a hosting session.
type DomainID uint32

// Binder resolves the runtime's entry points from a library directory.
// *engine.Binder implements it.
type Binder interface {
	Bind(dir string) (*engine.Exports, error)
}

// Option configures New.
type Option func(*options)

type options struct {
	binder Binder
}

// WithBinder binds through b instead of the process-wide engine.Default().
func WithBinder(b Binder) Option {
	return func(o *options) {
		o.binder = b
	}
}

// Runtime is an initialized hosting session.
//
// Shutdown is safe for concurrent use. ExecuteAssembly and CreateDelegate
// must not run concurrently with Shutdown.
type Runtime struct {
	exports *engine.Exports
	log     *zap.Logger
	session uuid.UUID
	host    HostHandle
	domain  DomainID

	shutdownMu sync.Mutex
	isShutdown atomic.Bool
}

// New binds the runtime library found in libraryDir and initializes a
// hosting session configured by props.
//
// If binding fails the error carries errors.StatusCoreClrBindFailure. If
// coreclr_initialize fails its status is returned unchanged in an
// errors.KindStatus error. No Runtime is returned in either case. Success
// codes other than zero are not returned; they are logged at debug level
// with the "status" field.
func New(libraryDir, exePath, friendlyName string, props *property.Bag, opts ...Option) (*Runtime, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.binder == nil {
		o.binder = engine.Default()
	}

	if err := checkCString(errors.PhaseInit, "executable path", exePath); err != nil {
		return nil, err
	}
	if err := checkCString(errors.PhaseInit, "friendly name", friendlyName); err != nil {
		return nil, err
	}

	exports, err := o.binder.Bind(libraryDir)
	if err != nil {
		engine.Logger().Error("failed to bind to runtime",
			zap.String("path", libraryDir),
			zap.Error(err))
		return nil, err
	}

	keys, values := flatten(props)
	defer keys.unpin()
	defer values.unpin()

	var (
		host   uintptr
		domain uint32
	)
	status := errors.Status(exports.Initialize(
		exePath,
		friendlyName,
		keys.len(),
		keys.base(),
		values.base(),
		&host,
		&domain,
	))
	if !status.Succeeded() {
		return nil, errors.StatusFailure(errors.PhaseInit, engine.SymbolInitialize, status)
	}

	return newRuntime(exports, HostHandle(host), DomainID(domain), status), nil
}

func newRuntime(exports *engine.Exports, host HostHandle, domain DomainID, status errors.Status) *Runtime {
	session := uuid.Must(uuid.NewV7())
	r := &Runtime{
		exports: exports,
		session: session,
		host:    host,
		domain:  domain,
		log:     engine.Logger().With(zap.String("session", session.String())),
	}
	r.log.Debug("runtime initialized",
		zap.Stringer("status", status),
		zap.Uintptr("host", uintptr(host)),
		zap.Uint32("domain", uint32(domain)))
	return r
}

// flatten lays the bag out as parallel key and value arrays in the bag's
// enumeration order.
func flatten(props *property.Bag) (keys, values *cStrings) {
	n := 0
	if props != nil {
		n = props.Count()
	}
	keys = newCStrings(n)
	values = newCStrings(n)
	if props == nil {
		return keys, values
	}
	props.Enumerate(func(k, v string) {
		keys.add(k)
		values.add(v)
	})
	return keys, values
}

// HostHandle returns the session's host handle.
func (r *Runtime) HostHandle() HostHandle {
	return r.host
}

// DomainID returns the session's domain id.
func (r *Runtime) DomainID() DomainID {
	return r.domain
}

// Session returns an id that tags this runtime's log entries.
func (r *Runtime) Session() string {
	return r.session.String()
}

// IsShutdown reports whether Shutdown has been called.
func (r *Runtime) IsShutdown() bool {
	return r.isShutdown.Load()
}

// Shutdown tears the hosting session down and returns the latched exit code.
//
// Only the first call reaches coreclr_shutdown_2. Every later call, including
// calls racing with the first, returns a zero exit code and no error.
func (r *Runtime) Shutdown() (int32, error) {
	r.shutdownMu.Lock()
	defer r.shutdownMu.Unlock()

	if r.isShutdown.Load() {
		return int32(errors.StatusSuccess), nil
	}
	r.isShutdown.Store(true)

	var latched int32
	status := errors.Status(r.exports.Shutdown(uintptr(r.host), uint32(r.domain), &latched))
	r.log.Debug("runtime shut down",
		zap.Stringer("status", status),
		zap.Int32("exit_code", latched))
	if !status.Succeeded() {
		return latched, errors.StatusFailure(errors.PhaseShutdown, engine.SymbolShutdown, status)
	}
	return latched, nil
}
