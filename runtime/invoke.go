package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/clrhost/engine"
	"github.com/wippyai/clrhost/errors"
)

// Delegate is a native-callable function pointer returned by the runtime.
// Its calling convention is known only to the code that requested it.
type Delegate uintptr

// ExecuteAssembly runs the entry point of the managed assembly at
// assemblyPath with args and blocks until it returns. The exit code is only
// meaningful when err is nil. A non-zero success status is logged at debug
// level with the "status" field rather than returned.
func (r *Runtime) ExecuteAssembly(args []string, assemblyPath string) (uint32, error) {
	if r.isShutdown.Load() {
		return 0, errors.AlreadyShutdown(errors.PhaseExecute)
	}
	if err := checkCString(errors.PhaseExecute, "assembly path", assemblyPath); err != nil {
		return 0, err
	}
	for _, arg := range args {
		if err := checkCString(errors.PhaseExecute, "argument", arg); err != nil {
			return 0, err
		}
	}

	argv := newCStrings(len(args))
	defer argv.unpin()
	for _, arg := range args {
		argv.add(arg)
	}

	r.log.Debug("executing assembly",
		zap.String("assembly", assemblyPath),
		zap.Strings("args", args))

	var exitCode uint32
	status := errors.Status(r.exports.ExecuteAssembly(
		uintptr(r.host),
		uint32(r.domain),
		argv.len(),
		argv.base(),
		assemblyPath,
		&exitCode,
	))
	if !status.Succeeded() {
		return 0, errors.StatusFailure(errors.PhaseExecute, engine.SymbolExecuteAssembly, status)
	}

	r.log.Debug("assembly returned",
		zap.Stringer("status", status),
		zap.Uint32("exit_code", exitCode))
	return exitCode, nil
}

// CreateDelegate returns a native-callable pointer to a static managed method.
// As with ExecuteAssembly, a non-zero success status is only logged.
func (r *Runtime) CreateDelegate(assemblyName, typeName, methodName string) (Delegate, error) {
	if r.isShutdown.Load() {
		return 0, errors.AlreadyShutdown(errors.PhaseDelegate)
	}
	for _, s := range [...]struct{ what, value string }{
		{"assembly name", assemblyName},
		{"type name", typeName},
		{"method name", methodName},
	} {
		if err := checkCString(errors.PhaseDelegate, s.what, s.value); err != nil {
			return 0, err
		}
	}

	var delegate uintptr
	status := errors.Status(r.exports.CreateDelegate(
		uintptr(r.host),
		uint32(r.domain),
		assemblyName,
		typeName,
		methodName,
		&delegate,
	))
	if !status.Succeeded() {
		return 0, errors.StatusFailure(errors.PhaseDelegate, engine.SymbolCreateDelegate, status)
	}

	r.log.Debug("created delegate",
		zap.Stringer("status", status),
		zap.String("assembly", assemblyName),
		zap.String("type", typeName),
		zap.String("method", methodName))
	return Delegate(delegate), nil
}
