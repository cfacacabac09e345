package runtime

import (
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/clrhost/engine"
	"github.com/wippyai/clrhost/errors"
	"github.com/wippyai/clrhost/property"
)

const (
	testHost   = uintptr(0xC0FFEE)
	testDomain = uint32(7)
)

// fakeBinder hands out Go implementations of the runtime entry points.
type fakeBinder struct {
	exports *engine.Exports
	err     error
	dirs    []string
}

func (b *fakeBinder) Bind(dir string) (*engine.Exports, error) {
	b.dirs = append(b.dirs, dir)
	if b.err != nil {
		return nil, b.err
	}
	return b.exports, nil
}

// fakeRuntime records what crossed the native boundary.
type fakeRuntime struct {
	exePath      string
	friendlyName string
	keys         []string
	values       []string

	argv         []string
	assemblyPath string
	delegateArgs []string

	initStatus     int32
	executeStatus  int32
	delegateStatus int32
	shutdownStatus int32
	exitCode       uint32
	latchedCode    int32

	shutdownCalls atomic.Int32
	shutdownDelay time.Duration
}

func (f *fakeRuntime) exports() *engine.Exports {
	return &engine.Exports{
		Initialize: func(exePath, name string, count int32, keys, values **byte, host *uintptr, domain *uint32) int32 {
			f.exePath = exePath
			f.friendlyName = name
			f.keys = goStrings(keys, count)
			f.values = goStrings(values, count)
			if f.initStatus < 0 {
				return f.initStatus
			}
			*host = testHost
			*domain = testDomain
			return f.initStatus
		},
		Shutdown: func(host uintptr, domain uint32, latched *int32) int32 {
			f.shutdownCalls.Add(1)
			if host != testHost || domain != testDomain {
				return -1
			}
			time.Sleep(f.shutdownDelay)
			*latched = f.latchedCode
			return f.shutdownStatus
		},
		ExecuteAssembly: func(host uintptr, domain uint32, argc int32, argv **byte, path string, exitCode *uint32) int32 {
			if host != testHost || domain != testDomain {
				return -1
			}
			f.argv = goStrings(argv, argc)
			f.assemblyPath = path
			if f.executeStatus < 0 {
				return f.executeStatus
			}
			*exitCode = f.exitCode
			return f.executeStatus
		},
		CreateDelegate: func(host uintptr, domain uint32, assembly, typ, method string, delegate *uintptr) int32 {
			if host != testHost || domain != testDomain {
				return -1
			}
			f.delegateArgs = []string{assembly, typ, method}
			if f.delegateStatus < 0 {
				return f.delegateStatus
			}
			*delegate = 0xDE1E6A7E
			return f.delegateStatus
		},
	}
}

func goStrings(base **byte, n int32) []string {
	if base == nil || n == 0 {
		return nil
	}
	ptrs := unsafe.Slice(base, n)
	out := make([]string, n)
	for i, p := range ptrs {
		out[i] = goString(p)
	}
	return out
}

func goString(p *byte) string {
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

func newTestRuntime(t *testing.T, f *fakeRuntime, props *property.Bag) *Runtime {
	t.Helper()
	rt, err := New("/opt/runtime", "/usr/bin/app", "app", props, WithBinder(&fakeBinder{exports: f.exports()}))
	require.NoError(t, err)
	require.NotNil(t, rt)
	return rt
}

func TestNew_FlattensProperties(t *testing.T) {
	props := property.NewBag()
	props.AddCommon(property.AppPaths, "/bin")
	props.Add("CUSTOM_KEY", "1")
	props.AddCommon(property.TrustedPlatformAssemblies, "/a.dll:/b.dll")

	f := &fakeRuntime{}
	binder := &fakeBinder{exports: f.exports()}
	rt, err := New("/opt/runtime", "/usr/bin/app", "friendly", props, WithBinder(binder))
	require.NoError(t, err)

	assert.Equal(t, []string{"/opt/runtime"}, binder.dirs)
	assert.Equal(t, "/usr/bin/app", f.exePath)
	assert.Equal(t, "friendly", f.friendlyName)
	assert.Equal(t, []string{"APP_PATHS", "CUSTOM_KEY", "TRUSTED_PLATFORM_ASSEMBLIES"}, f.keys)
	assert.Equal(t, []string{"/bin", "1", "/a.dll:/b.dll"}, f.values)

	assert.Equal(t, HostHandle(testHost), rt.HostHandle())
	assert.Equal(t, DomainID(testDomain), rt.DomainID())
	assert.False(t, rt.IsShutdown())
	assert.NotEmpty(t, rt.Session())
}

func TestNew_EmptyAndNilBag(t *testing.T) {
	for name, props := range map[string]*property.Bag{
		"empty": property.NewBag(),
		"nil":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			f := &fakeRuntime{}
			newTestRuntime(t, f, props)
			assert.Empty(t, f.keys)
			assert.Empty(t, f.values)
		})
	}
}

func TestNew_BagChangesAfterInitHaveNoEffect(t *testing.T) {
	props := property.NewBag()
	props.Add("A", "1")

	f := &fakeRuntime{}
	newTestRuntime(t, f, props)

	props.Add("B", "2")
	props.Remove("A")
	assert.Equal(t, []string{"A"}, f.keys)
}

func TestNew_InitializeFailure(t *testing.T) {
	f := &fakeRuntime{initStatus: -0x7fff7f77}
	rt, err := New("/opt/runtime", "/usr/bin/app", "app", property.NewBag(), WithBinder(&fakeBinder{exports: f.exports()}))
	require.Error(t, err)
	assert.Nil(t, rt)

	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseInit, Kind: errors.KindStatus}))
	status, ok := errors.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.Status(-0x7fff7f77), status, "status must be returned verbatim")
}

func TestNew_PositiveStatusIsSuccess(t *testing.T) {
	f := &fakeRuntime{initStatus: 1}
	rt := newTestRuntime(t, f, nil)
	assert.Equal(t, HostHandle(testHost), rt.HostHandle())
}

func TestSuccessStatusIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := engine.Logger()
	engine.SetLogger(zap.New(core))
	t.Cleanup(func() { engine.SetLogger(prev) })

	f := &fakeRuntime{initStatus: 1, executeStatus: 1, delegateStatus: 2, exitCode: 5}
	rt := newTestRuntime(t, f, nil)

	code, err := rt.ExecuteAssembly(nil, "/srv/app/app.dll")
	require.NoError(t, err)
	assert.Equal(t, uint32(5), code)

	_, err = rt.CreateDelegate("App", "App.Program", "Entry")
	require.NoError(t, err)

	for msg, want := range map[string]string{
		"runtime initialized": "0x00000001",
		"assembly returned":   "0x00000001",
		"created delegate":    "0x00000002",
	} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		assert.Equal(t, want, entries[0].ContextMap()["status"], msg)
	}
}

func TestNew_BindFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := engine.Logger()
	engine.SetLogger(zap.New(core))
	t.Cleanup(func() { engine.SetLogger(prev) })

	bindErr := errors.BindFailure("/missing/libcoreclr.so", stderrors.New("no such file"))
	rt, err := New("/missing", "/usr/bin/app", "app", nil, WithBinder(&fakeBinder{err: bindErr}))
	require.Error(t, err)
	assert.Nil(t, rt)
	assert.ErrorIs(t, err, bindErr)

	status, _ := errors.StatusOf(err)
	assert.Equal(t, errors.StatusCoreClrBindFailure, status)

	entries := logs.FilterMessage("failed to bind to runtime").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/missing", entries[0].ContextMap()["path"])
}

func TestNew_RealBinderMissingLibrary(t *testing.T) {
	rt, err := New(t.TempDir(), "/usr/bin/app", "app", nil, WithBinder(engine.NewBinder()))
	require.Error(t, err)
	assert.Nil(t, rt)

	status, ok := errors.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.StatusCoreClrBindFailure, status)
}

func TestNew_RejectsNULBeforeBinding(t *testing.T) {
	binder := &fakeBinder{exports: (&fakeRuntime{}).exports()}

	_, err := New("/opt/runtime", "/usr/bin/\x00app", "app", nil, WithBinder(binder))
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseInit, Kind: errors.KindInvalidInput}))

	_, err = New("/opt/runtime", "/usr/bin/app", "a\x00pp", nil, WithBinder(binder))
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseInit, Kind: errors.KindInvalidInput}))

	assert.Empty(t, binder.dirs, "invalid input must not consume the bind")
}

func TestExecuteAssembly(t *testing.T) {
	f := &fakeRuntime{exitCode: 42}
	rt := newTestRuntime(t, f, nil)

	code, err := rt.ExecuteAssembly([]string{"--flag", "value with spaces", ""}, "/srv/app/app.dll")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), code)
	assert.Equal(t, []string{"--flag", "value with spaces", ""}, f.argv)
	assert.Equal(t, "/srv/app/app.dll", f.assemblyPath)

	code, err = rt.ExecuteAssembly(nil, "/srv/app/app.dll")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), code)
	assert.Empty(t, f.argv)
}

func TestExecuteAssembly_Failure(t *testing.T) {
	f := &fakeRuntime{executeStatus: -0x7fff7f76, exitCode: 9}
	rt := newTestRuntime(t, f, nil)

	code, err := rt.ExecuteAssembly([]string{"x"}, "/srv/app/app.dll")
	require.Error(t, err)
	assert.Zero(t, code, "exit code is only reported on success")

	status, ok := errors.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.Status(-0x7fff7f76), status)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseExecute, Kind: errors.KindStatus}))
}

func TestExecuteAssembly_RejectsNUL(t *testing.T) {
	f := &fakeRuntime{}
	rt := newTestRuntime(t, f, nil)

	_, err := rt.ExecuteAssembly([]string{"ok", "bad\x00"}, "/srv/app/app.dll")
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseExecute, Kind: errors.KindInvalidInput}))
	assert.Empty(t, f.assemblyPath, "nothing forwarded")
}

func TestCreateDelegate(t *testing.T) {
	f := &fakeRuntime{}
	rt := newTestRuntime(t, f, nil)

	d, err := rt.CreateDelegate("App", "App.Program", "Entry")
	require.NoError(t, err)
	assert.Equal(t, Delegate(0xDE1E6A7E), d)
	assert.Equal(t, []string{"App", "App.Program", "Entry"}, f.delegateArgs)
}

func TestCreateDelegate_Failure(t *testing.T) {
	f := &fakeRuntime{delegateStatus: -0x7ffdfffe}
	rt := newTestRuntime(t, f, nil)

	d, err := rt.CreateDelegate("App", "App.Missing", "Entry")
	require.Error(t, err)
	assert.Zero(t, d)

	status, ok := errors.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.Status(-0x7ffdfffe), status)
}

func TestShutdown_ForwardsOnce(t *testing.T) {
	f := &fakeRuntime{latchedCode: 3}
	rt := newTestRuntime(t, f, nil)

	code, err := rt.Shutdown()
	require.NoError(t, err)
	assert.Equal(t, int32(3), code)
	assert.True(t, rt.IsShutdown())

	for range 3 {
		code, err = rt.Shutdown()
		require.NoError(t, err)
		assert.Equal(t, int32(0), code, "repeat callers observe success, not the latched code")
	}
	assert.Equal(t, int32(1), f.shutdownCalls.Load())
}

func TestShutdown_FailureStillCompletes(t *testing.T) {
	f := &fakeRuntime{shutdownStatus: -5, latchedCode: 1}
	rt := newTestRuntime(t, f, nil)

	code, err := rt.Shutdown()
	require.Error(t, err)
	assert.Equal(t, int32(1), code)
	status, _ := errors.StatusOf(err)
	assert.Equal(t, errors.Status(-5), status)

	code, err = rt.Shutdown()
	assert.NoError(t, err, "second call succeeds regardless of the first result")
	assert.Zero(t, code)
	assert.Equal(t, int32(1), f.shutdownCalls.Load())
}

func TestShutdown_ConcurrentCallers(t *testing.T) {
	f := &fakeRuntime{latchedCode: 17, shutdownDelay: 10 * time.Millisecond}
	rt := newTestRuntime(t, f, nil)

	const callers = 32
	codes := make([]int32, callers)
	start := make(chan struct{})

	var g errgroup.Group
	for i := range callers {
		g.Go(func() error {
			<-start
			code, err := rt.Shutdown()
			codes[i] = code
			return err
		})
	}
	close(start)
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), f.shutdownCalls.Load())
	latched := 0
	for _, c := range codes {
		if c == 17 {
			latched++
		} else {
			assert.Zero(t, c)
		}
	}
	assert.Equal(t, 1, latched, "exactly one caller observes the forwarded exit code")
}

func TestUseAfterShutdown(t *testing.T) {
	f := &fakeRuntime{}
	rt := newTestRuntime(t, f, nil)
	_, err := rt.Shutdown()
	require.NoError(t, err)

	_, err = rt.ExecuteAssembly(nil, "/srv/app/app.dll")
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseExecute, Kind: errors.KindShutdown}))

	_, err = rt.CreateDelegate("A", "B", "C")
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseDelegate, Kind: errors.KindShutdown}))

	assert.Empty(t, f.assemblyPath)
	assert.Nil(t, f.delegateArgs)
}
