package property

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestBag_Scenario(t *testing.T) {
	b := NewBag()

	assert.True(t, b.AddCommon(AppPaths, "/bin"))
	assert.True(t, b.Add("CUSTOM_KEY", "1"))
	assert.Equal(t, 2, b.Count())

	v, ok := b.GetCommon(AppPaths)
	require.True(t, ok)
	assert.Equal(t, "/bin", v)

	v, ok = b.Get("APP_PATHS")
	require.True(t, ok)
	assert.Equal(t, "/bin", v)

	v, ok = b.Get("CUSTOM_KEY")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	b.Remove("CUSTOM_KEY")
	assert.Equal(t, 1, b.Count())
	_, ok = b.Get("CUSTOM_KEY")
	assert.False(t, ok)
}

func TestBag_AddOverwrite(t *testing.T) {
	logs := observeLogs(t)
	b := NewBag()

	require.True(t, b.Add("key", "first"))
	assert.False(t, b.Add("key", "second"))
	assert.Equal(t, 1, b.Count())

	v, ok := b.Get("key")
	require.True(t, ok)
	assert.Equal(t, "second", v, "last write wins")

	entries := logs.FilterMessage("overwriting property").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "key", fields["key"])
	assert.Equal(t, "second", fields["new"])
	assert.Equal(t, "first", fields["old"])
}

func TestBag_AddRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "empty key", key: "", value: "v"},
		{name: "NUL in key", key: "a\x00b", value: "v"},
		{name: "NUL in value", key: "k", value: "v\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBag()
			require.True(t, b.Add("existing", "value"))

			assert.False(t, b.Add(tt.key, tt.value))
			assert.Equal(t, 1, b.Count())
			v, _ := b.Get("existing")
			assert.Equal(t, "value", v)
		})
	}
}

func TestBag_EmptyValueAllowed(t *testing.T) {
	b := NewBag()
	assert.True(t, b.Add("EMPTY", ""))
	v, ok := b.Get("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestBag_RemoveAbsent(t *testing.T) {
	b := NewBag()
	b.Add("a", "1")
	b.Remove("missing")
	b.Remove("")
	assert.Equal(t, 1, b.Count())
}

func TestBag_EnumerateVisitsEachKeyOnce(t *testing.T) {
	b := NewBag()
	for i := range 40 {
		b.Add(fmt.Sprintf("key-%d", i%25), fmt.Sprintf("v%d", i))
	}
	b.Remove("key-3")

	seen := map[string]string{}
	b.Enumerate(func(k, v string) {
		_, dup := seen[k]
		assert.False(t, dup, "key %s visited twice", k)
		seen[k] = v
	})

	assert.Len(t, seen, b.Count())
	assert.Equal(t, 24, b.Count())
	assert.Equal(t, "v39", seen["key-14"])
	assert.NotContains(t, seen, "key-3")
}

func TestBag_EnumerationOrderIsStable(t *testing.T) {
	b := NewBag()
	b.Add("z", "1")
	b.AddCommon(JitPath, "/jit")
	b.Add("a", "2")
	b.Add("z", "3")

	var keys []string
	for k := range b.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"z", "JIT_PATH", "a"}, keys)

	var again []string
	b.Enumerate(func(k, _ string) { again = append(again, k) })
	assert.Equal(t, keys, again)
}

func TestBag_AllStopsEarly(t *testing.T) {
	b := NewBag()
	b.Add("a", "1")
	b.Add("b", "2")

	n := 0
	for range b.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestBag_Log(t *testing.T) {
	logs := observeLogs(t)
	b := NewBag()
	b.AddCommon(TrustedPlatformAssemblies, "/a.dll:/b.dll")
	b.Add("X", "y")

	b.Log()

	entries := logs.FilterMessage("property").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "TRUSTED_PLATFORM_ASSEMBLIES", entries[0].ContextMap()["key"])
	assert.Equal(t, "y", entries[1].ContextMap()["value"])
}

func TestSetLogger_NilSilences(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	require.NotNil(t, Logger())

	b := NewBag()
	b.Add("K", "1")
	assert.NotPanics(t, func() {
		b.Add("K", "2")
		b.Log()
	})
}
