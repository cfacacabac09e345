//go:build !(darwin || freebsd || linux || windows)

package engine

import (
	goruntime "runtime"

	"github.com/wippyai/clrhost/errors"
)

func registerExports(map[string]uintptr) (*Exports, error) {
	return nil, errors.Unsupported(errors.PhaseBind, "native calls on "+goruntime.GOOS)
}
