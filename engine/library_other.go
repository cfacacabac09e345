//go:build !(darwin || freebsd || linux || windows)

package engine

import (
	goruntime "runtime"

	"github.com/wippyai/clrhost/errors"
)

func openLibrary(string) (Library, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "loading shared libraries on "+goruntime.GOOS)
}
