package runtime

import (
	goruntime "runtime"
	"strings"

	"github.com/wippyai/clrhost/errors"
)

// cStrings is an array of NUL-terminated strings laid out for a native
// char** parameter. The strings and the array stay pinned until unpin.
type cStrings struct {
	ptrs   []*byte
	pinner goruntime.Pinner
}

func newCStrings(capacity int) *cStrings {
	return &cStrings{ptrs: make([]*byte, 0, capacity)}
}

func (c *cStrings) add(s string) {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	c.pinner.Pin(&buf[0])
	c.ptrs = append(c.ptrs, &buf[0])
}

// base returns the char** to hand to native code, or nil when empty.
func (c *cStrings) base() **byte {
	if len(c.ptrs) == 0 {
		return nil
	}
	c.pinner.Pin(&c.ptrs[0])
	return &c.ptrs[0]
}

func (c *cStrings) len() int32 {
	return int32(len(c.ptrs))
}

func (c *cStrings) unpin() {
	c.pinner.Unpin()
}

// checkCString rejects strings that cannot cross as C strings.
func checkCString(phase errors.Phase, what, s string) error {
	if strings.ContainsRune(s, 0) {
		return errors.InvalidInput(phase, what+" contains a NUL byte")
	}
	return nil
}
