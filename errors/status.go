package errors

import (
	"errors"
	"fmt"
)

// Status is an HRESULT-style code exchanged with the runtime library.
// Negative values are failures.
type Status int32

// Status codes produced by the host itself. Codes returned by the runtime
// library are passed through unchanged.
const (
	StatusSuccess            Status = 0
	StatusInvalidArgFailure  Status = -0x7fff7f7f // 0x80008081
	StatusCoreClrBindFailure Status = -0x7fff7f78 // 0x80008088
)

// Succeeded mirrors the SUCCEEDED macro.
func (s Status) Succeeded() bool {
	return s >= 0
}

func (s Status) String() string {
	return fmt.Sprintf("0x%08x", uint32(s))
}

// StatusOf extracts the status carried by err. A nil error reports success.
func StatusOf(err error) (Status, bool) {
	if err == nil {
		return StatusSuccess, true
	}
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		if e.Status != StatusSuccess {
			return e.Status, true
		}
		err = e.Cause
	}
	return StatusSuccess, false
}
