// SPDX-License-Identifier: Unlicense OR MIT

package device

import (
	"errors"
	"fmt"
)

var (
	// ErrNotCompiled is returned when the requested backend is not part
	// of this build.
	ErrNotCompiled = errors.New("device: backend not compiled in")

	// ErrHardwareBusy is returned when a hardware-bound backend is
	// constructed while another one is still alive.
	ErrHardwareBusy = errors.New("device: hardware already claimed")

	// ErrNotInitialized is returned when an operation needs InitDevice
	// to have succeeded first.
	ErrNotInitialized = errors.New("device: not initialized")

	// ErrNoWindow is returned for a null native window handle where the
	// handle is optional.
	ErrNoWindow = errors.New("device: no native window")
)

// FatalError is the panic value for failures that leave a device unable
// to render at all: a rendering context that cannot be created or bound,
// or a native visual that does not exist.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("device: fatal: %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal logs err and panics with a *FatalError.
func Fatal(op string, err error) {
	Logger().Error("fatal device error", "op", op, "err", err)
	panic(&FatalError{Op: op, Err: err})
}

// Recover converts a *FatalError panic into an error result. Other panics
// are propagated. Use it as
//
//	defer device.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if fe, ok := r.(*FatalError); ok {
		*errp = fe
		return
	}
	panic(r)
}
