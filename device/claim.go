// SPDX-License-Identifier: Unlicense OR MIT

package device

import "sync/atomic"

// hardwareClaimed is set while a hardware-bound backend is alive.
var hardwareClaimed atomic.Bool

// Claim is the token a hardware-bound backend holds for its lifetime.
// Only one claim exists per process at a time.
type Claim struct {
	owner    Type
	released atomic.Bool
}

// ClaimHardware acquires the process-wide hardware claim for owner.
func ClaimHardware(owner Type) (*Claim, error) {
	if !hardwareClaimed.CompareAndSwap(false, true) {
		return nil, ErrHardwareBusy
	}
	Logger().Debug("hardware claimed", "owner", owner)
	return &Claim{owner: owner}, nil
}

// Owner returns the backend type holding the claim.
func (c *Claim) Owner() Type {
	return c.owner
}

// Release drops the claim. Subsequent calls are no-ops, and a nil claim
// is a valid receiver.
func (c *Claim) Release() {
	if c == nil || !c.released.CompareAndSwap(false, true) {
		return
	}
	hardwareClaimed.Store(false)
	Logger().Debug("hardware released", "owner", c.owner)
}
