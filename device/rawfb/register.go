// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && !norawfb

package rawfb

import (
	"displaykit.org/device"
	"golang.org/x/sys/unix"
)

func init() {
	device.Register(device.RawFB, device.Backend{
		New: func(cfg device.Config) (device.Device, error) {
			return New()
		},
		Probe: func() bool {
			return unix.Access(devicePath(nil), unix.R_OK|unix.W_OK) == nil
		},
	})
}
