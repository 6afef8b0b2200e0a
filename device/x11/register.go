// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux || freebsd || openbsd || netbsd) && !nox11

package x11

import (
	"os"

	"displaykit.org/device"
)

func init() {
	device.Register(device.X11, device.Backend{
		New: func(cfg device.Config) (device.Device, error) {
			return NewDevice(cfg.VisualID), nil
		},
		Probe: func() bool {
			return os.Getenv("DISPLAY") != ""
		},
	})
}
