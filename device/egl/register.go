// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux || freebsd) && !noegl

package egl

import "displaykit.org/device"

func init() {
	device.Register(device.EGL, device.Backend{
		New: func(cfg device.Config) (device.Device, error) {
			return New(cfg)
		},
		Probe: func() bool {
			_, err := loadAPI()
			return err == nil
		},
	})
}
