// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

package rawfb

import "errors"

func openDevice(path string) (framebuffer, error) {
	return nil, errors.New("rawfb: framebuffer devices are only supported on Linux")
}
