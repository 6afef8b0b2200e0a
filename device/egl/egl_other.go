// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !freebsd

package egl

import (
	"errors"
	"runtime"
)

func loadAPI() (api, error) {
	return nil, errors.New("egl: not supported on " + runtime.GOOS)
}
