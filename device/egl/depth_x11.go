// SPDX-License-Identifier: Unlicense OR MIT

//go:build !nox11

package egl

// defaultDepth is the target color depth when an X11 desktop can be
// present.
const defaultDepth = 32
