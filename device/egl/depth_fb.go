// SPDX-License-Identifier: Unlicense OR MIT

//go:build nox11

package egl

// defaultDepth is the target color depth for framebuffer-only builds.
const defaultDepth = 16
