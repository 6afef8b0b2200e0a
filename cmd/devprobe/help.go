// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `The devprobe command selects a display backend, negotiates a
configuration and prints what the device reports.

Usage:

	devprobe [flags] [backend arguments]

The -device flag selects the backend: egl, x11, rawfb or directfb. The
default, auto, probes the compiled backends in the order egl, rawfb,
directfb, x11 and takes the first one present. Use -list to see which
backends this binary contains and which of them look present.

The -quality, -depth and -api flags control EGL config negotiation. When
nothing matches at the target depth, the other of 32 and 16 bits is tried
once at the same quality.

The -window flag creates a window of the given size, for example 640x480.
With -device egl the window is an X11 window of the negotiated visual and
the EGL surface is attached to it.

The -visual flag gives the X visual id that -device x11 creates windows
with, in decimal or as 0x hex. Without it the root visual of the default
screen is used. With -device egl the visual always comes from the
negotiated config.

The -pbuffer flag creates an EGL off-screen surface of the given size.

The -display, -fbdev and -font flags are passed on to the backends. Any
remaining arguments are passed on as well; DirectFB reads --dfb: options.

Backends are selected at build time with the tags noegl, nox11 and
norawfb. The DirectFB backend needs libdirectfb and the directfb tag.

The -v flag logs negotiation and lifecycle details to standard error.
`
