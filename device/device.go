// SPDX-License-Identifier: Unlicense OR MIT

// Package device defines the contract shared by every display backend and
// selects the one backend a process runs with.
//
// A backend opens a display connection, negotiates a pixel configuration,
// creates the drawable surfaces and the rendering context, and hands the
// resulting handles to a renderer living elsewhere. Backends register
// themselves from build-tagged files; which ones exist in a binary is a
// build decision (see the noegl, nox11, norawfb and directfb tags).
package device

import (
	"fmt"
	"strings"
)

// Type identifies a concrete backend.
type Type uint8

const (
	NoDevice Type = iota
	// EGL renders through an EGL display, on top of X11 or a framebuffer.
	EGL
	// X11 is the native windowing backend.
	X11
	// DirectFB renders through the DirectFB primary layer.
	DirectFB
	// RawFB writes directly into a Linux framebuffer device.
	RawFB
)

// RenderAPI is a client rendering API a device may be asked to support.
type RenderAPI uint8

const (
	OpenVG RenderAPI = iota
	OpenGLES1
	OpenGLES2
	X11Render
	VAAPI
)

// Quality selects the attribute template used during configuration
// negotiation.
type Quality uint8

const (
	Low Quality = iota
	Medium
	High
)

// NativeWindow is an opaque native drawable handle, such as an X11
// window id.
type NativeWindow uintptr

// Device is the capability contract every backend implements.
//
// Methods report recoverable failures through their error result.
// Failures that make rendering impossible panic with a *FatalError.
type Device interface {
	Type() Type
	// InitDevice opens the display connection. Args are
	// command line style "-flag value" pairs; unknown flags are ignored.
	InitDevice(args []string) error
	// AttachWindow binds the device to a native window.
	AttachWindow(win NativeWindow) error
	Width() int
	Height() int
	// Depth returns the color depth in bits per pixel.
	Depth() int
	IsSingleBuffered() bool
	IsNativeRender() bool
	SurfaceID() int
	ContextID() int
	SupportsRenderer(api RenderAPI) bool
	// Release tears the device down. It is safe to call more than once.
	Release()
}

// Config carries the runtime options passed to a backend constructor.
type Config struct {
	Quality Quality
	// Depth overrides the build default color depth when non-zero.
	Depth int
	// API is the client API the rendering context is created for.
	API RenderAPI
	// VisualID is the native visual a windowing backend must create its
	// windows with. It comes from an earlier EGL negotiation.
	VisualID int
}

func (t Type) String() string {
	switch t {
	case NoDevice:
		return "none"
	case EGL:
		return "egl"
	case X11:
		return "x11"
	case DirectFB:
		return "directfb"
	case RawFB:
		return "rawfb"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType converts a backend name as printed by Type.String.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "egl":
		return EGL, nil
	case "x11":
		return X11, nil
	case "directfb", "dfb":
		return DirectFB, nil
	case "rawfb", "fb":
		return RawFB, nil
	case "none", "":
		return NoDevice, nil
	}
	return NoDevice, fmt.Errorf("device: unknown type %q", s)
}

func (a RenderAPI) String() string {
	switch a {
	case OpenVG:
		return "OpenVG"
	case OpenGLES1:
		return "OpenGLES1"
	case OpenGLES2:
		return "OpenGLES2"
	case X11Render:
		return "X11"
	case VAAPI:
		return "VAAPI"
	default:
		return fmt.Sprintf("RenderAPI(%d)", uint8(a))
	}
}

// ParseRenderAPI converts a client API name, ignoring case.
func ParseRenderAPI(s string) (RenderAPI, error) {
	switch strings.ToLower(s) {
	case "openvg", "vg":
		return OpenVG, nil
	case "opengles1", "gles1":
		return OpenGLES1, nil
	case "opengles2", "gles2":
		return OpenGLES2, nil
	case "x11":
		return X11Render, nil
	case "vaapi":
		return VAAPI, nil
	}
	return 0, fmt.Errorf("device: unknown render API %q", s)
}

func (q Quality) String() string {
	switch q {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", uint8(q))
	}
}

// ParseQuality converts "low", "medium" or "high".
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(s) {
	case "low":
		return Low, nil
	case "medium", "med":
		return Medium, nil
	case "high":
		return High, nil
	}
	return 0, fmt.Errorf("device: unknown quality %q", s)
}
