// SPDX-License-Identifier: Unlicense OR MIT

package egl

import (
	"fmt"

	"displaykit.org/device"
)

// template is a canned eglChooseConfig request.
type template struct {
	red, green, blue, alpha _EGLint
	depth                   _EGLint
	samples, sampleBuffers  _EGLint
	// minimal templates only pin the color channels and OpenVG.
	minimal bool
}

// minimalDepth selects the minimal template used by the one bit
// rendering mode.
const minimalDepth = 1

var (
	templates32 = [...]template{
		device.Low:    {red: 8, green: 8, blue: 8},
		device.Medium: {red: 8, green: 8, blue: 8, alpha: 8, depth: 16},
		device.High:   {red: 8, green: 8, blue: 8, alpha: 8, depth: 24, samples: 4, sampleBuffers: 1},
	}
	templates16 = [...]template{
		device.Low:    {red: 5, green: 6, blue: 5},
		device.Medium: {red: 5, green: 6, blue: 5, depth: 16},
		device.High:   {red: 5, green: 6, blue: 5, depth: 16, samples: 4, sampleBuffers: 1},
	}
	// These are the settings the Mesa EGL demos use on X11.
	minimalTemplate = template{red: 1, green: 1, blue: 1, minimal: true}
)

// templateFor returns the template for quality at the given color depth.
func templateFor(q device.Quality, bpp int) (template, error) {
	if int(q) >= len(templates32) {
		return template{}, fmt.Errorf("egl: unknown quality %v", q)
	}
	switch bpp {
	case 32:
		return templates32[q], nil
	case 16:
		return templates16[q], nil
	case minimalDepth:
		return minimalTemplate, nil
	}
	return template{}, fmt.Errorf("egl: unsupported depth %d", bpp)
}

// alternateDepth is the single fallback depth tried when nothing matches
// at bpp. Zero means there is none.
func alternateDepth(bpp int) int {
	switch bpp {
	case 32:
		return 16
	case 16:
		return 32
	}
	return 0
}

// renderableBit maps a client API to its EGL_RENDERABLE_TYPE bit.
func renderableBit(a device.RenderAPI) _EGLint {
	switch a {
	case device.OpenVG:
		return _EGL_OPENVG_BIT
	case device.OpenGLES1:
		return _EGL_OPENGL_ES_BIT
	default:
		return _EGL_OPENGL_ES2_BIT
	}
}

// attribs builds the EGL_NONE terminated attribute list.
func (t template) attribs(a device.RenderAPI) []_EGLint {
	if t.minimal {
		return []_EGLint{
			_EGL_RED_SIZE, t.red,
			_EGL_GREEN_SIZE, t.green,
			_EGL_BLUE_SIZE, t.blue,
			_EGL_RENDERABLE_TYPE, _EGL_OPENVG_BIT,
			_EGL_NONE,
		}
	}
	return []_EGLint{
		_EGL_RED_SIZE, t.red,
		_EGL_GREEN_SIZE, t.green,
		_EGL_BLUE_SIZE, t.blue,
		_EGL_ALPHA_SIZE, t.alpha,
		_EGL_DEPTH_SIZE, t.depth,
		_EGL_SAMPLES, t.samples,
		_EGL_SAMPLE_BUFFERS, t.sampleBuffers,
		_EGL_SURFACE_TYPE, _EGL_WINDOW_BIT | _EGL_PBUFFER_BIT | _EGL_PIXMAP_BIT,
		_EGL_RENDERABLE_TYPE, renderableBit(a),
		_EGL_NONE,
	}
}

// mismatches compares a chosen configuration with the template.
func (t template) mismatches(c *Config) []string {
	var diffs []string
	check := func(name string, want, got int) {
		if want != got {
			diffs = append(diffs, fmt.Sprintf("%s: requested %d, got %d", name, want, got))
		}
	}
	check("red", int(t.red), c.Red)
	check("green", int(t.green), c.Green)
	check("blue", int(t.blue), c.Blue)
	if t.minimal {
		return diffs
	}
	check("alpha", int(t.alpha), c.Alpha)
	check("samples", int(t.samples), c.Samples)
	return diffs
}
