// SPDX-License-Identifier: Unlicense OR MIT

package egl

import (
	"fmt"
	"strings"
	"testing"

	"displaykit.org/device"
)

const (
	fakeDisplay  _EGLDisplay = 0xd15
	fakeConfig32 _EGLConfig  = 32
	fakeConfig16 _EGLConfig  = 16
	fakeConfig1  _EGLConfig  = 1
)

type fakeSurface struct {
	width, height int
	renderBuffer  _EGLint
	destroyed     bool
}

// fakeEGL is a recording implementation of api.
type fakeEGL struct {
	calls []string

	noDisplay   bool
	numConfigs  _EGLint
	match       map[int]bool // color depth -> eglChooseConfig finds a config
	failSurface bool
	failContext bool
	failBind    bool
	failPbuffer bool
	// windowRenderBuffer is reported for window surfaces.
	windowRenderBuffer _EGLint
	// configAttribs overrides attributes reported for a config.
	configAttribs map[_EGLConfig]map[_EGLint]_EGLint
	// extensions is the EGL_EXTENSIONS string. Without
	// EGL_KHR_surfaceless_context, binding a context with no surface
	// fails the way EGL 1.4 drivers do.
	extensions string
	// chosen holds every attribute list passed to eglChooseConfig.
	chosen [][]_EGLint

	boundAPI   _EGLenum
	nextHandle uintptr
	surfaces   map[Surface]*fakeSurface
	contexts   map[Context]_EGLenum
	current    binding
	swaps      int
	terminated int
}

func newFakeEGL() *fakeEGL {
	return &fakeEGL{
		numConfigs:         8,
		match:              map[int]bool{32: true, 16: true, 1: true},
		windowRenderBuffer: _EGL_BACK_BUFFER,
		extensions:         "EGL_KHR_image_base EGL_KHR_surfaceless_context",
		surfaces:           make(map[Surface]*fakeSurface),
		contexts:           make(map[Context]_EGLenum),
		nextHandle:         0x100,
	}
}

func (f *fakeEGL) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeEGL) handle() uintptr {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeEGL) eglGetDisplay(disp NativeDisplay) _EGLDisplay {
	f.record("eglGetDisplay")
	if f.noDisplay {
		return nilEGLDisplay
	}
	return fakeDisplay
}

func (f *fakeEGL) eglInitialize(disp _EGLDisplay) (_EGLint, _EGLint, bool) {
	f.record("eglInitialize")
	return 1, 4, true
}

func (f *fakeEGL) eglTerminate(disp _EGLDisplay) bool {
	f.record("eglTerminate")
	f.terminated++
	return true
}

func (f *fakeEGL) eglGetError() _EGLint {
	return _EGL_BAD_MATCH
}

func (f *fakeEGL) eglQueryString(disp _EGLDisplay, name _EGLint) string {
	if name == _EGL_EXTENSIONS {
		return f.extensions
	}
	return "fake"
}

func (f *fakeEGL) eglGetConfigs(disp _EGLDisplay, configs []_EGLConfig) (_EGLint, bool) {
	if len(configs) == 0 {
		return f.numConfigs, true
	}
	all := []_EGLConfig{fakeConfig32, fakeConfig16, fakeConfig1}
	n := copy(configs, all)
	return _EGLint(n), true
}

// depthOf derives the requested color depth from the red channel size.
func depthOf(attribs []_EGLint) int {
	for i := 0; i+1 < len(attribs); i += 2 {
		if attribs[i] == _EGL_RED_SIZE {
			switch attribs[i+1] {
			case 8:
				return 32
			case 5:
				return 16
			case 1:
				return 1
			}
		}
	}
	return 0
}

func (f *fakeEGL) eglChooseConfig(disp _EGLDisplay, attribs []_EGLint, configs []_EGLConfig) (_EGLint, bool) {
	bpp := depthOf(attribs)
	f.record("eglChooseConfig(%d)", bpp)
	f.chosen = append(f.chosen, append([]_EGLint(nil), attribs...))
	if !f.match[bpp] {
		return 0, true
	}
	configs[0] = _EGLConfig(bpp)
	return 1, true
}

func (f *fakeEGL) eglGetConfigAttrib(disp _EGLDisplay, cfg _EGLConfig, attr _EGLint) (_EGLint, bool) {
	if v, ok := f.configAttribs[cfg][attr]; ok {
		return v, true
	}
	r, g, b, vis := _EGLint(8), _EGLint(8), _EGLint(8), _EGLint(0x21)
	switch cfg {
	case fakeConfig16:
		r, g, b, vis = 5, 6, 5, 0x22
	case fakeConfig1:
		r, g, b, vis = 1, 1, 1, 0x23
	}
	switch attr {
	case _EGL_CONFIG_ID:
		return _EGLint(cfg), true
	case _EGL_RED_SIZE:
		return r, true
	case _EGL_GREEN_SIZE:
		return g, true
	case _EGL_BLUE_SIZE:
		return b, true
	case _EGL_NATIVE_VISUAL_ID:
		return vis, true
	case _EGL_RENDERABLE_TYPE:
		if cfg == fakeConfig1 {
			return _EGL_OPENVG_BIT, true
		}
		return _EGL_OPENGL_ES2_BIT | _EGL_OPENVG_BIT, true
	case _EGL_SURFACE_TYPE:
		return _EGL_WINDOW_BIT | _EGL_PBUFFER_BIT | _EGL_PIXMAP_BIT, true
	}
	return 0, true
}

func (f *fakeEGL) eglBindAPI(api _EGLenum) bool {
	f.boundAPI = api
	return true
}

func (f *fakeEGL) newSurface(kind string, w, h int, rb _EGLint) Surface {
	s := Surface(f.handle())
	f.surfaces[s] = &fakeSurface{width: w, height: h, renderBuffer: rb}
	f.record("create %s %#x", kind, uintptr(s))
	return s
}

func (f *fakeEGL) eglCreateWindowSurface(disp _EGLDisplay, cfg _EGLConfig, win uintptr, attribs []_EGLint) Surface {
	if f.failSurface {
		f.record("create window failed")
		return nilEGLSurface
	}
	rb := f.windowRenderBuffer
	for i := 0; i+1 < len(attribs); i += 2 {
		if attribs[i] == _EGL_RENDER_BUFFER {
			rb = attribs[i+1]
		}
	}
	return f.newSurface("window", 640, 480, rb)
}

func sizeOf(attribs []_EGLint) (int, int) {
	var w, h int
	for i := 0; i+1 < len(attribs); i += 2 {
		switch attribs[i] {
		case _EGL_WIDTH:
			w = int(attribs[i+1])
		case _EGL_HEIGHT:
			h = int(attribs[i+1])
		}
	}
	return w, h
}

func (f *fakeEGL) eglCreatePbufferSurface(disp _EGLDisplay, cfg _EGLConfig, attribs []_EGLint) Surface {
	if f.failPbuffer {
		return nilEGLSurface
	}
	w, h := sizeOf(attribs)
	return f.newSurface("pbuffer", w, h, _EGL_BACK_BUFFER)
}

func (f *fakeEGL) eglCreatePbufferFromClientBuffer(disp _EGLDisplay, bufType _EGLenum, buf uintptr, cfg _EGLConfig, attribs []_EGLint) Surface {
	if f.failPbuffer {
		return nilEGLSurface
	}
	w, h := sizeOf(attribs)
	return f.newSurface("client pbuffer", w, h, _EGL_BACK_BUFFER)
}

func (f *fakeEGL) eglCreatePixmapSurface(disp _EGLDisplay, cfg _EGLConfig, pixmap uintptr, attribs []_EGLint) Surface {
	w, h := sizeOf(attribs)
	return f.newSurface("pixmap", w, h, _EGL_SINGLE_BUFFER)
}

func (f *fakeEGL) eglDestroySurface(disp _EGLDisplay, surf Surface) bool {
	s, ok := f.surfaces[surf]
	if !ok || s.destroyed {
		f.record("destroy invalid surface %#x", uintptr(surf))
		return false
	}
	s.destroyed = true
	f.record("destroy surface %#x", uintptr(surf))
	return true
}

func (f *fakeEGL) liveSurfaces() int {
	n := 0
	for _, s := range f.surfaces {
		if !s.destroyed {
			n++
		}
	}
	return n
}

func (f *fakeEGL) eglQuerySurface(disp _EGLDisplay, surf Surface, attr _EGLint) (_EGLint, bool) {
	s, ok := f.surfaces[surf]
	if !ok || s.destroyed {
		return 0, false
	}
	switch attr {
	case _EGL_WIDTH:
		return _EGLint(s.width), true
	case _EGL_HEIGHT:
		return _EGLint(s.height), true
	case _EGL_RENDER_BUFFER:
		return s.renderBuffer, true
	case _EGL_CONFIG_ID:
		return 32, true
	}
	return 0, true
}

func (f *fakeEGL) eglCreateContext(disp _EGLDisplay, cfg _EGLConfig, share Context, attribs []_EGLint) Context {
	if f.failContext {
		f.record("create context failed")
		return nilEGLContext
	}
	c := Context(f.handle())
	f.contexts[c] = f.boundAPI
	f.record("create context %#x", uintptr(c))
	return c
}

func (f *fakeEGL) eglDestroyContext(disp _EGLDisplay, ctx Context) bool {
	if _, ok := f.contexts[ctx]; !ok {
		f.record("destroy invalid context %#x", uintptr(ctx))
		return false
	}
	delete(f.contexts, ctx)
	f.record("destroy context %#x", uintptr(ctx))
	return true
}

func (f *fakeEGL) eglQueryContext(disp _EGLDisplay, ctx Context, attr _EGLint) (_EGLint, bool) {
	api, ok := f.contexts[ctx]
	if !ok {
		return 0, false
	}
	switch attr {
	case _EGL_CONTEXT_CLIENT_TYPE:
		return _EGLint(api), true
	case _EGL_CONFIG_ID:
		return 32, true
	case _EGL_RENDER_BUFFER:
		return _EGL_BACK_BUFFER, true
	}
	return 0, true
}

func (f *fakeEGL) eglMakeCurrent(disp _EGLDisplay, draw, read Surface, ctx Context) bool {
	if ctx == nilEGLContext {
		f.record("unbind")
		f.current = binding{}
		return true
	}
	if f.failBind {
		f.record("bind failed")
		return false
	}
	if draw == nilEGLSurface && !strings.Contains(f.extensions, "EGL_KHR_surfaceless_context") {
		f.record("bind without surface rejected")
		return false
	}
	f.record("bind %#x", uintptr(draw))
	f.current = binding{surf: draw, ctx: ctx}
	return true
}

func (f *fakeEGL) eglSwapBuffers(disp _EGLDisplay, surf Surface) bool {
	f.record("swap %#x", uintptr(surf))
	f.swaps++
	return true
}

func (f *fakeEGL) eglCopyBuffers(disp _EGLDisplay, surf Surface, pixmap uintptr) bool {
	f.record("copy %#x", uintptr(surf))
	return true
}

// newTestDevice returns a device driven by f. The device is released
// when the test ends.
func newTestDevice(t *testing.T, f *fakeEGL, cfg device.Config) *Device {
	t.Helper()
	d, err := newDevice(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Release)
	return d
}

// mustPanicFatal runs fn and fails unless it panics with a
// *device.FatalError.
func mustPanicFatal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if _, ok := r.(*device.FatalError); !ok {
			t.Fatalf("got panic %v, expected a *device.FatalError", r)
		}
	}()
	fn()
}
