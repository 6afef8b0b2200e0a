// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd

package egl

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// libEGL resolves EGL entry points at runtime, so the package builds
// without cgo and a missing libEGL is an ordinary error.
type libEGL struct {
	getDisplay                    func(disp uintptr) uintptr
	initialize                    func(disp uintptr, major, minor *int32) uint32
	terminate                     func(disp uintptr) uint32
	getError                      func() int32
	queryString                   func(disp uintptr, name int32) string
	getConfigs                    func(disp uintptr, configs *uintptr, size int32, num *int32) uint32
	chooseConfig                  func(disp uintptr, attribs *int32, configs *uintptr, size int32, num *int32) uint32
	getConfigAttrib               func(disp, cfg uintptr, attr int32, val *int32) uint32
	bindAPI                       func(api uint32) uint32
	createWindowSurface           func(disp, cfg, win uintptr, attribs *int32) uintptr
	createPbufferSurface          func(disp, cfg uintptr, attribs *int32) uintptr
	createPbufferFromClientBuffer func(disp uintptr, bufType uint32, buf, cfg uintptr, attribs *int32) uintptr
	createPixmapSurface           func(disp, cfg, pixmap uintptr, attribs *int32) uintptr
	destroySurface                func(disp, surf uintptr) uint32
	querySurface                  func(disp, surf uintptr, attr int32, val *int32) uint32
	createContext                 func(disp, cfg, share uintptr, attribs *int32) uintptr
	destroyContext                func(disp, ctx uintptr) uint32
	queryContext                  func(disp, ctx uintptr, attr int32, val *int32) uint32
	makeCurrent                   func(disp, draw, read, ctx uintptr) uint32
	swapBuffers                   func(disp, surf uintptr) uint32
	copyBuffers                   func(disp, surf, pixmap uintptr) uint32
}

var (
	loadOnce sync.Once
	loaded   *libEGL
	loadErr  error
)

// libNames lists the sonames tried in order.
var libNames = []string{"libEGL.so.1", "libEGL.so"}

func loadAPI() (api, error) {
	loadOnce.Do(func() {
		loaded, loadErr = openEGL()
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return loaded, nil
}

func openEGL() (*libEGL, error) {
	var (
		h   uintptr
		err error
	)
	for _, name := range libNames {
		h, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("egl: failed to load libEGL: %w", err)
	}
	l := new(libEGL)
	procs := map[string]interface{}{
		"eglGetDisplay":                    &l.getDisplay,
		"eglInitialize":                    &l.initialize,
		"eglTerminate":                     &l.terminate,
		"eglGetError":                      &l.getError,
		"eglQueryString":                   &l.queryString,
		"eglGetConfigs":                    &l.getConfigs,
		"eglChooseConfig":                  &l.chooseConfig,
		"eglGetConfigAttrib":               &l.getConfigAttrib,
		"eglBindAPI":                       &l.bindAPI,
		"eglCreateWindowSurface":           &l.createWindowSurface,
		"eglCreatePbufferSurface":          &l.createPbufferSurface,
		"eglCreatePbufferFromClientBuffer": &l.createPbufferFromClientBuffer,
		"eglCreatePixmapSurface":           &l.createPixmapSurface,
		"eglDestroySurface":                &l.destroySurface,
		"eglQuerySurface":                  &l.querySurface,
		"eglCreateContext":                 &l.createContext,
		"eglDestroyContext":                &l.destroyContext,
		"eglQueryContext":                  &l.queryContext,
		"eglMakeCurrent":                   &l.makeCurrent,
		"eglSwapBuffers":                   &l.swapBuffers,
		"eglCopyBuffers":                   &l.copyBuffers,
	}
	for name, fptr := range procs {
		if _, err := purego.Dlsym(h, name); err != nil {
			return nil, fmt.Errorf("egl: failed to locate %s: %w", name, err)
		}
		purego.RegisterLibFunc(fptr, h, name)
	}
	return l, nil
}

// attribPtr returns a pointer to a terminated attribute list.
func attribPtr(attribs []_EGLint) *int32 {
	if len(attribs) == 0 {
		attribs = []_EGLint{_EGL_NONE}
	}
	return &attribs[0]
}

func configPtr(configs []_EGLConfig) *uintptr {
	if len(configs) == 0 {
		return nil
	}
	return (*uintptr)(unsafe.Pointer(&configs[0]))
}

func (l *libEGL) eglGetDisplay(disp NativeDisplay) _EGLDisplay {
	return _EGLDisplay(l.getDisplay(uintptr(disp)))
}

func (l *libEGL) eglInitialize(disp _EGLDisplay) (_EGLint, _EGLint, bool) {
	var major, minor int32
	ret := l.initialize(uintptr(disp), &major, &minor)
	return major, minor, ret != 0
}

func (l *libEGL) eglTerminate(disp _EGLDisplay) bool {
	return l.terminate(uintptr(disp)) != 0
}

func (l *libEGL) eglGetError() _EGLint {
	return l.getError()
}

func (l *libEGL) eglQueryString(disp _EGLDisplay, name _EGLint) string {
	return l.queryString(uintptr(disp), name)
}

func (l *libEGL) eglGetConfigs(disp _EGLDisplay, configs []_EGLConfig) (_EGLint, bool) {
	var n int32
	ret := l.getConfigs(uintptr(disp), configPtr(configs), int32(len(configs)), &n)
	return n, ret != 0
}

func (l *libEGL) eglChooseConfig(disp _EGLDisplay, attribs []_EGLint, configs []_EGLConfig) (_EGLint, bool) {
	var n int32
	ret := l.chooseConfig(uintptr(disp), attribPtr(attribs), configPtr(configs), int32(len(configs)), &n)
	return n, ret != 0
}

func (l *libEGL) eglGetConfigAttrib(disp _EGLDisplay, cfg _EGLConfig, attr _EGLint) (_EGLint, bool) {
	var v int32
	ret := l.getConfigAttrib(uintptr(disp), uintptr(cfg), attr, &v)
	return v, ret != 0
}

func (l *libEGL) eglBindAPI(api _EGLenum) bool {
	return l.bindAPI(api) != 0
}

func (l *libEGL) eglCreateWindowSurface(disp _EGLDisplay, cfg _EGLConfig, win uintptr, attribs []_EGLint) Surface {
	return Surface(l.createWindowSurface(uintptr(disp), uintptr(cfg), win, attribPtr(attribs)))
}

func (l *libEGL) eglCreatePbufferSurface(disp _EGLDisplay, cfg _EGLConfig, attribs []_EGLint) Surface {
	return Surface(l.createPbufferSurface(uintptr(disp), uintptr(cfg), attribPtr(attribs)))
}

func (l *libEGL) eglCreatePbufferFromClientBuffer(disp _EGLDisplay, bufType _EGLenum, buf uintptr, cfg _EGLConfig, attribs []_EGLint) Surface {
	return Surface(l.createPbufferFromClientBuffer(uintptr(disp), bufType, buf, uintptr(cfg), attribPtr(attribs)))
}

func (l *libEGL) eglCreatePixmapSurface(disp _EGLDisplay, cfg _EGLConfig, pixmap uintptr, attribs []_EGLint) Surface {
	return Surface(l.createPixmapSurface(uintptr(disp), uintptr(cfg), pixmap, attribPtr(attribs)))
}

func (l *libEGL) eglDestroySurface(disp _EGLDisplay, surf Surface) bool {
	return l.destroySurface(uintptr(disp), uintptr(surf)) != 0
}

func (l *libEGL) eglQuerySurface(disp _EGLDisplay, surf Surface, attr _EGLint) (_EGLint, bool) {
	var v int32
	ret := l.querySurface(uintptr(disp), uintptr(surf), attr, &v)
	return v, ret != 0
}

func (l *libEGL) eglCreateContext(disp _EGLDisplay, cfg _EGLConfig, share Context, attribs []_EGLint) Context {
	return Context(l.createContext(uintptr(disp), uintptr(cfg), uintptr(share), attribPtr(attribs)))
}

func (l *libEGL) eglDestroyContext(disp _EGLDisplay, ctx Context) bool {
	return l.destroyContext(uintptr(disp), uintptr(ctx)) != 0
}

func (l *libEGL) eglQueryContext(disp _EGLDisplay, ctx Context, attr _EGLint) (_EGLint, bool) {
	var v int32
	ret := l.queryContext(uintptr(disp), uintptr(ctx), attr, &v)
	return v, ret != 0
}

func (l *libEGL) eglMakeCurrent(disp _EGLDisplay, draw, read Surface, ctx Context) bool {
	return l.makeCurrent(uintptr(disp), uintptr(draw), uintptr(read), uintptr(ctx)) != 0
}

func (l *libEGL) eglSwapBuffers(disp _EGLDisplay, surf Surface) bool {
	return l.swapBuffers(uintptr(disp), uintptr(surf)) != 0
}

func (l *libEGL) eglCopyBuffers(disp _EGLDisplay, surf Surface, pixmap uintptr) bool {
	return l.copyBuffers(uintptr(disp), uintptr(surf), pixmap) != 0
}
