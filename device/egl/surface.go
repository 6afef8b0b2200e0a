// SPDX-License-Identifier: Unlicense OR MIT

package egl

import (
	"errors"
	"fmt"

	"displaykit.org/device"
)

var (
	// ErrNoSurface is returned when the window surface could not be
	// created, or an operation needs one that does not exist.
	ErrNoSurface = errors.New("egl: no surface")
	// ErrOutOfRange is returned for a pbuffer index outside the pool.
	ErrOutOfRange = errors.New("egl: pbuffer index out of range")
	// ErrNoContext is returned when binding is attempted before a
	// rendering context exists.
	ErrNoContext = errors.New("egl: no context")
)

// AttachWindow creates the primary surface for win and makes it current
// with the rendering context, creating the context on first use.
//
// A previous primary surface is destroyed first. Failing to create the
// surface is logged and reported as ErrNoSurface, after the context has
// still been created. The context is then bound without a surface only
// when the display supports EGL_KHR_surfaceless_context. A null window,
// a context that cannot be created or a binding that fails panic with a
// *device.FatalError.
func (d *Device) AttachWindow(win device.NativeWindow) error {
	if win == 0 {
		device.Fatal("AttachWindow", device.ErrNoWindow)
	}
	if d.config == nil {
		return ErrNotNegotiated
	}
	log := logger()
	d.destroyWindowSurface()
	d.win = win

	var surfErr error
	var attribs []_EGLint
	if d.singleBuffer {
		attribs = append(attribs, _EGL_RENDER_BUFFER, _EGL_SINGLE_BUFFER)
	}
	attribs = append(attribs, _EGL_NONE)
	d.surf = d.egl.eglCreateWindowSurface(d.disp, d.config.handle, uintptr(win), attribs)
	if d.surf == nilEGLSurface {
		surfErr = fmt.Errorf("%w: eglCreateWindowSurface failed (%s)", ErrNoSurface, d.lastError())
		log.Error("window surface creation failed", "window", uintptr(win), "err", surfErr)
	} else {
		log.Info("window surface created", "window", uintptr(win), "surface", uintptr(d.surf))
	}

	if d.ctx == nilEGLContext {
		d.ctx = d.egl.eglCreateContext(d.disp, d.config.handle, nilEGLContext, d.contextAttribs())
		if d.ctx == nilEGLContext {
			device.Fatal("eglCreateContext", errors.New(d.lastError()))
		}
		log.Info("rendering context created", "context", uintptr(d.ctx), "api", d.client)
	}
	if d.surf == nilEGLSurface && !d.surfaceless {
		log.Warn("context left unbound, display lacks EGL_KHR_surfaceless_context")
		return surfErr
	}
	if err := d.MakeCurrent(d.surf); err != nil {
		device.Fatal("eglMakeCurrent", err)
	}
	return surfErr
}

func (d *Device) contextAttribs() []_EGLint {
	switch d.client {
	case device.OpenGLES1:
		return []_EGLint{_EGL_CONTEXT_CLIENT_VERSION, 1, _EGL_NONE}
	case device.OpenGLES2:
		return []_EGLint{_EGL_CONTEXT_CLIENT_VERSION, 2, _EGL_NONE}
	}
	return []_EGLint{_EGL_NONE}
}

// destroyWindowSurface releases the primary surface, unbinding it first
// when it is current.
func (d *Device) destroyWindowSurface() {
	if d.surf == nilEGLSurface {
		return
	}
	if d.current.surf == d.surf {
		d.ReleaseCurrent()
	}
	d.egl.eglDestroySurface(d.disp, d.surf)
	logger().Debug("window surface destroyed", "surface", uintptr(d.surf))
	d.surf = nilEGLSurface
}

// MakeCurrent binds the rendering context to s for drawing and reading.
// A zero s binds the context without a surface. The pair previously
// current is replaced; on failure it stays current.
func (d *Device) MakeCurrent(s Surface) error {
	if d.disp == nilEGLDisplay {
		return device.ErrNotInitialized
	}
	if d.ctx == nilEGLContext {
		return ErrNoContext
	}
	if !d.egl.eglMakeCurrent(d.disp, s, s, d.ctx) {
		return fmt.Errorf("egl: eglMakeCurrent failed (%s)", d.lastError())
	}
	d.current = binding{surf: s, ctx: d.ctx}
	return nil
}

// ReleaseCurrent unbinds whatever pair is current on the display.
func (d *Device) ReleaseCurrent() {
	if d.disp == nilEGLDisplay {
		return
	}
	d.egl.eglMakeCurrent(d.disp, nilEGLSurface, nilEGLSurface, nilEGLContext)
	d.current = binding{}
}

// Current returns the surface and context bound by the last successful
// MakeCurrent, or zeros.
func (d *Device) Current() (Surface, Context) {
	return d.current.surf, d.current.ctx
}

// CreatePbuffer allocates a width×height off-screen surface, appends it
// to the pool and returns its index.
func (d *Device) CreatePbuffer(width, height int) (int, error) {
	if err := d.checkPbuffer(width, height); err != nil {
		return -1, err
	}
	attribs := []_EGLint{_EGL_WIDTH, _EGLint(width), _EGL_HEIGHT, _EGLint(height), _EGL_NONE}
	s := d.egl.eglCreatePbufferSurface(d.disp, d.config.handle, attribs)
	if s == nilEGLSurface {
		return -1, d.pbufferError("eglCreatePbufferSurface", width, height)
	}
	return d.appendPbuffer(s, false, width, height), nil
}

// CreatePbufferFromClientBuffer wraps buf, a client API buffer of type
// bufType such as an OpenVG image, as an off-screen surface without
// copying it. The surface is appended to the pool.
func (d *Device) CreatePbufferFromClientBuffer(width, height int, buf uintptr, bufType uint32) (int, error) {
	if err := d.checkPbuffer(width, height); err != nil {
		return -1, err
	}
	if buf == 0 {
		return -1, errors.New("egl: nil client buffer")
	}
	attribs := []_EGLint{_EGL_WIDTH, _EGLint(width), _EGL_HEIGHT, _EGLint(height), _EGL_NONE}
	s := d.egl.eglCreatePbufferFromClientBuffer(d.disp, bufType, buf, d.config.handle, attribs)
	if s == nilEGLSurface {
		return -1, d.pbufferError("eglCreatePbufferFromClientBuffer", width, height)
	}
	return d.appendPbuffer(s, false, width, height), nil
}

// OpenVGImage is the client buffer type of an OpenVG VGImage.
const OpenVGImage = _EGL_OPENVG_IMAGE

// CreatePixmap creates a surface rendering into a native pixmap. Pixmap
// surfaces share the pbuffer pool.
func (d *Device) CreatePixmap(width, height int, pixmap uintptr) (int, error) {
	if err := d.checkPbuffer(width, height); err != nil {
		return -1, err
	}
	attribs := []_EGLint{_EGL_WIDTH, _EGLint(width), _EGL_HEIGHT, _EGLint(height), _EGL_NONE}
	s := d.egl.eglCreatePixmapSurface(d.disp, d.config.handle, pixmap, attribs)
	if s == nilEGLSurface {
		return -1, d.pbufferError("eglCreatePixmapSurface", width, height)
	}
	return d.appendPbuffer(s, true, width, height), nil
}

func (d *Device) checkPbuffer(width, height int) error {
	if d.config == nil {
		return ErrNotNegotiated
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("egl: invalid pbuffer size %dx%d", width, height)
	}
	return nil
}

func (d *Device) pbufferError(op string, width, height int) error {
	err := fmt.Errorf("egl: %s(%dx%d) failed (%s)", op, width, height, d.lastError())
	logger().Error("off-screen surface creation failed", "err", err)
	return err
}

func (d *Device) appendPbuffer(s Surface, pixmap bool, width, height int) int {
	d.pbuffers = append(d.pbuffers, pbuffer{surf: s, pixmap: pixmap})
	idx := len(d.pbuffers) - 1
	logger().Debug("off-screen surface created", "index", idx, "width", width, "height", height, "pixmap", pixmap)
	return idx
}

// TotalPbuffers returns the pool size.
func (d *Device) TotalPbuffers() int {
	return len(d.pbuffers)
}

// Pbuffer returns the surface at index i.
func (d *Device) Pbuffer(i int) (Surface, error) {
	if i < 0 || i >= len(d.pbuffers) {
		return nilEGLSurface, ErrOutOfRange
	}
	return d.pbuffers[i].surf, nil
}

// PbufferSize returns the size EGL reports for the surface at index i.
func (d *Device) PbufferSize(i int) (width, height int, err error) {
	s, err := d.Pbuffer(i)
	if err != nil {
		return 0, 0, err
	}
	width, _ = d.querySurface(s, _EGL_WIDTH)
	height, _ = d.querySurface(s, _EGL_HEIGHT)
	return width, height, nil
}

// MakePbufferCurrent binds the rendering context to the pool entry at i.
// On failure the current pair is unchanged.
func (d *Device) MakePbufferCurrent(i int) error {
	s, err := d.Pbuffer(i)
	if err != nil {
		return err
	}
	if err := d.MakeCurrent(s); err != nil {
		logger().Error("binding off-screen surface failed", "index", i, "err", err)
		return err
	}
	return nil
}

// CopyPbuffer copies the color buffer of pool entry i into pixmap.
func (d *Device) CopyPbuffer(i int, pixmap uintptr) error {
	s, err := d.Pbuffer(i)
	if err != nil {
		return err
	}
	if !d.egl.eglCopyBuffers(d.disp, s, pixmap) {
		return fmt.Errorf("egl: eglCopyBuffers failed (%s)", d.lastError())
	}
	return nil
}

// SwapBuffers presents the back buffer of the primary surface. A single
// buffered surface was drawn to directly, so nothing is presented.
func (d *Device) SwapBuffers() error {
	if d.surf == nilEGLSurface {
		return ErrNoSurface
	}
	if d.IsSingleBuffered() {
		return nil
	}
	if !d.egl.eglSwapBuffers(d.disp, d.surf) {
		return fmt.Errorf("egl: eglSwapBuffers failed (%s)", d.lastError())
	}
	return nil
}

// Release tears the device down: unbind the current pair, destroy pool
// surfaces in creation order, then the context, then the primary surface,
// and finally terminate the display. Handles are cleared as they go, so
// a second Release does nothing.
func (d *Device) Release() {
	if d.disp != nilEGLDisplay {
		d.ReleaseCurrent()
		for _, p := range d.pbuffers {
			d.egl.eglDestroySurface(d.disp, p.surf)
		}
		d.pbuffers = nil
		if d.ctx != nilEGLContext {
			d.egl.eglDestroyContext(d.disp, d.ctx)
			d.ctx = nilEGLContext
		}
		if d.surf != nilEGLSurface {
			d.egl.eglDestroySurface(d.disp, d.surf)
			d.surf = nilEGLSurface
		}
		d.terminate()
		logger().Info("EGL device released")
	}
	d.config = nil
	d.win = 0
	d.claim.Release()
}

func (d *Device) terminate() {
	if d.disp == nilEGLDisplay {
		return
	}
	d.egl.eglTerminate(d.disp)
	d.disp = nilEGLDisplay
}
