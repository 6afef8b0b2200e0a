// SPDX-License-Identifier: Unlicense OR MIT

// Package egl implements the EGL display backend: configuration
// negotiation, the primary window surface, off-screen pbuffers and the
// rendering context.
//
// EGL binds a context to the calling OS thread. Callers that drive a
// Device from a goroutine should call runtime.LockOSThread first.
package egl

import (
	"fmt"
	"log/slog"

	"displaykit.org/device"
)

// Device is an EGL display device. Create it with New, negotiate a
// configuration with InitDevice or Negotiate, then attach a window.
type Device struct {
	egl     api
	claim   *device.Claim
	quality device.Quality
	client  device.RenderAPI
	// bpp is the target color depth requested from negotiation.
	bpp int

	disp   _EGLDisplay
	config *Config
	ctx    Context
	surf   Surface
	win    device.NativeWindow
	// singleBuffer requests EGL_SINGLE_BUFFER window surfaces.
	singleBuffer bool
	// surfaceless reports EGL_KHR_surfaceless_context, which allows
	// binding the context without a surface.
	surfaceless bool

	// pbuffers holds off-screen surfaces in creation order. It is only
	// appended to.
	pbuffers []pbuffer
	current  binding
}

type pbuffer struct {
	surf   Surface
	pixmap bool
}

// binding is the (surface, context) pair current on the display.
type binding struct {
	surf Surface
	ctx  Context
}

var _ device.Device = (*Device)(nil)

func logger() *slog.Logger {
	return device.Logger().With("device", "egl")
}

// New claims the display hardware and loads the EGL library. The device
// is not usable until it has been negotiated.
func New(cfg device.Config) (*Device, error) {
	a, err := loadAPI()
	if err != nil {
		return nil, err
	}
	return newDevice(a, cfg)
}

func newDevice(a api, cfg device.Config) (*Device, error) {
	claim, err := device.ClaimHardware(device.EGL)
	if err != nil {
		return nil, err
	}
	bpp := cfg.Depth
	if bpp == 0 {
		bpp = defaultDepth
	}
	if _, err := templateFor(cfg.Quality, bpp); err != nil {
		claim.Release()
		return nil, err
	}
	d := &Device{
		egl:     a,
		claim:   claim,
		quality: cfg.Quality,
		client:  cfg.API,
		bpp:     bpp,
	}
	if err := d.bindAPI(cfg.API); err != nil {
		claim.Release()
		return nil, err
	}
	return d, nil
}

func (d *Device) Type() device.Type {
	return device.EGL
}

// InitDevice negotiates the configuration. EGL takes no arguments; they
// are accepted for symmetry with the other backends.
func (d *Device) InitDevice(args []string) error {
	_, err := d.Negotiate()
	return err
}

// Quality returns the quality the device negotiates for.
func (d *Device) Quality() device.Quality {
	return d.quality
}

// Config returns the negotiated configuration, or nil.
func (d *Device) Config() *Config {
	return d.config
}

// BindClient selects the client API for contexts created afterwards.
// Call it before InitDevice to have negotiation request configs renderable
// by api.
func (d *Device) BindClient(api device.RenderAPI) error {
	if err := d.bindAPI(api); err != nil {
		return err
	}
	d.client = api
	return nil
}

func (d *Device) bindAPI(api device.RenderAPI) error {
	var e _EGLenum
	switch api {
	case device.OpenVG:
		e = _EGL_OPENVG_API
	case device.OpenGLES1, device.OpenGLES2:
		e = _EGL_OPENGL_ES_API
	default:
		return fmt.Errorf("egl: client API %v not supported", api)
	}
	if !d.egl.eglBindAPI(e) {
		return fmt.Errorf("egl: eglBindAPI(%v) failed (%s)", api, d.lastError())
	}
	logger().Debug("EGL client API bound", "api", api)
	return nil
}

// SetSingleBuffered requests single buffered window surfaces from the
// next AttachWindow.
func (d *Device) SetSingleBuffered(single bool) {
	d.singleBuffer = single
}

func (d *Device) lastError() string {
	code := int(d.egl.eglGetError())
	return fmt.Sprintf("%s 0x%x", ErrorString(code), code)
}

func (d *Device) querySurface(s Surface, attr _EGLint) (int, bool) {
	if d.disp == nilEGLDisplay || s == nilEGLSurface {
		return 0, false
	}
	v, ok := d.egl.eglQuerySurface(d.disp, s, attr)
	return int(v), ok
}

func (d *Device) queryContext(attr _EGLint) (int, bool) {
	if d.disp == nilEGLDisplay || d.ctx == nilEGLContext {
		return 0, false
	}
	v, ok := d.egl.eglQueryContext(d.disp, d.ctx, attr)
	return int(v), ok
}

// Width returns the primary surface width, or 0 without a surface.
func (d *Device) Width() int {
	v, _ := d.querySurface(d.surf, _EGL_WIDTH)
	return v
}

// Height returns the primary surface height, or 0 without a surface.
func (d *Device) Height() int {
	v, _ := d.querySurface(d.surf, _EGL_HEIGHT)
	return v
}

// Depth returns the color depth of the negotiated config, or 0.
func (d *Device) Depth() int {
	if d.config == nil {
		return 0
	}
	return d.config.BPP
}

// Stride returns the bytes per row of the primary surface.
func (d *Device) Stride() int {
	return d.Width() * d.Depth() / 8
}

func (d *Device) RedSize() int {
	if d.config == nil {
		return 0
	}
	return d.config.Red
}

func (d *Device) GreenSize() int {
	if d.config == nil {
		return 0
	}
	return d.config.Green
}

func (d *Device) BlueSize() int {
	if d.config == nil {
		return 0
	}
	return d.config.Blue
}

// Samples returns the negotiated sample count, or -1.
func (d *Device) Samples() int {
	if d.config == nil {
		return -1
	}
	return d.config.Samples
}

// SampleBuffers returns the negotiated sample buffer count, or -1.
func (d *Device) SampleBuffers() int {
	if d.config == nil {
		return -1
	}
	return d.config.SampleBuffers
}

func (d *Device) MinSwapInterval() int {
	if d.config == nil {
		return -1
	}
	return d.config.MinSwapInterval
}

func (d *Device) MaxSwapInterval() int {
	if d.config == nil {
		return -1
	}
	return d.config.MaxSwapInterval
}

// IsSingleBuffered queries the primary surface render buffer. It is asked
// of the implementation on every call.
func (d *Device) IsSingleBuffered() bool {
	v, ok := d.querySurface(d.surf, _EGL_RENDER_BUFFER)
	return ok && v == _EGL_SINGLE_BUFFER
}

func (d *Device) IsBackBuffered() bool {
	v, ok := d.querySurface(d.surf, _EGL_RENDER_BUFFER)
	return ok && v == _EGL_BACK_BUFFER
}

func (d *Device) IsMultiSample() bool {
	v, ok := d.querySurface(d.surf, _EGL_MULTISAMPLE_RESOLVE)
	return ok && v == _EGL_MULTISAMPLE_RESOLVE_BOX
}

// IsBufferDestroyed reports whether swapping discards the color buffer.
func (d *Device) IsBufferDestroyed() bool {
	v, ok := d.querySurface(d.surf, _EGL_SWAP_BEHAVIOR)
	return ok && v == _EGL_BUFFER_DESTROYED
}

func (d *Device) VerticalRes() int {
	v, _ := d.querySurface(d.surf, _EGL_VERTICAL_RES)
	return v
}

func (d *Device) HorizontalRes() int {
	v, _ := d.querySurface(d.surf, _EGL_HORIZONTAL_RES)
	return v
}

func (d *Device) IsNativeRender() bool {
	return d.config != nil && d.config.NativeRenderable
}

// SurfaceID returns the config id of the primary surface, or -1.
func (d *Device) SurfaceID() int {
	if v, ok := d.querySurface(d.surf, _EGL_CONFIG_ID); ok {
		return v
	}
	return -1
}

// ContextID returns the config id of the rendering context, or -1.
func (d *Device) ContextID() int {
	if v, ok := d.queryContext(_EGL_CONFIG_ID); ok {
		return v
	}
	return -1
}

func (d *Device) IsContextSingleBuffered() bool {
	v, ok := d.queryContext(_EGL_RENDER_BUFFER)
	return ok && v == _EGL_SINGLE_BUFFER
}

func (d *Device) IsContextBackBuffered() bool {
	v, ok := d.queryContext(_EGL_RENDER_BUFFER)
	return ok && v == _EGL_BACK_BUFFER
}

// SupportsRenderer reports whether the rendering context was created for
// api. It is false until a context exists.
func (d *Device) SupportsRenderer(api device.RenderAPI) bool {
	v, ok := d.queryContext(_EGL_CONTEXT_CLIENT_TYPE)
	if !ok {
		return false
	}
	switch v {
	case _EGL_OPENGL_ES_API:
		return api == device.OpenGLES1 || api == device.OpenGLES2
	case _EGL_OPENVG_API:
		return api == device.OpenVG
	}
	return false
}

// Surface returns the primary window surface, or 0.
func (d *Device) Surface() Surface {
	return d.surf
}

// Context returns the rendering context, or 0.
func (d *Device) Context() Context {
	return d.ctx
}

// Display returns the EGLDisplay handle, or 0 before negotiation.
func (d *Device) Display() uintptr {
	return uintptr(d.disp)
}
