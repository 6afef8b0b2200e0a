// SPDX-License-Identifier: Unlicense OR MIT

package egl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoDisplay is returned when no default EGL display exists.
	ErrNoDisplay = errors.New("egl: no display")
	// ErrNoConfig is returned when negotiation finds no configuration at
	// the target depth or its alternate.
	ErrNoConfig = errors.New("egl: no matching config")
	// ErrNotNegotiated is returned by operations that need a negotiated
	// configuration before one exists.
	ErrNotNegotiated = errors.New("egl: config not negotiated")
)

// Config is a negotiated EGL configuration. It is created once per device
// and never modified.
type Config struct {
	handle _EGLConfig

	ID               int
	BPP              int
	Red, Green, Blue int
	Alpha            int
	DepthSize        int
	StencilSize      int
	Samples          int
	SampleBuffers    int
	RenderableType   int
	SurfaceType      int
	NativeVisualID   int
	NativeRenderable bool
	MinSwapInterval  int
	MaxSwapInterval  int
}

// Handle returns the native EGLConfig.
func (c *Config) Handle() uintptr {
	return uintptr(c.handle)
}

// Renders reports whether the config supports the EGL_RENDERABLE_TYPE bits.
func (c *Config) Renders(bits int) bool {
	return c.RenderableType&bits == bits
}

// Negotiate turns the device quality and target depth into a config the
// implementation accepts. When nothing matches at the target depth it
// tries the alternate depth once, at the same quality. Other qualities
// are never tried; callers wanting that re-run negotiation on a new
// device.
//
// Negotiation is done at most once; later calls return the same config.
// A failed negotiation terminates the display it initialized.
func (d *Device) Negotiate() (*Config, error) {
	if d.config != nil {
		return d.config, nil
	}
	log := logger()
	disp := d.egl.eglGetDisplay(eglDefaultDisplay)
	if disp == nilEGLDisplay {
		err := fmt.Errorf("%w: eglGetDisplay failed (%s)", ErrNoDisplay, d.lastError())
		log.Error("EGL display unavailable", "err", err)
		return nil, err
	}
	// eglInitialize may be called any number of times.
	major, minor, ok := d.egl.eglInitialize(disp)
	if !ok {
		err := fmt.Errorf("egl: eglInitialize failed (%s)", d.lastError())
		log.Error("EGL initialization failed", "err", err)
		return nil, err
	}
	d.disp = disp
	exts := strings.Fields(d.egl.eglQueryString(disp, _EGL_EXTENSIONS))
	d.surfaceless = hasExtension(exts, "EGL_KHR_surfaceless_context")
	log.Debug("EGL initialized",
		"version", fmt.Sprintf("%d.%d", major, minor),
		"vendor", d.egl.eglQueryString(disp, _EGL_VENDOR),
		"client_apis", d.egl.eglQueryString(disp, _EGL_CLIENT_APIS),
		"extensions", exts)

	if n := d.QueryConfigs(); n == 0 {
		d.terminate()
		err := fmt.Errorf("%w: display reports no configs", ErrNoConfig)
		log.Error("EGL negotiation failed", "err", err)
		return nil, err
	}
	cfg, err := d.choose(d.bpp)
	if errors.Is(err, ErrNoConfig) {
		if alt := alternateDepth(d.bpp); alt != 0 {
			log.Warn("no EGL config at target depth, trying alternate",
				"quality", d.quality, "depth", d.bpp, "alternate", alt)
			cfg, err = d.choose(alt)
		}
	}
	if err != nil {
		d.terminate()
		log.Error("EGL negotiation failed", "quality", d.quality, "err", err)
		return nil, err
	}
	d.config = cfg
	if diffs := d.CheckConfig(); len(diffs) > 0 {
		log.Warn("EGL config differs from request", "config", cfg.ID, "diffs", diffs)
	}
	log.Info("EGL config negotiated", "config", cfg.ID, "quality", d.quality,
		"depth", cfg.BPP, "visual", cfg.NativeVisualID)
	return cfg, nil
}

func hasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// choose requests the best configuration for the device quality at bpp.
func (d *Device) choose(bpp int) (*Config, error) {
	tpl, err := templateFor(d.quality, bpp)
	if err != nil {
		return nil, err
	}
	attribs := tpl.attribs(d.client)
	logger().Debug("eglChooseConfig", "depth", bpp, "attribs", FormatAttribs(attribs))
	cfgs := make([]_EGLConfig, 1)
	n, ok := d.egl.eglChooseConfig(d.disp, attribs, cfgs)
	if !ok {
		return nil, fmt.Errorf("egl: eglChooseConfig(%d) failed (%s)", bpp, d.lastError())
	}
	if n == 0 || cfgs[0] == nilEGLConfig {
		return nil, fmt.Errorf("%w: depth %d, quality %v", ErrNoConfig, bpp, d.quality)
	}
	return d.readConfig(cfgs[0], bpp), nil
}

func (d *Device) readConfig(h _EGLConfig, bpp int) *Config {
	get := func(attr _EGLint) int {
		v, ok := d.egl.eglGetConfigAttrib(d.disp, h, attr)
		if !ok {
			return 0
		}
		return int(v)
	}
	return &Config{
		handle:           h,
		ID:               get(_EGL_CONFIG_ID),
		BPP:              bpp,
		Red:              get(_EGL_RED_SIZE),
		Green:            get(_EGL_GREEN_SIZE),
		Blue:             get(_EGL_BLUE_SIZE),
		Alpha:            get(_EGL_ALPHA_SIZE),
		DepthSize:        get(_EGL_DEPTH_SIZE),
		StencilSize:      get(_EGL_STENCIL_SIZE),
		Samples:          get(_EGL_SAMPLES),
		SampleBuffers:    get(_EGL_SAMPLE_BUFFERS),
		RenderableType:   get(_EGL_RENDERABLE_TYPE),
		SurfaceType:      get(_EGL_SURFACE_TYPE),
		NativeVisualID:   get(_EGL_NATIVE_VISUAL_ID),
		NativeRenderable: get(_EGL_NATIVE_RENDERABLE) != 0,
		MinSwapInterval:  get(_EGL_MIN_SWAP_INTERVAL),
		MaxSwapInterval:  get(_EGL_MAX_SWAP_INTERVAL),
	}
}

// CheckConfig compares the negotiated config against the template for its
// depth and returns the differences. An empty result means an exact
// match; differences are not errors.
func (d *Device) CheckConfig() []string {
	if d.config == nil {
		return nil
	}
	tpl, err := templateFor(d.quality, d.config.BPP)
	if err != nil {
		return []string{err.Error()}
	}
	return tpl.mismatches(d.config)
}

// QueryConfigs returns the number of configurations the display supports.
func (d *Device) QueryConfigs() int {
	if d.disp == nilEGLDisplay {
		return 0
	}
	n, ok := d.egl.eglGetConfigs(d.disp, nil)
	if !ok {
		logger().Error("eglGetConfigs failed to retrieve the number of configs", "err", d.lastError())
		return 0
	}
	if n <= 0 {
		return 0
	}
	logger().Debug("EGL configs available", "count", n)
	return int(n)
}

// RenderableTypes returns the union of EGL_RENDERABLE_TYPE bits across
// every configuration of the display.
func (d *Device) RenderableTypes() int {
	n := d.QueryConfigs()
	if n == 0 {
		return 0
	}
	cfgs := make([]_EGLConfig, n)
	got, ok := d.egl.eglGetConfigs(d.disp, cfgs)
	if !ok {
		return 0
	}
	var bits int
	for _, c := range cfgs[:got] {
		if v, ok := d.egl.eglGetConfigAttrib(d.disp, c, _EGL_RENDERABLE_TYPE); ok {
			bits |= int(v)
		}
	}
	return bits
}

// NativeVisual returns the native visual id of the negotiated config. A
// windowing backend creates its windows with this visual.
func (d *Device) NativeVisual() (int, error) {
	if d.config == nil {
		return 0, ErrNotNegotiated
	}
	logger().Debug("EGL native visual", "visual", d.config.NativeVisualID)
	return d.config.NativeVisualID, nil
}

// FormatAttribs renders an attribute list as name=value pairs.
func FormatAttribs(attribs []int32) string {
	var s string
	for i := 0; i+1 < len(attribs) && attribs[i] != _EGL_NONE; i += 2 {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%s=%d", attribName(attribs[i]), attribs[i+1])
	}
	return s
}

func attribName(a _EGLint) string {
	switch a {
	case _EGL_RED_SIZE:
		return "red"
	case _EGL_GREEN_SIZE:
		return "green"
	case _EGL_BLUE_SIZE:
		return "blue"
	case _EGL_ALPHA_SIZE:
		return "alpha"
	case _EGL_DEPTH_SIZE:
		return "depth"
	case _EGL_SAMPLES:
		return "samples"
	case _EGL_SAMPLE_BUFFERS:
		return "sample_buffers"
	case _EGL_SURFACE_TYPE:
		return "surface_type"
	case _EGL_RENDERABLE_TYPE:
		return "renderable_type"
	case _EGL_LUMINANCE_SIZE:
		return "luminance"
	default:
		return fmt.Sprintf("0x%x", a)
	}
}
