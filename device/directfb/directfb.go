// SPDX-License-Identifier: Unlicense OR MIT

// Package directfb implements a backend on the DirectFB primary layer.
//
// The native binding needs libdirectfb and is only built with the
// directfb build tag:
//
//	go build -tags directfb
package directfb

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/image/font"

	"displaykit.org/device"
	"displaykit.org/internal/cliargs"
)

// native is the DirectFB library. Every step of InitDevice maps to one
// call.
type native interface {
	// init runs DirectFBInit with the --dfb: options in args.
	init(args []string) error
	create() error
	setFullscreen() error
	// createPrimary creates the flipping primary surface and returns
	// its size.
	createPrimary() (width, height int, err error)
	pixelFormat() PixelFormat
	createFont(path string, height int) error
	// screenSize reports the screen of the primary display layer.
	screenSize() (width, height int, err error)
	flip() error
	releaseFont()
	// releaseLayer frees the primary layer if one is held.
	releaseSurface()
	releaseLayer()
	releaseMain()
}

// newNative is replaced by the cgo binding and by tests.
var newNative = func() (native, error) {
	return nil, fmt.Errorf("directfb: %w (build with -tags directfb)", device.ErrNotCompiled)
}

// Device is a DirectFB device. Unlike the other backends it resolves
// everything eagerly in InitDevice.
type Device struct {
	claim *device.Claim
	dfb   native

	// Initialization progress, for Release and retries.
	created, hasSurface, hasFont bool

	width, height int
	screenW       int
	screenH       int
	format        PixelFormat
	fontPath      string
	face          font.Face
}

var _ device.Device = (*Device)(nil)

func logger() *slog.Logger {
	return device.Logger().With("device", "directfb")
}

// New claims the display hardware and loads DirectFB.
func New() (*Device, error) {
	dfb, err := newNative()
	if err != nil {
		return nil, err
	}
	return newDevice(dfb)
}

func newDevice(dfb native) (*Device, error) {
	claim, err := device.ClaimHardware(device.DirectFB)
	if err != nil {
		return nil, err
	}
	return &Device{claim: claim, dfb: dfb}, nil
}

func (d *Device) Type() device.Type {
	return device.DirectFB
}

// dfbArgs keeps the arguments DirectFBInit understands.
func dfbArgs(args []string) []string {
	var out []string
	for _, a := range args {
		if strings.HasPrefix(a, "--dfb:") {
			out = append(out, a)
		}
	}
	return out
}

// InitDevice initializes DirectFB, takes the primary layer in fullscreen
// mode, creates a flipping primary surface and loads the text font. The
// font comes from a -font argument; a missing or broken font falls back
// to Go Regular with a warning.
func (d *Device) InitDevice(args []string) error {
	if d.hasSurface {
		return nil
	}
	log := logger()
	fail := func(op string, err error) error {
		err = fmt.Errorf("directfb: %s: %w", op, err)
		log.Error("DirectFB initialization failed", "err", err)
		return err
	}
	// A retry after a failure resumes after DirectFBCreate.
	if !d.created {
		if err := d.dfb.init(dfbArgs(args)); err != nil {
			return fail("DirectFBInit", err)
		}
		if err := d.dfb.create(); err != nil {
			return fail("DirectFBCreate", err)
		}
		d.created = true
	}
	if err := d.dfb.setFullscreen(); err != nil {
		return fail("SetCooperativeLevel", err)
	}
	w, h, err := d.dfb.createPrimary()
	if err != nil {
		return fail("CreateSurface", err)
	}
	d.hasSurface = true
	d.width, d.height = w, h
	d.format = d.dfb.pixelFormat()
	log.Info("DirectFB primary surface created", "width", w, "height", h, "format", d.format)

	d.loadFont(args)

	if sw, sh, err := d.dfb.screenSize(); err != nil {
		log.Warn("DirectFB primary layer unavailable", "err", err)
	} else {
		d.screenW, d.screenH = sw, sh
		log.Debug("DirectFB screen", "width", sw, "height", sh)
	}
	return nil
}

func (d *Device) loadFont(args []string) {
	log := logger()
	path, _ := cliargs.Lookup(args, "-font", "--font")
	height := fontHeight(d.height)
	face, err := loadFace(path, height)
	if err != nil {
		log.Warn("font unavailable, using Go Regular", "path", path, "err", err)
		path = ""
		face, err = loadFace("", height)
		if err != nil {
			log.Error("Go Regular unavailable", "err", err)
			return
		}
	}
	d.face = face
	d.fontPath = path
	if path == "" {
		return
	}
	if err := d.dfb.createFont(path, height); err != nil {
		log.Warn("DirectFB font creation failed", "path", path, "err", err)
		return
	}
	d.hasFont = true
}

// AttachWindow accepts any handle: DirectFB draws to the primary layer.
func (d *Device) AttachWindow(win device.NativeWindow) error {
	if !d.hasSurface {
		return device.ErrNotInitialized
	}
	return nil
}

// Flip presents the back buffer of the primary surface.
func (d *Device) Flip() error {
	if !d.hasSurface {
		return device.ErrNotInitialized
	}
	return d.dfb.flip()
}

func (d *Device) Width() int {
	return d.width
}

func (d *Device) Height() int {
	return d.height
}

// Depth returns the bits per pixel of the primary surface format.
func (d *Device) Depth() int {
	return d.format.Depth()
}

// Format returns the primary surface pixel format.
func (d *Device) Format() PixelFormat {
	return d.format
}

// ScreenSize returns the size of the primary layer screen.
func (d *Device) ScreenSize() (width, height int) {
	return d.screenW, d.screenH
}

// Face returns the text face, or nil before InitDevice.
func (d *Device) Face() font.Face {
	return d.face
}

// FontPath returns the font file in use; empty means Go Regular.
func (d *Device) FontPath() string {
	return d.fontPath
}

// IsSingleBuffered is false; the primary surface flips.
func (d *Device) IsSingleBuffered() bool {
	return false
}

func (d *Device) IsNativeRender() bool {
	return true
}

func (d *Device) SurfaceID() int {
	return -1
}

func (d *Device) ContextID() int {
	return -1
}

func (d *Device) SupportsRenderer(api device.RenderAPI) bool {
	return false
}

// Release frees the DirectFB resources in reverse creation order and
// drops the hardware claim.
func (d *Device) Release() {
	if d.hasSurface {
		d.dfb.releaseSurface()
		d.hasSurface = false
	}
	if d.hasFont {
		d.dfb.releaseFont()
		d.hasFont = false
	}
	if d.face != nil {
		d.face.Close()
		d.face = nil
	}
	if d.created {
		// The layer may be held even when its screen query failed.
		d.dfb.releaseLayer()
		d.dfb.releaseMain()
		d.created = false
		logger().Info("DirectFB released")
	}
	d.claim.Release()
}
