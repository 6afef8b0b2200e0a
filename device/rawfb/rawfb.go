// SPDX-License-Identifier: Unlicense OR MIT

// Package rawfb implements a backend drawing straight into the memory of
// a Linux framebuffer device such as /dev/fb0.
package rawfb

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"displaykit.org/device"
	"displaykit.org/internal/cliargs"
)

// DefaultPath is used when neither -fbdev nor $FRAMEBUFFER name a device.
const DefaultPath = "/dev/fb0"

// ErrNoMemory is returned when the device reports no video memory.
var ErrNoMemory = errors.New("rawfb: device has no video memory")

// Bitfield locates one color channel inside a pixel.
type Bitfield struct {
	Offset, Length, MSBRight uint32
}

// varScreeninfo mirrors struct fb_var_screeninfo.
type varScreeninfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp Bitfield
	Nonstd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	Pixclock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HsyncLen, VsyncLen       uint32
	Sync                     uint32
	Vmode                    uint32
	Rotate                   uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

// fixScreeninfo mirrors struct fb_fix_screeninfo.
type fixScreeninfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// framebuffer is an open framebuffer device.
type framebuffer interface {
	varInfo() (varScreeninfo, error)
	fixInfo() (fixScreeninfo, error)
	mmap(size int) ([]byte, error)
	munmap(mem []byte) error
	close() error
}

// open opens the device at path. Tests replace it.
var open = openDevice

// Device is a raw framebuffer device. It holds the process hardware
// claim from New until Release.
type Device struct {
	claim *device.Claim
	path  string
	fb    framebuffer
	vinfo varScreeninfo
	finfo fixScreeninfo
	mem   []byte
}

var _ device.Device = (*Device)(nil)

func logger() *slog.Logger {
	return device.Logger().With("device", "rawfb")
}

// New claims the display hardware.
func New() (*Device, error) {
	claim, err := device.ClaimHardware(device.RawFB)
	if err != nil {
		return nil, err
	}
	return &Device{claim: claim}, nil
}

func (d *Device) Type() device.Type {
	return device.RawFB
}

// devicePath picks the framebuffer named by -fbdev, then $FRAMEBUFFER.
func devicePath(args []string) string {
	if p, ok := cliargs.Lookup(args, "-fbdev", "--fbdev"); ok {
		return p
	}
	if p := os.Getenv("FRAMEBUFFER"); p != "" {
		return p
	}
	return DefaultPath
}

// InitDevice opens the framebuffer, reads its screen information and maps
// its memory.
func (d *Device) InitDevice(args []string) error {
	if d.fb != nil {
		return nil
	}
	log := logger()
	path := devicePath(args)
	fb, err := open(path)
	if err != nil {
		err = fmt.Errorf("rawfb: open %s: %w", path, err)
		log.Error("framebuffer unavailable", "err", err)
		return err
	}
	vinfo, err := fb.varInfo()
	if err == nil {
		var finfo fixScreeninfo
		finfo, err = fb.fixInfo()
		d.finfo = finfo
	}
	if err != nil {
		fb.close()
		err = fmt.Errorf("rawfb: %s screen info: %w", path, err)
		log.Error("framebuffer query failed", "err", err)
		return err
	}
	d.vinfo = vinfo
	size := int(d.finfo.SmemLen)
	if size == 0 {
		size = int(d.finfo.LineLength) * int(vinfo.YResVirtual)
	}
	if size == 0 {
		fb.close()
		return fmt.Errorf("%w: %s", ErrNoMemory, path)
	}
	mem, err := fb.mmap(size)
	if err != nil {
		fb.close()
		err = fmt.Errorf("rawfb: mmap %s: %w", path, err)
		log.Error("framebuffer mapping failed", "err", err)
		return err
	}
	d.fb, d.mem, d.path = fb, mem, path
	log.Info("framebuffer mapped", "path", path, "id", d.Name(),
		"width", vinfo.XRes, "height", vinfo.YRes, "bpp", vinfo.BitsPerPixel,
		"stride", d.finfo.LineLength, "size", size)
	return nil
}

// AttachWindow accepts any handle: the whole screen is the surface.
func (d *Device) AttachWindow(win device.NativeWindow) error {
	if d.fb == nil {
		return device.ErrNotInitialized
	}
	return nil
}

func (d *Device) Width() int {
	return int(d.vinfo.XRes)
}

func (d *Device) Height() int {
	return int(d.vinfo.YRes)
}

func (d *Device) Depth() int {
	return int(d.vinfo.BitsPerPixel)
}

// Stride returns the bytes per scanline.
func (d *Device) Stride() int {
	return int(d.finfo.LineLength)
}

// IsSingleBuffered is always true; drawing lands on screen directly.
func (d *Device) IsSingleBuffered() bool {
	return true
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

// SupportsRenderer is false for every API; clients write pixels to
// Buffer themselves.
func (d *Device) SupportsRenderer(api device.RenderAPI) bool {
	return false
}

// Buffer returns the mapped video memory, or nil before InitDevice.
func (d *Device) Buffer() []byte {
	return d.mem
}

// Path returns the device node in use.
func (d *Device) Path() string {
	return d.path
}

// Name returns the driver identification string.
func (d *Device) Name() string {
	id := d.finfo.ID[:]
	if i := bytes.IndexByte(id, 0); i >= 0 {
		id = id[:i]
	}
	return string(id)
}

// Format returns the red, green, blue and alpha channel layout.
func (d *Device) Format() (r, g, b, a Bitfield) {
	return d.vinfo.Red, d.vinfo.Green, d.vinfo.Blue, d.vinfo.Transp
}

// Release unmaps the video memory, closes the device and drops the
// hardware claim.
func (d *Device) Release() {
	if d.fb != nil {
		if d.mem != nil {
			if err := d.fb.munmap(d.mem); err != nil {
				logger().Error("framebuffer unmap failed", "err", err)
			}
			d.mem = nil
		}
		d.fb.close()
		d.fb = nil
		logger().Info("framebuffer released", "path", d.path)
	}
	d.claim.Release()
}
