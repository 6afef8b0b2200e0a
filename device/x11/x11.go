// SPDX-License-Identifier: Unlicense OR MIT

// Package x11 implements the native X11 windowing backend. It binds
// windows to the visual of an EGL config negotiated earlier in the same
// process, so that what EGL renders matches the window pixel layout.
package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/xgb/xproto"

	"displaykit.org/device"
	"displaykit.org/internal/cliargs"
)

var (
	// ErrNoScreen is returned when the server reports no usable screen.
	ErrNoScreen = errors.New("x11: no screen")
	errNoRandR  = errors.New("x11: RandR extension missing")
)

// Output is a connected monitor as reported by RandR.
type Output struct {
	Name          string
	X, Y          int
	Width, Height int
}

// Device is an X11 windowing device.
type Device struct {
	visualID int
	display  string

	conn     conn
	screen   *xproto.ScreenInfo
	root     xproto.Window
	colormap xproto.Colormap
	visual   *xproto.VisualInfo
	depth    int

	win           xproto.Window
	width, height int
	// Resources created by CreateWindow, released by Release.
	ownWin  xproto.Window
	ownCmap xproto.Colormap
}

var _ device.Device = (*Device)(nil)

func logger() *slog.Logger {
	return device.Logger().With("device", "x11")
}

// NewDevice returns a device that will create and adopt windows with the
// visual visualID. It is normally the native visual of a negotiated EGL
// config for the same color depth. Zero, which X reserves for None,
// selects the root visual of the default screen.
func NewDevice(visualID int) *Device {
	return &Device{visualID: visualID}
}

func (d *Device) Type() device.Type {
	return device.X11
}

// InitDevice connects to the X server. The display name is taken from a
// -display or --display argument, the first one found, and defaults to
// $DISPLAY. A visual id that the default screen does not offer panics
// with a *device.FatalError. A connected device ignores further calls.
func (d *Device) InitDevice(args []string) error {
	if d.conn != nil {
		return nil
	}
	name, ok := cliargs.Lookup(args, "-display", "--display")
	if !ok {
		name = os.Getenv("DISPLAY")
	}
	log := logger()
	c, err := dial(name)
	if err != nil {
		err = fmt.Errorf("x11: connect to %q: %w", name, err)
		log.Error("X connection failed", "err", err)
		return err
	}
	setup := c.setup()
	n := c.defaultScreen()
	if setup == nil || n < 0 || n >= len(setup.Roots) {
		c.close()
		return ErrNoScreen
	}
	d.conn = c
	d.display = name
	d.screen = &setup.Roots[n]
	d.root = d.screen.Root
	d.colormap = d.screen.DefaultColormap
	log.Info("X connection opened", "display", name, "screen", n,
		"root_depth", d.screen.RootDepth, "width", d.screen.WidthInPixels, "height", d.screen.HeightInPixels)

	if d.visualID == 0 {
		d.visualID = int(d.screen.RootVisual)
		log.Debug("X root visual selected", "visual", d.visualID)
	}
	vis, depth := findVisual(d.screen, xproto.Visualid(d.visualID))
	if vis == nil {
		device.Fatal("x11 visual lookup", fmt.Errorf("no visual with id %#x on screen %d", d.visualID, n))
	}
	d.visual = vis
	d.depth = depth
	log.Debug("X visual matched", "visual", d.visualID, "depth", depth, "class", vis.Class)
	return nil
}

// findVisual searches the allowed depths of s for the visual id.
func findVisual(s *xproto.ScreenInfo, id xproto.Visualid) (*xproto.VisualInfo, int) {
	for i := range s.AllowedDepths {
		dp := &s.AllowedDepths[i]
		for j := range dp.Visuals {
			if dp.Visuals[j].VisualId == id {
				return &dp.Visuals[j], int(dp.Depth)
			}
		}
	}
	return nil, 0
}

// CreateWindow creates and maps a top level window of the matched visual
// with a private colormap, and adopts it. It is a diagnostic helper;
// applications pass their own window to AttachWindow.
func (d *Device) CreateWindow(x, y, width, height int) (device.NativeWindow, error) {
	if d.conn == nil {
		return 0, device.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("x11: invalid window size %dx%d", width, height)
	}
	log := logger()
	cmap, err := d.conn.newColormapID()
	if err != nil {
		return 0, fmt.Errorf("x11: allocate colormap id: %w", err)
	}
	if err := d.conn.createColormap(cmap, d.root, d.visual.VisualId); err != nil {
		return 0, fmt.Errorf("x11: create colormap: %w", err)
	}
	wid, err := d.conn.newWindowID()
	if err != nil {
		d.conn.freeColormap(cmap)
		return 0, fmt.Errorf("x11: allocate window id: %w", err)
	}
	err = d.conn.createWindow(window{
		id:       wid,
		parent:   d.root,
		depth:    byte(d.depth),
		visual:   d.visual.VisualId,
		colormap: cmap,
		x:        int16(x),
		y:        int16(y),
		width:    uint16(width),
		height:   uint16(height),
	})
	if err != nil {
		d.conn.freeColormap(cmap)
		return 0, fmt.Errorf("x11: create window: %w", err)
	}
	if err := d.conn.mapWindow(wid); err != nil {
		d.conn.destroyWindow(wid)
		d.conn.freeColormap(cmap)
		return 0, fmt.Errorf("x11: map window: %w", err)
	}
	d.destroyOwned()
	d.ownWin, d.ownCmap = wid, cmap
	log.Info("X window created", "window", uint32(wid), "colormap", uint32(cmap),
		"x", x, "y", y, "width", width, "height", height)
	win := device.NativeWindow(wid)
	if err := d.AttachWindow(win); err != nil {
		return 0, err
	}
	return win, nil
}

// AttachWindow adopts win and reads its geometry.
func (d *Device) AttachWindow(win device.NativeWindow) error {
	if d.conn == nil {
		return device.ErrNotInitialized
	}
	if win == 0 {
		return device.ErrNoWindow
	}
	g, err := d.conn.geometry(xproto.Window(win))
	if err != nil {
		err = fmt.Errorf("x11: window %#x geometry: %w", uint32(win), err)
		logger().Error("attach window failed", "err", err)
		return err
	}
	d.win = xproto.Window(win)
	d.width, d.height = int(g.Width), int(g.Height)
	logger().Debug("X window attached", "window", uint32(win), "width", d.width, "height", d.height, "depth", g.Depth)
	return nil
}

// Width returns the attached window width, or the screen width.
func (d *Device) Width() int {
	if d.win != 0 {
		return d.width
	}
	if d.screen != nil {
		return int(d.screen.WidthInPixels)
	}
	return 0
}

// Height returns the attached window height, or the screen height.
func (d *Device) Height() int {
	if d.win != 0 {
		return d.height
	}
	if d.screen != nil {
		return int(d.screen.HeightInPixels)
	}
	return 0
}

// Depth returns the depth of the matched visual.
func (d *Device) Depth() int {
	return d.depth
}

// IsSingleBuffered reports true; core X windows have no back buffer.
func (d *Device) IsSingleBuffered() bool {
	return true
}

func (d *Device) IsNativeRender() bool {
	return true
}

// SurfaceID returns the attached window id, or -1.
func (d *Device) SurfaceID() int {
	if d.win == 0 {
		return -1
	}
	return int(d.win)
}

// ContextID returns the matched visual id, or -1.
func (d *Device) ContextID() int {
	if d.visual == nil {
		return -1
	}
	return int(d.visual.VisualId)
}

func (d *Device) SupportsRenderer(api device.RenderAPI) bool {
	return api == device.X11Render
}

// VisualID returns the visual id the device was created with.
func (d *Device) VisualID() int {
	return d.visualID
}

// Display returns the display name connected to.
func (d *Device) Display() string {
	return d.display
}

// Root returns the root window of the default screen.
func (d *Device) Root() device.NativeWindow {
	return device.NativeWindow(d.root)
}

// Colormap returns the default colormap of the screen.
func (d *Device) Colormap() uint32 {
	return uint32(d.colormap)
}

// Window returns the attached window, or 0.
func (d *Device) Window() device.NativeWindow {
	return device.NativeWindow(d.win)
}

// Outputs lists the connected monitors through RandR.
func (d *Device) Outputs() ([]Output, error) {
	if d.conn == nil {
		return nil, device.ErrNotInitialized
	}
	return d.conn.outputs(d.root)
}

func (d *Device) destroyOwned() {
	if d.ownWin != 0 {
		if d.win == d.ownWin {
			d.win = 0
		}
		d.conn.destroyWindow(d.ownWin)
		d.ownWin = 0
	}
	if d.ownCmap != 0 {
		d.conn.freeColormap(d.ownCmap)
		d.ownCmap = 0
	}
}

// Release destroys the window and colormap made by CreateWindow and
// closes the connection. Adopted windows are left alone.
func (d *Device) Release() {
	if d.conn == nil {
		return
	}
	d.destroyOwned()
	d.conn.close()
	d.conn = nil
	d.screen = nil
	d.visual = nil
	d.win = 0
	logger().Info("X connection closed", "display", d.display)
}
