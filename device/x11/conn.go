// SPDX-License-Identifier: Unlicense OR MIT

package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// conn is the part of the X protocol the device uses. xgbConn talks to a
// server; tests use a fake.
type conn interface {
	setup() *xproto.SetupInfo
	defaultScreen() int
	newWindowID() (xproto.Window, error)
	newColormapID() (xproto.Colormap, error)
	createColormap(cmap xproto.Colormap, win xproto.Window, visual xproto.Visualid) error
	createWindow(w window) error
	mapWindow(win xproto.Window) error
	geometry(win xproto.Window) (*xproto.GetGeometryReply, error)
	destroyWindow(win xproto.Window) error
	freeColormap(cmap xproto.Colormap) error
	// outputs lists connected RandR outputs, or an error when the
	// extension is missing.
	outputs(root xproto.Window) ([]Output, error)
	close()
}

// window holds the CreateWindow request parameters.
type window struct {
	id            xproto.Window
	parent        xproto.Window
	depth         byte
	visual        xproto.Visualid
	colormap      xproto.Colormap
	x, y          int16
	width, height uint16
}

// dial opens the X connection. Tests replace it.
var dial = func(display string) (conn, error) {
	c, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}
	return &xgbConn{c: c}, nil
}

type xgbConn struct {
	c *xgb.Conn
	// randrOK records whether randr.Init succeeded; 0 is untried.
	randrOK int
}

func (x *xgbConn) setup() *xproto.SetupInfo {
	return xproto.Setup(x.c)
}

func (x *xgbConn) defaultScreen() int {
	return x.c.DefaultScreen
}

func (x *xgbConn) newWindowID() (xproto.Window, error) {
	return xproto.NewWindowId(x.c)
}

func (x *xgbConn) newColormapID() (xproto.Colormap, error) {
	return xproto.NewColormapId(x.c)
}

func (x *xgbConn) createColormap(cmap xproto.Colormap, win xproto.Window, visual xproto.Visualid) error {
	return xproto.CreateColormapChecked(x.c, xproto.ColormapAllocNone, cmap, win, visual).Check()
}

func (x *xgbConn) createWindow(w window) error {
	// Values follow the mask bit order.
	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap)
	values := []uint32{
		0,
		0,
		xproto.EventMaskExposure | xproto.EventMaskStructureNotify,
		uint32(w.colormap),
	}
	return xproto.CreateWindowChecked(x.c, w.depth, w.id, w.parent,
		w.x, w.y, w.width, w.height, 0,
		xproto.WindowClassInputOutput, w.visual, mask, values).Check()
}

func (x *xgbConn) mapWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(x.c, win).Check()
}

func (x *xgbConn) geometry(win xproto.Window) (*xproto.GetGeometryReply, error) {
	return xproto.GetGeometry(x.c, xproto.Drawable(win)).Reply()
}

func (x *xgbConn) destroyWindow(win xproto.Window) error {
	return xproto.DestroyWindowChecked(x.c, win).Check()
}

func (x *xgbConn) freeColormap(cmap xproto.Colormap) error {
	return xproto.FreeColormapChecked(x.c, cmap).Check()
}

func (x *xgbConn) outputs(root xproto.Window) ([]Output, error) {
	if x.randrOK == 0 {
		x.randrOK = -1
		if err := randr.Init(x.c); err != nil {
			return nil, err
		}
		x.randrOK = 1
	}
	if x.randrOK < 0 {
		return nil, errNoRandR
	}
	res, err := randr.GetScreenResources(x.c, root).Reply()
	if err != nil {
		return nil, err
	}
	var outs []Output
	for _, o := range res.Outputs {
		info, err := randr.GetOutputInfo(x.c, o, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, err
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(x.c, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, err
		}
		outs = append(outs, Output{
			Name:   string(info.Name),
			X:      int(crtc.X),
			Y:      int(crtc.Y),
			Width:  int(crtc.Width),
			Height: int(crtc.Height),
		})
	}
	return outs, nil
}

func (x *xgbConn) close() {
	x.c.Close()
}
