// SPDX-License-Identifier: Unlicense OR MIT

package x11

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"displaykit.org/device"
)

type fakeConn struct {
	calls   []string
	info    *xproto.SetupInfo
	nextID  uint32
	geom    map[xproto.Window]*xproto.GetGeometryReply
	outs    []Output
	failMap bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		info: &xproto.SetupInfo{
			Roots: []xproto.ScreenInfo{{
				Root:            0x1a,
				DefaultColormap: 0x20,
				WidthInPixels:   1920,
				HeightInPixels:  1080,
				RootDepth:       24,
				RootVisual:      0x21,
				AllowedDepths: []xproto.DepthInfo{
					{Depth: 24, Visuals: []xproto.VisualInfo{{VisualId: 0x21, Class: xproto.VisualClassTrueColor}}},
					{Depth: 16, Visuals: []xproto.VisualInfo{{VisualId: 0x22, Class: xproto.VisualClassTrueColor}}},
				},
			}},
		},
		nextID: 0x400000,
		geom:   make(map[xproto.Window]*xproto.GetGeometryReply),
	}
}

func (f *fakeConn) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeConn) setup() *xproto.SetupInfo { return f.info }
func (f *fakeConn) defaultScreen() int       { return 0 }

func (f *fakeConn) newWindowID() (xproto.Window, error) {
	f.nextID++
	return xproto.Window(f.nextID), nil
}

func (f *fakeConn) newColormapID() (xproto.Colormap, error) {
	f.nextID++
	return xproto.Colormap(f.nextID), nil
}

func (f *fakeConn) createColormap(cmap xproto.Colormap, win xproto.Window, visual xproto.Visualid) error {
	f.record("create colormap %#x visual %#x", uint32(cmap), uint32(visual))
	return nil
}

func (f *fakeConn) createWindow(w window) error {
	f.record("create window %#x depth %d visual %#x colormap %#x", uint32(w.id), w.depth, uint32(w.visual), uint32(w.colormap))
	f.geom[w.id] = &xproto.GetGeometryReply{Depth: w.depth, Width: w.width, Height: w.height}
	return nil
}

func (f *fakeConn) mapWindow(win xproto.Window) error {
	if f.failMap {
		return errors.New("BadMatch")
	}
	f.record("map window %#x", uint32(win))
	return nil
}

func (f *fakeConn) geometry(win xproto.Window) (*xproto.GetGeometryReply, error) {
	g, ok := f.geom[win]
	if !ok {
		return nil, errors.New("BadDrawable")
	}
	return g, nil
}

func (f *fakeConn) destroyWindow(win xproto.Window) error {
	f.record("destroy window %#x", uint32(win))
	delete(f.geom, win)
	return nil
}

func (f *fakeConn) freeColormap(cmap xproto.Colormap) error {
	f.record("free colormap %#x", uint32(cmap))
	return nil
}

func (f *fakeConn) outputs(root xproto.Window) ([]Output, error) {
	if f.outs == nil {
		return nil, errNoRandR
	}
	return f.outs, nil
}

func (f *fakeConn) close() {
	f.record("close")
}

// useFake makes dial return f and records the display names dialed.
func useFake(t *testing.T, f *fakeConn) *[]string {
	t.Helper()
	var dialed []string
	old := dial
	dial = func(display string) (conn, error) {
		dialed = append(dialed, display)
		return f, nil
	}
	t.Cleanup(func() { dial = old })
	return &dialed
}

func TestDisplayArgument(t *testing.T) {
	t.Setenv("DISPLAY", ":0")
	tests := []struct {
		args []string
		exp  string
	}{
		{nil, ":0"},
		{[]string{"-display", ":1"}, ":1"},
		{[]string{"--display", ":2"}, ":2"},
		{[]string{"-v", "-display", ":1", "-display", ":3"}, ":1"},
		{[]string{"-display"}, ":0"},
	}
	for _, test := range tests {
		f := newFakeConn()
		dialed := useFake(t, f)
		d := NewDevice(0x21)
		if err := d.InitDevice(test.args); err != nil {
			t.Fatal(err)
		}
		if got := (*dialed)[0]; got != test.exp {
			t.Errorf("%v: got display %q, expected %q", test.args, got, test.exp)
		}
		d.Release()
	}
}

func TestInitReadsScreen(t *testing.T) {
	useFake(t, newFakeConn())
	d := NewDevice(0x22)
	if err := d.InitDevice(nil); err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if got := d.Depth(); got != 16 {
		t.Errorf("got depth %d, expected 16", got)
	}
	if got := d.Root(); got != 0x1a {
		t.Errorf("got root %#x, expected 0x1a", got)
	}
	if got := d.Colormap(); got != 0x20 {
		t.Errorf("got colormap %#x, expected 0x20", got)
	}
	if d.Width() != 1920 || d.Height() != 1080 {
		t.Errorf("got %dx%d, expected the screen size", d.Width(), d.Height())
	}
	if got := d.ContextID(); got != 0x22 {
		t.Errorf("got context id %#x, expected the visual id", got)
	}
}

func TestInitTwiceKeepsConnection(t *testing.T) {
	f := newFakeConn()
	dialed := useFake(t, f)
	d := NewDevice(0x21)
	if err := d.InitDevice(nil); err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if err := d.InitDevice([]string{"-display", ":5"}); err != nil {
		t.Fatal(err)
	}
	if len(*dialed) != 1 {
		t.Errorf("got %d connections, expected 1", len(*dialed))
	}
	if contains(f.calls, "close") {
		t.Error("connection closed by a second InitDevice")
	}
}

func TestZeroVisualUsesRootVisual(t *testing.T) {
	useFake(t, newFakeConn())
	d := NewDevice(0)
	var err error
	func() {
		defer device.Recover(&err)
		err = d.InitDevice(nil)
	}()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if got := d.VisualID(); got != 0x21 {
		t.Errorf("got visual %#x, expected the root visual 0x21", got)
	}
	if got := d.Depth(); got != 24 {
		t.Errorf("got depth %d, expected 24", got)
	}
}

func TestSelectedWithoutVisual(t *testing.T) {
	useFake(t, newFakeConn())
	var sel device.Selector
	defer sel.Release()
	if err := sel.SetDevice(device.X11, device.Config{}); errors.Is(err, device.ErrNotCompiled) {
		t.Skip("x11 backend not registered in this build")
	} else if err != nil {
		t.Fatal(err)
	}
	if err := sel.Device().InitDevice(nil); err != nil {
		t.Fatal(err)
	}
	if got := sel.Device().ContextID(); got != 0x21 {
		t.Errorf("got visual %#x, expected the root visual 0x21", got)
	}
}

func TestMissingVisualIsFatal(t *testing.T) {
	useFake(t, newFakeConn())
	d := NewDevice(0x99)
	var err error
	func() {
		defer device.Recover(&err)
		d.InitDevice(nil)
	}()
	var fatal *device.FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("got %v, expected a *device.FatalError", err)
	}
}

func TestCreateWindow(t *testing.T) {
	f := newFakeConn()
	useFake(t, f)
	d := NewDevice(0x21)
	if err := d.InitDevice(nil); err != nil {
		t.Fatal(err)
	}
	win, err := d.CreateWindow(10, 20, 320, 240)
	if err != nil {
		t.Fatal(err)
	}
	if d.Window() != win || d.SurfaceID() != int(win) {
		t.Error("created window not attached")
	}
	if d.Width() != 320 || d.Height() != 240 {
		t.Errorf("got %dx%d, expected 320x240", d.Width(), d.Height())
	}
	cmap := uint32(win) - 1
	exp := []string{
		fmt.Sprintf("create colormap %#x visual 0x21", cmap),
		fmt.Sprintf("create window %#x depth 24 visual 0x21 colormap %#x", uint32(win), cmap),
		fmt.Sprintf("map window %#x", uint32(win)),
	}
	if !reflect.DeepEqual(f.calls, exp) {
		t.Errorf("got %v, expected %v", f.calls, exp)
	}

	f.calls = nil
	d.Release()
	exp = []string{
		fmt.Sprintf("destroy window %#x", uint32(win)),
		fmt.Sprintf("free colormap %#x", cmap),
		"close",
	}
	if !reflect.DeepEqual(f.calls, exp) {
		t.Errorf("got %v, expected %v", f.calls, exp)
	}
	f.calls = nil
	d.Release()
	if len(f.calls) != 0 {
		t.Errorf("second Release made calls %v", f.calls)
	}
}

func TestCreateWindowMapFailure(t *testing.T) {
	f := newFakeConn()
	f.failMap = true
	useFake(t, f)
	d := NewDevice(0x21)
	if err := d.InitDevice(nil); err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if _, err := d.CreateWindow(0, 0, 8, 8); err == nil {
		t.Fatal("expected an error")
	}
	if d.Window() != 0 {
		t.Error("window attached after failure")
	}
	if len(f.geom) != 0 {
		t.Error("window not destroyed after failure")
	}
}

func TestAttachWindow(t *testing.T) {
	f := newFakeConn()
	f.geom[0x500] = &xproto.GetGeometryReply{Depth: 24, Width: 800, Height: 600}
	useFake(t, f)
	d := NewDevice(0x21)
	if err := d.AttachWindow(0x500); !errors.Is(err, device.ErrNotInitialized) {
		t.Errorf("got error %v, expected ErrNotInitialized", err)
	}
	if err := d.InitDevice(nil); err != nil {
		t.Fatal(err)
	}
	if err := d.AttachWindow(0); !errors.Is(err, device.ErrNoWindow) {
		t.Errorf("got error %v, expected ErrNoWindow", err)
	}
	if err := d.AttachWindow(0x501); err == nil {
		t.Error("expected an error for an unknown window")
	}
	if err := d.AttachWindow(0x500); err != nil {
		t.Fatal(err)
	}
	if d.Width() != 800 || d.Height() != 600 {
		t.Errorf("got %dx%d, expected 800x600", d.Width(), d.Height())
	}
	f.calls = nil
	d.Release()
	if exp := []string{"close"}; !reflect.DeepEqual(f.calls, exp) {
		t.Errorf("adopted window released: got %v, expected %v", f.calls, exp)
	}
}

func TestOutputs(t *testing.T) {
	f := newFakeConn()
	useFake(t, f)
	d := NewDevice(0x21)
	if err := d.InitDevice(nil); err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if _, err := d.Outputs(); !errors.Is(err, errNoRandR) {
		t.Errorf("got error %v, expected errNoRandR", err)
	}
	f.outs = []Output{{Name: "HDMI-1", Width: 1920, Height: 1080}}
	outs, err := d.Outputs()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(outs, f.outs) {
		t.Errorf("got %v, expected %v", outs, f.outs)
	}
}

func TestSupportsRenderer(t *testing.T) {
	d := NewDevice(0x21)
	if !d.SupportsRenderer(device.X11Render) || d.SupportsRenderer(device.OpenGLES2) {
		t.Error("expected only X11Render")
	}
	if d.SurfaceID() != -1 || d.ContextID() != -1 {
		t.Error("expected -1 ids before initialization")
	}
}

func contains(calls []string, c string) bool {
	for _, s := range calls {
		if s == c {
			return true
		}
	}
	return false
}
