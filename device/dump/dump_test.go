// SPDX-License-Identifier: Unlicense OR MIT

package dump

import (
	"bytes"
	"strings"
	"testing"

	"displaykit.org/device"
	"displaykit.org/device/egl"
)

type fakeDevice struct{}

func (fakeDevice) Type() device.Type                          { return device.RawFB }
func (fakeDevice) InitDevice([]string) error                  { return nil }
func (fakeDevice) AttachWindow(device.NativeWindow) error     { return nil }
func (fakeDevice) Width() int                                 { return 800 }
func (fakeDevice) Height() int                                { return 480 }
func (fakeDevice) Depth() int                                 { return 16 }
func (fakeDevice) IsSingleBuffered() bool                     { return true }
func (fakeDevice) IsNativeRender() bool                       { return true }
func (fakeDevice) SurfaceID() int                             { return -1 }
func (fakeDevice) ContextID() int                             { return -1 }
func (fakeDevice) SupportsRenderer(api device.RenderAPI) bool { return api == device.OpenVG }
func (fakeDevice) Release()                                   {}
func (fakeDevice) Stride() int                                { return 1600 }
func (fakeDevice) Name() string                               { return "testfb" }

func TestDevice(t *testing.T) {
	var buf bytes.Buffer
	if err := Device(&buf, fakeDevice{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, exp := range []string{
		"Device:", "rawfb",
		"Stride:", "1600",
		"Renderers:", "OpenVG",
		"Name:", "testfb",
	} {
		if !strings.Contains(out, exp) {
			t.Errorf("output lacks %q:\n%s", exp, out)
		}
	}
	if strings.Contains(out, "Samples") || strings.Contains(out, "Pbuffers") {
		t.Errorf("output reports accessors the device lacks:\n%s", out)
	}
}

func TestConfig(t *testing.T) {
	var buf bytes.Buffer
	c := &egl.Config{
		ID: 7, BPP: 16, Red: 5, Green: 6, Blue: 5,
		RenderableType: bitOpenVG | bitOpenGLES2,
		SurfaceType:    bitWindow | bitPbuffer,
		NativeVisualID: 0x21,
	}
	if err := Config(&buf, c); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, exp := range []string{"R5 G6 B5 A0", "OpenVG, OpenGL ES 2", "window, pbuffer", "0x21"} {
		if !strings.Contains(out, exp) {
			t.Errorf("output lacks %q:\n%s", exp, out)
		}
	}
	buf.Reset()
	Config(&buf, nil)
	if !strings.Contains(buf.String(), "not negotiated") {
		t.Errorf("got %q for a nil config", buf.String())
	}
}
