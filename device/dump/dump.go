// SPDX-License-Identifier: Unlicense OR MIT

// Package dump formats the state of a device for diagnostics. It only
// reads through accessors and never changes a device.
package dump

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"displaykit.org/device"
	"displaykit.org/device/egl"
)

// Optional accessors some backends provide.
type (
	strider  interface{ Stride() int }
	channels interface {
		RedSize() int
		GreenSize() int
		BlueSize() int
	}
	sampler interface {
		Samples() int
		SampleBuffers() int
	}
	swapIntervals interface {
		MinSwapInterval() int
		MaxSwapInterval() int
	}
	buffering interface {
		IsBackBuffered() bool
		IsMultiSample() bool
		IsBufferDestroyed() bool
	}
	pbufferPool interface{ TotalPbuffers() int }
	checker     interface{ CheckConfig() []string }
	named       interface{ Name() string }
)

// table accumulates aligned "name: value" rows.
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer) *table {
	return &table{tw: tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)}
}

func (t *table) row(name string, v interface{}) {
	fmt.Fprintf(t.tw, "%s:\t%v\n", name, v)
}

func (t *table) flush() error {
	return t.tw.Flush()
}

// Device writes the capabilities of d.
func Device(w io.Writer, d device.Device) error {
	t := newTable(w)
	t.row("Device", d.Type())
	t.row("Width", d.Width())
	t.row("Height", d.Height())
	t.row("Depth", d.Depth())
	if s, ok := d.(strider); ok {
		t.row("Stride", s.Stride())
	}
	if c, ok := d.(channels); ok {
		t.row("Channels", fmt.Sprintf("R%d G%d B%d", c.RedSize(), c.GreenSize(), c.BlueSize()))
	}
	if s, ok := d.(sampler); ok {
		t.row("Samples", s.Samples())
		t.row("Sample buffers", s.SampleBuffers())
	}
	if s, ok := d.(swapIntervals); ok {
		t.row("Swap interval", fmt.Sprintf("%d-%d", s.MinSwapInterval(), s.MaxSwapInterval()))
	}
	t.row("Single buffered", d.IsSingleBuffered())
	if b, ok := d.(buffering); ok {
		t.row("Back buffered", b.IsBackBuffered())
		t.row("Multisample", b.IsMultiSample())
		t.row("Buffer destroyed", b.IsBufferDestroyed())
	}
	t.row("Native render", d.IsNativeRender())
	t.row("Surface ID", d.SurfaceID())
	t.row("Context ID", d.ContextID())
	t.row("Renderers", renderers(d))
	if p, ok := d.(pbufferPool); ok {
		t.row("Pbuffers", p.TotalPbuffers())
	}
	if n, ok := d.(named); ok {
		t.row("Name", n.Name())
	}
	if c, ok := d.(checker); ok {
		diffs := c.CheckConfig()
		if len(diffs) == 0 {
			t.row("Config check", "exact")
		} else {
			t.row("Config check", strings.Join(diffs, "; "))
		}
	}
	return t.flush()
}

func renderers(d device.Device) string {
	var apis []string
	for _, api := range []device.RenderAPI{device.OpenVG, device.OpenGLES1, device.OpenGLES2, device.X11Render, device.VAAPI} {
		if d.SupportsRenderer(api) {
			apis = append(apis, api.String())
		}
	}
	if len(apis) == 0 {
		return "none"
	}
	return strings.Join(apis, ", ")
}

// Config writes the attributes of a negotiated EGL config.
func Config(w io.Writer, c *egl.Config) error {
	t := newTable(w)
	if c == nil {
		t.row("Config", "not negotiated")
		return t.flush()
	}
	t.row("Config ID", c.ID)
	t.row("Color depth", c.BPP)
	t.row("Channels", fmt.Sprintf("R%d G%d B%d A%d", c.Red, c.Green, c.Blue, c.Alpha))
	t.row("Depth buffer", c.DepthSize)
	t.row("Stencil", c.StencilSize)
	t.row("Samples", fmt.Sprintf("%d (%d buffers)", c.Samples, c.SampleBuffers))
	t.row("Renderable", renderableNames(c))
	t.row("Surface types", surfaceNames(c.SurfaceType))
	t.row("Native visual", fmt.Sprintf("%#x", c.NativeVisualID))
	t.row("Native renderable", c.NativeRenderable)
	t.row("Swap interval", fmt.Sprintf("%d-%d", c.MinSwapInterval, c.MaxSwapInterval))
	return t.flush()
}

// EGL_RENDERABLE_TYPE and EGL_SURFACE_TYPE bits.
const (
	bitOpenGLES  = 0x1
	bitOpenVG    = 0x2
	bitOpenGLES2 = 0x4
	bitOpenGL    = 0x8

	bitPbuffer = 0x1
	bitPixmap  = 0x2
	bitWindow  = 0x4
)

func renderableNames(c *egl.Config) string {
	return bitNames(c.RenderableType, []bitName{
		{bitOpenGLES, "OpenGL ES"},
		{bitOpenVG, "OpenVG"},
		{bitOpenGLES2, "OpenGL ES 2"},
		{bitOpenGL, "OpenGL"},
	})
}

func surfaceNames(bits int) string {
	return bitNames(bits, []bitName{
		{bitWindow, "window"},
		{bitPbuffer, "pbuffer"},
		{bitPixmap, "pixmap"},
	})
}

type bitName struct {
	bit  int
	name string
}

func bitNames(bits int, names []bitName) string {
	var out []string
	for _, n := range names {
		if bits&n.bit != 0 {
			out = append(out, n.name)
		}
	}
	if len(out) == 0 {
		return "none"
	}
	return strings.Join(out, ", ")
}
