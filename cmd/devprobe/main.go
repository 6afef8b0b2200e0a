// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"displaykit.org/device"
	_ "displaykit.org/device/directfb"
	"displaykit.org/device/dump"
	"displaykit.org/device/egl"
	_ "displaykit.org/device/rawfb"
	"displaykit.org/device/x11"
)

var (
	deviceName  = flag.String("device", "auto", "display backend (auto, egl, x11, rawfb, directfb)")
	qualityName = flag.String("quality", "low", "EGL config quality (low, medium, high)")
	depth       = flag.Int("depth", 0, "target color depth in bits (32, 16 or 1); 0 picks the build default")
	apiName     = flag.String("api", "openvg", "client API (openvg, gles1, gles2)")
	display     = flag.String("display", "", "X display, overriding $DISPLAY")
	visual      = flag.String("visual", "", "X visual id for -device x11, decimal or 0x hex; default is the root visual")
	fbdev       = flag.String("fbdev", "", "framebuffer device, overriding $FRAMEBUFFER")
	fontPath    = flag.String("font", "", "font file for DirectFB text")
	window      = flag.String("window", "", "create a window of the given size, as WxH")
	pbuffer     = flag.String("pbuffer", "", "create an off-screen surface of the given size, as WxH")
	single      = flag.Bool("single", false, "request a single buffered window surface")
	list        = flag.Bool("list", false, "list compiled and present backends and exit")
	verbose     = flag.Bool("v", false, "log debug output to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	// EGL contexts are bound to the calling thread.
	runtime.LockOSThread()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "devprobe: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func mainErr() (err error) {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	device.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *list {
		return listBackends()
	}
	cfg, err := config()
	if err != nil {
		return err
	}
	defer device.Recover(&err)

	var sel device.Selector
	defer sel.Release()
	if *deviceName == "auto" {
		if _, err := sel.SetDefault(cfg); err != nil {
			return err
		}
	} else {
		t, err := device.ParseType(*deviceName)
		if err != nil {
			return err
		}
		if err := sel.SetDevice(t, cfg); err != nil {
			return err
		}
	}
	dev := sel.Device()
	args := backendArgs()
	if e, ok := dev.(*egl.Device); ok {
		e.SetSingleBuffered(*single)
	}
	if err := dev.InitDevice(args); err != nil {
		return err
	}

	switch d := dev.(type) {
	case *egl.Device:
		if err := probeEGL(d, args); err != nil {
			return err
		}
	case *x11.Device:
		if *window != "" {
			w, h, err := parseSize(*window)
			if err != nil {
				return err
			}
			if _, err := d.CreateWindow(0, 0, w, h); err != nil {
				return err
			}
		}
		printOutputs(d)
	default:
		if err := dev.AttachWindow(0); err != nil {
			return err
		}
	}
	return dump.Device(os.Stdout, dev)
}

// probeEGL creates an X window of the negotiated visual when asked to,
// attaches it and presents one frame.
func probeEGL(d *egl.Device, args []string) error {
	if err := dump.Config(os.Stdout, d.Config()); err != nil {
		return err
	}
	if *window != "" {
		w, h, err := parseSize(*window)
		if err != nil {
			return err
		}
		vid, err := d.NativeVisual()
		if err != nil {
			return err
		}
		// The window backend is not hardware bound and lives next to EGL.
		xd := x11.NewDevice(vid)
		if err := xd.InitDevice(args); err != nil {
			return err
		}
		defer xd.Release()
		win, err := xd.CreateWindow(0, 0, w, h)
		if err != nil {
			return err
		}
		if err := d.AttachWindow(win); err != nil {
			return err
		}
		if err := d.SwapBuffers(); err != nil {
			return err
		}
	}
	if *pbuffer != "" {
		w, h, err := parseSize(*pbuffer)
		if err != nil {
			return err
		}
		i, err := d.CreatePbuffer(w, h)
		if err != nil {
			return err
		}
		pw, ph, err := d.PbufferSize(i)
		if err != nil {
			return err
		}
		fmt.Printf("Pbuffer %d: %dx%d\n", i, pw, ph)
	}
	return nil
}

func printOutputs(d *x11.Device) {
	outs, err := d.Outputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devprobe: outputs: %v\n", err)
		return
	}
	for _, o := range outs {
		fmt.Printf("Output %s: %dx%d+%d+%d\n", o.Name, o.Width, o.Height, o.X, o.Y)
	}
}

func config() (device.Config, error) {
	q, err := device.ParseQuality(*qualityName)
	if err != nil {
		return device.Config{}, err
	}
	api, err := device.ParseRenderAPI(*apiName)
	if err != nil {
		return device.Config{}, err
	}
	switch *depth {
	case 0, 1, 16, 32:
	default:
		return device.Config{}, fmt.Errorf("invalid -depth %d", *depth)
	}
	vid, err := parseVisual(*visual)
	if err != nil {
		return device.Config{}, err
	}
	return device.Config{Quality: q, Depth: *depth, API: api, VisualID: vid}, nil
}

// parseVisual accepts a visual id in decimal or 0x prefixed hex. An empty
// string selects the root visual.
func parseVisual(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid -visual %q", s)
	}
	return int(v), nil
}

// backendArgs turns the flags backends read from their arguments into
// "-flag value" pairs, followed by the remaining command line.
func backendArgs() []string {
	var args []string
	if *display != "" {
		args = append(args, "-display", *display)
	}
	if *fbdev != "" {
		args = append(args, "-fbdev", *fbdev)
	}
	if *fontPath != "" {
		args = append(args, "-font", *fontPath)
	}
	return append(args, flag.Args()...)
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err := errors.Join(err1, err2); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return w, h, nil
}

func listBackends() error {
	present := make(map[device.Type]bool)
	for _, t := range device.Probe() {
		present[t] = true
	}
	for _, t := range device.Available() {
		state := "absent"
		if present[t] {
			state = "present"
		}
		fmt.Printf("%-9s %s\n", t, state)
	}
	return nil
}
