// SPDX-License-Identifier: Unlicense OR MIT

package main

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{"640x480", 640, 480, true},
		{"1x1", 1, 1, true},
		{"640", 0, 0, false},
		{"0x480", 0, 0, false},
		{"ax480", 0, 0, false},
	}
	for _, test := range tests {
		w, h, err := parseSize(test.in)
		if (err == nil) != test.ok {
			t.Errorf("%q: got error %v, expected ok=%v", test.in, err, test.ok)
			continue
		}
		if w != test.w || h != test.h {
			t.Errorf("%q: got %dx%d, expected %dx%d", test.in, w, h, test.w, test.h)
		}
	}
}

func TestBackendArgs(t *testing.T) {
	*display = ":1"
	*fbdev = ""
	defer func() { *display = "" }()
	args := backendArgs()
	if len(args) < 2 || args[0] != "-display" || args[1] != ":1" {
		t.Errorf("got %v, expected a leading -display :1", args)
	}
}

func TestConfigRejectsDepth(t *testing.T) {
	*depth = 24
	defer func() { *depth = 0 }()
	if _, err := config(); err == nil {
		t.Error("expected an error for depth 24")
	}
}

func TestConfigVisual(t *testing.T) {
	tests := []struct {
		in  string
		exp int
		ok  bool
	}{
		{"", 0, true},
		{"33", 33, true},
		{"0x21", 0x21, true},
		{"0", 0, false},
		{"visual", 0, false},
		{"-1", 0, false},
	}
	defer func() { *visual = "" }()
	for _, test := range tests {
		*visual = test.in
		cfg, err := config()
		if (err == nil) != test.ok {
			t.Errorf("%q: got error %v, expected ok=%v", test.in, err, test.ok)
			continue
		}
		if cfg.VisualID != test.exp {
			t.Errorf("%q: got visual %#x, expected %#x", test.in, cfg.VisualID, test.exp)
		}
	}
}
