// SPDX-License-Identifier: Unlicense OR MIT

package directfb

// PixelFormat is a DirectFB surface pixel format.
type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota
	FormatARGB1555
	FormatRGB16
	FormatRGB24
	FormatRGB32
	FormatARGB
	FormatA8
	FormatYUY2
	FormatRGB332
	FormatUYVY
	FormatI420
	FormatYV12
	FormatLUT8
	FormatALUT44
	FormatAiRGB
	FormatA1
	FormatNV12
	FormatNV16
	FormatARGB2554
	FormatARGB4444
	FormatRGBA4444
	FormatNV21
	FormatAYUV
	FormatA4
	FormatARGB1666
	FormatARGB6666
	FormatRGB18
	FormatLUT2
	FormatRGB444
	FormatRGB555
	FormatBGR555
	FormatRGBA5551
	FormatYUV444P
	FormatARGB8565
	FormatAVYU
	FormatVYU
	FormatA1LSB
	FormatYV16
)

var formats = [...]struct {
	name  string
	depth int
}{
	FormatUnknown:  {"UNKNOWN", 0},
	FormatARGB1555: {"ARGB1555", 16},
	FormatRGB16:    {"RGB16", 16},
	FormatRGB24:    {"RGB24", 24},
	FormatRGB32:    {"RGB32", 24},
	FormatARGB:     {"ARGB", 32},
	FormatA8:       {"A8", 8},
	FormatYUY2:     {"YUY2", 16},
	FormatRGB332:   {"RGB332", 8},
	FormatUYVY:     {"UYVY", 16},
	FormatI420:     {"I420", 12},
	FormatYV12:     {"YV12", 12},
	FormatLUT8:     {"LUT8", 8},
	FormatALUT44:   {"ALUT44", 8},
	FormatAiRGB:    {"AiRGB", 32},
	FormatA1:       {"A1", 1},
	FormatNV12:     {"NV12", 12},
	FormatNV16:     {"NV16", 16},
	FormatARGB2554: {"ARGB2554", 16},
	FormatARGB4444: {"ARGB4444", 16},
	FormatRGBA4444: {"RGBA4444", 16},
	FormatNV21:     {"NV21", 12},
	FormatAYUV:     {"AYUV", 32},
	FormatA4:       {"A4", 4},
	FormatARGB1666: {"ARGB1666", 24},
	FormatARGB6666: {"ARGB6666", 24},
	FormatRGB18:    {"RGB18", 24},
	FormatLUT2:     {"LUT2", 2},
	FormatRGB444:   {"RGB444", 16},
	FormatRGB555:   {"RGB555", 16},
	FormatBGR555:   {"BGR555", 16},
	FormatRGBA5551: {"RGBA5551", 16},
	FormatYUV444P:  {"YUV444P", 24},
	FormatARGB8565: {"ARGB8565", 24},
	FormatAVYU:     {"AVYU", 32},
	FormatVYU:      {"VYU", 24},
	FormatA1LSB:    {"A1_LSB", 1},
	FormatYV16:     {"YV16", 16},
}

// Depth returns the bits per pixel of f, or 0 when unknown.
func (f PixelFormat) Depth() int {
	if int(f) >= len(formats) {
		return 0
	}
	return formats[f].depth
}

func (f PixelFormat) String() string {
	if int(f) >= len(formats) {
		return formats[FormatUnknown].name
	}
	return formats[f].name
}
