// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo && directfb

package directfb

/*
#cgo pkg-config: directfb
#include <stdlib.h>
#include <directfb.h>

static DFBResult dfb_init(int argc, char **argv) {
	return DirectFBInit(&argc, &argv);
}

static DFBResult dfb_set_fullscreen(IDirectFB *dfb) {
	return dfb->SetCooperativeLevel(dfb, DFSCL_FULLSCREEN);
}

static DFBResult dfb_create_primary(IDirectFB *dfb, IDirectFBSurface **surf, int *w, int *h) {
	DFBSurfaceDescription dsc;
	dsc.flags = DSDESC_CAPS;
	dsc.caps = DSCAPS_PRIMARY | DSCAPS_FLIPPING;
	DFBResult r = dfb->CreateSurface(dfb, &dsc, surf);
	if (r != DR_OK) {
		return r;
	}
	return (*surf)->GetSize(*surf, w, h);
}

static DFBSurfacePixelFormat dfb_pixel_format(IDirectFBSurface *surf) {
	DFBSurfacePixelFormat f = DSPF_UNKNOWN;
	surf->GetPixelFormat(surf, &f);
	return f;
}

static DFBResult dfb_create_font(IDirectFB *dfb, IDirectFBSurface *surf, const char *path, int height, IDirectFBFont **font) {
	DFBFontDescription fdesc;
	fdesc.flags = DFDESC_HEIGHT;
	fdesc.height = height;
	DFBResult r = dfb->CreateFont(dfb, path, &fdesc, font);
	if (r != DR_OK) {
		return r;
	}
	return surf->SetFont(surf, *font);
}

static DFBResult dfb_screen_size(IDirectFB *dfb, IDirectFBDisplayLayer **layer, int *w, int *h) {
	IDirectFBScreen *screen;
	DFBResult r = dfb->GetDisplayLayer(dfb, DLID_PRIMARY, layer);
	if (r != DR_OK) {
		return r;
	}
	r = (*layer)->GetScreen(*layer, &screen);
	if (r == DR_OK) {
		r = screen->GetSize(screen, w, h);
		screen->Release(screen);
	}
	if (r != DR_OK) {
		(*layer)->Release(*layer);
		*layer = NULL;
	}
	return r;
}

static DFBResult dfb_flip(IDirectFBSurface *surf) {
	return surf->Flip(surf, NULL, DSFLIP_NONE);
}

static void dfb_release_surface(IDirectFBSurface *s) { s->Release(s); }
static void dfb_release_font(IDirectFBFont *f) { f->Release(f); }
static void dfb_release_layer(IDirectFBDisplayLayer *l) { l->Release(l); }
static void dfb_release(IDirectFB *dfb) { dfb->Release(dfb); }
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"displaykit.org/device"
)

func init() {
	newNative = func() (native, error) {
		return new(cgoDFB), nil
	}
	device.Register(device.DirectFB, device.Backend{
		New: func(cfg device.Config) (device.Device, error) {
			return New()
		},
	})
}

type cgoDFB struct {
	dfb   *C.IDirectFB
	surf  *C.IDirectFBSurface
	font  *C.IDirectFBFont
	layer *C.IDirectFBDisplayLayer
}

// resultError is a failed DFBResult.
type resultError C.DFBResult

func (r resultError) Error() string {
	return fmt.Sprintf("%s (%d)", C.GoString(C.DirectFBErrorString(C.DFBResult(r))), int(r))
}

func check(r C.DFBResult) error {
	if r != C.DR_OK {
		return resultError(r)
	}
	return nil
}

func (n *cgoDFB) init(args []string) error {
	argv := make([]*C.char, 0, len(args)+2)
	argv = append(argv, C.CString(os.Args[0]))
	for _, a := range args {
		argv = append(argv, C.CString(a))
	}
	argc := len(argv)
	argv = append(argv, nil)
	cargv := (**C.char)(C.malloc(C.size_t(len(argv)) * C.size_t(unsafe.Sizeof(argv[0]))))
	copy(unsafe.Slice(cargv, len(argv)), argv)
	err := check(C.dfb_init(C.int(argc), cargv))
	C.free(unsafe.Pointer(cargv))
	for _, a := range argv[:argc] {
		C.free(unsafe.Pointer(a))
	}
	return err
}

func (n *cgoDFB) create() error {
	return check(C.DirectFBCreate(&n.dfb))
}

func (n *cgoDFB) setFullscreen() error {
	return check(C.dfb_set_fullscreen(n.dfb))
}

func (n *cgoDFB) createPrimary() (int, int, error) {
	var w, h C.int
	err := check(C.dfb_create_primary(n.dfb, &n.surf, &w, &h))
	return int(w), int(h), err
}

func (n *cgoDFB) pixelFormat() PixelFormat {
	switch C.dfb_pixel_format(n.surf) {
	case C.DSPF_ARGB1555:
		return FormatARGB1555
	case C.DSPF_RGB16:
		return FormatRGB16
	case C.DSPF_RGB24:
		return FormatRGB24
	case C.DSPF_RGB32:
		return FormatRGB32
	case C.DSPF_ARGB:
		return FormatARGB
	case C.DSPF_A8:
		return FormatA8
	case C.DSPF_YUY2:
		return FormatYUY2
	case C.DSPF_RGB332:
		return FormatRGB332
	case C.DSPF_UYVY:
		return FormatUYVY
	case C.DSPF_I420:
		return FormatI420
	case C.DSPF_YV12:
		return FormatYV12
	case C.DSPF_LUT8:
		return FormatLUT8
	case C.DSPF_ALUT44:
		return FormatALUT44
	case C.DSPF_AiRGB:
		return FormatAiRGB
	case C.DSPF_A1:
		return FormatA1
	case C.DSPF_NV12:
		return FormatNV12
	case C.DSPF_NV16:
		return FormatNV16
	case C.DSPF_ARGB2554:
		return FormatARGB2554
	case C.DSPF_ARGB4444:
		return FormatARGB4444
	case C.DSPF_RGBA4444:
		return FormatRGBA4444
	case C.DSPF_NV21:
		return FormatNV21
	case C.DSPF_AYUV:
		return FormatAYUV
	case C.DSPF_A4:
		return FormatA4
	case C.DSPF_ARGB1666:
		return FormatARGB1666
	case C.DSPF_ARGB6666:
		return FormatARGB6666
	case C.DSPF_RGB18:
		return FormatRGB18
	case C.DSPF_LUT2:
		return FormatLUT2
	case C.DSPF_RGB444:
		return FormatRGB444
	case C.DSPF_RGB555:
		return FormatRGB555
	case C.DSPF_BGR555:
		return FormatBGR555
	case C.DSPF_RGBA5551:
		return FormatRGBA5551
	case C.DSPF_YUV444P:
		return FormatYUV444P
	case C.DSPF_ARGB8565:
		return FormatARGB8565
	case C.DSPF_AVYU:
		return FormatAVYU
	case C.DSPF_VYU:
		return FormatVYU
	case C.DSPF_A1_LSB:
		return FormatA1LSB
	case C.DSPF_YV16:
		return FormatYV16
	}
	return FormatUnknown
}

func (n *cgoDFB) createFont(path string, height int) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return check(C.dfb_create_font(n.dfb, n.surf, cpath, C.int(height), &n.font))
}

func (n *cgoDFB) screenSize() (int, int, error) {
	var w, h C.int
	err := check(C.dfb_screen_size(n.dfb, &n.layer, &w, &h))
	return int(w), int(h), err
}

func (n *cgoDFB) flip() error {
	return check(C.dfb_flip(n.surf))
}

func (n *cgoDFB) releaseFont() {
	if n.font != nil {
		C.dfb_release_font(n.font)
		n.font = nil
	}
}

func (n *cgoDFB) releaseSurface() {
	if n.surf != nil {
		C.dfb_release_surface(n.surf)
		n.surf = nil
	}
}

func (n *cgoDFB) releaseLayer() {
	if n.layer != nil {
		C.dfb_release_layer(n.layer)
		n.layer = nil
	}
}

func (n *cgoDFB) releaseMain() {
	if n.dfb != nil {
		C.dfb_release(n.dfb)
		n.dfb = nil
	}
}
