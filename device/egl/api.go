// SPDX-License-Identifier: Unlicense OR MIT

package egl

type (
	_EGLint     = int32
	_EGLenum    = uint32
	_EGLDisplay uintptr
	_EGLConfig  uintptr

	// Surface is an opaque EGL surface handle.
	Surface uintptr
	// Context is an opaque EGL rendering context handle.
	Context uintptr
	// NativeDisplay is the platform display handed to eglGetDisplay.
	NativeDisplay uintptr
)

var (
	nilEGLDisplay _EGLDisplay
	nilEGLConfig  _EGLConfig
	nilEGLSurface Surface
	nilEGLContext Context
)

// eglDefaultDisplay is EGL_DEFAULT_DISPLAY.
const eglDefaultDisplay NativeDisplay = 0

const (
	_EGL_SUCCESS             = 0x3000
	_EGL_NOT_INITIALIZED     = 0x3001
	_EGL_BAD_ACCESS          = 0x3002
	_EGL_BAD_ALLOC           = 0x3003
	_EGL_BAD_ATTRIBUTE       = 0x3004
	_EGL_BAD_CONFIG          = 0x3005
	_EGL_BAD_CONTEXT         = 0x3006
	_EGL_BAD_CURRENT_SURFACE = 0x3007
	_EGL_BAD_DISPLAY         = 0x3008
	_EGL_BAD_MATCH           = 0x3009
	_EGL_BAD_NATIVE_PIXMAP   = 0x300a
	_EGL_BAD_NATIVE_WINDOW   = 0x300b
	_EGL_BAD_PARAMETER       = 0x300c
	_EGL_BAD_SURFACE         = 0x300d
	_EGL_CONTEXT_LOST        = 0x300e

	_EGL_ALPHA_SIZE              = 0x3021
	_EGL_BLUE_SIZE               = 0x3022
	_EGL_GREEN_SIZE              = 0x3023
	_EGL_RED_SIZE                = 0x3024
	_EGL_DEPTH_SIZE              = 0x3025
	_EGL_STENCIL_SIZE            = 0x3026
	_EGL_CONFIG_ID               = 0x3028
	_EGL_NATIVE_RENDERABLE       = 0x302d
	_EGL_NATIVE_VISUAL_ID        = 0x302e
	_EGL_SAMPLES                 = 0x3031
	_EGL_SAMPLE_BUFFERS          = 0x3032
	_EGL_SURFACE_TYPE            = 0x3033
	_EGL_NONE                    = 0x3038
	_EGL_MIN_SWAP_INTERVAL       = 0x303b
	_EGL_MAX_SWAP_INTERVAL       = 0x303c
	_EGL_LUMINANCE_SIZE          = 0x303d
	_EGL_RENDERABLE_TYPE         = 0x3040
	_EGL_VENDOR                  = 0x3053
	_EGL_VERSION                 = 0x3054
	_EGL_EXTENSIONS              = 0x3055
	_EGL_HEIGHT                  = 0x3056
	_EGL_WIDTH                   = 0x3057
	_EGL_BACK_BUFFER             = 0x3084
	_EGL_SINGLE_BUFFER           = 0x3085
	_EGL_RENDER_BUFFER           = 0x3086
	_EGL_CLIENT_APIS             = 0x308d
	_EGL_HORIZONTAL_RES          = 0x3090
	_EGL_VERTICAL_RES            = 0x3091
	_EGL_SWAP_BEHAVIOR           = 0x3093
	_EGL_BUFFER_DESTROYED        = 0x3095
	_EGL_OPENVG_IMAGE            = 0x3096
	_EGL_CONTEXT_CLIENT_TYPE     = 0x3097
	_EGL_CONTEXT_CLIENT_VERSION  = 0x3098
	_EGL_MULTISAMPLE_RESOLVE     = 0x3099
	_EGL_MULTISAMPLE_RESOLVE_BOX = 0x309b
	_EGL_OPENGL_ES_API           = 0x30a0
	_EGL_OPENVG_API              = 0x30a1

	_EGL_PBUFFER_BIT = 0x0001
	_EGL_PIXMAP_BIT  = 0x0002
	_EGL_WINDOW_BIT  = 0x0004

	_EGL_OPENGL_ES_BIT  = 0x0001
	_EGL_OPENVG_BIT     = 0x0002
	_EGL_OPENGL_ES2_BIT = 0x0004
	_EGL_OPENGL_BIT     = 0x0008

	_EGL_DONT_CARE = -1
)

// api is the subset of EGL 1.4 the device drives. The production
// implementation calls into libEGL; tests substitute a recording fake.
type api interface {
	eglGetDisplay(disp NativeDisplay) _EGLDisplay
	eglInitialize(disp _EGLDisplay) (_EGLint, _EGLint, bool)
	eglTerminate(disp _EGLDisplay) bool
	eglGetError() _EGLint
	eglQueryString(disp _EGLDisplay, name _EGLint) string
	// eglGetConfigs fills configs, or only counts when configs is empty.
	eglGetConfigs(disp _EGLDisplay, configs []_EGLConfig) (_EGLint, bool)
	eglChooseConfig(disp _EGLDisplay, attribs []_EGLint, configs []_EGLConfig) (_EGLint, bool)
	eglGetConfigAttrib(disp _EGLDisplay, cfg _EGLConfig, attr _EGLint) (_EGLint, bool)
	eglBindAPI(api _EGLenum) bool
	eglCreateWindowSurface(disp _EGLDisplay, cfg _EGLConfig, win uintptr, attribs []_EGLint) Surface
	eglCreatePbufferSurface(disp _EGLDisplay, cfg _EGLConfig, attribs []_EGLint) Surface
	eglCreatePbufferFromClientBuffer(disp _EGLDisplay, bufType _EGLenum, buf uintptr, cfg _EGLConfig, attribs []_EGLint) Surface
	eglCreatePixmapSurface(disp _EGLDisplay, cfg _EGLConfig, pixmap uintptr, attribs []_EGLint) Surface
	eglDestroySurface(disp _EGLDisplay, surf Surface) bool
	eglQuerySurface(disp _EGLDisplay, surf Surface, attr _EGLint) (_EGLint, bool)
	eglCreateContext(disp _EGLDisplay, cfg _EGLConfig, share Context, attribs []_EGLint) Context
	eglDestroyContext(disp _EGLDisplay, ctx Context) bool
	eglQueryContext(disp _EGLDisplay, ctx Context, attr _EGLint) (_EGLint, bool)
	eglMakeCurrent(disp _EGLDisplay, draw, read Surface, ctx Context) bool
	eglSwapBuffers(disp _EGLDisplay, surf Surface) bool
	eglCopyBuffers(disp _EGLDisplay, surf Surface, pixmap uintptr) bool
}

// ErrorString returns the symbolic name of an EGL error code.
func ErrorString(code int) string {
	switch code {
	case _EGL_SUCCESS:
		return "EGL_SUCCESS"
	case _EGL_NOT_INITIALIZED:
		return "EGL_NOT_INITIALIZED"
	case _EGL_BAD_ACCESS:
		return "EGL_BAD_ACCESS"
	case _EGL_BAD_ALLOC:
		return "EGL_BAD_ALLOC"
	case _EGL_BAD_ATTRIBUTE:
		return "EGL_BAD_ATTRIBUTE"
	case _EGL_BAD_CONFIG:
		return "EGL_BAD_CONFIG"
	case _EGL_BAD_CONTEXT:
		return "EGL_BAD_CONTEXT"
	case _EGL_BAD_CURRENT_SURFACE:
		return "EGL_BAD_CURRENT_SURFACE"
	case _EGL_BAD_DISPLAY:
		return "EGL_BAD_DISPLAY"
	case _EGL_BAD_MATCH:
		return "EGL_BAD_MATCH"
	case _EGL_BAD_NATIVE_PIXMAP:
		return "EGL_BAD_NATIVE_PIXMAP"
	case _EGL_BAD_NATIVE_WINDOW:
		return "EGL_BAD_NATIVE_WINDOW"
	case _EGL_BAD_PARAMETER:
		return "EGL_BAD_PARAMETER"
	case _EGL_BAD_SURFACE:
		return "EGL_BAD_SURFACE"
	case _EGL_CONTEXT_LOST:
		return "EGL_CONTEXT_LOST"
	default:
		return "unknown error code"
	}
}
