//go:build !headless

// swapchain_gbm.go - GBM presentation surface with an EGL/GLES2 context

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

/*
#cgo CFLAGS: -DEGL_NO_X11
#cgo LDFLAGS: -lgbm -lEGL
#include <gbm.h>
#include <EGL/egl.h>

static uint32_t bo_handle_u32(struct gbm_bo *bo) {
	return gbm_bo_get_handle(bo).u32;
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// gbmSwapChain owns the GBM device and surface plus the EGL display, context
// and window surface rendered into. The context is made current on the
// calling goroutine at creation and stays current for the swapchain's life.
type gbmSwapChain struct {
	gbm    *C.struct_gbm_device
	gsurf  *C.struct_gbm_surface
	edpy   C.EGLDisplay
	config C.EGLConfig
	esurf  C.EGLSurface
	ectx   C.EGLContext

	destroyed bool
}

// newGBMSwapChain builds the rendering stack on top of an opened DRM device,
// sized to the layout's combined-eye buffer. Each failed step unwinds
// exactly the steps already completed, in reverse order.
func newGBMSwapChain(dev DisplayDevice, layout Layout) (SwapChain, error) {
	drm, ok := dev.(*drmDevice)
	if !ok {
		return nil, &DisplayError{Op: "swapchain creation", Details: "display backend has no DRI file descriptor"}
	}

	s := &gbmSwapChain{}

	s.gbm = C.gbm_create_device(C.int(drm.file.Fd()))
	if s.gbm == nil {
		return nil, &DisplayError{Op: "swapchain creation", Details: "GBM device"}
	}

	s.edpy = C.eglGetDisplay(C.EGLNativeDisplayType(unsafe.Pointer(s.gbm)))
	if s.edpy == nil {
		s.unwind()
		return nil, &DisplayError{Op: "swapchain creation", Details: "EGL display"}
	}

	if C.eglInitialize(s.edpy, nil, nil) == C.EGL_FALSE {
		s.edpy = nil
		s.unwind()
		return nil, &DisplayError{Op: "swapchain creation", Details: "EGL initialize", Err: eglErr()}
	}

	s.gsurf = C.gbm_surface_create(s.gbm,
		C.uint32_t(layout.BufferWidth), C.uint32_t(layout.BufferHeight),
		C.GBM_BO_FORMAT_XRGB8888,
		C.GBM_BO_USE_SCANOUT|C.GBM_BO_USE_RENDERING)
	if s.gsurf == nil {
		s.unwind()
		return nil, &DisplayError{Op: "swapchain creation", Details: "GBM surface"}
	}

	if err := s.chooseConfig(); err != nil {
		s.unwind()
		return nil, err
	}

	s.esurf = C.eglCreateWindowSurface(s.edpy, s.config,
		C.EGLNativeWindowType(unsafe.Pointer(s.gsurf)), nil)
	if s.esurf == nil {
		s.unwind()
		return nil, &DisplayError{Op: "swapchain creation", Details: "EGL surface", Err: eglErr()}
	}

	ctxAttribs := []C.EGLint{
		C.EGL_CONTEXT_CLIENT_VERSION, 2,
		C.EGL_NONE,
	}
	s.ectx = C.eglCreateContext(s.edpy, s.config, nil, &ctxAttribs[0])
	if s.ectx == nil {
		s.unwind()
		return nil, &DisplayError{Op: "swapchain creation", Details: "EGL context", Err: eglErr()}
	}

	if C.eglMakeCurrent(s.edpy, s.esurf, s.esurf, s.ectx) == C.EGL_FALSE {
		s.unwind()
		return nil, &DisplayError{Op: "swapchain creation", Details: "make context current", Err: eglErr()}
	}

	return s, nil
}

func (s *gbmSwapChain) chooseConfig() error {
	attribs := []C.EGLint{
		C.EGL_RED_SIZE, 1,
		C.EGL_GREEN_SIZE, 1,
		C.EGL_BLUE_SIZE, 1,
		C.EGL_ALPHA_SIZE, -1, // EGL_DONT_CARE
		C.EGL_DEPTH_SIZE, 1,
		C.EGL_BUFFER_SIZE, -1, // EGL_DONT_CARE
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_ES2_BIT,
		C.EGL_SURFACE_TYPE, C.EGL_WINDOW_BIT,
		C.EGL_NONE,
	}
	var count C.EGLint
	if C.eglChooseConfig(s.edpy, &attribs[0], &s.config, 1, &count) != C.EGL_TRUE || count < 1 {
		return &DisplayError{Op: "swapchain creation", Details: "no usable EGL configuration", Err: eglErr()}
	}
	return nil
}

func (s *gbmSwapChain) Swap() error {
	if C.eglSwapBuffers(s.edpy, s.esurf) == C.EGL_FALSE {
		return fmt.Errorf("eglSwapBuffers: %w", eglErr())
	}
	return nil
}

func (s *gbmSwapChain) LockFront() (*ScanoutBuffer, error) {
	bo := C.gbm_surface_lock_front_buffer(s.gsurf)
	if bo == nil {
		return nil, fmt.Errorf("gbm front buffer lock failed")
	}
	return &ScanoutBuffer{
		Width:  uint32(C.gbm_bo_get_width(bo)),
		Height: uint32(C.gbm_bo_get_height(bo)),
		Stride: uint32(C.gbm_bo_get_stride(bo)),
		Handle: uint32(C.bo_handle_u32(bo)),
		native: uintptr(unsafe.Pointer(bo)),
	}, nil
}

func (s *gbmSwapChain) Release(bo *ScanoutBuffer) {
	C.gbm_surface_release_buffer(s.gsurf, (*C.struct_gbm_bo)(unsafe.Pointer(bo.native)))
}

// Destroy releases everything in reverse order of creation. Idempotent.
func (s *gbmSwapChain) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.edpy != nil {
		C.eglMakeCurrent(s.edpy, nil, nil, nil)
	}
	s.unwind()
}

// unwind tears down whichever creation steps have completed so far.
func (s *gbmSwapChain) unwind() {
	if s.ectx != nil {
		C.eglDestroyContext(s.edpy, s.ectx)
		s.ectx = nil
	}
	if s.esurf != nil {
		C.eglDestroySurface(s.edpy, s.esurf)
		s.esurf = nil
	}
	if s.gsurf != nil {
		C.gbm_surface_destroy(s.gsurf)
		s.gsurf = nil
	}
	if s.edpy != nil {
		C.eglTerminate(s.edpy)
		s.edpy = nil
	}
	if s.gbm != nil {
		C.gbm_device_destroy(s.gbm)
		s.gbm = nil
	}
}

func eglErr() error {
	return fmt.Errorf("EGL error %#x", int(C.eglGetError()))
}
