// swapchain.go - Presentation surface contract shared by all swapchain backends

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

// ScanoutBuffer is one GPU buffer produced by the presentation surface,
// carrying everything the display subsystem needs to register it for
// scanout. The buffer stays locked (owned by the presenter) until Release
// hands it back to the surface's rotation.
type ScanoutBuffer struct {
	Width  uint32
	Height uint32
	Stride uint32
	Handle uint32

	// backend-private buffer object reference
	native uintptr
}

// RenderSurface is the producer side of the present pipeline: a rotating set
// of GPU buffers the rendering context draws into.
type RenderSurface interface {
	// Swap flushes the rendering context's finished frame into the surface,
	// making it the next front buffer.
	Swap() error

	// LockFront takes ownership of the most recently swapped buffer. At most
	// one buffer is locked but not yet scanned out at a time.
	LockFront() (*ScanoutBuffer, error)

	// Release returns a locked buffer to the surface. Callers must not
	// release a buffer the display hardware is still scanning out.
	Release(*ScanoutBuffer)
}

// SwapChain owns a presentation surface and the rendering context bound to
// it. Destroy is idempotent and releases everything in reverse order of
// creation.
type SwapChain interface {
	RenderSurface
	Destroy()
}
