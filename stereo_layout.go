// stereo_layout.go - Buffer and per-eye geometry implied by a packing

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import "fmt"

// Layout is the pixel geometry derived from a selected mode: the size of the
// single buffer covering both eyes, the physical size of each eye's region,
// the virtual size the display stretches each eye back up to, and where each
// eye's region sits within the buffer.
//
// The virtual size differs from the physical eye size exactly when the
// packing squashes two images into one frame with non-square pixels; the
// renderer must use the virtual size for its projection aspect while the
// viewport uses the physical size.
type Layout struct {
	BufferWidth  uint32
	BufferHeight uint32

	EyeWidth  uint32
	EyeHeight uint32

	VirtualEyeWidth  uint32
	VirtualEyeHeight uint32

	RightEyeX uint32
	LeftEyeY  uint32
}

// ComputeLayout derives the geometry for a mode's packing. It is total over
// every packing the selector can return; any other tag is a caller bug and
// panics.
func ComputeLayout(m DisplayMode) Layout {
	w := uint32(m.Hdisplay)
	h := uint32(m.Vdisplay)

	switch m.Packing() {
	case PackingNone:
		return Layout{
			BufferWidth: w, BufferHeight: h,
			EyeWidth: w, EyeHeight: h,
			VirtualEyeWidth: w, VirtualEyeHeight: h,
			// park the right eye off the buffer so it never shows
			RightEyeX: w,
		}
	case PackingSideBySideHalf:
		return Layout{
			BufferWidth: w, BufferHeight: h,
			EyeWidth: w / 2, EyeHeight: h,
			VirtualEyeWidth: w, VirtualEyeHeight: h,
			RightEyeX: w / 2,
		}
	case PackingSideBySideFull:
		return Layout{
			BufferWidth: w * 2, BufferHeight: h,
			EyeWidth: w, EyeHeight: h,
			VirtualEyeWidth: w, VirtualEyeHeight: h,
			RightEyeX: w,
		}
	case PackingTopAndBottom:
		return Layout{
			BufferWidth: w, BufferHeight: h,
			EyeWidth: w, EyeHeight: h / 2,
			VirtualEyeWidth: w, VirtualEyeHeight: h,
			LeftEyeY: h / 2,
		}
	case PackingFramePacking:
		return Layout{
			BufferWidth: w, BufferHeight: uint32(m.Vtotal) + h,
			EyeWidth: w, EyeHeight: h,
			VirtualEyeWidth: w, VirtualEyeHeight: h,
			LeftEyeY: uint32(m.Vtotal),
		}
	default:
		panic(fmt.Sprintf("no layout rule for packing %#x", uint32(m.Packing())))
	}
}

// LeftViewport and RightViewport place each eye's drawing region within the
// buffer. The left eye sits above the right for vertically split packings.
func (l Layout) LeftViewport() Viewport {
	return Viewport{X: 0, Y: int32(l.LeftEyeY), Width: l.EyeWidth, Height: l.EyeHeight}
}

func (l Layout) RightViewport() Viewport {
	return Viewport{X: int32(l.RightEyeX), Y: 0, Width: l.EyeWidth, Height: l.EyeHeight}
}

// Viewport is a placement rectangle in buffer pixels.
type Viewport struct {
	X, Y          int32
	Width, Height uint32
}
