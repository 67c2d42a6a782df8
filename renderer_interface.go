// renderer_interface.go - Boundary between the pipeline and the scene renderer

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

// Renderer produces one frame into the current back buffer per DrawFrame
// call, drawing the left eye into left and the right eye into right. The
// projection aspect must come from the layout's virtual eye size handed to
// Setup, since the viewports can cover squashed, non-square pixels. A
// renderer must not retain references to the presentation surface between
// calls.
type Renderer interface {
	// Setup prepares rendering state for the negotiated geometry. Called
	// once, after the swapchain's context is current.
	Setup(layout Layout) error

	DrawFrame(left, right Viewport)

	Close()
}

// SimRenderer counts frames and draws nothing. It stands in for the GLES
// renderer in pipeline tests.
type SimRenderer struct {
	SetupLayout Layout
	Frames      int
	Closed      bool
	SetupErr    error
}

func (r *SimRenderer) Setup(layout Layout) error {
	if r.SetupErr != nil {
		return r.SetupErr
	}
	r.SetupLayout = layout
	return nil
}

func (r *SimRenderer) DrawFrame(left, right Viewport) {
	r.Frames++
}

func (r *SimRenderer) Close() {
	r.Closed = true
}
