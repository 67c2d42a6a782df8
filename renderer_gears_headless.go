//go:build headless

// renderer_gears_headless.go - Gears renderer stub for builds without GLES2

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

type GearsRenderer struct{}

func NewGearsRenderer() *GearsRenderer {
	return &GearsRenderer{}
}

func (r *GearsRenderer) Setup(layout Layout) error {
	return &DisplayError{
		Op:      "renderer setup",
		Details: "built without OpenGL ES support",
	}
}

func (r *GearsRenderer) DrawFrame(left, right Viewport) {}

func (r *GearsRenderer) Close() {}
