//go:build headless

// swapchain_gbm_headless.go - Stub swapchain for builds without GBM/EGL

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

func newGBMSwapChain(dev DisplayDevice, layout Layout) (SwapChain, error) {
	return nil, &DisplayError{
		Op:      "swapchain creation",
		Details: "GBM/EGL support not built in (headless build)",
	}
}
