// display_interface.go - Display device abstraction over the KMS entities

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import (
	"errors"
	"fmt"
)

// DisplayError provides detailed error context for display operations.
type DisplayError struct {
	Op      string // What operation was being attempted
	Details string // Additional error context
	Err     error  // Underlying error if any
}

func (e *DisplayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("display %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("display %s failed: %s", e.Op, e.Details)
}

func (e *DisplayError) Unwrap() error {
	return e.Err
}

// Error taxonomy. NotFound-style errors are soft: the caller may retry with
// different constraints. ErrFlipFailed covers a single failed present
// attempt; the render loop may carry on. Anything else from the device is
// fatal to the current setup.
var (
	ErrNoConnector = errors.New("no usable connector")
	ErrNoMode      = errors.New("no usable stereo mode")
	ErrNoCrtc      = errors.New("no usable CRTC")
	ErrFlipFailed  = errors.New("page flip failed")
	ErrTornDown    = errors.New("presentation already torn down")
)

// DeviceResources lists the entity IDs a device exposes.
type DeviceResources struct {
	Connectors []uint32
	Crtcs      []uint32
}

// ConnectorInfo describes one physical output port.
type ConnectorInfo struct {
	ID        uint32
	EncoderID uint32 // currently attached encoder, 0 if none
	Connected bool
	Modes     []DisplayMode
	Encoders  []uint32 // encoders this connector could use
}

// EncoderInfo describes one signal encoder block.
type EncoderInfo struct {
	ID            uint32
	CrtcID        uint32 // currently attached CRTC, 0 if none
	PossibleCrtcs uint32 // bitmask over the device's global CRTC list
}

// CrtcConfig is a CRTC's programmed state, captured before the first modeset
// so it can be written back on teardown.
type CrtcConfig struct {
	ID            uint32
	FramebufferID uint32
	X, Y          uint32
	Mode          DisplayMode
}

// DisplayDevice is the minimal slice of the kernel display interface the
// pipeline needs. The DRM backend talks to real hardware; the simulated
// backend stands in for it in tests.
type DisplayDevice interface {
	Resources() (*DeviceResources, error)
	Connector(id uint32) (*ConnectorInfo, error)
	Encoder(id uint32) (*EncoderInfo, error)

	// CrtcConfig reads back a CRTC's current configuration.
	CrtcConfig(id uint32) (*CrtcConfig, error)

	// SetCrtc programs a CRTC with a mode, a single connector and an initial
	// framebuffer. RestoreCrtc writes a captured configuration back.
	SetCrtc(crtc, fb, conn uint32, mode *DisplayMode) error
	RestoreCrtc(cfg *CrtcConfig, conn uint32) error

	// AddFramebuffer registers a GPU buffer for scanout and returns its
	// framebuffer ID; RemoveFramebuffer unregisters it.
	AddFramebuffer(width, height, stride, handle uint32) (uint32, error)
	RemoveFramebuffer(fb uint32) error

	// PageFlip asks the CRTC to scan out fb at the next vertical blank and
	// returns a token identifying the completion event. WaitFlip blocks
	// processing device events until that token's completion is observed.
	PageFlip(crtc, fb uint32) (uint64, error)
	WaitFlip(token uint64) error

	Close() error
}

// Predefined display backend types
const (
	DISPLAY_BACKEND_DRM = iota // Kernel modesetting via the DRI device node
	DISPLAY_BACKEND_SIM        // Simulated device, no hardware touched
)

// NewDisplayDevice opens a display device using the specified backend.
func NewDisplayDevice(backend int, path string) (DisplayDevice, error) {
	switch backend {
	case DISPLAY_BACKEND_DRM:
		return newDRMDevice(path)
	case DISPLAY_BACKEND_SIM:
		return NewSimDevice(), nil
	}
	return nil, &DisplayError{
		Op:      "backend creation",
		Details: fmt.Sprintf("unknown backend type: %d", backend),
	}
}
