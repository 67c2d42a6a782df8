// presenter.go - Modeset-or-flip presentation protocol

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import (
	"fmt"
)

// Scanout pixel format used for every registered framebuffer.
const (
	scanoutDepth = 24
	scanoutBPP   = 32
)

type presentState int

const (
	// No mode has been applied to the CRTC yet; the first present performs
	// the modeset.
	stateUnconfigured presentState = iota
	// Steady state: each present page-flips and waits for completion.
	stateFlipping
	// Terminal: the pipeline has shut down, presenting is an error.
	stateTornDown
)

// Presenter drives a binding's CRTC from a render surface: first present
// applies the negotiated mode, every later present requests a page flip and
// blocks until the hardware confirms it, after which the superseded buffer
// is reclaimed.
type Presenter struct {
	dev     DisplayDevice
	binding *OutputBinding
	surface RenderSurface

	state presentState

	// buffer currently being scanned out, nil before the first present
	currentBO *ScanoutBuffer
	currentFB uint32
}

func NewPresenter(dev DisplayDevice, binding *OutputBinding, surface RenderSurface) *Presenter {
	return &Presenter{dev: dev, binding: binding, surface: surface}
}

// Present pushes the most recently rendered frame to the display and blocks
// until it is being scanned out.
//
// Errors wrapping ErrFlipFailed are recoverable: presentation state has not
// advanced and the caller may try again next frame. Any other error is fatal
// to the pipeline.
func (p *Presenter) Present() error {
	if p.state == stateTornDown {
		return ErrTornDown
	}

	if err := p.surface.Swap(); err != nil {
		return &DisplayError{Op: "present", Details: "buffer swap", Err: err}
	}

	bo, err := p.surface.LockFront()
	if err != nil {
		return &DisplayError{Op: "present", Details: "front buffer lock", Err: err}
	}

	fb, err := p.dev.AddFramebuffer(bo.Width, bo.Height, bo.Stride, bo.Handle)
	if err != nil {
		p.surface.Release(bo)
		return fmt.Errorf("framebuffer registration: %v: %w", err, ErrFlipFailed)
	}

	if p.state == stateUnconfigured {
		if err := p.binding.applyInitialMode(fb); err != nil {
			p.dev.RemoveFramebuffer(fb)
			p.surface.Release(bo)
			return err
		}
	} else {
		token, err := p.dev.PageFlip(p.binding.CrtcID, fb)
		if err != nil {
			p.dev.RemoveFramebuffer(fb)
			p.surface.Release(bo)
			return fmt.Errorf("flip request: %v: %w", err, ErrFlipFailed)
		}

		// The one deliberate suspension point: wait for the hardware to
		// confirm the flip. Only after this is the old buffer safe to free.
		if err := p.dev.WaitFlip(token); err != nil {
			// The flip request was accepted, so the hardware is moving to
			// the new framebuffer. Adopt it as current so teardown still
			// reclaims both pairs.
			p.releaseCurrent()
			p.currentBO = bo
			p.currentFB = fb
			return &DisplayError{Op: "flip wait", Details: "device event stream", Err: err}
		}
	}

	p.releaseCurrent()
	p.currentBO = bo
	p.currentFB = fb
	p.state = stateFlipping
	return nil
}

// TearDown reclaims the buffer still registered with the display subsystem
// and makes the presenter terminal. Idempotent; Present fails afterwards
// without touching the device.
func (p *Presenter) TearDown() {
	if p.state == stateTornDown {
		return
	}
	p.releaseCurrent()
	p.state = stateTornDown
}

func (p *Presenter) releaseCurrent() {
	if p.currentFB != 0 {
		p.dev.RemoveFramebuffer(p.currentFB)
		p.currentFB = 0
	}
	if p.currentBO != nil {
		p.surface.Release(p.currentBO)
		p.currentBO = nil
	}
}
