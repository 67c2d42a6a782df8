// pipeline.go - Display pipeline controller

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

// Pipeline assembles the display stack: device, output binding, swap
// chain and presenter. Connect builds it, Run drives frames through it,
// Disconnect tears it down in reverse order.
type Pipeline struct {
	devicePath string
	opts       BindOptions

	openDevice   func() (DisplayDevice, error)
	newSwapChain func(DisplayDevice, Layout) (SwapChain, error)

	dev       DisplayDevice
	binding   *OutputBinding
	chain     SwapChain
	presenter *Presenter

	fps  *FPSCounter
	stop atomic.Bool
}

func NewPipeline(devicePath string, opts BindOptions) *Pipeline {
	p := &Pipeline{
		devicePath: devicePath,
		opts:       opts,
		fps:        NewFPSCounter(),
	}
	p.openDevice = func() (DisplayDevice, error) {
		return NewDisplayDevice(DISPLAY_BACKEND_DRM, p.devicePath)
	}
	p.newSwapChain = newGBMSwapChain
	return p
}

// Connect opens the device, binds an output and creates the swap chain.
// On failure nothing is left open.
func (p *Pipeline) Connect() error {
	dev, err := p.openDevice()
	if err != nil {
		return err
	}

	binding, err := DiscoverAndBind(dev, p.opts)
	if err != nil {
		dev.Close()
		return err
	}

	chain, err := p.newSwapChain(dev, binding.Layout)
	if err != nil {
		dev.Close()
		return err
	}

	p.dev = dev
	p.binding = binding
	p.chain = chain
	p.presenter = NewPresenter(dev, binding, chain)

	return nil
}

// Stop requests the frame loop to exit after the current frame. Safe to
// call from any goroutine.
func (p *Pipeline) Stop() {
	p.stop.Store(true)
}

// Run drives frames until Stop is called or SIGINT/SIGTERM arrives. A
// failed page flip drops the frame and keeps going; any other present
// failure ends the loop.
func (p *Pipeline) Run(renderer Renderer) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-sigs; ok {
			p.Stop()
		}
	}()
	defer func() {
		signal.Stop(sigs)
		close(sigs)
	}()

	left := p.binding.Layout.LeftViewport()
	right := p.binding.Layout.RightViewport()

	for !p.stop.Load() {
		renderer.DrawFrame(left, right)

		if err := p.presenter.Present(); err != nil {
			if errors.Is(err, ErrFlipFailed) {
				log.Printf("dropping frame: %v", err)
				continue
			}
			return err
		}

		p.fps.Tick(time.Now())
	}

	return nil
}

// Disconnect tears the pipeline down. The saved CRTC configuration is
// restored before the presenter unregisters its framebuffer, so the
// controller is never left scanning a framebuffer that no longer exists.
// Every stage is attempted regardless of earlier failures, and calling
// it again is a no-op.
func (p *Pipeline) Disconnect() {
	if p.binding != nil {
		p.binding.Unbind()
	}
	if p.presenter != nil {
		p.presenter.TearDown()
		p.presenter = nil
	}
	if p.chain != nil {
		p.chain.Destroy()
		p.chain = nil
	}
	p.binding = nil
	if p.dev != nil {
		p.dev.Close()
		p.dev = nil
	}
}
