// output_binder.go - Connector discovery and CRTC binding

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import (
	"fmt"
	"log"
)

// BindOptions constrains output discovery.
type BindOptions struct {
	ConnectorID uint32 // exact connector to use, 0 = first connected
	Layout      string // packing short name to insist on, "" = best available
}

// OutputBinding is an exclusive claim on one CRTC driving one connector with
// one negotiated mode. The CRTC's pre-existing configuration is captured on
// the first successful modeset and written back by Unbind.
type OutputBinding struct {
	dev DisplayDevice

	ConnectorID uint32
	CrtcID      uint32
	Mode        DisplayMode
	Layout      Layout

	saved *CrtcConfig
}

// DiscoverAndBind enumerates the device's connectors, negotiates the best
// stereoscopic mode on the first connected one (optionally pinned by
// opts.ConnectorID), and finds a CRTC able to drive it.
func DiscoverAndBind(dev DisplayDevice, opts BindOptions) (*OutputBinding, error) {
	res, err := dev.Resources()
	if err != nil {
		return nil, &DisplayError{Op: "resource enumeration", Details: "cannot retrieve device resources", Err: err}
	}

	conn, err := findConnector(dev, res, opts.ConnectorID)
	if err != nil {
		return nil, err
	}

	mode, ok := SelectMode(conn.Modes, opts.Layout)
	if !ok {
		return nil, fmt.Errorf("connector %d: %w", conn.ID, ErrNoMode)
	}

	layout := ComputeLayout(mode)
	log.Printf("mode for connector %d is %s", conn.ID, mode)
	if mode.Packing() == PackingNone {
		log.Printf("WARNING: no usable stereoscopic mode was found, rendering in 2D")
	}

	crtc, err := findCrtc(dev, res, conn)
	if err != nil {
		return nil, err
	}

	return &OutputBinding{
		dev:         dev,
		ConnectorID: conn.ID,
		CrtcID:      crtc,
		Mode:        mode,
		Layout:      layout,
	}, nil
}

func findConnector(dev DisplayDevice, res *DeviceResources, want uint32) (*ConnectorInfo, error) {
	for _, id := range res.Connectors {
		conn, err := dev.Connector(id)
		if err != nil {
			return nil, &DisplayError{Op: "connector lookup", Details: fmt.Sprintf("cannot retrieve connector %d", id), Err: err}
		}
		if !conn.Connected {
			continue
		}
		if want == 0 || conn.ID == want {
			return conn, nil
		}
	}
	if want != 0 {
		return nil, fmt.Errorf("connector %d not connected: %w", want, ErrNoConnector)
	}
	return nil, ErrNoConnector
}

// findCrtc prefers the CRTC of the connector's currently attached encoder.
// Failing that it walks every encoder the connector could use and every
// global CRTC the encoder's compatibility mask permits, taking the first
// that exists. A multi-output driver would additionally have to skip CRTCs
// claimed by other bindings; this pipeline drives a single output.
func findCrtc(dev DisplayDevice, res *DeviceResources, conn *ConnectorInfo) (uint32, error) {
	if conn.EncoderID != 0 {
		enc, err := dev.Encoder(conn.EncoderID)
		if err == nil && enc.CrtcID != 0 {
			return enc.CrtcID, nil
		}
	}

	for _, encID := range conn.Encoders {
		enc, err := dev.Encoder(encID)
		if err != nil {
			log.Printf("cannot retrieve encoder %d: %v", encID, err)
			continue
		}
		for j, crtc := range res.Crtcs {
			if enc.PossibleCrtcs&(1<<uint(j)) == 0 {
				continue
			}
			if crtc != 0 {
				return crtc, nil
			}
		}
	}

	return 0, fmt.Errorf("connector %d: %w", conn.ID, ErrNoCrtc)
}

// applyInitialMode performs the one-time modeset with the first rendered
// framebuffer. The CRTC's prior configuration is captured at this moment,
// not earlier, so a transient state is never recorded; the capture is kept
// only if the modeset succeeds, and never overwritten.
func (b *OutputBinding) applyInitialMode(fb uint32) error {
	var saved *CrtcConfig
	if b.saved == nil {
		cfg, err := b.dev.CrtcConfig(b.CrtcID)
		if err != nil {
			log.Printf("cannot read CRTC %d state, prior configuration will not be restored: %v", b.CrtcID, err)
		} else {
			saved = cfg
		}
	}

	if err := b.dev.SetCrtc(b.CrtcID, fb, b.ConnectorID, &b.Mode); err != nil {
		return &DisplayError{Op: "modeset", Details: fmt.Sprintf("CRTC %d", b.CrtcID), Err: err}
	}

	if b.saved == nil {
		b.saved = saved
	}
	return nil
}

// Unbind restores the CRTC configuration that preceded the first modeset.
// It is idempotent and best-effort: a failed restore is logged, never
// propagated, so in-process resources are still freed.
func (b *OutputBinding) Unbind() {
	if b.saved == nil {
		return
	}
	if err := b.dev.RestoreCrtc(b.saved, b.ConnectorID); err != nil {
		log.Printf("failed to restore CRTC %d: %v", b.saved.ID, err)
	}
	b.saved = nil
}
