package main

import (
	"errors"
	"testing"
)

func TestDiscoverAndBind_AttachedEncoder(t *testing.T) {
	dev := NewSimDevice()
	b, err := DiscoverAndBind(dev, BindOptions{})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if b.ConnectorID != 31 {
		t.Fatalf("expected connector 31, got %d", b.ConnectorID)
	}
	if b.CrtcID != 51 {
		t.Fatalf("expected the attached encoder's CRTC 51, got %d", b.CrtcID)
	}
	if b.Mode.Packing() != PackingTopAndBottom {
		t.Fatalf("expected the stereo mode to win, got %s", b.Mode.Packing().LongName())
	}
	if b.Layout != ComputeLayout(b.Mode) {
		t.Fatal("expected the binding layout to match the selected mode")
	}
}

func TestDiscoverAndBind_SkipsUnconnected(t *testing.T) {
	dev := NewSimDevice()
	dev.ConnectorList = append([]ConnectorInfo{{
		ID: 30, Connected: false,
		Modes: []DisplayMode{SimMode(1920, 1080, PackingFramePacking)},
	}}, dev.ConnectorList...)

	b, err := DiscoverAndBind(dev, BindOptions{})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if b.ConnectorID != 31 {
		t.Fatalf("expected the unconnected connector to be skipped, got %d", b.ConnectorID)
	}
}

func TestDiscoverAndBind_PinnedConnector(t *testing.T) {
	dev := NewSimDevice()
	b, err := DiscoverAndBind(dev, BindOptions{ConnectorID: 31})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if b.ConnectorID != 31 {
		t.Fatalf("expected connector 31, got %d", b.ConnectorID)
	}

	_, err = DiscoverAndBind(dev, BindOptions{ConnectorID: 99})
	if !errors.Is(err, ErrNoConnector) {
		t.Fatalf("expected ErrNoConnector for an absent connector, got %v", err)
	}
}

func TestDiscoverAndBind_NothingConnected(t *testing.T) {
	dev := NewSimDevice()
	dev.ConnectorList[0].Connected = false

	_, err := DiscoverAndBind(dev, BindOptions{})
	if !errors.Is(err, ErrNoConnector) {
		t.Fatalf("expected ErrNoConnector, got %v", err)
	}
}

func TestDiscoverAndBind_NoUsableMode(t *testing.T) {
	dev := NewSimDevice()
	dev.ConnectorList[0].Modes = []DisplayMode{SimMode(1920, 1080, PackingLineAlternative)}

	_, err := DiscoverAndBind(dev, BindOptions{})
	if !errors.Is(err, ErrNoMode) {
		t.Fatalf("expected ErrNoMode, got %v", err)
	}
}

func TestDiscoverAndBind_RequestedLayout(t *testing.T) {
	dev := NewSimDevice()
	b, err := DiscoverAndBind(dev, BindOptions{Layout: "none"})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if b.Mode.Packing() != PackingNone {
		t.Fatalf("expected the requested 2D mode, got %s", b.Mode.Packing().LongName())
	}

	_, err = DiscoverAndBind(dev, BindOptions{Layout: "fp"})
	if !errors.Is(err, ErrNoMode) {
		t.Fatalf("expected ErrNoMode for an unadvertised layout, got %v", err)
	}
}

func TestFindCrtc_EncoderMaskFallback(t *testing.T) {
	dev := NewSimDevice()
	// no attached encoder, two CRTCs, mask only permits the second
	dev.ConnectorList[0].EncoderID = 0
	dev.EncoderList = []EncoderInfo{{ID: 42, CrtcID: 0, PossibleCrtcs: 0x2}}
	dev.CrtcList = []uint32{51, 52}

	b, err := DiscoverAndBind(dev, BindOptions{})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if b.CrtcID != 52 {
		t.Fatalf("expected CRTC 52 from the compatibility mask, got %d", b.CrtcID)
	}
}

func TestFindCrtc_NoCompatibleCrtc(t *testing.T) {
	dev := NewSimDevice()
	dev.ConnectorList[0].EncoderID = 0
	dev.EncoderList = []EncoderInfo{{ID: 42, PossibleCrtcs: 0}}

	_, err := DiscoverAndBind(dev, BindOptions{})
	if !errors.Is(err, ErrNoCrtc) {
		t.Fatalf("expected ErrNoCrtc, got %v", err)
	}
}

func TestOutputBinding_ApplyInitialMode_CapturesOnSuccess(t *testing.T) {
	dev := NewSimDevice()
	b, err := DiscoverAndBind(dev, BindOptions{})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	if err := b.applyInitialMode(5); err != nil {
		t.Fatalf("modeset failed: %v", err)
	}
	if b.saved == nil {
		t.Fatal("expected the prior CRTC config to be captured")
	}
	if b.saved.FramebufferID != 7 {
		t.Fatalf("expected the pre-modeset framebuffer 7, got %d", b.saved.FramebufferID)
	}

	// a second modeset must not overwrite the capture
	first := *b.saved
	if err := b.applyInitialMode(6); err != nil {
		t.Fatalf("modeset failed: %v", err)
	}
	if *b.saved != first {
		t.Fatal("expected the original capture to be kept")
	}
}

func TestOutputBinding_ApplyInitialMode_NoCaptureOnFailure(t *testing.T) {
	dev := NewSimDevice()
	b, err := DiscoverAndBind(dev, BindOptions{})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	dev.SetCrtcErr = errors.New("busy")
	if err := b.applyInitialMode(5); err == nil {
		t.Fatal("expected the modeset to fail")
	}
	if b.saved != nil {
		t.Fatal("expected no capture after a failed modeset")
	}

	b.Unbind()
	if len(dev.RestoredCrtcs) != 0 {
		t.Fatal("expected nothing to restore")
	}
}

func TestOutputBinding_Unbind_RestoresOnce(t *testing.T) {
	dev := NewSimDevice()
	b, err := DiscoverAndBind(dev, BindOptions{})
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := b.applyInitialMode(5); err != nil {
		t.Fatalf("modeset failed: %v", err)
	}

	b.Unbind()
	b.Unbind()
	if len(dev.RestoredCrtcs) != 1 {
		t.Fatalf("expected exactly one restore, got %d", len(dev.RestoredCrtcs))
	}
	if dev.RestoredCrtcs[0].FramebufferID != 7 {
		t.Fatalf("expected framebuffer 7 restored, got %d", dev.RestoredCrtcs[0].FramebufferID)
	}
}
