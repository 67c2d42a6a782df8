// display_backend_sim.go - Simulated display device, no hardware touched

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

// SimDevice implements DisplayDevice against an in-memory topology. It backs
// the test suite and lets the pipeline run end to end on machines without a
// DRI node. The exported fields describe the topology and inject failures;
// the counters record what the pipeline did to the "hardware".
type SimDevice struct {
	ConnectorList []ConnectorInfo
	EncoderList   []EncoderInfo
	CrtcList      []uint32

	// failure injection
	ResourcesErr error
	ConnectorErr error
	EncoderErr   error
	CrtcErr      error
	SetCrtcErr   error
	AddFBErr     error
	PageFlipErr  error
	WaitFlipErr  error

	// recorded activity, in call order
	OpOrder        []string
	SetCrtcCalls   []uint32 // fb handed to each SetCrtc
	RestoredCrtcs  []CrtcConfig
	AddedFBs       []uint32
	RemovedFBs     []uint32
	FlipsRequested []uint32 // fb per flip
	FlipsWaited    []uint64
	Closed         bool

	nextFB    uint32
	nextToken uint64
}

// NewSimDevice builds the default topology: one connected connector with a
// plain 2D mode plus a top-and-bottom stereo mode, one encoder already
// attached to a CRTC.
func NewSimDevice() *SimDevice {
	return &SimDevice{
		ConnectorList: []ConnectorInfo{{
			ID:        31,
			EncoderID: 42,
			Connected: true,
			Modes: []DisplayMode{
				SimMode(1920, 1080, PackingNone),
				SimMode(1920, 1080, PackingTopAndBottom),
			},
			Encoders: []uint32{42},
		}},
		EncoderList: []EncoderInfo{{ID: 42, CrtcID: 51, PossibleCrtcs: 0x1}},
		CrtcList:    []uint32{51},
	}
}

// SimMode fabricates a plausible timing for the given active size and
// packing, with 45 lines of vertical blanking.
func SimMode(w, h uint16, packing StereoPacking) DisplayMode {
	return DisplayMode{
		Hdisplay: w, Htotal: w + 280,
		Vdisplay: h, Vtotal: h + 45,
		Vrefresh: 60,
		Flags:    uint32(packing),
	}
}

func (d *SimDevice) Resources() (*DeviceResources, error) {
	if d.ResourcesErr != nil {
		return nil, d.ResourcesErr
	}
	res := &DeviceResources{Crtcs: d.CrtcList}
	for _, c := range d.ConnectorList {
		res.Connectors = append(res.Connectors, c.ID)
	}
	return res, nil
}

func (d *SimDevice) Connector(id uint32) (*ConnectorInfo, error) {
	if d.ConnectorErr != nil {
		return nil, d.ConnectorErr
	}
	for i := range d.ConnectorList {
		if d.ConnectorList[i].ID == id {
			return &d.ConnectorList[i], nil
		}
	}
	return nil, fmt.Errorf("no connector %d", id)
}

func (d *SimDevice) Encoder(id uint32) (*EncoderInfo, error) {
	if d.EncoderErr != nil {
		return nil, d.EncoderErr
	}
	for i := range d.EncoderList {
		if d.EncoderList[i].ID == id {
			return &d.EncoderList[i], nil
		}
	}
	return nil, fmt.Errorf("no encoder %d", id)
}

func (d *SimDevice) CrtcConfig(id uint32) (*CrtcConfig, error) {
	if d.CrtcErr != nil {
		return nil, d.CrtcErr
	}
	return &CrtcConfig{ID: id, FramebufferID: 7, Mode: SimMode(1024, 768, PackingNone)}, nil
}

func (d *SimDevice) SetCrtc(crtc, fb, conn uint32, m *DisplayMode) error {
	if d.SetCrtcErr != nil {
		return d.SetCrtcErr
	}
	d.OpOrder = append(d.OpOrder, "setcrtc")
	d.SetCrtcCalls = append(d.SetCrtcCalls, fb)
	return nil
}

func (d *SimDevice) RestoreCrtc(cfg *CrtcConfig, conn uint32) error {
	d.OpOrder = append(d.OpOrder, "restore")
	d.RestoredCrtcs = append(d.RestoredCrtcs, *cfg)
	return nil
}

func (d *SimDevice) AddFramebuffer(width, height, stride, handle uint32) (uint32, error) {
	if d.AddFBErr != nil {
		return 0, d.AddFBErr
	}
	d.nextFB++
	d.OpOrder = append(d.OpOrder, "addfb")
	d.AddedFBs = append(d.AddedFBs, d.nextFB)
	return d.nextFB, nil
}

func (d *SimDevice) RemoveFramebuffer(fb uint32) error {
	d.OpOrder = append(d.OpOrder, "rmfb")
	d.RemovedFBs = append(d.RemovedFBs, fb)
	return nil
}

func (d *SimDevice) PageFlip(crtc, fb uint32) (uint64, error) {
	if d.PageFlipErr != nil {
		return 0, d.PageFlipErr
	}
	d.nextToken++
	d.OpOrder = append(d.OpOrder, "flip")
	d.FlipsRequested = append(d.FlipsRequested, fb)
	return d.nextToken, nil
}

func (d *SimDevice) WaitFlip(token uint64) error {
	if d.WaitFlipErr != nil {
		return d.WaitFlipErr
	}
	d.FlipsWaited = append(d.FlipsWaited, token)
	return nil
}

func (d *SimDevice) Close() error {
	d.Closed = true
	return nil
}

// SimSwapChain implements SwapChain over a fixed pool of fake buffers,
// enforcing the same discipline as the real surface: a swap must precede
// each lock, and the pool exhausts if buffers are never released.
type SimSwapChain struct {
	SwapErr error
	LockErr error

	SwapCount    int
	ReleaseOrder []uint32 // buffer handles in release order
	Destroyed    bool

	pool    []*ScanoutBuffer
	locked  map[uint32]bool
	swapped bool
	next    int
}

func NewSimSwapChain(layout Layout) *SimSwapChain {
	s := &SimSwapChain{locked: make(map[uint32]bool)}
	for i := 0; i < 3; i++ {
		s.pool = append(s.pool, &ScanoutBuffer{
			Width:  layout.BufferWidth,
			Height: layout.BufferHeight,
			Stride: layout.BufferWidth * 4,
			Handle: uint32(1000 + i),
		})
	}
	return s
}

func (s *SimSwapChain) Swap() error {
	if s.SwapErr != nil {
		return s.SwapErr
	}
	s.SwapCount++
	s.swapped = true
	return nil
}

func (s *SimSwapChain) LockFront() (*ScanoutBuffer, error) {
	if s.LockErr != nil {
		return nil, s.LockErr
	}
	if !s.swapped {
		return nil, errors.New("no rendered frame to lock")
	}
	for range s.pool {
		bo := s.pool[s.next%len(s.pool)]
		s.next++
		if !s.locked[bo.Handle] {
			s.locked[bo.Handle] = true
			s.swapped = false
			return bo, nil
		}
	}
	return nil, errors.New("surface buffer pool exhausted")
}

func (s *SimSwapChain) Release(bo *ScanoutBuffer) {
	delete(s.locked, bo.Handle)
	s.ReleaseOrder = append(s.ReleaseOrder, bo.Handle)
}

func (s *SimSwapChain) Destroy() {
	s.Destroyed = true
}
