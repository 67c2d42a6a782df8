// display_backend_drm.go - Kernel modesetting backend over the DRI device node

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"github.com/NeowayLabs/drm/mode"
	"golang.org/x/sys/unix"
)

// ioctl request codes and flags the mode binding does not cover.
const (
	drmIoctlSetClientCap = 0x4010640d // DRM_IOCTL_SET_CLIENT_CAP
	drmIoctlModePageFlip = 0xc01864b0 // DRM_IOCTL_MODE_PAGE_FLIP

	drmClientCapStereo3D = 1

	drmModePageFlipEvent = 0x01
	drmEventFlipComplete = 0x02
)

type drmSetClientCap struct {
	capability uint64
	value      uint64
}

type drmModeCrtcPageFlip struct {
	crtcID   uint32
	fbID     uint32
	flags    uint32
	reserved uint32
	userData uint64
}

// Compile-time struct size assertions against the kernel ABI.
var (
	_ [0]struct{} = [unsafe.Sizeof(drmSetClientCap{}) - 16]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(drmModeCrtcPageFlip{}) - 24]struct{}{}
)

// Wire layout of the kernel's event records: an 8-byte header (type, length)
// followed by a type-specific payload. Flip completions carry the vblank
// payload.
const (
	drmEventHeaderSize = 8
	drmEventVblankSize = 32
)

// drmDevice talks to real display hardware through the kernel modesetting
// interface.
type drmDevice struct {
	file *os.File

	// monotonically increasing flip tokens; completions that arrive while
	// waiting for a different token are parked here
	nextToken uint64
	completed map[uint64]bool
}

func newDRMDevice(path string) (*drmDevice, error) {
	file, err := os.OpenFile(path, os.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &DisplayError{Op: "device open", Details: path, Err: err}
	}

	d := &drmDevice{file: file, completed: make(map[uint64]bool)}

	// Without the stereo client cap the kernel hides 3D modes entirely.
	clientCap := drmSetClientCap{capability: drmClientCapStereo3D, value: 1}
	if err := d.ioctl(drmIoctlSetClientCap, unsafe.Pointer(&clientCap)); err != nil {
		file.Close()
		return nil, &DisplayError{Op: "stereo capability", Details: path, Err: err}
	}

	return d, nil
}

func (d *drmDevice) ioctl(req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.file.Fd(), req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR, unix.EAGAIN:
			continue
		default:
			return errno
		}
	}
}

func (d *drmDevice) Resources() (*DeviceResources, error) {
	res, err := mode.GetResources(d.file)
	if err != nil {
		return nil, err
	}
	return &DeviceResources{Connectors: res.Connectors, Crtcs: res.Crtcs}, nil
}

func (d *drmDevice) Connector(id uint32) (*ConnectorInfo, error) {
	conn, err := mode.GetConnector(d.file, id)
	if err != nil {
		return nil, err
	}
	modes := make([]DisplayMode, len(conn.Modes))
	for i, m := range conn.Modes {
		modes[i] = toDisplayMode(m)
	}
	return &ConnectorInfo{
		ID:        conn.ID,
		EncoderID: conn.EncoderID,
		Connected: conn.Connection == mode.Connected,
		Modes:     modes,
		Encoders:  conn.Encoders,
	}, nil
}

func (d *drmDevice) Encoder(id uint32) (*EncoderInfo, error) {
	enc, err := mode.GetEncoder(d.file, id)
	if err != nil {
		return nil, err
	}
	return &EncoderInfo{ID: enc.ID, CrtcID: enc.CrtcID, PossibleCrtcs: enc.PossibleCrtcs}, nil
}

func (d *drmDevice) CrtcConfig(id uint32) (*CrtcConfig, error) {
	crtc, err := mode.GetCrtc(d.file, id)
	if err != nil {
		return nil, err
	}
	return &CrtcConfig{
		ID:            crtc.ID,
		FramebufferID: crtc.BufferID,
		X:             crtc.X,
		Y:             crtc.Y,
		Mode:          toDisplayMode(crtc.Mode),
	}, nil
}

func (d *drmDevice) SetCrtc(crtc, fb, conn uint32, m *DisplayMode) error {
	info := toModeInfo(*m)
	return mode.SetCrtc(d.file, crtc, fb, 0, 0, &conn, 1, &info)
}

func (d *drmDevice) RestoreCrtc(cfg *CrtcConfig, conn uint32) error {
	info := toModeInfo(cfg.Mode)
	return mode.SetCrtc(d.file, cfg.ID, cfg.FramebufferID, cfg.X, cfg.Y, &conn, 1, &info)
}

func (d *drmDevice) AddFramebuffer(width, height, stride, handle uint32) (uint32, error) {
	return mode.AddFB(d.file, uint16(width), uint16(height),
		scanoutDepth, scanoutBPP, stride, handle)
}

func (d *drmDevice) RemoveFramebuffer(fb uint32) error {
	return mode.RmFB(d.file, fb)
}

func (d *drmDevice) PageFlip(crtc, fb uint32) (uint64, error) {
	d.nextToken++
	token := d.nextToken

	flip := drmModeCrtcPageFlip{
		crtcID:   crtc,
		fbID:     fb,
		flags:    drmModePageFlipEvent,
		userData: token,
	}
	if err := d.ioctl(drmIoctlModePageFlip, unsafe.Pointer(&flip)); err != nil {
		return 0, err
	}
	return token, nil
}

// WaitFlip blocks reading the device's event stream until the completion
// tagged with token is observed. There is no timeout; a wedged device stalls
// here, which is the accepted failure mode of a single-output pipeline.
func (d *drmDevice) WaitFlip(token uint64) error {
	if d.completed[token] {
		delete(d.completed, token)
		return nil
	}

	buf := make([]byte, 1024)
	for {
		n, err := d.file.Read(buf)
		if err != nil {
			return fmt.Errorf("reading device events: %w", err)
		}

		found := false
		for off := 0; off+drmEventHeaderSize <= n; {
			typ := binary.NativeEndian.Uint32(buf[off:])
			length := int(binary.NativeEndian.Uint32(buf[off+4:]))
			if length < drmEventHeaderSize || off+length > n {
				break
			}
			if typ == drmEventFlipComplete && length >= drmEventVblankSize {
				got := binary.NativeEndian.Uint64(buf[off+drmEventHeaderSize:])
				if got == token {
					found = true
				} else {
					d.completed[got] = true
				}
			}
			off += length
		}
		if found {
			return nil
		}
	}
}

func (d *drmDevice) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

func toDisplayMode(m mode.Info) DisplayMode {
	return DisplayMode{
		Clock:      m.Clock,
		Hdisplay:   m.Hdisplay,
		HsyncStart: m.HsyncStart,
		HsyncEnd:   m.HsyncEnd,
		Htotal:     m.Htotal,
		Hskew:      m.Hskew,
		Vdisplay:   m.Vdisplay,
		VsyncStart: m.VsyncStart,
		VsyncEnd:   m.VsyncEnd,
		Vtotal:     m.Vtotal,
		Vscan:      m.Vscan,
		Vrefresh:   m.Vrefresh,
		Flags:      m.Flags,
		Type:       m.Type,
	}
}

func toModeInfo(m DisplayMode) mode.Info {
	return mode.Info{
		Clock:      m.Clock,
		Hdisplay:   m.Hdisplay,
		HsyncStart: m.HsyncStart,
		HsyncEnd:   m.HsyncEnd,
		Htotal:     m.Htotal,
		Hskew:      m.Hskew,
		Vdisplay:   m.Vdisplay,
		VsyncStart: m.VsyncStart,
		VsyncEnd:   m.VsyncEnd,
		Vtotal:     m.Vtotal,
		Vscan:      m.Vscan,
		Vrefresh:   m.Vrefresh,
		Flags:      m.Flags,
		Type:       m.Type,
	}
}
