// display_mode.go - Hardware-advertised display timing description

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import "fmt"

// DisplayMode is one timing/format combination advertised by a connector.
// The fields mirror the kernel's modeinfo so a chosen mode can be handed
// back unchanged when the CRTC is programmed.
type DisplayMode struct {
	Clock uint32

	Hdisplay   uint16
	HsyncStart uint16
	HsyncEnd   uint16
	Htotal     uint16
	Hskew      uint16

	Vdisplay   uint16
	VsyncStart uint16
	VsyncEnd   uint16
	Vtotal     uint16
	Vscan      uint16

	Vrefresh uint32
	Flags    uint32
	Type     uint32
}

// Packing extracts the stereoscopic packing tag from the mode flags.
func (m DisplayMode) Packing() StereoPacking {
	return StereoPacking(m.Flags & PackingMask)
}

func (m DisplayMode) String() string {
	return fmt.Sprintf("%dx%d@%d (%s)",
		m.Hdisplay, m.Vdisplay, m.Vrefresh, m.Packing().LongName())
}
