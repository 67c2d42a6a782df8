// stereo_packing.go - Stereoscopic packing tags and selection ranking

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

// StereoPacking identifies how the left/right-eye images are arranged within
// one transmitted frame. The values are the kernel's 3D mode flags so that a
// mode's packing can be masked straight out of its flag word.
type StereoPacking uint32

const packingShift = 14

// PackingMask extracts the packing tag from a mode's flag word.
const PackingMask = 0x1f << packingShift

const (
	PackingNone              StereoPacking = 0 << packingShift
	PackingFramePacking      StereoPacking = 1 << packingShift
	PackingFieldAlternative  StereoPacking = 2 << packingShift
	PackingLineAlternative   StereoPacking = 3 << packingShift
	PackingSideBySideFull    StereoPacking = 4 << packingShift
	PackingLDepth            StereoPacking = 5 << packingShift
	PackingLDepthGfxGfxDepth StereoPacking = 6 << packingShift
	PackingTopAndBottom      StereoPacking = 7 << packingShift
	PackingSideBySideHalf    StereoPacking = 8 << packingShift
)

type packingName struct {
	packing   StereoPacking
	shortName string
	longName  string
}

var packingNames = []packingName{
	{PackingNone, "none", "none"},
	{PackingFramePacking, "fp", "frame packing"},
	{PackingFieldAlternative, "fa", "field alternative"},
	{PackingLineAlternative, "la", "line alternative"},
	{PackingSideBySideFull, "sbsf", "side by side full"},
	{PackingLDepth, "ld", "l depth"},
	{PackingLDepthGfxGfxDepth, "ldggd", "l depth gfx gfx depth"},
	{PackingTopAndBottom, "tb", "top and bottom"},
	{PackingSideBySideHalf, "sbsh", "side by side half"},
}

// packingRanks is the selection preference order, worst to best. Packings
// absent from this table are never selected automatically. The first two
// ranked stereo packings squeeze both eyes into one frame and end up with
// non-square pixels; the last two carry a complete frame per eye.
var packingRanks = []StereoPacking{
	PackingNone,
	PackingSideBySideHalf,
	PackingTopAndBottom,
	PackingSideBySideFull,
	PackingFramePacking,
}

// ShortName returns the CLI name for the packing ("sbsh", "tb", ...), or ""
// if the tag is not one the kernel defines.
func (p StereoPacking) ShortName() string {
	for _, n := range packingNames {
		if n.packing == p {
			return n.shortName
		}
	}
	return ""
}

// LongName returns the human-readable name for log output.
func (p StereoPacking) LongName() string {
	for _, n := range packingNames {
		if n.packing == p {
			return n.longName
		}
	}
	return "unknown"
}

// Rank returns the packing's position in the preference order, or -1 for
// packings that must never be selected automatically.
func (p StereoPacking) Rank() int {
	for i, r := range packingRanks {
		if r == p {
			return i
		}
	}
	return -1
}
