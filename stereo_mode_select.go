// stereo_mode_select.go - Picking the best stereoscopic mode a connector offers

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

// SelectMode scans the modes a connector advertises, in advertised order, and
// returns the one whose packing ranks highest. A candidate replaces the
// running best only on a strictly higher rank, so the first mode wins among
// equals. If requestedLayout is non-empty, only modes whose packing short
// name matches it are considered.
//
// Returns false when nothing selectable was found: no modes, no mode with a
// ranked packing, or a requested layout no mode advertises. A selection with
// PackingNone is valid; the caller decides how to surface the 2D fallback.
func SelectMode(modes []DisplayMode, requestedLayout string) (DisplayMode, bool) {
	var best DisplayMode
	bestRank := -1

	for _, m := range modes {
		if requestedLayout != "" && m.Packing().ShortName() != requestedLayout {
			continue
		}
		if rank := m.Packing().Rank(); rank > bestRank {
			best = m
			bestRank = rank
		}
	}

	return best, bestRank >= 0
}
