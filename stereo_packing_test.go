package main

import "testing"

func TestStereoPacking_Rank_Order(t *testing.T) {
	order := []StereoPacking{
		PackingNone,
		PackingSideBySideHalf,
		PackingTopAndBottom,
		PackingSideBySideFull,
		PackingFramePacking,
	}
	last := -1
	for _, p := range order {
		rank := p.Rank()
		if rank <= last {
			t.Fatalf("expected %s to rank above %d, got %d", p.ShortName(), last, rank)
		}
		last = rank
	}
}

func TestStereoPacking_Rank_Unranked(t *testing.T) {
	for _, p := range []StereoPacking{
		PackingFieldAlternative,
		PackingLineAlternative,
		PackingLDepth,
		PackingLDepthGfxGfxDepth,
	} {
		if rank := p.Rank(); rank != -1 {
			t.Fatalf("expected %s to be unranked, got %d", p.ShortName(), rank)
		}
	}
}

func TestStereoPacking_ShortName(t *testing.T) {
	if got := PackingTopAndBottom.ShortName(); got != "tb" {
		t.Fatalf("expected tb, got %q", got)
	}
	if got := PackingSideBySideHalf.ShortName(); got != "sbsh" {
		t.Fatalf("expected sbsh, got %q", got)
	}
	if got := StereoPacking(9 << packingShift).ShortName(); got != "" {
		t.Fatalf("expected empty name for undefined tag, got %q", got)
	}
}

func TestStereoPacking_LongName(t *testing.T) {
	if got := PackingFramePacking.LongName(); got != "frame packing" {
		t.Fatalf("expected frame packing, got %q", got)
	}
	if got := StereoPacking(9 << packingShift).LongName(); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}

func TestDisplayMode_Packing_MasksFlags(t *testing.T) {
	m := DisplayMode{Flags: uint32(PackingTopAndBottom) | 0x5} // sync flags mixed in
	if got := m.Packing(); got != PackingTopAndBottom {
		t.Fatalf("expected top and bottom, got %#x", uint32(got))
	}
}
