package main

import "testing"

func TestSelectMode_PrefersHigherRank(t *testing.T) {
	modes := []DisplayMode{
		SimMode(1920, 1080, PackingNone),
		SimMode(1920, 1080, PackingSideBySideHalf),
		SimMode(1920, 1080, PackingTopAndBottom),
	}
	m, ok := SelectMode(modes, "")
	if !ok {
		t.Fatal("expected a selection")
	}
	if m.Packing() != PackingTopAndBottom {
		t.Fatalf("expected top and bottom, got %s", m.Packing().LongName())
	}

	// order must not matter for the winner
	reversed := []DisplayMode{modes[2], modes[1], modes[0]}
	m, ok = SelectMode(reversed, "")
	if !ok || m.Packing() != PackingTopAndBottom {
		t.Fatalf("expected top and bottom regardless of order, got %s", m.Packing().LongName())
	}
}

func TestSelectMode_FirstWinsAmongEqualRank(t *testing.T) {
	modes := []DisplayMode{
		SimMode(1920, 1080, PackingTopAndBottom),
		SimMode(1280, 720, PackingTopAndBottom),
	}
	m, ok := SelectMode(modes, "")
	if !ok {
		t.Fatal("expected a selection")
	}
	if m.Hdisplay != 1920 {
		t.Fatalf("expected the first advertised mode to win the tie, got %dx%d", m.Hdisplay, m.Vdisplay)
	}
}

func TestSelectMode_RequestedLayoutFilters(t *testing.T) {
	modes := []DisplayMode{
		SimMode(1920, 1080, PackingFramePacking),
		SimMode(1920, 1080, PackingSideBySideHalf),
	}
	m, ok := SelectMode(modes, "sbsh")
	if !ok {
		t.Fatal("expected a selection")
	}
	if m.Packing() != PackingSideBySideHalf {
		t.Fatalf("expected the requested packing, got %s", m.Packing().LongName())
	}
}

func TestSelectMode_RequestedLayoutAbsent(t *testing.T) {
	modes := []DisplayMode{
		SimMode(1920, 1080, PackingFramePacking),
		SimMode(1920, 1080, PackingTopAndBottom),
	}
	if _, ok := SelectMode(modes, "sbsf"); ok {
		t.Fatal("expected no selection when the requested layout is not advertised")
	}
}

func TestSelectMode_NoneOnlyIsValid(t *testing.T) {
	modes := []DisplayMode{SimMode(1920, 1080, PackingNone)}
	m, ok := SelectMode(modes, "")
	if !ok {
		t.Fatal("expected the 2D mode to be selectable")
	}
	if m.Packing() != PackingNone {
		t.Fatalf("expected packing none, got %s", m.Packing().LongName())
	}
}

func TestSelectMode_OnlyUnrankedPackings(t *testing.T) {
	modes := []DisplayMode{
		SimMode(1920, 1080, PackingLineAlternative),
		SimMode(1920, 1080, PackingLDepth),
	}
	if _, ok := SelectMode(modes, ""); ok {
		t.Fatal("expected no selection from unranked packings")
	}
}

func TestSelectMode_Empty(t *testing.T) {
	if _, ok := SelectMode(nil, ""); ok {
		t.Fatal("expected no selection from an empty mode list")
	}
}
