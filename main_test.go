package main

import "testing"

func TestRun_HelpExitsClean(t *testing.T) {
	if code := run([]string{"-h"}); code != 0 {
		t.Fatalf("expected exit 0 for -h, got %d", code)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	if code := run([]string{"-x"}); code != 1 {
		t.Fatalf("expected exit 1 for an unknown flag, got %d", code)
	}
}

func TestRun_MissingDevice(t *testing.T) {
	if code := run([]string{"-d", "/nonexistent/card0"}); code != 1 {
		t.Fatalf("expected exit 1 for a missing device, got %d", code)
	}
}
