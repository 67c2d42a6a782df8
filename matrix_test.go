package main

import (
	"math"
	"testing"
)

func matNear(t *testing.T, got, want Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Fatalf("matrix mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestMat4_Mul_Identity(t *testing.T) {
	m := Identity()
	n := Identity()
	n.Translate(1, 2, 3)
	m.Mul(&n)
	matNear(t, m, n)
}

func TestMat4_Translate_Composes(t *testing.T) {
	m := Identity()
	m.Translate(1, 2, 3)
	m.Translate(4, 5, 6)
	if m[12] != 5 || m[13] != 7 || m[14] != 9 {
		t.Fatalf("expected combined translation (5,7,9), got (%v,%v,%v)", m[12], m[13], m[14])
	}
}

func TestMat4_Rotate_QuarterTurnZ(t *testing.T) {
	m := Identity()
	m.Rotate(math.Pi/2, 0, 0, 1)
	want := Mat4{
		0, 1, 0, 0,
		-1, 0, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	matNear(t, m, want)
}

func TestMat4_Invert_Translation(t *testing.T) {
	m := Identity()
	m.Translate(1, 2, 3)
	m.Invert()
	if m[12] != -1 || m[13] != -2 || m[14] != -3 {
		t.Fatalf("expected negated translation, got (%v,%v,%v)", m[12], m[13], m[14])
	}
}

func TestMat4_Invert_RoundTrip(t *testing.T) {
	m := Identity()
	m.Translate(1, 2, 3)
	m.Rotate(0.7, 0, 0, 1)

	inv := m
	inv.Invert()

	prod := m
	prod.Mul(&inv)
	matNear(t, prod, Identity())
}

func TestMat4_Transpose(t *testing.T) {
	m := Identity()
	m.Translate(1, 2, 3)
	m.Transpose()
	if m[3] != 1 || m[7] != 2 || m[11] != 3 {
		t.Fatalf("expected translation moved to the last row, got %v", m)
	}
}

func TestFrustum_Symmetric(t *testing.T) {
	m := Frustum(-1, 1, -1, 1, 1, 10)
	if m[0] != 1 || m[5] != 1 {
		t.Fatalf("expected unit focal terms, got %v %v", m[0], m[5])
	}
	if m[8] != 0 || m[9] != 0 {
		t.Fatalf("expected no skew for a symmetric frustum, got %v %v", m[8], m[9])
	}
	if m[11] != -1 || m[15] != 0 {
		t.Fatalf("expected perspective terms, got %v %v", m[11], m[15])
	}
	if math.Abs(float64(m[10]+11.0/9.0)) > 1e-6 || math.Abs(float64(m[14]+20.0/9.0)) > 1e-6 {
		t.Fatalf("unexpected depth terms %v %v", m[10], m[14])
	}
}

func TestFrustum_Asymmetric(t *testing.T) {
	// the two stereo eye frustums must skew in opposite directions
	left := Frustum(-0.9, 1.1, -1, 1, 1, 1024)
	right := Frustum(-1.1, 0.9, -1, 1, 1, 1024)
	if left[8] <= 0 {
		t.Fatalf("expected positive skew for the left eye, got %v", left[8])
	}
	if math.Abs(float64(left[8]+right[8])) > 1e-6 {
		t.Fatalf("expected mirrored skews, got %v and %v", left[8], right[8])
	}
}
