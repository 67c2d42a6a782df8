package main

import (
	"math"
	"testing"
)

func TestBuildGearMesh_Counts(t *testing.T) {
	teeth := 20
	mesh := BuildGearMesh(1.0, 4.0, 1.0, teeth, 0.7)

	// per tooth: two 7-vertex faces and five 4-vertex edge quads
	if want := teeth * 34; len(mesh.Vertices) != want {
		t.Fatalf("expected %d vertices, got %d", want, len(mesh.Vertices))
	}
	if want := teeth * 7; len(mesh.Strips) != want {
		t.Fatalf("expected %d strips, got %d", want, len(mesh.Strips))
	}
}

func TestBuildGearMesh_StripsTileTheVertexArray(t *testing.T) {
	mesh := BuildGearMesh(0.5, 2.0, 2.0, 10, 0.7)

	next := int32(0)
	for i, s := range mesh.Strips {
		if s.First != next {
			t.Fatalf("strip %d starts at %d, expected %d", i, s.First, next)
		}
		if s.Count < 3 {
			t.Fatalf("strip %d has %d vertices, too few for a triangle", i, s.Count)
		}
		next = s.First + s.Count
	}
	if next != int32(len(mesh.Vertices)) {
		t.Fatalf("strips cover %d vertices of %d", next, len(mesh.Vertices))
	}
}

func TestBuildGearMesh_FaceNormalsAndDepth(t *testing.T) {
	width := float32(1.0)
	mesh := BuildGearMesh(1.0, 4.0, width, 20, 0.7)

	// first strip of each tooth is the front face
	front := mesh.Strips[0]
	for i := front.First; i < front.First+front.Count; i++ {
		v := mesh.Vertices[i]
		if v[2] != width/2 {
			t.Fatalf("front vertex %d at z=%v, expected %v", i, v[2], width/2)
		}
		if v[3] != 0 || v[4] != 0 || v[5] != 1 {
			t.Fatalf("front vertex %d normal (%v,%v,%v), expected +z", i, v[3], v[4], v[5])
		}
	}

	// third strip is the back face
	back := mesh.Strips[2]
	for i := back.First; i < back.First+back.Count; i++ {
		v := mesh.Vertices[i]
		if v[2] != -width/2 {
			t.Fatalf("back vertex %d at z=%v, expected %v", i, v[2], -width/2)
		}
		if v[5] != -1 {
			t.Fatalf("back vertex %d normal z=%v, expected -1", i, v[5])
		}
	}
}

func TestBuildGearMesh_RadialBounds(t *testing.T) {
	inner, outer, depth := float32(1.3), float32(2.0), float32(0.5)
	mesh := BuildGearMesh(inner, outer, 0.5, 10, depth)

	min := float64(inner) - 1e-5
	max := float64(outer+depth/2) + 1e-5
	for i, v := range mesh.Vertices {
		r := math.Hypot(float64(v[0]), float64(v[1]))
		if r < min || r > max {
			t.Fatalf("vertex %d at radius %v, outside [%v, %v]", i, r, inner, outer+depth/2)
		}
	}
}

func TestBuildGearMesh_EdgeNormalsPlanar(t *testing.T) {
	mesh := BuildGearMesh(1.0, 4.0, 1.0, 20, 0.7)

	// strips 3..6 of the first tooth are the outward tooth edges
	for s := 3; s < 7; s++ {
		strip := mesh.Strips[s]
		for i := strip.First; i < strip.First+strip.Count; i++ {
			v := mesh.Vertices[i]
			if v[5] != 0 {
				t.Fatalf("edge vertex %d has z normal %v, expected 0", i, v[5])
			}
			if v[3] == 0 && v[4] == 0 {
				t.Fatalf("edge vertex %d has a zero normal", i)
			}
		}
	}
}
