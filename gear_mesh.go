// gear_mesh.go - Gear wheel geometry as triangle strips

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import "math"

// Each vertex carries position and normal, interleaved.
const gearVertexStride = 6

type GearVertex [gearVertexStride]float32

// VertexStrip addresses one triangle strip within a mesh's vertex array.
type VertexStrip struct {
	First int32
	Count int32
}

// GearMesh is a gear wheel's complete geometry, ready for upload to a
// vertex buffer.
type GearMesh struct {
	Vertices []GearVertex
	Strips   []VertexStrip
}

type point struct {
	x, y float32
}

// Every tooth produces the same sequence of strips over its seven profile
// points: the front face, the inner cylinder edge, the back face, then the
// four outward-facing tooth edges. Edge quads take their normal from the
// edge direction; faces use a fixed z normal.
type stripRule struct {
	face int    // +1 front face, -1 back face, 0 = edge quad
	edge [2]int // profile point pair for edge quads
}

var toothStrips = []stripRule{
	{face: +1},
	{edge: [2]int{4, 6}},
	{face: -1},
	{edge: [2]int{0, 2}},
	{edge: [2]int{1, 0}},
	{edge: [2]int{3, 1}},
	{edge: [2]int{5, 3}},
}

// stripBuilder accumulates vertices and records strip boundaries.
type stripBuilder struct {
	mesh       *GearMesh
	width      float32
	normal     [3]float32
	stripStart int
}

func (b *stripBuilder) begin() {
	b.stripStart = len(b.mesh.Vertices)
}

func (b *stripBuilder) end() {
	b.mesh.Strips = append(b.mesh.Strips, VertexStrip{
		First: int32(b.stripStart),
		Count: int32(len(b.mesh.Vertices) - b.stripStart),
	})
}

func (b *stripBuilder) setNormal(x, y, z float32) {
	b.normal = [3]float32{x, y, z}
}

// vert emits one vertex at a profile point, on the front (+1) or back (-1)
// of the gear.
func (b *stripBuilder) vert(p point, sign float32) {
	b.mesh.Vertices = append(b.mesh.Vertices, GearVertex{
		p.x, p.y, sign * b.width / 2,
		b.normal[0], b.normal[1], b.normal[2],
	})
}

// edgeQuad emits the two triangles joining the front and back outlines
// between two profile points.
func (b *stripBuilder) edgeQuad(p1, p2 point) {
	b.setNormal(p1.y-p2.y, -(p1.x - p2.x), 0)
	b.vert(p1, -1)
	b.vert(p1, +1)
	b.vert(p2, -1)
	b.vert(p2, +1)
}

// BuildGearMesh constructs a gear wheel.
//
// innerRadius is the hole at the center, outerRadius the radius at the
// center of the teeth, width the gear thickness, toothDepth the height of a
// tooth.
func BuildGearMesh(innerRadius, outerRadius, width float32, teeth int, toothDepth float32) *GearMesh {
	r0 := float64(innerRadius)
	r1 := float64(outerRadius - toothDepth/2)
	r2 := float64(outerRadius + toothDepth/2)

	da := 2 * math.Pi / float64(teeth) / 4

	mesh := &GearMesh{}
	b := &stripBuilder{mesh: mesh, width: width}

	for i := 0; i < teeth; i++ {
		var s, c [5]float64
		for k := 0; k < 5; k++ {
			a := float64(i)*2*math.Pi/float64(teeth) + float64(k)*da
			s[k], c[k] = math.Sincos(a)
		}

		at := func(r float64, k int) point {
			return point{float32(r * c[k]), float32(r * s[k])}
		}

		// the seven points outlining one tooth
		p := [7]point{
			at(r2, 1),
			at(r2, 2),
			at(r1, 0),
			at(r1, 3),
			at(r0, 0),
			at(r1, 4),
			at(r0, 4),
		}

		for _, rule := range toothStrips {
			b.begin()
			switch rule.face {
			case +1:
				b.setNormal(0, 0, 1)
				for j := 0; j < len(p); j++ {
					b.vert(p[j], +1)
				}
			case -1:
				b.setNormal(0, 0, -1)
				for j := len(p) - 1; j >= 0; j-- {
					b.vert(p[j], -1)
				}
			default:
				b.edgeQuad(p[rule.edge[0]], p[rule.edge[1]])
			}
			b.end()
		}
	}

	return mesh
}
