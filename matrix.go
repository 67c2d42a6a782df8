// matrix.go - Column-major 4x4 matrix helpers for the renderer

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import "math"

// Mat4 is a 4x4 matrix in OpenGL column-major order.
type Mat4 [16]float32

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul sets m = m * n, the accumulate-transform convention the renderer
// uses: each call applies a further transform in local coordinates.
func (m *Mat4) Mul(n *Mat4) {
	var tmp Mat4
	for i := 0; i < 16; i++ {
		row := i / 4
		col := i % 4
		var sum float32
		for j := 0; j < 4; j++ {
			sum += n[row*4+j] * m[j*4+col]
		}
		tmp[i] = sum
	}
	*m = tmp
}

func (m *Mat4) Rotate(angle, x, y, z float32) {
	s := float32(math.Sin(float64(angle)))
	c := float32(math.Cos(float64(angle)))
	r := Mat4{
		x*x*(1-c) + c, y*x*(1-c) + z*s, x*z*(1-c) - y*s, 0,
		x*y*(1-c) - z*s, y*y*(1-c) + c, y*z*(1-c) + x*s, 0,
		x*z*(1-c) + y*s, y*z*(1-c) - x*s, z*z*(1-c) + c, 0,
		0, 0, 0, 1,
	}
	m.Mul(&r)
}

func (m *Mat4) Translate(x, y, z float32) {
	t := Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
	m.Mul(&t)
}

func (m *Mat4) Transpose() {
	t := Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
	*m = t
}

// Invert handles pure translation-rotation matrices only: the rotation part
// inverts by transposition, the translation part by negation.
func (m *Mat4) Invert() {
	t := Identity()
	t[12] = -m[12]
	t[13] = -m[13]
	t[14] = -m[14]

	m[12], m[13], m[14] = 0, 0, 0
	m.Transpose()

	m.Mul(&t)
}

// Frustum loads an off-axis perspective projection. Asymmetric left/right
// planes give each eye its converging stereo frustum.
func Frustum(left, right, bottom, top, nearval, farval float32) Mat4 {
	x := (2 * nearval) / (right - left)
	y := (2 * nearval) / (top - bottom)
	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)
	c := -(farval + nearval) / (farval - nearval)
	d := -(2 * farval * nearval) / (farval - nearval)

	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		a, b, c, -1,
		0, 0, d, 0,
	}
}
