//go:build !headless

// renderer_gears.go - OpenGL ES 2.0 gears renderer

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

/*
#cgo LDFLAGS: -lGLESv2
#include <stdlib.h>
#include <GLES2/gl2.h>

static void gears_shader_source(GLuint shader, const char *src) {
	glShaderSource(shader, 1, &src, NULL);
}
*/
import "C"

import (
	"fmt"
	"math"
	"time"
	"unsafe"
)

const gearsVertexShader = `
attribute vec3 position;
attribute vec3 normal;

uniform mat4 ModelViewProjectionMatrix;
uniform mat4 NormalMatrix;
uniform vec4 LightSourcePosition;
uniform vec4 MaterialColor;

varying vec4 Color;

void main(void)
{
    vec3 N = normalize(vec3(NormalMatrix * vec4(normal, 1.0)));

    // LightSourcePosition is actually a direction for directional light
    vec3 L = normalize(LightSourcePosition.xyz);

    float diffuse = max(dot(N, L), 0.0);
    Color = vec4(diffuse * MaterialColor.rgb, 1.0);

    gl_Position = ModelViewProjectionMatrix * vec4(position, 1.0);
}`

const gearsFragmentShader = `
precision mediump float;
varying vec4 Color;

void main(void)
{
    gl_FragColor = Color;
}`

// gearGL is a gear mesh uploaded to a vertex buffer object.
type gearGL struct {
	vbo    C.GLuint
	strips []VertexStrip
}

// GearsRenderer draws three interlocking gears twice per frame, once for
// each eye. All animation and GL state lives on the renderer.
type GearsRenderer struct {
	program C.GLuint

	mvpLocation    C.GLint
	normalLocation C.GLint
	lightLocation  C.GLint
	colorLocation  C.GLint

	gears [3]gearGL

	projection Mat4
	viewRot    [3]float32
	angle      float32

	eyeSep   float32
	fixPoint float32

	// per-eye frustum bounds, derived from the virtual eye size
	left, right, asp float32

	lastFrame time.Time
}

// NewGearsRenderer creates the renderer. Setup must run with the GL
// context current before the first DrawFrame.
func NewGearsRenderer() *GearsRenderer {
	return &GearsRenderer{
		viewRot:  [3]float32{50, 30, 0},
		eyeSep:   0.5,
		fixPoint: 40,
	}
}

func compileShader(kind C.GLenum, source string) (C.GLuint, error) {
	shader := C.glCreateShader(kind)

	src := C.CString(source)
	C.gears_shader_source(shader, src)
	C.free(unsafe.Pointer(src))

	C.glCompileShader(shader)

	var status C.GLint
	C.glGetShaderiv(shader, C.GL_COMPILE_STATUS, &status)
	if status == C.GL_FALSE {
		msg := make([]C.char, 512)
		C.glGetShaderInfoLog(shader, 512, nil, &msg[0])
		C.glDeleteShader(shader)
		return 0, fmt.Errorf("shader compile failed: %s", C.GoString(&msg[0]))
	}

	return shader, nil
}

func (r *GearsRenderer) buildProgram() error {
	vert, err := compileShader(C.GL_VERTEX_SHADER, gearsVertexShader)
	if err != nil {
		return err
	}
	frag, err := compileShader(C.GL_FRAGMENT_SHADER, gearsFragmentShader)
	if err != nil {
		C.glDeleteShader(vert)
		return err
	}

	program := C.glCreateProgram()
	C.glAttachShader(program, vert)
	C.glAttachShader(program, frag)

	position := C.CString("position")
	normal := C.CString("normal")
	C.glBindAttribLocation(program, 0, position)
	C.glBindAttribLocation(program, 1, normal)
	C.free(unsafe.Pointer(position))
	C.free(unsafe.Pointer(normal))

	C.glLinkProgram(program)

	C.glDeleteShader(vert)
	C.glDeleteShader(frag)

	var status C.GLint
	C.glGetProgramiv(program, C.GL_LINK_STATUS, &status)
	if status == C.GL_FALSE {
		msg := make([]C.char, 512)
		C.glGetProgramInfoLog(program, 512, nil, &msg[0])
		C.glDeleteProgram(program)
		return fmt.Errorf("program link failed: %s", C.GoString(&msg[0]))
	}

	C.glUseProgram(program)
	r.program = program

	uniform := func(name string) C.GLint {
		cname := C.CString(name)
		defer C.free(unsafe.Pointer(cname))
		return C.glGetUniformLocation(program, cname)
	}
	r.mvpLocation = uniform("ModelViewProjectionMatrix")
	r.normalLocation = uniform("NormalMatrix")
	r.lightLocation = uniform("LightSourcePosition")
	r.colorLocation = uniform("MaterialColor")

	light := [4]C.GLfloat{5, 5, 10, 1}
	C.glUniform4fv(r.lightLocation, 1, &light[0])

	return nil
}

func uploadGear(mesh *GearMesh) gearGL {
	var vbo C.GLuint
	C.glGenBuffers(1, &vbo)
	C.glBindBuffer(C.GL_ARRAY_BUFFER, vbo)
	C.glBufferData(C.GL_ARRAY_BUFFER,
		C.GLsizeiptr(len(mesh.Vertices)*gearVertexStride*4),
		unsafe.Pointer(&mesh.Vertices[0]), C.GL_STATIC_DRAW)

	return gearGL{vbo: vbo, strips: mesh.Strips}
}

// reshape derives the per-eye frustum bounds. The asymmetric left/right
// bounds converge the two eye frustums at the fixation point.
func (r *GearsRenderer) reshape(width, height uint32) {
	r.asp = float32(height) / float32(width)
	w := r.fixPoint * (1.0 / 5.0)

	r.left = -5.0 * ((w - 0.5*r.eyeSep) / r.fixPoint)
	r.right = 5.0 * ((w + 0.5*r.eyeSep) / r.fixPoint)
}

// Setup compiles the shaders and uploads the gear meshes. The EGL context
// must be current on the calling goroutine.
func (r *GearsRenderer) Setup(layout Layout) error {
	C.glEnable(C.GL_CULL_FACE)
	C.glEnable(C.GL_DEPTH_TEST)

	if err := r.buildProgram(); err != nil {
		return &DisplayError{Op: "renderer setup", Err: err}
	}

	r.gears[0] = uploadGear(BuildGearMesh(1.0, 4.0, 1.0, 20, 0.7))
	r.gears[1] = uploadGear(BuildGearMesh(0.5, 2.0, 2.0, 10, 0.7))
	r.gears[2] = uploadGear(BuildGearMesh(1.3, 2.0, 0.5, 10, 0.7))

	r.reshape(layout.VirtualEyeWidth, layout.VirtualEyeHeight)

	return nil
}

func uniformMatrix(location C.GLint, m *Mat4) {
	C.glUniformMatrix4fv(location, 1, C.GL_FALSE, (*C.GLfloat)(unsafe.Pointer(&m[0])))
}

func (r *GearsRenderer) drawGear(gear *gearGL, transform Mat4,
	x, y, angle float32, color [4]float32) {

	modelView := transform
	modelView.Translate(x, y, 0)
	modelView.Rotate(2*math.Pi*angle/360, 0, 0, 1)

	mvp := r.projection
	mvp.Mul(&modelView)
	uniformMatrix(r.mvpLocation, &mvp)

	// normal matrix is the inverse transpose of the model-view matrix
	normalMatrix := modelView
	normalMatrix.Invert()
	normalMatrix.Transpose()
	uniformMatrix(r.normalLocation, &normalMatrix)

	C.glUniform4fv(r.colorLocation, 1, (*C.GLfloat)(unsafe.Pointer(&color[0])))

	C.glBindBuffer(C.GL_ARRAY_BUFFER, gear.vbo)
	C.glVertexAttribPointer(0, 3, C.GL_FLOAT, C.GL_FALSE, gearVertexStride*4, nil)
	C.glVertexAttribPointer(1, 3, C.GL_FLOAT, C.GL_FALSE, gearVertexStride*4,
		unsafe.Pointer(uintptr(3*4)))
	C.glEnableVertexAttribArray(0)
	C.glEnableVertexAttribArray(1)

	for _, strip := range gear.strips {
		C.glDrawArrays(C.GL_TRIANGLE_STRIP, C.GLint(strip.First), C.GLsizei(strip.Count))
	}

	C.glDisableVertexAttribArray(1)
	C.glDisableVertexAttribArray(0)
}

func (r *GearsRenderer) drawScene(view Mat4) {
	red := [4]float32{0.8, 0.1, 0.0, 1.0}
	green := [4]float32{0.0, 0.8, 0.2, 1.0}
	blue := [4]float32{0.2, 0.2, 1.0, 1.0}

	transform := view
	transform.Translate(0, 0, -20)
	transform.Rotate(2*math.Pi*r.viewRot[0]/360, 1, 0, 0)
	transform.Rotate(2*math.Pi*r.viewRot[1]/360, 0, 1, 0)
	transform.Rotate(2*math.Pi*r.viewRot[2]/360, 0, 0, 1)

	r.drawGear(&r.gears[0], transform, -3.0, -2.0, r.angle, red)
	r.drawGear(&r.gears[1], transform, 3.1, -2.0, -2*r.angle-9.0, green)
	r.drawGear(&r.gears[2], transform, -3.1, 4.2, -2*r.angle-25.0, blue)
}

func (r *GearsRenderer) drawEye(vp Viewport, flip bool) {
	C.glViewport(C.GLint(vp.X), C.GLint(vp.Y), C.GLsizei(vp.Width), C.GLsizei(vp.Height))

	shift := 0.5 * r.eyeSep
	if flip {
		r.projection = Frustum(-r.right, -r.left, -r.asp, r.asp, 1.0, 1024.0)
		shift = -shift
	} else {
		r.projection = Frustum(r.left, r.right, -r.asp, r.asp, 1.0, 1024.0)
	}

	view := Identity()
	view.Translate(shift, 0, 0)
	r.drawScene(view)
}

// advance rotates the gears by elapsed wall time, 70 degrees per second.
func (r *GearsRenderer) advance(now time.Time) {
	if !r.lastFrame.IsZero() {
		dt := float32(now.Sub(r.lastFrame).Seconds())
		r.angle += 70.0 * dt
		if r.angle > 3600.0 {
			r.angle -= 3600.0
		}
	}
	r.lastFrame = now

	r.viewRot[1] = r.angle / 2
}

// DrawFrame renders both eyes into the current surface.
func (r *GearsRenderer) DrawFrame(left, right Viewport) {
	r.advance(time.Now())

	C.glClearColor(0, 0, 0, 1)
	C.glClear(C.GL_COLOR_BUFFER_BIT | C.GL_DEPTH_BUFFER_BIT)

	r.drawEye(left, false)
	r.drawEye(right, true)
}

// Close releases the GL objects. The context must still be current.
func (r *GearsRenderer) Close() {
	for i := range r.gears {
		if r.gears[i].vbo != 0 {
			C.glDeleteBuffers(1, &r.gears[i].vbo)
			r.gears[i].vbo = 0
		}
	}
	if r.program != 0 {
		C.glDeleteProgram(r.program)
		r.program = 0
	}
}
