package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/debug"
	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/pkg/math"
)

// markerSize is the length of each arm of the focus marker, in world units.
const markerSize = 0.5

// BoundsRenderer draws a wireframe box, used to show the field extent, and
// an optional cross marking the orbit focus.
type BoundsRenderer struct {
	program     uint32
	locViewProj int32
	locColor    int32

	vao         uint32
	vbo         uint32
	vertexCount int32

	lo, hi    [3]float32
	marker    [3]float32
	hasMarker bool

	Color [3]float32
}

// NewBoundsRenderer compiles the line program.
func NewBoundsRenderer() (*BoundsRenderer, error) {
	program, err := shader.CompileProgram(shaders.LinesVertexShader, shaders.LinesFragmentShader,
		shader.Attribute{Location: 0, Name: "position"})
	if err != nil {
		return nil, fmt.Errorf("lines shader: %w", err)
	}

	br := &BoundsRenderer{
		program: program,
		Color:   [3]float32{1, 0.85, 0.2},
	}
	br.locViewProj = shader.GetUniform(program, "uViewProj")
	br.locColor = shader.GetUniform(program, "uColor")

	gl.GenVertexArrays(1, &br.vao)
	gl.GenBuffers(1, &br.vbo)
	return br, nil
}

// SetBox replaces the box being drawn.
func (br *BoundsRenderer) SetBox(lo, hi [3]float32) {
	br.lo, br.hi = lo, hi
	br.upload()
}

// SetMarker places the focus cross at p.
func (br *BoundsRenderer) SetMarker(p [3]float32) {
	br.marker = p
	br.hasMarker = true
	br.upload()
}

func (br *BoundsRenderer) upload() {
	vertices := debug.BoxLineVertices(br.lo, br.hi)
	if br.hasMarker {
		vertices = append(vertices, debug.CrossLineVertices(br.marker, markerSize)...)
	}

	gl.BindVertexArray(br.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	br.vertexCount = int32(len(vertices) / 3)
}

// Render draws the box and marker.
func (br *BoundsRenderer) Render(viewProj math.Mat4) {
	if br.vertexCount == 0 {
		return
	}

	gl.UseProgram(br.program)
	gl.UniformMatrix4fv(br.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(br.locColor, br.Color[0], br.Color[1], br.Color[2])

	gl.BindVertexArray(br.vao)
	gl.DrawArrays(gl.LINES, 0, br.vertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (br *BoundsRenderer) Destroy() {
	if br.vbo != 0 {
		gl.DeleteBuffers(1, &br.vbo)
		br.vbo = 0
	}
	if br.vao != 0 {
		gl.DeleteVertexArrays(1, &br.vao)
		br.vao = 0
	}
	if br.program != 0 {
		gl.DeleteProgram(br.program)
		br.program = 0
	}
}
