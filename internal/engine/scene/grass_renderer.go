package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// GrassRenderer draws a grass field with the wind material.
type GrassRenderer struct {
	program uint32

	// Uniform locations
	locViewProj     int32
	locGrassTexture int32
	locCloudTexture int32
	locTime         int32

	// Field mesh, one buffer per attribute
	vao        uint32
	vbos       [4]uint32
	ebo        uint32
	indexCount int32
	field      *grass.Field

	// Textures owned by the renderer
	grassTex uint32
	cloudTex uint32

	material grass.Material
	log      *zap.Logger
}

// NewGrassRenderer compiles the grass program.
func NewGrassRenderer() (*GrassRenderer, error) {
	gr := &GrassRenderer{log: logger.Named("scene")}

	program, err := shader.CompileProgram(shaders.GrassVertexShader, shaders.GrassFragmentShader,
		shader.Attribute{Location: grass.LocPosition, Name: grass.AttribPosition},
		shader.Attribute{Location: grass.LocUV, Name: grass.AttribUV},
		shader.Attribute{Location: grass.LocColor, Name: grass.AttribColor},
		shader.Attribute{Location: grass.LocNormal, Name: grass.AttribNormal},
	)
	if err != nil {
		return nil, fmt.Errorf("grass shader: %w", err)
	}
	gr.program = program

	gr.locViewProj = shader.MustGetUniform(program, "uViewProj")
	gr.locGrassTexture = shader.GetUniform(program, grass.UniformGrassTexture)
	gr.locCloudTexture = shader.GetUniform(program, grass.UniformCloudTexture)
	gr.locTime = shader.GetUniform(program, grass.UniformTime)

	return gr, nil
}

// LoadField uploads f, replacing any previous field. Passing the field that
// is already uploaded is a no-op, so callers may feed it a FieldCache result
// every frame.
func (gr *GrassRenderer) LoadField(f *grass.Field) error {
	if f == gr.field {
		return nil
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("grass field: %w", err)
	}

	gr.clearMesh()

	gl.GenVertexArrays(1, &gr.vao)
	gl.BindVertexArray(gr.vao)
	gl.GenBuffers(int32(len(gr.vbos)), &gr.vbos[0])

	uploadAttribute(gr.vbos[0], grass.LocPosition, 3, f.Positions)
	uploadAttribute(gr.vbos[1], grass.LocUV, 2, f.UVs)
	uploadAttribute(gr.vbos[2], grass.LocColor, 3, f.Colors)
	uploadAttribute(gr.vbos[3], grass.LocNormal, 3, f.Normals)

	gl.GenBuffers(1, &gr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(f.Indices)*4, unsafe.Pointer(&f.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	gr.field = f
	gr.indexCount = int32(len(f.Indices))

	gr.log.Info("grass field uploaded",
		zap.Int("blades", f.BladeCount),
		zap.Int("vertices", f.VertexCount()),
		zap.Int("triangles", f.TriangleCount()),
		zap.Int("bytes", f.ByteSize()),
	)
	return nil
}

func uploadAttribute(vbo, loc uint32, size int32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, size*4, 0)
	gl.EnableVertexAttribArray(loc)
}

// SetTextures uploads the ground and cloud images and binds them to the
// material. The cloud texture repeats on both axes because the wind
// scrolls it indefinitely.
func (gr *GrassRenderer) SetTextures(ground, clouds *image.RGBA) {
	deleteTexture(gr.grassTex)
	deleteTexture(gr.cloudTex)

	gr.grassTex = uploadTexture(ground, WrapClamp)
	gr.cloudTex = uploadTexture(clouds, WrapRepeat)
	gr.material.Bind(gr.grassTex, gr.cloudTex)
}

// Update advances the material clock to elapsed seconds since start.
func (gr *GrassRenderer) Update(elapsed float64) {
	gr.material.Update(elapsed)
}

// Material returns the renderer's material.
func (gr *GrassRenderer) Material() *grass.Material {
	return &gr.material
}

// Field returns the uploaded field, or nil.
func (gr *GrassRenderer) Field() *grass.Field {
	return gr.field
}

// Render draws the field. Nothing is drawn until both a field and the
// textures are present.
func (gr *GrassRenderer) Render(viewProj math.Mat4) {
	if gr.vao == 0 || !gr.material.Bound() {
		return
	}

	u := gr.material.Uniforms()

	gl.UseProgram(gr.program)
	gl.UniformMatrix4fv(gr.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform1f(gr.locTime, u.Time)

	gl.ActiveTexture(gl.TEXTURE0 + uint32(grass.GrassTextureUnit))
	gl.BindTexture(gl.TEXTURE_2D, u.GrassTexture)
	gl.Uniform1i(gr.locGrassTexture, grass.GrassTextureUnit)

	gl.ActiveTexture(gl.TEXTURE0 + uint32(grass.CloudTextureUnit))
	gl.BindTexture(gl.TEXTURE_2D, u.CloudTexture)
	gl.Uniform1i(gr.locCloudTexture, grass.CloudTextureUnit)

	// Blades are flat and seen from both sides.
	gl.Disable(gl.CULL_FACE)

	gl.BindVertexArray(gr.vao)
	gl.DrawElements(gl.TRIANGLES, gr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (gr *GrassRenderer) clearMesh() {
	if gr.vao != 0 {
		gl.DeleteVertexArrays(1, &gr.vao)
		gr.vao = 0
	}
	if gr.vbos[0] != 0 {
		gl.DeleteBuffers(int32(len(gr.vbos)), &gr.vbos[0])
		gr.vbos = [4]uint32{}
	}
	if gr.ebo != 0 {
		gl.DeleteBuffers(1, &gr.ebo)
		gr.ebo = 0
	}
	gr.field = nil
	gr.indexCount = 0
}

// Destroy releases all resources.
func (gr *GrassRenderer) Destroy() {
	gr.clearMesh()
	deleteTexture(gr.grassTex)
	deleteTexture(gr.cloudTex)
	gr.grassTex, gr.cloudTex = 0, 0
	if gr.program != 0 {
		gl.DeleteProgram(gr.program)
		gr.program = 0
	}
}
