package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/pkg/math"
)

// Sky describes the background gradient and sun.
type Sky struct {
	SunDir  math.Vec3
	Zenith  [3]float32
	Horizon [3]float32
}

// DefaultSky returns a clear afternoon sky whose sun matches the light
// direction baked into the grass shader.
func DefaultSky() Sky {
	return Sky{
		SunDir:  lighting.SunDirection(41.6, 53),
		Zenith:  [3]float32{0.22, 0.45, 0.82},
		Horizon: [3]float32{0.75, 0.85, 0.95},
	}
}

// SkyRenderer draws the sky behind everything else.
type SkyRenderer struct {
	program uint32
	vao     uint32

	locInvViewProj int32
	locCameraPos   int32
	locSunDir      int32
	locZenith      int32
	locHorizon     int32

	Sky Sky
}

// NewSkyRenderer compiles the sky program.
func NewSkyRenderer() (*SkyRenderer, error) {
	program, err := shader.CompileProgram(shaders.SkyVertexShader, shaders.SkyFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}

	sr := &SkyRenderer{program: program, Sky: DefaultSky()}
	sr.locInvViewProj = shader.GetUniform(program, "uInvViewProj")
	sr.locCameraPos = shader.GetUniform(program, "uCameraPos")
	sr.locSunDir = shader.GetUniform(program, "uSunDir")
	sr.locZenith = shader.GetUniform(program, "uZenithColor")
	sr.locHorizon = shader.GetUniform(program, "uHorizonColor")

	// Core profile refuses draws without a bound VAO, even attribute-less ones.
	gl.GenVertexArrays(1, &sr.vao)

	return sr, nil
}

// Render draws the sky without touching the depth buffer.
func (sr *SkyRenderer) Render(viewProj math.Mat4, cameraPos math.Vec3) {
	inv := viewProj.Inverse()
	s := sr.Sky

	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)

	gl.UseProgram(sr.program)
	gl.UniformMatrix4fv(sr.locInvViewProj, 1, false, inv.Ptr())
	gl.Uniform3f(sr.locCameraPos, cameraPos.X, cameraPos.Y, cameraPos.Z)
	gl.Uniform3f(sr.locSunDir, s.SunDir.X, s.SunDir.Y, s.SunDir.Z)
	gl.Uniform3f(sr.locZenith, s.Zenith[0], s.Zenith[1], s.Zenith[2])
	gl.Uniform3f(sr.locHorizon, s.Horizon[0], s.Horizon[1], s.Horizon[2])

	gl.BindVertexArray(sr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases all resources.
func (sr *SkyRenderer) Destroy() {
	if sr.vao != 0 {
		gl.DeleteVertexArrays(1, &sr.vao)
		sr.vao = 0
	}
	if sr.program != 0 {
		gl.DeleteProgram(sr.program)
		sr.program = 0
	}
}
