package grass

// Names shared between the field's vertex layout and the grass GLSL program.
const (
	AttribPosition = "position"
	AttribUV       = "uv"
	AttribColor    = "color"
	AttribNormal   = "normal"

	UniformGrassTexture = "uGrassTexture"
	UniformCloudTexture = "uCloudTexture"
	UniformTime         = "uTime"
)

// Attribute locations, matching the layout qualifiers in grass.vert.
const (
	LocPosition uint32 = 0
	LocUV       uint32 = 1
	LocColor    uint32 = 2
	LocNormal   uint32 = 3
)

// Texture units the material's samplers are bound to.
const (
	GrassTextureUnit int32 = 0
	CloudTextureUnit int32 = 1
)

// Uniforms is the fixed set of inputs of the grass program.
type Uniforms struct {
	GrassTexture uint32 // ground color
	CloudTexture uint32 // wind pattern, sampled with repeat wrapping
	Time         float32
}

// Material holds the grass program's uniform values.
//
// It starts unbound. Bind attaches the two textures and the material stays
// bound from then on; there is no detach. Update is called once per frame with
// the host's elapsed time and is the only per-frame write.
type Material struct {
	uniforms Uniforms
	bound    bool
}

// Bind assigns the ground and wind textures. Calling it again swaps the
// textures, e.g. after an asset reload, without touching the geometry.
func (m *Material) Bind(grassTexture, cloudTexture uint32) {
	m.uniforms.GrassTexture = grassTexture
	m.uniforms.CloudTexture = cloudTexture
	m.bound = true
}

// Update stores the elapsed time in seconds since start. The value is taken
// as-is: a paused host simply passes the same value again.
//
// The shader reads time as a float32, so resolution degrades with uptime:
// about 1 ms after an hour and 8 ms after a day, where sway starts to step.
// The value is not wrapped because the wind scroll and sway have no common
// period that would keep the motion seamless.
func (m *Material) Update(elapsedSeconds float64) {
	m.uniforms.Time = float32(elapsedSeconds)
}

// Bound reports whether textures have been attached.
func (m *Material) Bound() bool {
	return m.bound
}

// Uniforms returns the current uniform values.
func (m *Material) Uniforms() Uniforms {
	return m.uniforms
}
