// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GrassVertexShader displaces blades by the scrolling cloud wind field.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassFragmentShader colors blades from the ground texture and cloud shadows.
//
//go:embed grass.frag
var GrassFragmentShader string

// SkyVertexShader emits a fullscreen triangle.
//
//go:embed sky.vert
var SkyVertexShader string

// SkyFragmentShader draws the sky gradient and sun disc.
//
//go:embed sky.frag
var SkyFragmentShader string

// LinesVertexShader is the vertex shader for debug line rendering.
//
//go:embed lines.vert
var LinesVertexShader string

// LinesFragmentShader is the fragment shader for debug line rendering.
//
//go:embed lines.frag
var LinesFragmentShader string
