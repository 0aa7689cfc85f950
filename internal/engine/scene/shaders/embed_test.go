package shaders

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/Faultbox/meadow/internal/grass"
)

func TestGrassAttributeLayout(t *testing.T) {
	tests := []struct {
		name     string
		location uint32
		glslType string
	}{
		{grass.AttribPosition, grass.LocPosition, "vec3"},
		{grass.AttribUV, grass.LocUV, "vec2"},
		{grass.AttribColor, grass.LocColor, "vec3"},
		{grass.AttribNormal, grass.LocNormal, "vec3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := fmt.Sprintf(`layout\s*\(\s*location\s*=\s*%d\s*\)\s*in\s+%s\s+%s\s*;`,
				tt.location, tt.glslType, regexp.QuoteMeta(tt.name))
			if !regexp.MustCompile(pattern).MatchString(GrassVertexShader) {
				t.Errorf("grass.vert does not declare layout(location = %d) in %s %s",
					tt.location, tt.glslType, tt.name)
			}
		})
	}
}

func TestGrassUniformNames(t *testing.T) {
	tests := []struct {
		name     string
		glslType string
	}{
		{grass.UniformGrassTexture, "sampler2D"},
		{grass.UniformCloudTexture, "sampler2D"},
		{grass.UniformTime, "float"},
	}

	program := GrassVertexShader + "\n" + GrassFragmentShader
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := regexp.MustCompile(fmt.Sprintf(`uniform\s+%s\s+%s\s*;`, tt.glslType, regexp.QuoteMeta(tt.name)))
			if !decl.MatchString(program) {
				t.Fatalf("grass program does not declare uniform %s %s", tt.glslType, tt.name)
			}
			// A declared but unused uniform is stripped by the linker.
			if strings.Count(program, tt.name) < 2 {
				t.Errorf("uniform %s is declared but never read", tt.name)
			}
		})
	}
}

func TestGrassVertexShaderReadsWind(t *testing.T) {
	// Wind comes from the cloud texture scrolled by time in the vertex stage.
	decl := regexp.MustCompile(`uniform\s+\w+\s+` + grass.UniformCloudTexture + `\s*;`)
	if !decl.MatchString(GrassVertexShader) {
		t.Errorf("grass.vert does not sample %s", grass.UniformCloudTexture)
	}
	if !strings.Contains(GrassVertexShader, grass.UniformTime) {
		t.Errorf("grass.vert does not read %s", grass.UniformTime)
	}
}
