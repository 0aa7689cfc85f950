package scene

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Wrap selects the texture coordinate wrapping mode.
type Wrap int32

const (
	WrapClamp  Wrap = gl.CLAMP_TO_EDGE
	WrapRepeat Wrap = gl.REPEAT
)

// uploadTexture creates a mipmapped GL texture from img and returns its ID.
// Requires a current GL context.
func uploadTexture(img *image.RGBA, wrap Wrap) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int32(wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int32(wrap))
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// deleteTexture releases a texture created by uploadTexture.
func deleteTexture(texID uint32) {
	if texID != 0 {
		gl.DeleteTextures(1, &texID)
	}
}
