// Package framebuffer provides offscreen render targets.
package framebuffer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer renders into multisampled storage and resolves into a
// single-sampled RGBA8 texture that can be read back or sampled.
// With one sample the draw target is the resolve target.
type Framebuffer struct {
	drawFBO    uint32
	colorRBO   uint32
	depthRBO   uint32
	resolveFBO uint32
	resolveTex uint32

	width   int32
	height  int32
	samples int32
}

// New creates a framebuffer. Sizes below one pixel are raised to one and
// samples is clamped to the driver limit.
func New(width, height, samples int32) (*Framebuffer, error) {
	var maxSamples int32
	gl.GetIntegerv(gl.MAX_SAMPLES, &maxSamples)

	fb := &Framebuffer{
		width:   max(width, 1),
		height:  max(height, 1),
		samples: min(max(samples, 1), max(maxSamples, 1)),
	}
	if err := fb.create(); err != nil {
		fb.Destroy()
		return nil, fmt.Errorf("creating %dx%d framebuffer (%d samples): %w", fb.width, fb.height, fb.samples, err)
	}
	return fb, nil
}

func (fb *Framebuffer) multisampled() bool {
	return fb.samples > 1
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.resolveFBO)
	gl.GenTextures(1, &fb.resolveTex)
	gl.GenRenderbuffers(1, &fb.depthRBO)
	if fb.multisampled() {
		gl.GenFramebuffers(1, &fb.drawFBO)
		gl.GenRenderbuffers(1, &fb.colorRBO)
	}
	fb.allocate()

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.resolveFBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.resolveTex, 0)
	if !fb.multisampled() {
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)
	}
	if err := checkStatus("resolve"); err != nil {
		return err
	}

	if fb.multisampled() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, fb.drawFBO)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, fb.colorRBO)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)
		if err := checkStatus("multisample"); err != nil {
			return err
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func checkStatus(name string) error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("%s target incomplete: 0x%x", name, status)
	}
	return nil
}

func (fb *Framebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, fb.resolveTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	if fb.multisampled() {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, fb.samples, gl.DEPTH_COMPONENT24, fb.width, fb.height)
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.colorRBO)
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, fb.samples, gl.RGBA8, fb.width, fb.height)
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	}
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (fb *Framebuffer) target() uint32 {
	if fb.multisampled() {
		return fb.drawFBO
	}
	return fb.resolveFBO
}

// BindWithViewport makes the framebuffer the render target and returns a
// function restoring the previous target and viewport.
func (fb *Framebuffer) BindWithViewport() func() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.target())
	gl.Viewport(0, 0, fb.width, fb.height)

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// Samples returns the effective sample count.
func (fb *Framebuffer) Samples() int32 {
	return fb.samples
}

// Resize reallocates the attachments if the size changed.
func (fb *Framebuffer) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width = width
	fb.height = height
	fb.allocate()
}

// Resolve copies the multisampled color into the resolve texture.
func (fb *Framebuffer) Resolve() {
	if !fb.multisampled() {
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.drawFBO)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb.resolveFBO)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, fb.width, fb.height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
}

// ReadPixels resolves and returns the color attachment as bottom-up RGBA rows.
func (fb *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, fb.width*fb.height*4)

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)

	fb.Resolve()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.resolveFBO)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
	return pixels
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	for _, id := range []*uint32{&fb.drawFBO, &fb.resolveFBO} {
		if *id != 0 {
			gl.DeleteFramebuffers(1, id)
			*id = 0
		}
	}
	for _, id := range []*uint32{&fb.colorRBO, &fb.depthRBO} {
		if *id != 0 {
			gl.DeleteRenderbuffers(1, id)
			*id = 0
		}
	}
	if fb.resolveTex != 0 {
		gl.DeleteTextures(1, &fb.resolveTex)
		fb.resolveTex = 0
	}
}
