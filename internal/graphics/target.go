package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Target is the offscreen framebuffer the scene is drawn into before it
// is scaled onto the window. Its size is the framebuffer size divided by
// the hardware scaling level. With samples > 0 the scene is drawn into
// multisampled storage and resolved before scaling.
type Target struct {
	scale   float32
	hdr     bool
	samples int32

	fbo, color, depth uint32
	// resolve is only allocated when multisampling
	resolveFBO, resolveColor uint32

	width, height int32
	winW, winH    int32

	glow *Glow
}

func NewTarget(scale float32, hdr bool, samples int) *Target {
	return &Target{scale: scale, hdr: hdr, samples: int32(max(samples, 0))}
}

// ScaledSize is the render resolution for a window framebuffer size.
func ScaledSize(width, height int, scale float32) (int32, int32) {
	w := int32(float32(width) / scale)
	h := int32(float32(height) / scale)
	return max(w, 1), max(h, 1)
}

func (t *Target) colorFormat() (internal int32, typ uint32) {
	if t.hdr {
		return gl.RGBA16F, gl.FLOAT
	}
	return gl.RGBA8, gl.UNSIGNED_BYTE
}

// SetGlow makes Present composite g over the scene. The target owns g
// from here on.
func (t *Target) SetGlow(g *Glow) error {
	t.glow = g
	if t.width > 0 {
		return g.Resize(t.width, t.height)
	}
	return nil
}

// Resize reallocates the attachments for a new window framebuffer size.
func (t *Target) Resize(fbWidth, fbHeight int) error {
	w, h := ScaledSize(fbWidth, fbHeight, t.scale)
	t.winW, t.winH = int32(fbWidth), int32(fbHeight)
	if w == t.width && h == t.height && t.fbo != 0 {
		return nil
	}
	t.release()
	t.width, t.height = w, h
	if t.glow != nil {
		if err := t.glow.Resize(w, h); err != nil {
			return err
		}
	}

	internal, typ := t.colorFormat()
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	if t.samples > 0 {
		gl.GenRenderbuffers(1, &t.color)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.color)
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, t.samples, uint32(internal), w, h)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.color)

		gl.GenRenderbuffers(1, &t.depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, t.samples, gl.DEPTH24_STENCIL8, w, h)
	} else {
		t.color = newColorTexture(internal, typ, w, h)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.color, 0)

		gl.GenRenderbuffers(1, &t.depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, w, h)
	}
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, t.depth)
	if err := checkFramebuffer(w, h); err != nil {
		t.release()
		return err
	}

	if t.samples > 0 {
		gl.GenFramebuffers(1, &t.resolveFBO)
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.resolveFBO)
		t.resolveColor = newColorTexture(internal, typ, w, h)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.resolveColor, 0)
		if err := checkFramebuffer(w, h); err != nil {
			t.release()
			return err
		}
	}
	return nil
}

func newColorTexture(internal int32, typ uint32, w, h int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, w, h, 0, gl.RGBA, typ, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// checkFramebuffer validates the bound framebuffer and unbinds it.
func checkFramebuffer(w, h int32) error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("render target %dx%d incomplete: 0x%x", w, h, status)
	}
	return nil
}

// Bind directs drawing into the target.
func (t *Target) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, t.width, t.height)
}

// Present copies the target onto the window framebuffer and leaves the
// window framebuffer bound for overlays.
func (t *Target) Present() {
	src, tex := t.fbo, t.color
	if t.samples > 0 {
		// multisampled blits cannot scale, resolve at target size first
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, t.resolveFBO)
		gl.BlitFramebuffer(0, 0, t.width, t.height, 0, 0, t.width, t.height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
		src, tex = t.resolveFBO, t.resolveColor
	}
	if t.glow != nil {
		t.glow.Apply(tex, t.winW, t.winH)
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, src)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, t.width, t.height, 0, 0, t.winW, t.winH, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, t.winW, t.winH)
}

func (t *Target) release() {
	for _, fbo := range []*uint32{&t.fbo, &t.resolveFBO} {
		if *fbo != 0 {
			gl.DeleteFramebuffers(1, fbo)
			*fbo = 0
		}
	}
	if t.samples > 0 {
		if t.color != 0 {
			gl.DeleteRenderbuffers(1, &t.color)
		}
	} else if t.color != 0 {
		gl.DeleteTextures(1, &t.color)
	}
	t.color = 0
	if t.resolveColor != 0 {
		gl.DeleteTextures(1, &t.resolveColor)
		t.resolveColor = 0
	}
	if t.depth != 0 {
		gl.DeleteRenderbuffers(1, &t.depth)
		t.depth = 0
	}
	t.width, t.height = 0, 0
}

func (t *Target) Dispose() {
	t.release()
	if t.glow != nil {
		t.glow.Dispose()
		t.glow = nil
	}
}
