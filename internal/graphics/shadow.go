package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMap is a depth-only framebuffer rendered from the sun.
type ShadowMap struct {
	size       int32
	fbo, depth uint32
}

func NewShadowMap(size int) (*ShadowMap, error) {
	s := &ShadowMap{size: int32(size)}

	gl.GenTextures(1, &s.depth)
	gl.BindTexture(gl.TEXTURE_2D, s.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, s.size, s.size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	// outside the map counts as lit
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &s.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, s.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	if err := checkFramebuffer(s.size, s.size); err != nil {
		s.Dispose()
		return nil, fmt.Errorf("shadow map: %w", err)
	}
	return s, nil
}

// Bind directs drawing into the depth map and clears it.
func (s *ShadowMap) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, s.size, s.size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (s *ShadowMap) Texture() uint32 {
	return s.depth
}

func (s *ShadowMap) Dispose() {
	if s.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.fbo)
		s.fbo = 0
	}
	if s.depth != 0 {
		gl.DeleteTextures(1, &s.depth)
		s.depth = 0
	}
}

// LightSpace fits an orthographic sun projection around the bounding
// sphere of [lo, hi]. dir is the direction the light travels.
func LightSpace(dir, lo, hi mgl32.Vec3) mgl32.Mat4 {
	center := lo.Add(hi).Mul(0.5)
	r := hi.Sub(lo).Len() * 0.5
	if r <= 0 {
		r = 1
	}
	d := dir.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if mgl32.Abs(d.Dot(up)) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	eye := center.Sub(d.Mul(2 * r))
	view := mgl32.LookAtV(eye, center, up)
	return mgl32.Ortho(-r, r, -r, r, r, 3*r).Mul4(view)
}
