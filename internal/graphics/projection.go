package graphics

import "github.com/go-gl/mathgl/mgl32"

// Projection is the perspective shared by every camera of the rig.
type Projection struct {
	AspectRatio float32
	FOV         float32 // degrees
	NearPlane   float32
	FarPlane    float32
}

// NewProjection uses a clip range of 0.01..128.
func NewProjection(width, height int) *Projection {
	p := &Projection{FOV: 60.0, NearPlane: 0.01, FarPlane: 128.0}
	p.SetViewport(width, height)
	return p
}

// SetViewport ignores degenerate sizes (minimised window).
func (p *Projection) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.AspectRatio = float32(width) / float32(height)
}

func (p *Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.AspectRatio, p.NearPlane, p.FarPlane)
}
