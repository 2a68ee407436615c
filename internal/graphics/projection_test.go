package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestProjectionViewport(t *testing.T) {
	p := NewProjection(900, 600)
	assert.InDelta(t, 1.5, p.AspectRatio, 1e-6)

	p.SetViewport(0, 0)
	assert.InDelta(t, 1.5, p.AspectRatio, 1e-6)

	p.SetViewport(600, 600)
	assert.Equal(t, float32(1), p.AspectRatio)
}

func TestProjectionClipRange(t *testing.T) {
	p := NewProjection(800, 800)
	m := p.Matrix()

	near := m.Mul4x1(mgl32.Vec4{0, 0, -0.01, 1})
	far := m.Mul4x1(mgl32.Vec4{0, 0, -128, 1})
	assert.InDelta(t, -1, near.Z()/near.W(), 1e-3)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-3)
}
