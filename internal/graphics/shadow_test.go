package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLightSpaceCoversBounds(t *testing.T) {
	lo, hi := mgl32.Vec3{-20, -0.01, -20}, mgl32.Vec3{20, 4, 20}
	tests := []struct {
		name string
		dir  mgl32.Vec3
	}{
		{"room sun", mgl32.Vec3{0, -0.95, -0.75}},
		{"straight down", mgl32.Vec3{0, -1, 0}},
		{"grazing", mgl32.Vec3{1, -0.05, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LightSpace(tt.dir, lo, hi)
			for i := 0; i < 8; i++ {
				c := mgl32.Vec3{lo[0], lo[1], lo[2]}
				if i&1 != 0 {
					c[0] = hi[0]
				}
				if i&2 != 0 {
					c[1] = hi[1]
				}
				if i&4 != 0 {
					c[2] = hi[2]
				}
				p := m.Mul4x1(c.Vec4(1))
				for k := 0; k < 3; k++ {
					assert.InDelta(t, 0, p[k], 1.0001, "corner %v axis %d", c, k)
				}
			}
		})
	}
}

func TestLightSpaceDepthFollowsLight(t *testing.T) {
	lo, hi := mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1}
	m := LightSpace(mgl32.Vec3{0, -1, 0}, lo, hi)

	top := m.Mul4x1(mgl32.Vec4{0, 2, 0, 1})
	bottom := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	// nearer the sun means smaller depth
	assert.Less(t, top[2], bottom[2])
}

func TestLightSpaceDegenerateBounds(t *testing.T) {
	p := mgl32.Vec3{3, 1, 2}
	m := LightSpace(mgl32.Vec3{0, -1, -1}, p, p)
	q := m.Mul4x1(p.Vec4(1))
	assert.InDelta(t, 0, q[0], 1e-4)
	assert.InDelta(t, 0, q[1], 1e-4)
	assert.InDelta(t, 0, q[2], 1e-4)
}
