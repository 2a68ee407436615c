package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type plane struct {
	a, b, c, d float32
}

// Frustum is the six clip planes of a projection*view matrix, in order
// left, right, bottom, top, near, far.
type Frustum struct {
	planes [6]plane
	clip   mgl32.Mat4
	valid  bool
}

// Update recomputes the planes unless clip is unchanged since the last
// call. It reports whether the planes changed.
func (f *Frustum) Update(clip mgl32.Mat4) bool {
	if f.valid && matrixNearEqual(f.clip, clip, 1e-6) {
		return false
	}
	f.planes = extractFrustumPlanes(clip)
	f.clip = clip
	f.valid = true
	return true
}

// extractFrustumPlanes builds the planes from the combined matrix.
func extractFrustumPlanes(clip mgl32.Mat4) [6]plane {
	// mgl32 is column-major
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	return [6]plane{
		normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}),
		normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}),
		normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}),
		normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}),
		normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}),
		normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}),
	}
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// IntersectsAABB reports whether the box is at least partly inside.
// A frustum that was never updated contains everything.
func (f *Frustum) IntersectsAABB(lo, hi mgl32.Vec3) bool {
	if !f.valid {
		return true
	}
	for _, p := range f.planes {
		// positive vertex for this plane normal
		px, py, pz := hi[0], hi[1], hi[2]
		if p.a < 0 {
			px = lo[0]
		}
		if p.b < 0 {
			py = lo[1]
		}
		if p.c < 0 {
			pz = lo[2]
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}

func matrixNearEqual(a, b mgl32.Mat4, epsilon float32) bool {
	for i := 0; i < 16; i++ {
		if float32(math.Abs(float64(a[i]-b[i]))) > epsilon {
			return false
		}
	}
	return true
}
