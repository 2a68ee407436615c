// Package rig owns the interchangeable scene cameras: which one is
// active, switching between them, and the free-roam movement envelope.
package rig

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoVariants is returned when a rig is built without cameras.
var ErrNoVariants = errors.New("rig: at least one camera variant is required")

// Envelope bounds where the free-roam camera may go.
type Envelope struct {
	MinY      float32
	MaxY      float32
	MaxRadius float32
}

func DefaultEnvelope() Envelope {
	return Envelope{MinY: -0.9, MaxY: 15, MaxRadius: 16}
}

// Clamp applies the vertical clamp, then the radial clamp around the
// origin. A position at the origin is returned unchanged.
func (e Envelope) Clamp(p mgl32.Vec3) mgl32.Vec3 {
	p[1] = mgl32.Clamp(p[1], e.MinY, e.MaxY)

	// compare squared lengths, no sqrt unless we rescale; float64 keeps
	// the square finite for any float32 input
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	limit := float64(e.MaxRadius) * float64(e.MaxRadius)
	if d := x*x + y*y + z*z; d > limit && d > 0 {
		k := float64(e.MaxRadius) / math.Sqrt(d)
		p = mgl32.Vec3{float32(x * k), float32(y * k), float32(z * k)}
	}
	return p
}

// Rig is the ordered camera set plus the active index.
type Rig struct {
	variants []*Variant
	active   int
	envelope Envelope
}

// New focuses the first variant.
func New(envelope Envelope, variants ...*Variant) (*Rig, error) {
	if len(variants) == 0 {
		return nil, ErrNoVariants
	}
	for _, v := range variants {
		if v == nil {
			return nil, ErrNoVariants
		}
		v.Focused = false
	}
	variants[0].Focused = true
	return &Rig{variants: variants, envelope: envelope}, nil
}

func (r *Rig) Active() *Variant {
	return r.variants[r.active]
}

func (r *Rig) ActiveIndex() int {
	return r.active
}

func (r *Rig) Len() int {
	return len(r.variants)
}

func (r *Rig) Envelope() Envelope {
	return r.envelope
}

// Cycle hands focus to the next variant, wrapping, and returns its name.
func (r *Rig) Cycle() string {
	r.variants[r.active].Focused = false
	r.active = (r.active + 1) % len(r.variants)
	next := r.variants[r.active]
	next.Focused = true
	return next.Name
}

// ApplyConstraints clamps the active camera in place when it is the
// free-roam kind. Called once per frame before uniforms are pushed.
func (r *Rig) ApplyConstraints() {
	v := r.variants[r.active]
	if v.Kind != KindFreeRoam {
		return
	}
	v.Position = r.envelope.Clamp(v.Position)
}
