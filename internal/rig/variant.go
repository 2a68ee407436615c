package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tags which per-variant payload a Variant carries.
type Kind int

const (
	KindOrbit Kind = iota
	KindFreeRoam
)

func (k Kind) String() string {
	switch k {
	case KindOrbit:
		return "orbit"
	case KindFreeRoam:
		return "free-roam"
	}
	return "unknown"
}

// Limits is a closed interval.
type Limits struct {
	Lower float32
	Upper float32
}

func (l Limits) clamp(v float32) float32 {
	return mgl32.Clamp(v, l.Lower, l.Upper)
}

// Orbit rotates around Target. Alpha is the angle around +Y, Beta the
// angle measured down from +Y.
type Orbit struct {
	Alpha  float32
	Beta   float32
	Radius float32
	Target mgl32.Vec3

	RadiusLimits   Limits
	BetaLimits     Limits
	WheelPrecision float32
	// radians per pixel of drag
	AngularSensibility float32
}

// FreeRoam is steered directly. Yaw and Pitch are in degrees.
type FreeRoam struct {
	Yaw         float64
	Pitch       float64
	Speed       float32
	Sensitivity float64
}

// Variant is one camera of the rig. Exactly one of Orbit/Free is set,
// matching Kind.
type Variant struct {
	Name     string
	Kind     Kind
	Position mgl32.Vec3
	Focused  bool

	Orbit *Orbit
	Free  *FreeRoam
}

// wheelDelta is the browser wheel delta of one notch; a notch moves the
// orbit radius by wheelDelta / (WheelPrecision * 40).
const wheelDelta = 120

// NewOrbit builds an orbit camera with the room's radius and beta limits.
func NewOrbit(name string, alpha, beta, radius float32, target mgl32.Vec3) *Variant {
	o := &Orbit{
		Alpha:              alpha,
		Beta:               beta,
		Radius:             radius,
		Target:             target,
		RadiusLimits:       Limits{Lower: 3, Upper: 16},
		BetaLimits:         Limits{Lower: 0.5, Upper: 1.68},
		WheelPrecision:     30,
		AngularSensibility: 0.001,
	}
	v := &Variant{Name: name, Kind: KindOrbit, Orbit: o}
	v.syncOrbit()
	return v
}

// NewFreeRoam builds a free camera at position looking at target.
func NewFreeRoam(name string, position, target mgl32.Vec3) *Variant {
	f := &FreeRoam{Speed: 0.25, Sensitivity: 0.1}
	if dir := target.Sub(position); dir.Dot(dir) > 0 {
		dir = dir.Normalize()
		f.Yaw = float64(mgl32.RadToDeg(float32(math.Atan2(float64(dir[2]), float64(dir[0])))))
		f.Pitch = float64(mgl32.RadToDeg(float32(math.Asin(float64(dir[1])))))
	}
	return &Variant{Name: name, Kind: KindFreeRoam, Position: position, Free: f}
}

func (v *Variant) syncOrbit() {
	o := v.Orbit
	sa, ca := math.Sincos(float64(o.Alpha))
	sb, cb := math.Sincos(float64(o.Beta))
	v.Position = o.Target.Add(mgl32.Vec3{
		o.Radius * float32(ca*sb),
		o.Radius * float32(cb),
		o.Radius * float32(sa*sb),
	})
}

// Front is the normalized view direction.
func (v *Variant) Front() mgl32.Vec3 {
	if v.Kind == KindOrbit {
		d := v.Orbit.Target.Sub(v.Position)
		if d.Dot(d) == 0 {
			return mgl32.Vec3{0, 0, -1}
		}
		return d.Normalize()
	}
	y := float64(mgl32.DegToRad(float32(v.Free.Yaw)))
	p := float64(mgl32.DegToRad(float32(v.Free.Pitch)))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// View returns the LookAt matrix for the variant.
func (v *Variant) View() mgl32.Mat4 {
	target := v.Position.Add(v.Front())
	if v.Kind == KindOrbit {
		target = v.Orbit.Target
	}
	return mgl32.LookAtV(v.Position, target, mgl32.Vec3{0, 1, 0})
}

// Drag rotates an orbit camera by a mouse delta in pixels.
func (v *Variant) Drag(dx, dy float64) {
	if v.Kind != KindOrbit {
		return
	}
	o := v.Orbit
	o.Alpha -= float32(dx) * o.AngularSensibility
	o.Beta = o.BetaLimits.clamp(o.Beta - float32(dy)*o.AngularSensibility)
	v.syncOrbit()
}

// Zoom moves an orbit camera towards its target by wheel notches.
func (v *Variant) Zoom(notches float64) {
	if v.Kind != KindOrbit {
		return
	}
	o := v.Orbit
	o.Radius = o.RadiusLimits.clamp(o.Radius - float32(notches)*wheelDelta/(o.WheelPrecision*40))
	v.syncOrbit()
}

// Look turns a free camera by a mouse delta in pixels.
func (v *Variant) Look(dx, dy float64) {
	if v.Kind != KindFreeRoam {
		return
	}
	f := v.Free
	f.Yaw += dx * f.Sensitivity
	f.Pitch -= dy * f.Sensitivity
	if f.Pitch > 89.0 {
		f.Pitch = 89.0
	}
	if f.Pitch < -89.0 {
		f.Pitch = -89.0
	}
}

// Move translates a free camera along its local axes; each argument is
// -1, 0 or 1 per frame.
func (v *Variant) Move(forward, right, up float32) {
	if v.Kind != KindFreeRoam {
		return
	}
	front := v.Front()
	side := front.Cross(mgl32.Vec3{0, 1, 0})
	if side.Dot(side) > 0 {
		side = side.Normalize()
	}
	localUp := side.Cross(front)
	step := front.Mul(forward).Add(side.Mul(right)).Add(localUp.Mul(up))
	v.Position = v.Position.Add(step.Mul(v.Free.Speed))
}
