// Package fractal binds the procedural volume's shader parameters.
//
// The volume is a box of fixed size whose surface is shaded by a
// raymarching program; the program needs the box size, the light
// direction, the eye position and a clock every frame.
package fractal

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader parameter names.
const (
	ParamBBox     = "bbox"
	ParamLightDir = "lightDir"
	ParamEyePos   = "eyePos"
	ParamTime     = "time"
)

// RotationStep is the default yaw decrement per frame, in radians.
const RotationStep = 0.0001

// ErrShaderUnavailable is wrapped when the program backing the volume
// could not be resolved.
var ErrShaderUnavailable = errors.New("fractal: shader program unavailable")

// Material receives parameter updates. The renderer implements it on top
// of a linked GL program.
type Material interface {
	// Attach creates the box geometry the material is drawn on.
	Attach(name string, size mgl32.Vec3) error
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
}

// Params is the last value pushed for every parameter.
type Params struct {
	BBox     mgl32.Vec3
	LightDir mgl32.Vec3
	EyePos   mgl32.Vec3
	Time     float32
}

// Volume is the procedural box. BBox never changes after New.
type Volume struct {
	Name     string
	Position mgl32.Vec3
	Yaw      float32
	// Step is subtracted from Yaw by Advance.
	Step float32

	bbox   mgl32.Vec3
	params Params
	mat    Material
}

// New attaches the volume to a box of size bbox and binds bbox once.
func New(name string, bbox mgl32.Vec3, mat Material) (*Volume, error) {
	if mat == nil {
		return nil, fmt.Errorf("volume %q: %w", name, ErrShaderUnavailable)
	}
	if err := mat.Attach(name, bbox); err != nil {
		return nil, fmt.Errorf("volume %q: %w: %w", name, ErrShaderUnavailable, err)
	}
	mat.SetVec3(ParamBBox, bbox)
	return &Volume{
		Name:   name,
		Step:   RotationStep,
		bbox:   bbox,
		params: Params{BBox: bbox},
		mat:    mat,
	}, nil
}

func (v *Volume) BBox() mgl32.Vec3 {
	return v.bbox
}

func (v *Volume) Params() Params {
	return v.params
}

// Tick pushes this frame's light direction and eye position. Call it
// after the camera and light are final and before the frame is drawn.
func (v *Volume) Tick(lightDir, eyePos mgl32.Vec3) {
	v.params.LightDir = lightDir
	v.params.EyePos = eyePos
	v.mat.SetVec3(ParamLightDir, lightDir)
	v.mat.SetVec3(ParamEyePos, eyePos)
}

// SetTime feeds the shader clock, in seconds.
func (v *Volume) SetTime(seconds float32) {
	v.params.Time = seconds
	v.mat.SetFloat(ParamTime, seconds)
}

// Advance turns the volume by one frame step. The angle is never
// wrapped.
func (v *Volume) Advance() {
	v.Yaw -= v.Step
}

// World is the model matrix of the box.
func (v *Volume) World() mgl32.Mat4 {
	return mgl32.Translate3D(v.Position[0], v.Position[1], v.Position[2]).
		Mul4(mgl32.HomogRotate3DY(v.Yaw))
}
