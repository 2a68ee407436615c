package fractal

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMaterial struct {
	attached map[string]mgl32.Vec3
	vec3     map[string]mgl32.Vec3
	floats   map[string]float32
	writes   map[string]int
	err      error
}

func newRecordingMaterial() *recordingMaterial {
	return &recordingMaterial{
		attached: map[string]mgl32.Vec3{},
		vec3:     map[string]mgl32.Vec3{},
		floats:   map[string]float32{},
		writes:   map[string]int{},
	}
}

func (m *recordingMaterial) Attach(name string, size mgl32.Vec3) error {
	if m.err != nil {
		return m.err
	}
	m.attached[name] = size
	return nil
}

func (m *recordingMaterial) SetVec3(name string, v mgl32.Vec3) {
	m.vec3[name] = v
	m.writes[name]++
}

func (m *recordingMaterial) SetFloat(name string, v float32) {
	m.floats[name] = v
	m.writes[name]++
}

func TestNewBindsBBoxOnce(t *testing.T) {
	m := newRecordingMaterial()
	bbox := mgl32.Vec3{3, 3, 3}
	v, err := New("menger", bbox, m)
	require.NoError(t, err)

	assert.Equal(t, bbox, m.attached["menger"])
	assert.Equal(t, bbox, m.vec3[ParamBBox])
	assert.Equal(t, 1, m.writes[ParamBBox])
	assert.Equal(t, bbox, v.BBox())

	v.Tick(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, 5})
	v.SetTime(2)
	assert.Equal(t, 1, m.writes[ParamBBox])
	assert.Equal(t, bbox, v.Params().BBox)
}

func TestNewFailsWithoutShader(t *testing.T) {
	_, err := New("menger", mgl32.Vec3{1, 1, 1}, nil)
	assert.ErrorIs(t, err, ErrShaderUnavailable)

	cause := errors.New("missing fractal.frag")
	m := newRecordingMaterial()
	m.err = cause
	_, err = New("menger", mgl32.Vec3{1, 1, 1}, m)
	assert.ErrorIs(t, err, ErrShaderUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestTickPushesLightAndEye(t *testing.T) {
	m := newRecordingMaterial()
	v, err := New("menger", mgl32.Vec3{3, 3, 3}, m)
	require.NoError(t, err)

	light := mgl32.Vec3{0, -0.95, -0.75}
	eye := mgl32.Vec3{0, 0.15, 3}
	v.Tick(light, eye)

	assert.Equal(t, light, m.vec3[ParamLightDir])
	assert.Equal(t, eye, m.vec3[ParamEyePos])
	assert.Equal(t, Params{BBox: mgl32.Vec3{3, 3, 3}, LightDir: light, EyePos: eye}, v.Params())
}

func TestTickIdempotent(t *testing.T) {
	m := newRecordingMaterial()
	v, err := New("menger", mgl32.Vec3{3, 3, 3}, m)
	require.NoError(t, err)

	light := mgl32.Vec3{1, 2, 3}
	eye := mgl32.Vec3{4, 5, 6}
	v.Tick(light, eye)
	once := v.Params()
	onceVec := map[string]mgl32.Vec3{}
	for k, val := range m.vec3 {
		onceVec[k] = val
	}

	v.Tick(light, eye)
	assert.Equal(t, once, v.Params())
	assert.Equal(t, onceVec, m.vec3)
	assert.Equal(t, float32(0), v.Yaw)
}

func TestAdvanceIsLinear(t *testing.T) {
	v, err := New("menger", mgl32.Vec3{3, 3, 3}, newRecordingMaterial())
	require.NoError(t, err)

	for _, k := range []int{0, 1, 10, 1000} {
		v.Yaw = 0.5
		for i := 0; i < k; i++ {
			v.Advance()
		}
		want := 0.5 - float64(k)*RotationStep
		assert.InDelta(t, want, float64(v.Yaw), 1e-4, "k=%d", k)
	}
}

func TestAdvanceUsesConfiguredStep(t *testing.T) {
	v, err := New("menger", mgl32.Vec3{3, 3, 3}, newRecordingMaterial())
	require.NoError(t, err)
	v.Step = 0.25
	v.Advance()
	v.Advance()
	assert.Equal(t, float32(-0.5), v.Yaw)
}

func TestWorldMatrix(t *testing.T) {
	v, err := New("menger", mgl32.Vec3{3, 3, 3}, newRecordingMaterial())
	require.NoError(t, err)
	v.Position = mgl32.Vec3{1, 2, 3}
	v.Yaw = mgl32.DegToRad(90)

	p := v.World().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 2, p.Y(), 1e-5)
	assert.InDelta(t, 2, p.Z(), 1e-5)
}

func TestSetTime(t *testing.T) {
	m := newRecordingMaterial()
	v, err := New("menger", mgl32.Vec3{3, 3, 3}, m)
	require.NoError(t, err)
	v.SetTime(1.5)
	assert.Equal(t, float32(1.5), m.floats[ParamTime])
	assert.Equal(t, float32(1.5), v.Params().Time)
}
