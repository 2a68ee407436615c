// Package scene holds the static content of the room: lights, the
// imported meshes and how they are classified.
package scene

import (
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"
)

// Mesh name conventions of the scene asset.
const (
	GroundPrefix       = "G_"
	ShadowCasterPrefix = "S_"
	SuzanneName        = "S_Suzanne"
)

const (
	rootOffsetY        = -1.65
	minEnvironmentSize = 15
)

var suzannePosition = mgl32.Vec3{0, 3.15, 1.2}

// ErrEmptyScene is returned when an asset contains no nodes.
var ErrEmptyScene = errors.New("scene: asset has no meshes")

// Mesh is a node of the imported hierarchy. Geometry is nil for pure
// transform nodes.
type Mesh struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Parent   *Mesh
	Geometry *Geometry

	CastShadows    bool
	ReceiveShadows bool
}

func NewMesh(name string, g *Geometry) *Mesh {
	return &Mesh{Name: name, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}, Geometry: g}
}

// Local is the node transform relative to its parent.
func (m *Mesh) Local() mgl32.Mat4 {
	t := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	s := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	return t.Mul4(m.Rotation.Mat4()).Mul4(s)
}

func (m *Mesh) World() mgl32.Mat4 {
	if m.Parent == nil {
		return m.Local()
	}
	return m.Parent.World().Mul4(m.Local())
}

type HemisphericLight struct {
	Name      string
	Direction mgl32.Vec3
	Intensity float32
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Ground    mgl32.Vec3
}

type DirectionalLight struct {
	Name      string
	Direction mgl32.Vec3
	Intensity float32
	Diffuse   mgl32.Vec3
}

// Scene is everything drawn besides the fractal volume.
type Scene struct {
	ClearColor mgl32.Vec4
	Ambient    mgl32.Vec3
	Hemi       HemisphericLight
	Sun        DirectionalLight

	Meshes        []*Mesh
	Grounds       []*Mesh
	ShadowCasters []*Mesh
	Suzanne       *Mesh
	Environment   *Mesh
}

// New returns the empty room with its two lights.
func New() *Scene {
	white := mgl32.Vec3{1, 1, 1}
	return &Scene{
		ClearColor: mgl32.Vec4{0.1, 0.1, 0.1, 1.0},
		Ambient:    mgl32.Vec3{0.3, 0.3, 0.3},
		Hemi: HemisphericLight{
			Name:      "light1",
			Direction: mgl32.Vec3{0, 1, 0},
			Intensity: 0.9,
			Diffuse:   white,
			Specular:  white,
		},
		Sun: DirectionalLight{
			Name:      "dir01",
			Direction: mgl32.Vec3{0, -0.95, -0.75},
			Intensity: 1,
			Diffuse:   white,
		},
	}
}

// Populate adopts imported meshes. The first mesh is the asset root and
// is lowered onto the floor; names decide grounds, shadow casters and
// the animated head. Every mesh receives shadows iff shadows is set.
func (s *Scene) Populate(meshes []*Mesh, shadows bool) error {
	if len(meshes) == 0 {
		return ErrEmptyScene
	}
	meshes[0].Position[1] = rootOffsetY

	for _, m := range meshes {
		switch {
		case strings.HasPrefix(m.Name, GroundPrefix):
			log.Info().Str("mesh", m.Name).Msg("Found a ground")
			s.Grounds = append(s.Grounds, m)
		case shadows && strings.HasPrefix(m.Name, ShadowCasterPrefix):
			log.Info().Str("mesh", m.Name).Msg("Found a shadow caster")
			m.CastShadows = true
			s.ShadowCasters = append(s.ShadowCasters, m)
		}

		if m.Name == SuzanneName {
			s.Suzanne = m
			m.Position = suzannePosition
			log.Info().Msg("Found suzanne")
		}

		m.ReceiveShadows = shadows
	}
	s.Meshes = append(s.Meshes, meshes...)
	return nil
}

// AddEnvironment places a ground plane under the current content and
// registers it as a ground.
func (s *Scene) AddEnvironment() *Mesh {
	lo, hi, ok := s.Bounds()
	size := float32(minEnvironmentSize)
	var y, cx, cz float32
	if ok {
		ext := hi.Sub(lo)
		size = max(size, ext[0]*1.2, ext[2]*1.2)
		y = lo[1]
		cx, cz = (lo[0]+hi[0])/2, (lo[2]+hi[2])/2
	}
	env := NewMesh("BackgroundPlane", Plane(size))
	env.Position = mgl32.Vec3{cx, y, cz}
	env.ReceiveShadows = len(s.Meshes) > 0 && s.Meshes[0].ReceiveShadows
	s.Environment = env
	s.Meshes = append(s.Meshes, env)
	s.Grounds = append(s.Grounds, env)
	return env
}

// Bounds is the world-space box around the mesh geometry.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3, ok bool) {
	if m.Geometry == nil {
		return lo, hi, false
	}
	if lo, hi, ok = m.Geometry.Bounds(); !ok {
		return lo, hi, false
	}
	lo, hi = TransformBounds(lo, hi, m.World())
	return lo, hi, true
}

// Bounds is the world-space box around all mesh geometry.
func (s *Scene) Bounds() (lo, hi mgl32.Vec3, ok bool) {
	for _, m := range s.Meshes {
		mlo, mhi, mok := m.Bounds()
		if !mok {
			continue
		}
		if !ok {
			lo, hi, ok = mlo, mhi, true
			continue
		}
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], mlo[i])
			hi[i] = max(hi[i], mhi[i])
		}
	}
	return lo, hi, ok
}
