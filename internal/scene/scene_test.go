package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomMeshes() []*Mesh {
	root := NewMesh(RootName, nil)
	names := []string{"G_Floor", "S_Suzanne", "S_Pillar", "Wall", "G_Stage"}
	out := []*Mesh{root}
	for _, n := range names {
		m := NewMesh(n, Box(1, 1, 1))
		m.Parent = root
		out = append(out, m)
	}
	return out
}

func names(ms []*Mesh) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestNewLights(t *testing.T) {
	s := New()
	assert.Equal(t, "dir01", s.Sun.Name)
	assert.Equal(t, mgl32.Vec3{0, -0.95, -0.75}, s.Sun.Direction)
	assert.Equal(t, float32(0.9), s.Hemi.Intensity)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, s.Hemi.Direction)
}

func TestPopulateWithoutShadows(t *testing.T) {
	s := New()
	ms := roomMeshes()
	require.NoError(t, s.Populate(ms, false))

	assert.Equal(t, float32(-1.65), ms[0].Position.Y())
	assert.Equal(t, []string{"G_Floor", "G_Stage"}, names(s.Grounds))
	assert.Empty(t, s.ShadowCasters)
	require.NotNil(t, s.Suzanne)
	assert.Equal(t, mgl32.Vec3{0, 3.15, 1.2}, s.Suzanne.Position)
	for _, m := range ms {
		assert.False(t, m.ReceiveShadows, m.Name)
		assert.False(t, m.CastShadows, m.Name)
	}
	assert.Len(t, s.Meshes, len(ms))
}

func TestPopulateWithShadows(t *testing.T) {
	s := New()
	ms := roomMeshes()
	require.NoError(t, s.Populate(ms, true))

	assert.Equal(t, []string{"S_Suzanne", "S_Pillar"}, names(s.ShadowCasters))
	assert.Equal(t, []string{"G_Floor", "G_Stage"}, names(s.Grounds))
	assert.Equal(t, "S_Suzanne", s.Suzanne.Name)
	for _, m := range ms {
		assert.True(t, m.ReceiveShadows, m.Name)
	}
}

func TestPopulateEmpty(t *testing.T) {
	assert.ErrorIs(t, New().Populate(nil, false), ErrEmptyScene)
}

func TestAddEnvironment(t *testing.T) {
	s := New()
	require.NoError(t, s.Populate(roomMeshes(), false))
	env := s.AddEnvironment()

	assert.Same(t, env, s.Grounds[len(s.Grounds)-1])
	assert.Same(t, env, s.Environment)
	// content sits on the lowered root: unit boxes span y in [-2.15, -1.15]
	// except suzanne which was moved up
	assert.InDelta(t, -2.15, env.Position.Y(), 1e-5)

	lo, hi, ok := s.Bounds()
	require.True(t, ok)
	assert.GreaterOrEqual(t, hi.X()-lo.X(), float32(1))
}

func TestAddEnvironmentEmptyScene(t *testing.T) {
	s := New()
	env := s.AddEnvironment()
	assert.Equal(t, mgl32.Vec3{}, env.Position)
	assert.Len(t, env.Geometry.Positions, 4)
}

func TestWorldComposesParents(t *testing.T) {
	parent := NewMesh("p", nil)
	parent.Position = mgl32.Vec3{0, -1.65, 0}
	child := NewMesh("c", nil)
	child.Parent = parent
	child.Position = mgl32.Vec3{1, 0, 0}
	child.Scale = mgl32.Vec3{2, 2, 2}

	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, child.World())
	assert.InDelta(t, 3, p.X(), 1e-5)
	assert.InDelta(t, -1.65, p.Y(), 1e-5)
}

func TestBoxGeometry(t *testing.T) {
	g := Box(3, 3, 3)
	assert.Len(t, g.Positions, 24)
	assert.Len(t, g.Normals, 24)
	assert.Len(t, g.Indices, 36)
	for _, p := range g.Positions {
		for _, c := range p {
			assert.InDelta(t, 1.5, abs(c), 1e-6)
		}
	}
	assert.Len(t, g.Interleaved(), 24*6)
}

func TestComputeNormals(t *testing.T) {
	g := &Geometry{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}},
		Indices:   []uint32{0, 1, 2},
	}
	g.computeNormals()
	for _, n := range g.Normals {
		assert.InDelta(t, 1, n[1], 1e-6)
	}
}

func TestFromDocumentHierarchy(t *testing.T) {
	zero := 0
	doc := &gltf.Document{
		Scene:  &zero,
		Scenes: []*gltf.Scene{{Nodes: []int{0, 2}}},
		Nodes: []*gltf.Node{
			{Name: "G_Floor", Children: []int{1}},
			{Name: "S_Suzanne"},
			{Name: ""},
		},
	}
	ms, err := fromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{RootName, "G_Floor", "S_Suzanne", "node2"}, names(ms))
	assert.Same(t, ms[0], ms[1].Parent)
	assert.Same(t, ms[1], ms[2].Parent)
	assert.Equal(t, mgl32.QuatIdent(), ms[2].Rotation)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, ms[2].Scale)
}

func TestFromDocumentWithoutScene(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{{Name: "a", Children: []int{1}}, {Name: "b"}, {Name: "c"}},
	}
	ms, err := fromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{RootName, "a", "b", "c"}, names(ms))

	_, err = fromDocument(&gltf.Document{})
	assert.ErrorIs(t, err, ErrEmptyScene)
}

func TestFromDocumentBadChild(t *testing.T) {
	doc := &gltf.Document{Nodes: []*gltf.Node{{Name: "a", Children: []int{7}}}}
	_, err := fromDocument(doc)
	assert.Error(t, err)
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func TestMeshBounds(t *testing.T) {
	m := NewMesh("box", Box(2, 2, 2))
	m.Position = mgl32.Vec3{10, 0, 0}
	m.Rotation = mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	lo, hi, ok := m.Bounds()
	require.True(t, ok)
	// a rotated unit-half box widens to sqrt(2) in x and z
	assert.InDelta(t, 10-1.41421, lo.X(), 1e-4)
	assert.InDelta(t, 10+1.41421, hi.X(), 1e-4)
	assert.InDelta(t, -1, lo.Y(), 1e-5)
	assert.InDelta(t, 1, hi.Y(), 1e-5)

	_, _, ok = NewMesh("empty", nil).Bounds()
	assert.False(t, ok)
	_, _, ok = NewMesh("no positions", &Geometry{}).Bounds()
	assert.False(t, ok)
}
