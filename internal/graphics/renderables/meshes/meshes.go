package meshes

import (
	"path/filepath"
	"strings"

	"fractal-room/internal/graphics"
	"fractal-room/internal/graphics/renderer"
	"fractal-room/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	baseColor   = mgl32.Vec3{0.8, 0.8, 0.8}
	groundColor = mgl32.Vec3{0.45, 0.45, 0.5}
)

// Meshes draws the imported scene with the hemispheric and directional
// lights. Geometry is uploaded on first draw and shared between nodes
// that instance the same mesh. Meshes flagged CastShadows are drawn into
// the sun's depth map and those flagged ReceiveShadows sample it.
type Meshes struct {
	shaderDir string

	shader   *graphics.Shader
	depth    *graphics.Shader
	uploaded map[*scene.Geometry]*graphics.Mesh
	frustum  graphics.Frustum

	// Culled is the number of meshes skipped by the last Render.
	Culled int
}

var _ renderer.ShadowCaster = (*Meshes)(nil)

func NewMeshes(shaderDir string) *Meshes {
	return &Meshes{
		shaderDir: shaderDir,
		uploaded:  make(map[*scene.Geometry]*graphics.Mesh),
	}
}

func (m *Meshes) Init() error {
	s, err := graphics.NewShader(filepath.Join(m.shaderDir, "mesh.vert"), filepath.Join(m.shaderDir, "mesh.frag"))
	if err != nil {
		return err
	}
	d, err := graphics.NewShader(filepath.Join(m.shaderDir, "shadow.vert"), filepath.Join(m.shaderDir, "shadow.frag"))
	if err != nil {
		s.Delete()
		return err
	}
	s.SetInt("shadowMap", 1)
	m.shader, m.depth = s, d
	return nil
}

func (m *Meshes) gpu(g *scene.Geometry) *graphics.Mesh {
	gpu, ok := m.uploaded[g]
	if !ok {
		gpu = graphics.NewMesh(g)
		m.uploaded[g] = gpu
	}
	return gpu
}

// RenderShadow draws every shadow caster into the bound depth map.
func (m *Meshes) RenderShadow(ctx renderer.RenderContext) {
	if ctx.Scene == nil {
		return
	}
	m.depth.Use()
	m.depth.SetMat4("lightSpace", ctx.LightSpace)
	gl.Disable(gl.CULL_FACE)
	for _, mesh := range ctx.Scene.Meshes {
		if mesh.Geometry == nil || !mesh.CastShadows {
			continue
		}
		m.depth.SetMat4("world", mesh.World())
		m.gpu(mesh.Geometry).Draw()
	}
	gl.Enable(gl.CULL_FACE)
}

func (m *Meshes) Render(ctx renderer.RenderContext) {
	sc := ctx.Scene
	if sc == nil {
		return
	}
	s := m.shader
	s.Use()
	s.SetMat4("view", ctx.View)
	s.SetMat4("projection", ctx.Proj)
	s.SetVec3("eyePos", ctx.Eye)
	s.SetVec3("ambient", sc.Ambient)
	s.SetVec3("hemiDir", sc.Hemi.Direction)
	s.SetVec3("hemiDiffuse", sc.Hemi.Diffuse)
	s.SetVec3("hemiSpecular", sc.Hemi.Specular)
	s.SetVec3("hemiGround", sc.Hemi.Ground)
	s.SetFloat("hemiIntensity", sc.Hemi.Intensity)
	s.SetVec3("sunDir", sc.Sun.Direction)
	s.SetVec3("sunDiffuse", sc.Sun.Diffuse)
	s.SetFloat("sunIntensity", sc.Sun.Intensity)

	shadowed := ctx.ShadowMap != 0
	if shadowed {
		s.SetMat4("lightSpace", ctx.LightSpace)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, ctx.ShadowMap)
		gl.ActiveTexture(gl.TEXTURE0)
	}

	// the floor plane is seen from both sides when the free camera dips
	gl.Disable(gl.CULL_FACE)
	m.frustum.Update(ctx.Proj.Mul4(ctx.View))
	m.Culled = 0
	for _, mesh := range sc.Meshes {
		if mesh.Geometry == nil {
			continue
		}
		if lo, hi, ok := mesh.Bounds(); ok && !m.frustum.IntersectsAABB(lo, hi) {
			m.Culled++
			continue
		}
		color := baseColor
		if strings.HasPrefix(mesh.Name, scene.GroundPrefix) || mesh == sc.Environment {
			color = groundColor
		}
		s.SetMat4("world", mesh.World())
		s.SetVec3("albedo", color)
		s.SetInt("receiveShadows", boolInt(shadowed && mesh.ReceiveShadows))
		m.gpu(mesh.Geometry).Draw()
	}
	gl.Enable(gl.CULL_FACE)
	if shadowed {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.ActiveTexture(gl.TEXTURE0)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (m *Meshes) Dispose() {
	for g, gpu := range m.uploaded {
		gpu.Dispose()
		delete(m.uploaded, g)
	}
	for _, s := range []**graphics.Shader{&m.shader, &m.depth} {
		if *s != nil {
			(*s).Delete()
			*s = nil
		}
	}
}

func (m *Meshes) SetViewport(width, height int) {}
