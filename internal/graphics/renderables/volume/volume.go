package volume

import (
	"errors"
	"fmt"
	"path/filepath"

	"fractal-room/internal/fractal"
	"fractal-room/internal/graphics"
	"fractal-room/internal/graphics/renderer"
	"fractal-room/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var errNotInitialized = errors.New("volume renderable not initialized")

// Volume draws the fractal box and is the fractal.Material behind it.
type Volume struct {
	vertPath string
	fragPath string

	shader *graphics.Shader
	mesh   *graphics.Mesh
}

var _ fractal.Material = (*Volume)(nil)

func NewVolume(shaderDir string) *Volume {
	return &Volume{
		vertPath: filepath.Join(shaderDir, "fractal.vert"),
		fragPath: filepath.Join(shaderDir, "fractal.frag"),
	}
}

func (v *Volume) Init() error {
	s, err := graphics.NewShader(v.vertPath, v.fragPath)
	if err != nil {
		return fmt.Errorf("%w: %w", fractal.ErrShaderUnavailable, err)
	}
	v.shader = s
	return nil
}

// Attach builds the box the shader is drawn on.
func (v *Volume) Attach(name string, size mgl32.Vec3) error {
	if v.shader == nil {
		return errNotInitialized
	}
	if v.mesh != nil {
		v.mesh.Dispose()
	}
	v.mesh = graphics.NewMesh(scene.Box(size[0], size[1], size[2]))
	return nil
}

func (v *Volume) SetVec3(name string, val mgl32.Vec3) {
	if v.shader != nil {
		v.shader.SetVec3(name, val)
	}
}

func (v *Volume) SetFloat(name string, val float32) {
	if v.shader != nil {
		v.shader.SetFloat(name, val)
	}
}

func (v *Volume) Render(ctx renderer.RenderContext) {
	if ctx.Volume == nil || v.mesh == nil {
		return
	}
	v.shader.Use()
	v.shader.SetMat4("world", ctx.Volume.World())
	v.shader.SetMat4("view", ctx.View)
	v.shader.SetMat4("projection", ctx.Proj)

	// back faces stay visible when the eye is inside the box; the shader
	// finds the entry point itself
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
	v.mesh.Draw()
	gl.CullFace(gl.BACK)
}

func (v *Volume) Dispose() {
	if v.mesh != nil {
		v.mesh.Dispose()
		v.mesh = nil
	}
	if v.shader != nil {
		v.shader.Delete()
		v.shader = nil
	}
}

func (v *Volume) SetViewport(width, height int) {}
