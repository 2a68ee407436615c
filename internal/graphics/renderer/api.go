package renderer

import (
	"fractal-room/internal/fractal"
	"fractal-room/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext is what every renderable sees for one frame.
type RenderContext struct {
	Scene  *scene.Scene
	Volume *fractal.Volume
	Eye    mgl32.Vec3
	View   mgl32.Mat4
	Proj   mgl32.Mat4

	// LightSpace maps world positions into the sun's shadow map. Both
	// are zero when shadows are off.
	LightSpace mgl32.Mat4
	ShadowMap  uint32
}

// Renderable is a drawable feature with a GPU lifetime.
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}

// ShadowCaster is implemented by scene renderables that draw into the
// sun's depth map before the scene pass.
type ShadowCaster interface {
	RenderShadow(ctx RenderContext)
}

// Pass tells the renderer whether a feature draws into the scaled scene
// target or directly onto the window afterwards.
type Pass int

const (
	PassScene Pass = iota
	PassOverlay
)

// Passer is implemented by renderables that do not belong to PassScene.
type Passer interface {
	Pass() Pass
}

func passOf(r Renderable) Pass {
	if p, ok := r.(Passer); ok {
		return p.Pass()
	}
	return PassScene
}
