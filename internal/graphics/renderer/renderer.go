package renderer

import (
	"fractal-room/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws scene renderables into a scaled offscreen target, blits
// it to the window, then draws overlays at window resolution.
type Renderer struct {
	renderables []Renderable
	projection  *graphics.Projection
	target      *graphics.Target
	shadows     *graphics.ShadowMap
	clear       mgl32.Vec4
}

const (
	shadowMapSize = 1024
	glowIntensity = 0.5
	glowKernel    = 64
)

// Options are the performance toggles the renderer honours directly.
type Options struct {
	HWScale float32
	HDR     bool
	// Samples > 0 multisamples the scene target.
	Samples int
	// Shadows renders a sun depth map for ShadowCaster renderables.
	Shadows bool
	// Glow blooms bright pixels when the target is presented.
	Glow bool
	// ShaderDir holds the glow shaders.
	ShaderDir string
}

// NewRenderer initialises every renderable; a failure disposes the ones
// already initialised and is returned.
func NewRenderer(width, height int, opts Options, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r := &Renderer{
		projection: graphics.NewProjection(width, height),
		target:     graphics.NewTarget(opts.HWScale, opts.HDR, opts.Samples),
		clear:      mgl32.Vec4{0.1, 0.1, 0.1, 1},
	}
	if err := r.target.Resize(width, height); err != nil {
		return nil, err
	}
	if opts.Glow {
		g, err := graphics.NewGlow(opts.ShaderDir, glowIntensity, glowKernel)
		if err != nil {
			r.target.Dispose()
			return nil, err
		}
		if err := r.target.SetGlow(g); err != nil {
			r.target.Dispose()
			return nil, err
		}
	}
	if opts.Shadows {
		sm, err := graphics.NewShadowMap(shadowMapSize)
		if err != nil {
			r.target.Dispose()
			return nil, err
		}
		r.shadows = sm
	}

	for i, rr := range rs {
		if err := rr.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			r.dispose()
			return nil, err
		}
		rr.SetViewport(width, height)
	}
	r.renderables = rs
	return r, nil
}

func (r *Renderer) SetClearColor(c mgl32.Vec4) {
	r.clear = c
}

// Render draws one frame. ctx.View and Proj are filled in here from the
// given view matrix, and the shadow fields when shadows are on.
func (r *Renderer) Render(ctx RenderContext, view mgl32.Mat4) {
	ctx.View = view
	ctx.Proj = r.projection.Matrix()

	if r.shadows != nil && ctx.Scene != nil {
		if lo, hi, ok := ctx.Scene.Bounds(); ok {
			ctx.LightSpace = graphics.LightSpace(ctx.Scene.Sun.Direction, lo, hi)
			ctx.ShadowMap = r.shadows.Texture()
			r.renderShadows(ctx)
		}
	}

	r.target.Bind()
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	for _, rr := range r.renderables {
		if passOf(rr) == PassScene {
			rr.Render(ctx)
		}
	}

	r.target.Present()
	for _, rr := range r.renderables {
		if passOf(rr) == PassOverlay {
			rr.Render(ctx)
		}
	}
}

func (r *Renderer) renderShadows(ctx RenderContext) {
	r.shadows.Bind()
	// push depths back a little so lit surfaces don't shadow themselves
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(2, 4)
	for _, rr := range r.renderables {
		if c, ok := rr.(ShadowCaster); ok && passOf(rr) == PassScene {
			c.RenderShadow(ctx)
		}
	}
	gl.Disable(gl.POLYGON_OFFSET_FILL)
}

// Dispose releases renderables in reverse order.
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.dispose()
}

func (r *Renderer) dispose() {
	if r.shadows != nil {
		r.shadows.Dispose()
		r.shadows = nil
	}
	r.target.Dispose()
}

// UpdateViewport follows a framebuffer resize.
func (r *Renderer) UpdateViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.projection.SetViewport(width, height)
	for _, rr := range r.renderables {
		rr.SetViewport(width, height)
	}
	return r.target.Resize(width, height)
}
