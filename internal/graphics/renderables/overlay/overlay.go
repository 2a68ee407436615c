package overlay

import (
	"image"
	"path/filepath"

	"fractal-room/internal/graphics"
	"fractal-room/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const scale = 2

// quad in [0,1]^2 with uv, drawn as a triangle strip
var quad = []float32{
	0, 0, 0, 0,
	1, 0, 1, 0,
	0, 1, 0, 1,
	1, 1, 1, 1,
}

// Overlay shows a short text readout (the fps counter) in the top-left
// corner at window resolution.
type Overlay struct {
	vertPath string
	fragPath string

	shader   *graphics.Shader
	vao, vbo uint32
	texture  uint32

	img   *image.RGBA
	text  string
	dirty bool

	width, height int
}

func NewOverlay(shaderDir string) *Overlay {
	return &Overlay{
		vertPath: filepath.Join(shaderDir, "overlay.vert"),
		fragPath: filepath.Join(shaderDir, "overlay.frag"),
		img:      image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight)),
		dirty:    true,
	}
}

func (o *Overlay) Pass() renderer.Pass {
	return renderer.PassOverlay
}

func (o *Overlay) Init() error {
	s, err := graphics.NewShader(o.vertPath, o.fragPath)
	if err != nil {
		return err
	}
	o.shader = s

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindVertexArray(0)

	RasterizeText(o.img, o.text)
	o.texture = graphics.UploadRGBA(o.img)
	o.dirty = false
	return nil
}

// SetText replaces the readout; the texture is refreshed on next draw.
func (o *Overlay) SetText(s string) {
	if s == o.text {
		return
	}
	o.text = s
	RasterizeText(o.img, s)
	o.dirty = true
}

func (o *Overlay) Text() string {
	return o.text
}

func (o *Overlay) Render(ctx renderer.RenderContext) {
	if o.width == 0 || o.height == 0 {
		return
	}
	if o.dirty {
		graphics.UpdateRGBA(o.texture, o.img)
		o.dirty = false
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	o.shader.Use()
	o.shader.SetVec4("rect", rectNDC(o.width, o.height))
	o.shader.SetInt("tex", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (o *Overlay) Dispose() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
	if o.texture != 0 {
		gl.DeleteTextures(1, &o.texture)
	}
	if o.shader != nil {
		o.shader.Delete()
	}
}

func (o *Overlay) SetViewport(width, height int) {
	o.width, o.height = width, height
}
