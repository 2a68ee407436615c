package graphics

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// maxGlowRadius matches the weights array in glow_blur.frag.
const maxGlowRadius = 16

// glowThreshold is the luminance above which pixels bloom.
const glowThreshold = 0.8

// Glow extracts the bright parts of the scene into a half resolution
// buffer, blurs them with a separable gaussian and adds them back on
// top of the scene while it is scaled onto the window.
type Glow struct {
	intensity float32
	radius    int32
	weights   []float32

	extract, blur, composite *Shader
	vao                      uint32

	fbo, tex [2]uint32
	w, h     int32
}

// NewGlow loads the glow shaders from shaderDir. kernel is the blur
// kernel size in target pixels, a quarter of it is sampled per side at
// half resolution.
func NewGlow(shaderDir string, intensity float32, kernel int) (*Glow, error) {
	radius := min(max(kernel/4, 1), maxGlowRadius)
	g := &Glow{
		intensity: intensity,
		radius:    int32(radius),
		weights:   GaussianWeights(radius),
	}
	vert := filepath.Join(shaderDir, "fullscreen.vert")
	var err error
	if g.extract, err = NewShader(vert, filepath.Join(shaderDir, "glow_extract.frag")); err != nil {
		return nil, err
	}
	if g.blur, err = NewShader(vert, filepath.Join(shaderDir, "glow_blur.frag")); err != nil {
		g.Dispose()
		return nil, err
	}
	if g.composite, err = NewShader(vert, filepath.Join(shaderDir, "glow_composite.frag")); err != nil {
		g.Dispose()
		return nil, err
	}
	g.extract.SetInt("src", 0)
	g.extract.SetFloat("threshold", glowThreshold)
	g.blur.SetInt("src", 0)
	g.blur.SetInt("radius", g.radius)
	g.blur.SetFloats("weights", g.weights)
	g.composite.SetInt("scene", 0)
	g.composite.SetInt("glow", 1)
	g.composite.SetFloat("intensity", g.intensity)

	// core profile refuses draws without a bound VAO
	gl.GenVertexArrays(1, &g.vao)
	return g, nil
}

// GaussianWeights returns the centre tap followed by one side of a
// normalised gaussian kernel; the centre plus twice the rest sums to 1.
func GaussianWeights(radius int) []float32 {
	if radius < 1 {
		return []float32{1}
	}
	sigma := float64(radius) / 2
	raw := make([]float64, radius+1)
	sum := 0.0
	for i := range raw {
		raw[i] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
		if i == 0 {
			sum += raw[i]
		} else {
			sum += 2 * raw[i]
		}
	}
	w := make([]float32, len(raw))
	for i, v := range raw {
		w[i] = float32(v / sum)
	}
	return w
}

// Resize reallocates the blur buffers for a scene target size.
func (g *Glow) Resize(targetW, targetH int32) error {
	w, h := max(targetW/2, 1), max(targetH/2, 1)
	if w == g.w && h == g.h && g.fbo[0] != 0 {
		return nil
	}
	g.release()
	g.w, g.h = w, h
	for i := range g.fbo {
		g.tex[i] = newColorTexture(gl.RGBA16F, gl.FLOAT, w, h)
		gl.BindTexture(gl.TEXTURE_2D, g.tex[i])
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		gl.GenFramebuffers(1, &g.fbo[i])
		gl.BindFramebuffer(gl.FRAMEBUFFER, g.fbo[i])
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, g.tex[i], 0)
		if err := checkFramebuffer(w, h); err != nil {
			g.release()
			return fmt.Errorf("glow: %w", err)
		}
	}
	return nil
}

// Apply composites src plus its glow onto the window framebuffer at
// winW x winH and leaves that framebuffer bound.
func (g *Glow) Apply(src uint32, winW, winH int32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(g.vao)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, g.fbo[0])
	gl.Viewport(0, 0, g.w, g.h)
	g.extract.Use()
	gl.BindTexture(gl.TEXTURE_2D, src)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	g.blur.Use()
	steps := [2]mgl32.Vec2{{1 / float32(g.w), 0}, {0, 1 / float32(g.h)}}
	for i, step := range steps {
		from, to := i, 1-i
		gl.BindFramebuffer(gl.FRAMEBUFFER, g.fbo[to])
		g.blur.SetVec2("direction", step)
		gl.BindTexture(gl.TEXTURE_2D, g.tex[from])
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, winW, winH)
	g.composite.Use()
	gl.BindTexture(gl.TEXTURE_2D, src)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, g.tex[0])
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (g *Glow) release() {
	for i := range g.fbo {
		if g.fbo[i] != 0 {
			gl.DeleteFramebuffers(1, &g.fbo[i])
			g.fbo[i] = 0
		}
		if g.tex[i] != 0 {
			gl.DeleteTextures(1, &g.tex[i])
			g.tex[i] = 0
		}
	}
	g.w, g.h = 0, 0
}

func (g *Glow) Dispose() {
	g.release()
	for _, s := range []*Shader{g.extract, g.blur, g.composite} {
		if s != nil {
			s.Delete()
		}
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
