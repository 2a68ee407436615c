package overlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRasterizeTextDrawsGlyphs(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	RasterizeText(img, "")
	bg := img.RGBAAt(10, 9)
	assert.Equal(t, uint8(0), bg.R)

	RasterizeText(img, "60 fps")
	lit := 0
	for y := 0; y < CanvasHeight; y++ {
		for x := 0; x < CanvasWidth; x++ {
			if img.RGBAAt(x, y).R > 200 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 10)

	// redrawing clears old glyphs
	RasterizeText(img, "")
	for x := 0; x < CanvasWidth; x++ {
		assert.Equal(t, uint8(0), img.RGBAAt(x, CanvasHeight/2).R)
	}
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 7*6, TextWidth("60 fps"))
	assert.LessOrEqual(t, TextWidth("9999 fps")+3, CanvasWidth)
}

func TestRectNDC(t *testing.T) {
	r := rectNDC(900, 600)
	assert.InDelta(t, -1+16.0/900, r.X(), 1e-6)
	assert.InDelta(t, float32(CanvasWidth*scale)/900*2, r.Z(), 1e-6)
	// top edge sits one margin below the window top
	assert.InDelta(t, 1-16.0/600, r.Y()+r.W(), 1e-6)
}

func TestSetTextMarksDirty(t *testing.T) {
	o := NewOverlay("shaders")
	o.dirty = false
	o.SetText("60 fps")
	assert.True(t, o.dirty)
	assert.Equal(t, "60 fps", o.Text())

	o.dirty = false
	o.SetText("60 fps")
	assert.False(t, o.dirty)
}
