package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas size of the readout in pixels, before on-screen scaling.
const (
	CanvasWidth  = 96
	CanvasHeight = 18
)

var (
	textColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	background = color.RGBA{A: 140}
)

// RasterizeText draws s onto dst with the fixed 7x13 face, replacing
// previous content. Text beyond the canvas is clipped.
func RasterizeText(dst *image.RGBA, s string) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P(3, (CanvasHeight+face.Metrics().Ascent.Ceil()-face.Metrics().Descent.Ceil())/2),
	}
	d.DrawString(s)
}

// TextWidth is the advance of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
