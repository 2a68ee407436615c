package overlay

import "github.com/go-gl/mathgl/mgl32"

const margin = 8

// rectNDC is the readout placement as (x, y, w, h) in normalized device
// coordinates, anchored top-left with a small margin.
func rectNDC(width, height int) mgl32.Vec4 {
	w := float32(CanvasWidth*scale) / float32(width) * 2
	h := float32(CanvasHeight*scale) / float32(height) * 2
	x := -1 + float32(margin)/float32(width)*2
	y := 1 - float32(margin)/float32(height)*2 - h
	return mgl32.Vec4{x, y, w, h}
}
