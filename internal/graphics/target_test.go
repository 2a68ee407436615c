package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h   int
		scale  float32
		ww, wh int32
	}{
		{900, 600, 1, 900, 600},
		{900, 600, 2, 450, 300},
		{900, 600, 0.5, 1800, 1200},
		{1, 1, 4, 1, 1},
	}
	for _, tt := range tests {
		w, h := ScaledSize(tt.w, tt.h, tt.scale)
		assert.Equal(t, tt.ww, w)
		assert.Equal(t, tt.wh, h)
	}
}

func TestNewTargetSamples(t *testing.T) {
	assert.Equal(t, int32(0), NewTarget(1, false, -2).samples)
	assert.Equal(t, int32(4), NewTarget(1, true, 4).samples)
}
