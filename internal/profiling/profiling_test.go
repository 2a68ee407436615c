package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances by step on every read.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestTrackAccumulates(t *testing.T) {
	p := New()
	p.now = fakeClock(time.Millisecond)

	p.Track("renderer.Render")()
	p.Track("renderer.Render")()
	p.Track("fractal.Tick")()

	snap := p.Snapshot()
	assert.Equal(t, 2*time.Millisecond, snap["renderer.Render"])
	assert.Equal(t, time.Millisecond, snap["fractal.Tick"])
}

func TestResetFrame(t *testing.T) {
	p := New()
	p.Track("a")()
	p.ResetFrame()
	assert.Empty(t, p.Snapshot())
}

func TestTopN(t *testing.T) {
	p := New()
	p.now = fakeClock(time.Millisecond)
	p.Track("b")()
	p.Track("a")()
	p.Track("c")()
	p.Track("c")()

	assert.Equal(t, "c:2ms, a:1ms", p.TopN(2))
	assert.Equal(t, "c:2ms, a:1ms, b:1ms", p.TopN(10))
	assert.Equal(t, "", New().TopN(3))
}
