package game

import "time"

// FPSCounter counts frames and reports the rate once per second.
type FPSCounter struct {
	frames int
	last   time.Time
	now    func() time.Time
}

func NewFPSCounter() *FPSCounter {
	c := &FPSCounter{now: time.Now}
	c.last = c.now()
	return c
}

// Frame records one frame. When at least a second has passed since the
// last report it returns the frame rate over that window and true.
func (c *FPSCounter) Frame() (int, bool) {
	c.frames++
	now := c.now()
	elapsed := now.Sub(c.last)
	if elapsed < time.Second {
		return 0, false
	}
	fps := int(float64(c.frames)/elapsed.Seconds() + 0.5)
	c.frames = 0
	c.last = now
	return fps, true
}
