package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyEdges(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyC, glfw.Press)
	assert.True(t, m.JustPressed(ActionCycleCamera))
	assert.True(t, m.IsActive(ActionCycleCamera))

	m.PostUpdate()
	assert.False(t, m.JustPressed(ActionCycleCamera))
	assert.True(t, m.IsActive(ActionCycleCamera))

	// repeat while held is not a new press
	m.HandleKeyEvent(glfw.KeyC, glfw.Repeat)
	assert.False(t, m.JustPressed(ActionCycleCamera))

	m.HandleKeyEvent(glfw.KeyC, glfw.Release)
	assert.True(t, m.JustReleased(ActionCycleCamera))
	assert.False(t, m.IsActive(ActionCycleCamera))
}

func TestUnboundKeyIgnored(t *testing.T) {
	m := NewManager()
	m.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	for a := Action(0); a < ActionCount; a++ {
		assert.False(t, m.IsActive(a))
	}
	assert.False(t, m.IsActive(ActionCount))
	assert.False(t, m.JustPressed(-1))
}

func TestRebind(t *testing.T) {
	m := NewManager()
	m.UnbindKey(glfw.KeyC)
	m.BindKey(glfw.KeyTab, ActionCycleCamera)

	m.HandleKeyEvent(glfw.KeyC, glfw.Press)
	assert.False(t, m.JustPressed(ActionCycleCamera))
	m.HandleKeyEvent(glfw.KeyTab, glfw.Press)
	assert.True(t, m.JustPressed(ActionCycleCamera))
}

func TestAxis(t *testing.T) {
	m := NewManager()
	assert.Equal(t, float32(0), m.Axis(ActionMoveForward, ActionMoveBackward))

	m.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.Equal(t, float32(1), m.Axis(ActionMoveForward, ActionMoveBackward))

	m.HandleKeyEvent(glfw.KeyS, glfw.Press)
	assert.Equal(t, float32(0), m.Axis(ActionMoveForward, ActionMoveBackward))

	m.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.Equal(t, float32(-1), m.Axis(ActionMoveForward, ActionMoveBackward))
}

func TestMouseDeltaAndScroll(t *testing.T) {
	m := NewManager()

	m.HandleCursor(100, 100)
	dx, dy := m.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	m.HandleCursor(110, 95)
	m.HandleCursor(115, 90)
	m.HandleScroll(1)
	m.HandleScroll(0.5)
	dx, dy = m.MouseDelta()
	assert.Equal(t, 15.0, dx)
	assert.Equal(t, -10.0, dy)
	assert.Equal(t, 1.5, m.Scroll())

	m.PostUpdate()
	dx, dy = m.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Zero(t, m.Scroll())

	m.HandleCursor(120, 90)
	dx, _ = m.MouseDelta()
	assert.Equal(t, 5.0, dx)
}

func TestMouseButtonDrag(t *testing.T) {
	m := NewManager()
	m.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	assert.True(t, m.IsActive(ActionDrag))
	m.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Release)
	assert.False(t, m.IsActive(ActionDrag))
	assert.True(t, m.JustReleased(ActionDrag))
}
