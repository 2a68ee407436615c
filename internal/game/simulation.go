package game

import (
	"fractal-room/internal/config"
	"fractal-room/internal/fractal"
	"fractal-room/internal/input"
	"fractal-room/internal/rig"
	"fractal-room/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"
)

// Simulation is the GL-free part of a frame: input to cameras, the
// camera envelope and the fractal parameters.
type Simulation struct {
	Rig    *rig.Rig
	Volume *fractal.Volume
	Scene  *scene.Scene

	elapsed float64
}

// NewRig builds the two room cameras: an orbit camera around the
// room and a free-roam camera in front of the fractal.
func NewRig(c config.Camera) (*rig.Rig, error) {
	orbit := rig.NewOrbit("camera1", 1.57, 1.45, 9, mgl32.Vec3{0, 0.5, 0})
	free := rig.NewFreeRoam("camera2", mgl32.Vec3{0, 0.15, 3}, mgl32.Vec3{0, 0.15, 0})
	return rig.New(rig.Envelope{MinY: c.MinY, MaxY: c.MaxY, MaxRadius: c.MaxRadius}, orbit, free)
}

// Step advances one frame. It reports whether the user asked to quit.
// Ordering matters: the envelope is applied before the eye position is
// pushed so the shader never sees an out-of-bounds eye.
func (s *Simulation) Step(dt float64, im *input.Manager) bool {
	if im.JustPressed(input.ActionQuit) {
		return true
	}
	if im.JustPressed(input.ActionCycleCamera) {
		name := s.Rig.Cycle()
		log.Info().Msgf("Current camera: [%d] %s", s.Rig.ActiveIndex(), name)
	}

	cam := s.Rig.Active()
	if im.IsActive(input.ActionDrag) {
		dx, dy := im.MouseDelta()
		cam.Drag(dx, dy)
		cam.Look(dx, dy)
	}
	if notches := im.Scroll(); notches != 0 {
		cam.Zoom(notches)
	}
	cam.Move(
		im.Axis(input.ActionMoveForward, input.ActionMoveBackward),
		im.Axis(input.ActionMoveRight, input.ActionMoveLeft),
		im.Axis(input.ActionMoveUp, input.ActionMoveDown),
	)

	s.Rig.ApplyConstraints()

	s.Volume.Advance()
	s.elapsed += dt
	s.Volume.SetTime(float32(s.elapsed))
	s.Volume.Tick(s.Scene.Sun.Direction, s.Rig.Active().Position)
	return false
}

// Elapsed is the simulated time in seconds.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}
