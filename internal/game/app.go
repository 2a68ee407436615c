package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fractal-room/internal/audio"
	"fractal-room/internal/config"
	"fractal-room/internal/fractal"
	"fractal-room/internal/graphics/renderables/meshes"
	"fractal-room/internal/graphics/renderables/overlay"
	"fractal-room/internal/graphics/renderables/volume"
	"fractal-room/internal/graphics/renderer"
	"fractal-room/internal/input"
	"fractal-room/internal/profiling"
	"fractal-room/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"
)

// ErrNotReady is returned by Run before a successful Initialize.
var ErrNotReady = errors.New("game: app is not ready")

type State int

const (
	StatePending State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	msaaSamples   = 4
	slowFrame     = 16 * time.Millisecond
	slowFrameTopN = 5
)

// App owns the window, the scene and the frame loop.
type App struct {
	cfg    *config.Config
	window *glfw.Window
	input  *input.Manager
	state  State

	renderer *renderer.Renderer
	meshes   *meshes.Meshes
	overlay  *overlay.Overlay
	sim      *Simulation

	track *audio.Track
	music audio.Player

	profiler *profiling.Profiler
	limiter  *FPSLimiter
	fps      *FPSCounter
	lastTime time.Time
}

func NewApp(cfg *config.Config, window *glfw.Window, im *input.Manager) *App {
	return &App{
		cfg:      cfg,
		window:   window,
		input:    im,
		state:    StatePending,
		profiler: profiling.New(),
		limiter:  NewFPSLimiter(),
		fps:      NewFPSCounter(),
	}
}

func (a *App) State() State {
	return a.state
}

// Simulation is nil until Initialize succeeds.
func (a *App) Simulation() *Simulation {
	return a.sim
}

// Initialize loads assets, builds the renderers, the fractal and the
// camera rig. It moves the app to StateReady, or to StateFailed and
// returns the cause. It must run on the thread owning the GL context.
func (a *App) Initialize(ctx context.Context) error {
	if a.state != StatePending {
		return fmt.Errorf("game: initialize in state %s", a.state)
	}
	if err := a.initialize(ctx); err != nil {
		a.state = StateFailed
		log.Error().Err(err).Msg("Initialization failed")
		return err
	}
	a.state = StateReady
	return nil
}

func (a *App) initialize(ctx context.Context) error {
	log.Info().Msg("Loading...")
	perf := a.cfg.Performance
	log.Info().
		Float32("hw_scale", perf.HWScale).
		Bool("antialias", perf.Antialias).
		Bool("hdr", perf.HDR).
		Bool("glow", perf.Glow).
		Bool("shadows", perf.Shadows).
		Msg("Performance settings")

	assets, err := loadAssets(ctx, a.cfg.Assets)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	a.track = assets.track
	log.Info().Int("nodes", len(assets.meshes)).Bool("music", assets.track != nil).Msg("All resources loaded!")

	shaders := a.cfg.Assets.Path(a.cfg.Assets.Shaders)
	meshR := meshes.NewMeshes(shaders)
	volR := volume.NewVolume(shaders)
	a.overlay = overlay.NewOverlay(shaders)

	w, h := a.window.GetFramebufferSize()
	r, err := renderer.NewRenderer(w, h, rendererOptions(perf, shaders), meshR, volR, a.overlay)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	sc := scene.New()
	r.SetClearColor(sc.ClearColor)
	if err := sc.Populate(assets.meshes, perf.Shadows); err != nil {
		r.Dispose()
		return err
	}
	sc.AddEnvironment()

	vol, err := fractal.New(a.cfg.Fractal.Name, mgl32.Vec3(a.cfg.Fractal.BBox), volR)
	if err != nil {
		r.Dispose()
		return err
	}
	vol.Step = a.cfg.Fractal.RotationStep

	rg, err := NewRig(a.cfg.Camera)
	if err != nil {
		r.Dispose()
		return err
	}

	// no headset runtime is bound; the scene stays on the desktop
	log.Warn().Msg("ERROR - No XR support.")

	a.renderer = r
	a.meshes = meshR
	a.sim = &Simulation{Rig: rg, Volume: vol, Scene: sc}
	log.Info().
		Int("meshes", len(sc.Meshes)).
		Int("grounds", len(sc.Grounds)).
		Int("shadow_casters", len(sc.ShadowCasters)).
		Str("camera", rg.Active().Name).
		Msg("Scene ready")
	return nil
}

func rendererOptions(perf config.Performance, shaderDir string) renderer.Options {
	opts := renderer.Options{
		HWScale:   perf.HWScale,
		HDR:       perf.HDR,
		Shadows:   perf.Shadows,
		Glow:      perf.Glow,
		ShaderDir: shaderDir,
	}
	if perf.Antialias {
		opts.Samples = msaaSamples
	}
	return opts
}

// Run drives the frame loop until the window closes or quit is pressed.
func (a *App) Run() error {
	if a.state != StateReady {
		return ErrNotReady
	}
	defer a.dispose()

	a.input.Attach(a.window)
	a.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if err := a.renderer.UpdateViewport(width, height); err != nil {
			log.Error().Err(err).Int("width", width).Int("height", height).Msg("Resize failed")
		}
	})
	a.window.SetRefreshCallback(func(w *glfw.Window) {
		a.render()
		w.SwapBuffers()
	})

	if a.track != nil {
		if err := a.music.Loop(a.track, a.cfg.Assets.Volume); err != nil {
			log.Warn().Err(err).Msg("Music disabled")
		}
	}

	log.Info().Msg("Running...")
	a.lastTime = time.Now()
	for !a.window.ShouldClose() {
		a.tick()
	}
	log.Info().Float64("elapsed", a.sim.Elapsed()).Msg("Stopped")
	return nil
}

func (a *App) tick() {
	a.profiler.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime).Seconds()
	a.lastTime = start

	glfw.PollEvents()

	stop := a.profiler.Track("simulation.Step")
	quit := a.sim.Step(dt, a.input)
	stop()
	if quit {
		a.window.SetShouldClose(true)
	}

	if fps, ok := a.fps.Frame(); ok {
		a.overlay.SetText(fmt.Sprintf("%d fps", fps))
	}

	stop = a.profiler.Track("renderer.Render")
	a.render()
	stop()

	stop = a.profiler.Track("window.SwapBuffers")
	a.window.SwapBuffers()
	stop()

	if d := time.Since(start); d > slowFrame {
		log.Warn().
			Dur("frame", d).
			Int("culled", a.meshes.Culled).
			Str("top", a.profiler.TopN(slowFrameTopN)).
			Msg("Slow frame")
	}

	a.input.PostUpdate()
	a.limiter.Wait(a.cfg.Window.FPSLimit)
}

func (a *App) render() {
	cam := a.sim.Rig.Active()
	ctx := renderer.RenderContext{
		Scene:  a.sim.Scene,
		Volume: a.sim.Volume,
		Eye:    cam.Position,
	}
	a.renderer.Render(ctx, cam.View())
}

func (a *App) dispose() {
	if err := a.music.Close(); err != nil {
		log.Warn().Err(err).Msg("Closing music")
	}
	a.renderer.Dispose()
}
