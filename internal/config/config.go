package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Performance holds the rendering cost toggles.
//
// HWScale is the hardware scaling level: 1 renders at window resolution,
// above 1 renders fewer pixels (faster), below 1 supersamples (slower).
type Performance struct {
	HWScale   float32 `yaml:"hw_scale"`
	Antialias bool    `yaml:"antialias"`
	HDR       bool    `yaml:"hdr"`
	Glow      bool    `yaml:"glow"`
	Shadows   bool    `yaml:"shadows"`
}

type Window struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	FPSLimit int    `yaml:"fps_limit"` // 0 disables the limiter
}

// Camera is the free-roam movement envelope.
type Camera struct {
	MinY      float32 `yaml:"min_y"`
	MaxY      float32 `yaml:"max_y"`
	MaxRadius float32 `yaml:"max_radius"`
}

type Fractal struct {
	Name         string     `yaml:"name"`
	BBox         [3]float32 `yaml:"bbox"`
	RotationStep float32    `yaml:"rotation_step"`
}

// Assets are resolved relative to Root.
type Assets struct {
	Root    string  `yaml:"root"`
	Scene   string  `yaml:"scene"`
	Shaders string  `yaml:"shaders"`
	Music   string  `yaml:"music"`
	Volume  float64 `yaml:"volume"`
	Play    bool    `yaml:"play_music"`
}

// Config is passed explicitly into setup; nothing here is process-wide.
type Config struct {
	Performance Performance `yaml:"performance"`
	Window      Window      `yaml:"window"`
	Camera      Camera      `yaml:"camera"`
	Fractal     Fractal     `yaml:"fractal"`
	Assets      Assets      `yaml:"assets"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Performance: Performance{
			HWScale:   1,
			Antialias: false,
			HDR:       false,
			Glow:      true,
			Shadows:   false,
		},
		Window: Window{
			Width:    900,
			Height:   600,
			Title:    "fractal-room",
			FPSLimit: 120,
		},
		Camera: Camera{
			MinY:      -0.9,
			MaxY:      15,
			MaxRadius: 16,
		},
		Fractal: Fractal{
			Name:         "menger",
			BBox:         [3]float32{3, 3, 3},
			RotationStep: 0.0001,
		},
		Assets: Assets{
			Root:    "assets",
			Scene:   "scenes/base_scene.glb",
			Shaders: "shaders",
			Music:   "audio/loop.mp3",
			Volume:  1,
			Play:    true,
		},
	}
}

// Load reads a YAML file on top of Default, so a partial file only
// overrides the keys it names.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports the first setting that would make setup fail later.
func (c *Config) Validate() error {
	switch {
	case c.Performance.HWScale <= 0:
		return fmt.Errorf("%w: hw_scale must be > 0, got %v", ErrInvalid, c.Performance.HWScale)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.FPSLimit < 0:
		return fmt.Errorf("%w: fps_limit must be >= 0", ErrInvalid)
	case c.Camera.MinY > c.Camera.MaxY:
		return fmt.Errorf("%w: camera min_y %v above max_y %v", ErrInvalid, c.Camera.MinY, c.Camera.MaxY)
	case c.Camera.MaxRadius <= 0:
		return fmt.Errorf("%w: camera max_radius must be > 0", ErrInvalid)
	case c.Fractal.BBox[0] <= 0 || c.Fractal.BBox[1] <= 0 || c.Fractal.BBox[2] <= 0:
		return fmt.Errorf("%w: fractal bbox %v", ErrInvalid, c.Fractal.BBox)
	case c.Assets.Volume < 0 || c.Assets.Volume > 1:
		return fmt.Errorf("%w: volume must be in [0,1]", ErrInvalid)
	}
	return nil
}

// Path joins an asset-relative path onto the asset root.
func (a Assets) Path(rel string) string {
	return filepath.Join(a.Root, rel)
}
