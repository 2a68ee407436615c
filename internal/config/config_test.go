package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, float32(-0.9), c.Camera.MinY)
	assert.Equal(t, float32(15), c.Camera.MaxY)
	assert.Equal(t, float32(16), c.Camera.MaxRadius)
	assert.True(t, c.Performance.Glow)
	assert.False(t, c.Performance.Shadows)
}

func TestConfigsAreIndependent(t *testing.T) {
	a := Default()
	b := Default()
	a.Performance.Shadows = true
	a.Performance.HWScale = 2
	assert.False(t, b.Performance.Shadows)
	assert.Equal(t, float32(1), b.Performance.HWScale)
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("performance:\n  shadows: true\n  hw_scale: 1.5\ncamera:\n  max_radius: 20\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Performance.Shadows)
	assert.Equal(t, float32(1.5), c.Performance.HWScale)
	assert.Equal(t, float32(20), c.Camera.MaxRadius)
	// untouched keys keep defaults
	assert.Equal(t, float32(15), c.Camera.MaxY)
	assert.Equal(t, "menger", c.Fractal.Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Window.Title = "other"
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero hw scale":   func(c *Config) { c.Performance.HWScale = 0 },
		"inverted y":      func(c *Config) { c.Camera.MinY = 20 },
		"no radius":       func(c *Config) { c.Camera.MaxRadius = 0 },
		"flat bbox":       func(c *Config) { c.Fractal.BBox[1] = 0 },
		"negative fps":    func(c *Config) { c.Window.FPSLimit = -1 },
		"loud":            func(c *Config) { c.Assets.Volume = 2 },
		"no window width": func(c *Config) { c.Window.Width = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAssetPath(t *testing.T) {
	a := Default().Assets
	assert.Equal(t, filepath.Join("assets", "scenes", "base_scene.glb"), a.Path(a.Scene))
}
