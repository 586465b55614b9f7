package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HandSketch/internal/geom"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cols, err := cfg.Colors()
	require.NoError(t, err)
	assert.Equal(t, []geom.Color{geom.Red, geom.Blue}, cols)
	assert.Equal(t, mgl32.Vec2{0.6, 0.4}, cfg.DrawingSurface().Scale)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handsketch.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[drawing]
touch_distance = 0.01
palette = ["#00ff00", "#000000"]

[storage]
enabled = false

[pose_feed]
max_age = "250ms"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, cfg.Drawing.TouchDistance, 1e-7)
	assert.InDelta(t, 0.005, cfg.Drawing.MinPointSpacing, 1e-7)
	assert.False(t, cfg.Storage.Enabled)
	age, err := cfg.PoseFeed.Age()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, age)

	cols, err := cfg.Colors()
	require.NoError(t, err)
	assert.Equal(t, geom.Green, cols[0])
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[drawing]\npalette = [\"#nothex\"]\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "palette")

	require.NoError(t, os.WriteFile(path, []byte("[drawing\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"touch":   func(c *Config) { c.Drawing.TouchDistance = 0 },
		"points":  func(c *Config) { c.Drawing.MaxPointsPerStroke = 0 },
		"strokes": func(c *Config) { c.Drawing.MaxActiveStrokes = 0 },
		"pool":    func(c *Config) { c.Drawing.PoolCapacity = -1 },
		"palette": func(c *Config) { c.Drawing.Palette = nil },
		"surface": func(c *Config) { c.Surface.Width = 0 },
		"press":   func(c *Config) { c.Panel.PressDepth = 0 },
		"storage": func(c *Config) { c.Storage.Path = "" },
		"max_age": func(c *Config) { c.PoseFeed.MaxAge = "soon" },
		"hand":    func(c *Config) { c.Drawing.Hand = "lefy" },
		"panel":   func(c *Config) { c.Panel.Hand = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHands(t *testing.T) {
	cfg := Default()
	cfg.Drawing.Hand = "left"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, geom.Left, cfg.DrawingHand())
	assert.Equal(t, geom.Right, cfg.PanelHand())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := Default()
	cfg.Drawing.MaxActiveStrokes = 12
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Drawing.MaxActiveStrokes)
}
