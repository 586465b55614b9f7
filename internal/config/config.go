// Package config loads HandSketch tuning constants from a TOML file.
// Values are read once at start-up and never change while running.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"HandSketch/internal/geom"
)

// Drawing tunes stroke capture.
type Drawing struct {
	TouchDistance      float32  `toml:"touch_distance"`
	MinPointSpacing    float32  `toml:"min_point_spacing"`
	MaxPointsPerStroke int      `toml:"max_points_per_stroke"`
	MaxActiveStrokes   int      `toml:"max_active_strokes"`
	PoolCapacity       int      `toml:"pool_capacity"`
	Palette            []string `toml:"palette"`
	Hand               string   `toml:"hand"`
}

// Surface places the drawing quad in the world, in metres.
type Surface struct {
	Position [3]float32 `toml:"position"`
	Width    float32    `toml:"width"`
	Height   float32    `toml:"height"`
}

// Panel tunes the finger-driven UI panel.
type Panel struct {
	PressDepth    float32    `toml:"press_depth"`
	HoverDistance float32    `toml:"hover_distance"`
	Position      [3]float32 `toml:"position"`
	Width         float32    `toml:"width"`
	Height        float32    `toml:"height"`
	Hand          string     `toml:"hand"`
}

// Storage controls where drawings are saved.
type Storage struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	PDFPath string `toml:"pdf_path"`
}

// PoseFeed configures the network pose ingest endpoint.
type PoseFeed struct {
	Listen    string `toml:"listen"`
	Advertise bool   `toml:"advertise"`
	MaxAge    string `toml:"max_age"`
}

// Age parses MaxAge. Poses older than this count as tracking loss.
func (p PoseFeed) Age() (time.Duration, error) {
	if p.MaxAge == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("pose_feed.max_age: %w", err)
	}
	if d < 0 {
		return 0, errors.New("pose_feed.max_age must not be negative")
	}
	return d, nil
}

type Config struct {
	Drawing  Drawing  `toml:"drawing"`
	Surface  Surface  `toml:"surface"`
	Panel    Panel    `toml:"panel"`
	Storage  Storage  `toml:"storage"`
	PoseFeed PoseFeed `toml:"pose_feed"`
}

// Default returns the stock tuning.
func Default() Config {
	return Config{
		Drawing: Drawing{
			TouchDistance:      0.008,
			MinPointSpacing:    0.005,
			MaxPointsPerStroke: 4000,
			MaxActiveStrokes:   200,
			PoolCapacity:       100,
			Palette:            []string{"#ff0000ff", "#0000ffff"},
			Hand:               "right",
		},
		Surface: Surface{
			Position: [3]float32{0, 1.2, 0.5},
			Width:    0.6,
			Height:   0.4,
		},
		Panel: Panel{
			PressDepth:    0.010,
			HoverDistance: 0.030,
			Position:      [3]float32{-0.45, 1.2, 0.5},
			Width:         0.2,
			Height:        0.3,
			Hand:          "right",
		},
		Storage: Storage{
			Enabled: true,
			Path:    "drawing.json",
			PDFPath: "drawing.pdf",
		},
		PoseFeed: PoseFeed{
			Listen:    ":8765",
			Advertise: true,
			MaxAge:    "100ms",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML, used to dump a starter file.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	d := c.Drawing
	switch {
	case d.TouchDistance <= 0:
		return errors.New("drawing.touch_distance must be positive")
	case d.MinPointSpacing < 0:
		return errors.New("drawing.min_point_spacing must not be negative")
	case d.MaxPointsPerStroke < 1:
		return errors.New("drawing.max_points_per_stroke must be at least 1")
	case d.MaxActiveStrokes < 1:
		return errors.New("drawing.max_active_strokes must be at least 1")
	case d.PoolCapacity < 0:
		return errors.New("drawing.pool_capacity must not be negative")
	case len(d.Palette) == 0:
		return errors.New("drawing.palette is empty")
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return errors.New("surface width and height must be positive")
	}
	p := c.Panel
	if p.PressDepth <= 0 || p.HoverDistance <= 0 {
		return errors.New("panel.press_depth and panel.hover_distance must be positive")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return errors.New("panel width and height must be positive")
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return errors.New("storage.path is required when storage is enabled")
	}
	if _, ok := geom.ParseHand(c.Drawing.Hand); !ok {
		return fmt.Errorf("drawing.hand must be \"left\" or \"right\", got %q", c.Drawing.Hand)
	}
	if _, ok := geom.ParseHand(p.Hand); !ok {
		return fmt.Errorf("panel.hand must be \"left\" or \"right\", got %q", p.Hand)
	}
	_, err := c.PoseFeed.Age()
	return err
}

// DrawingHand is the hand that draws. Call Validate first.
func (c Config) DrawingHand() geom.Hand {
	h, _ := geom.ParseHand(c.Drawing.Hand)
	return h
}

// PanelHand is the hand that operates the UI panel.
func (c Config) PanelHand() geom.Hand {
	h, _ := geom.ParseHand(c.Panel.Hand)
	return h
}

// Colors parses the palette.
func (c Config) Colors() ([]geom.Color, error) {
	out := make([]geom.Color, 0, len(c.Drawing.Palette))
	for _, s := range c.Drawing.Palette {
		col, err := geom.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("drawing.palette: %w", err)
		}
		out = append(out, col)
	}
	return out, nil
}

// DrawingSurface builds the world placement of the drawing quad.
func (c Config) DrawingSurface() geom.Surface {
	return geom.NewSurface(mgl32.Vec3(c.Surface.Position), c.Surface.Width, c.Surface.Height)
}

// PanelSurface builds the world placement of the UI panel.
func (c Config) PanelSurface() geom.Surface {
	return geom.NewSurface(mgl32.Vec3(c.Panel.Position), c.Panel.Width, c.Panel.Height)
}
