// Package config provides YAML-based board configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/diamond-mine/internal/core"
	engine "github.com/vovakirdan/diamond-mine/internal/games/diamond/core"
)

// DiamondConfig contains all configuration for a Diamond Mine board.
type DiamondConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Physics PhysicsConfig `yaml:"physics"`
	Timing  TimingConfig  `yaml:"timing"`
	Display DisplayConfig `yaml:"display"`
	Audio   AudioConfig   `yaml:"audio"`
}

// BoardConfig defines the grid and its virtual pixel surface.
type BoardConfig struct {
	Rows      int `yaml:"rows"`
	Cols      int `yaml:"cols"`
	GemTypes  int `yaml:"gem_types"`
	GemWidth  int `yaml:"gem_width"`
	GemHeight int `yaml:"gem_height"`
	OriginX   int `yaml:"origin_x"`
	OriginY   int `yaml:"origin_y"`
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
}

// PhysicsConfig defines swap and fall motion in metres.
type PhysicsConfig struct {
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	SwapSpeed      float64 `yaml:"swap_speed"`
	FallSpeed      float64 `yaml:"fall_speed"`
	Gravity        float64 `yaml:"gravity"`
}

// TimingConfig defines the round length and the frame delta clamp.
type TimingConfig struct {
	TotalSeconds int `yaml:"total_seconds"`
	MinFrameMs   int `yaml:"min_frame_ms"`
	MaxFrameMs   int `yaml:"max_frame_ms"`
}

// DisplayConfig defines how a tile maps onto terminal cells.
type DisplayConfig struct {
	TileCols int      `yaml:"tile_cols"`
	TileRows int      `yaml:"tile_rows"`
	Palette  []string `yaml:"palette"`
}

// AudioConfig defines the synthesized sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// Validate reports every problem with the configuration at once.
func (c DiamondConfig) Validate() error {
	var errs []error
	if err := c.ToEngine().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Timing.MinFrameMs <= 0 || c.Timing.MinFrameMs > c.Timing.MaxFrameMs {
		errs = append(errs, fmt.Errorf("frame clamp [%d, %d] ms is empty", c.Timing.MinFrameMs, c.Timing.MaxFrameMs))
	}
	if c.Display.TileCols < 3 || c.Display.TileRows < 1 {
		errs = append(errs, fmt.Errorf("tile must be at least 3x1 cells, got %dx%d", c.Display.TileCols, c.Display.TileRows))
	}
	if len(c.Display.Palette) < c.Board.GemTypes {
		errs = append(errs, fmt.Errorf("palette has %d colors for %d gem types", len(c.Display.Palette), c.Board.GemTypes))
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.Enabled && (c.Audio.SampleRate <= 0 || c.Audio.Volume < 0 || c.Audio.Volume > 1) {
		errs = append(errs, errors.New("audio needs a positive sample rate and a volume in [0, 1]"))
	}
	return errors.Join(errs...)
}

// ToEngine converts the configuration to the board simulation config.
func (c DiamondConfig) ToEngine() engine.Config {
	return engine.Config{
		Rows:           c.Board.Rows,
		Cols:           c.Board.Cols,
		GemTypes:       c.Board.GemTypes,
		GemWidth:       c.Board.GemWidth,
		GemHeight:      c.Board.GemHeight,
		OriginX:        c.Board.OriginX,
		OriginY:        c.Board.OriginY,
		Width:          c.Board.Width,
		Height:         c.Board.Height,
		TotalTime:      time.Duration(c.Timing.TotalSeconds) * time.Second,
		PixelsPerMeter: c.Physics.PixelsPerMeter,
		SwapSpeed:      c.Physics.SwapSpeed,
		FallSpeed:      c.Physics.FallSpeed,
		Gravity:        c.Physics.Gravity,
	}
}

// Palette resolves the configured gem colors.
func (c DiamondConfig) Palette() ([]core.Color, error) {
	out := make([]core.Color, 0, len(c.Display.Palette))
	for i, name := range c.Display.Palette {
		col, err := core.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		out = append(out, col)
	}
	return out, nil
}

// ClampFrame bounds a frame delta to the configured range.
func (c DiamondConfig) ClampFrame(ms int) int {
	return core.Clamp(ms, c.Timing.MinFrameMs, c.Timing.MaxFrameMs)
}
