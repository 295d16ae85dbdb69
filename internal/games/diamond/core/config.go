package core

import (
	"errors"
	"fmt"
	"time"
)

// MaxGemTypes keeps every color printable as a letter in the grid string form.
const MaxGemTypes = 26

// Config is the construction-time configuration of a board.
// Pixel values describe the board surface; speeds are in metres per second.
type Config struct {
	Rows     int
	Cols     int
	GemTypes int

	GemWidth  int
	GemHeight int
	OriginX   int
	OriginY   int
	Width     int
	Height    int

	TotalTime time.Duration

	PixelsPerMeter float64
	SwapSpeed      float64 // m/s, constant
	FallSpeed      float64 // m/s, initial
	Gravity        float64 // m/s²
}

// DefaultConfig returns the classic 8x8 one-minute board.
func DefaultConfig() Config {
	return Config{
		Rows:           8,
		Cols:           8,
		GemTypes:       5,
		GemWidth:       35,
		GemHeight:      35,
		OriginX:        315,
		OriginY:        95,
		Width:          360,
		Height:         352,
		TotalTime:      60 * time.Second,
		PixelsPerMeter: 45,
		SwapSpeed:      4,
		FallSpeed:      4,
		Gravity:        9.81,
	}
}

// Validate checks that a board can be built from the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Rows < 3 || c.Cols < 3 {
		errs = append(errs, fmt.Errorf("board must be at least 3x3, got %dx%d", c.Rows, c.Cols))
	}
	if c.GemTypes < 3 || c.GemTypes > MaxGemTypes {
		errs = append(errs, fmt.Errorf("gem types must be in [3, %d], got %d", MaxGemTypes, c.GemTypes))
	}
	if c.GemWidth <= 0 || c.GemHeight <= 0 {
		errs = append(errs, fmt.Errorf("gem size must be positive, got %dx%d", c.GemWidth, c.GemHeight))
	}
	if c.Cols > 0 && c.Width < c.Cols*c.GemWidth {
		errs = append(errs, fmt.Errorf("board width %d cannot fit %d gems of width %d", c.Width, c.Cols, c.GemWidth))
	}
	if c.Rows > 0 && c.Height < c.Rows*c.GemHeight {
		errs = append(errs, fmt.Errorf("board height %d cannot fit %d gems of height %d", c.Height, c.Rows, c.GemHeight))
	}
	if c.TotalTime <= 0 {
		errs = append(errs, errors.New("total time must be positive"))
	}
	if c.PixelsPerMeter <= 0 || c.SwapSpeed <= 0 || c.FallSpeed < 0 || c.Gravity <= 0 {
		errs = append(errs, errors.New("physics values must be positive"))
	}
	return errors.Join(errs...)
}

const (
	minFrameMillis = 1
	maxFrameMillis = 100
)

// ClampFrameTime bounds a frame delta to the range the simulation is stable in.
func ClampFrameTime(ms int) int {
	if ms < minFrameMillis {
		return minFrameMillis
	}
	if ms > maxFrameMillis {
		return maxFrameMillis
	}
	return ms
}
