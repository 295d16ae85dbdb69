package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyRelaxed DifficultyPreset = "relaxed"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyBlitz   DifficultyPreset = "blitz"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyRelaxed, DifficultyNormal, DifficultyBlitz}
}

// ParseDifficulty resolves a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyRelaxed, DifficultyNormal, DifficultyBlitz:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want relaxed, normal or blitz)", s)
	}
}

// ApplyDifficulty adjusts a loaded configuration for a preset.
// Normal leaves the configuration untouched.
func ApplyDifficulty(cfg *DiamondConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyRelaxed:
		// Fewer colors make runs more likely.
		cfg.Timing.TotalSeconds *= 2
		cfg.Board.GemTypes = max(3, cfg.Board.GemTypes-1)
	case DifficultyBlitz:
		cfg.Timing.TotalSeconds = max(10, cfg.Timing.TotalSeconds/2)
		cfg.Board.GemTypes = min(len(cfg.Display.Palette), cfg.Board.GemTypes+1)
		cfg.Physics.SwapSpeed *= 1.5
		cfg.Physics.Gravity *= 1.5
	}
}
