package config

import (
	"fmt"
	"strings"

	"github.com/plotj/labyrinth/internal/labyrinth"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // keep whatever the file says
)

// presetTuning holds the maze size and time limit of a preset.
type presetTuning struct {
	width, height int
	limitSeconds  float64
}

var presets = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {width: 31, height: 21, limitSeconds: 90},
	DifficultyNormal: {width: labyrinth.DefaultGridWidth, height: labyrinth.DefaultGridHeight, limitSeconds: labyrinth.DefaultTimeLimit},
	DifficultyHard:   {width: 51, height: 37, limitSeconds: 45},
}

// ParsePreset converts a flag value to a preset. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset leaves the configuration untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// The canvas grows when a larger maze would not fit it.
func ApplyPreset(cfg *LabyrinthConfig, preset DifficultyPreset) {
	tuning, ok := presets[preset]
	if !ok {
		return
	}

	// Keep at least the current cell size.
	cs := 1
	if cfg.Maze.Width > 0 && cfg.Canvas.Width/cfg.Maze.Width > 1 {
		cs = cfg.Canvas.Width / cfg.Maze.Width
	}

	cfg.Maze.Width = tuning.width
	cfg.Maze.Height = tuning.height
	cfg.Timer.LimitSeconds = tuning.limitSeconds

	if cfg.Canvas.Width < tuning.width*cs {
		cfg.Canvas.Width = tuning.width * cs
	}
	cs = cfg.Canvas.Width / tuning.width
	if cfg.Canvas.Height < tuning.height*cs {
		cfg.Canvas.Height = tuning.height * cs
	}
}
