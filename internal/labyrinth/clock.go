package labyrinth

import (
	"math/rand"
	"time"

	"github.com/plotj/labyrinth/internal/maze"
)

// Clock supplies the current time to the countdown.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// Option customizes engine construction.
type Option func(*options)

type options struct {
	rng   *rand.Rand
	clock Clock
}

// WithSeed makes maze generation reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = maze.NewRand(seed)
	}
}

// WithRand supplies the random source used for maze generation.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithClock replaces the wall clock used by Start and Update.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}
