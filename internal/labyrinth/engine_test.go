package labyrinth

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/plotj/labyrinth/internal/maze"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(t *testing.T, seed int64) (*Engine, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	e, err := New(DefaultConfig(), WithSeed(seed), WithClock(clock))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e, clock
}

// cellStep is the input magnitude that moves exactly one cell with the
// default speed divisor.
const cellStep = DefaultSpeedDivisor

func TestNewDefaults(t *testing.T) {
	e, _ := newTestEngine(t, 1)

	if e.CellSize() != 15 {
		t.Errorf("CellSize() = %d, expected 15", e.CellSize())
	}
	if e.Speed() != 15.0/8 {
		t.Errorf("Speed() = %v, expected %v", e.Speed(), 15.0/8)
	}

	x, y := e.Player()
	if x != 22.5 || y != 22.5 {
		t.Errorf("Player() = (%v, %v), expected (22.5, 22.5)", x, y)
	}
	if e.PlayerCell() != maze.C(1, 1) {
		t.Errorf("PlayerCell() = %v, expected (1,1)", e.PlayerCell())
	}
	if e.State() != Idle {
		t.Errorf("State() = %v, expected Idle", e.State())
	}
	if e.IsStarted() || e.IsGameOver() || e.DidWin() {
		t.Error("new engine should be idle")
	}
	if e.TimeRemaining() != DefaultTimeLimit {
		t.Errorf("TimeRemaining() = %v, expected %v", e.TimeRemaining(), DefaultTimeLimit)
	}
	if e.Grid().Width() != 41 || e.Grid().Height() != 31 {
		t.Errorf("grid = %dx%d, expected 41x31", e.Grid().Width(), e.Grid().Height())
	}
}

func TestNewInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"even grid width", func(c *Config) { c.GridWidth = 40 }},
		{"even grid height", func(c *Config) { c.GridHeight = 30 }},
		{"grid too small", func(c *Config) { c.GridWidth, c.GridHeight = 3, 3 }},
		{"zero canvas", func(c *Config) { c.CanvasWidth = 0 }},
		{"canvas narrower than grid", func(c *Config) { c.CanvasWidth = 20 }},
		{"grid taller than canvas", func(c *Config) { c.CanvasHeight = 100 }},
		{"zero time limit", func(c *Config) { c.TimeLimit = 0 }},
		{"negative player size", func(c *Config) { c.PlayerSize = -1 }},
		{"zero speed divisor", func(c *Config) { c.SpeedDivisor = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			e, err := New(cfg, WithSeed(1))
			if err == nil {
				t.Fatal("New() should fail")
			}
			if e != nil {
				t.Error("engine should be nil on error")
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("error %v should wrap ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestInvalidDimensionsKeepCause(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridWidth = 40

	_, err := New(cfg)
	if !errors.Is(err, maze.ErrInvalidDimensions) {
		t.Errorf("error %v should also wrap maze.ErrInvalidDimensions", err)
	}
}

func TestNewWithSeed(t *testing.T) {
	a, err := NewWithSeed(640, 480, 42)
	if err != nil {
		t.Fatalf("NewWithSeed() failed: %v", err)
	}
	b, err := NewWithSeed(640, 480, 42)
	if err != nil {
		t.Fatalf("NewWithSeed() failed: %v", err)
	}
	if !a.Grid().Equal(b.Grid()) {
		t.Error("same seed should produce the same maze")
	}

	if _, err := NewWithSeed(30, 480, 42); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewWithSeed(30, 480) error = %v, expected ErrInvalidConfiguration", err)
	}
}

func TestWithRandMatchesWithSeed(t *testing.T) {
	seeded, err := New(DefaultConfig(), WithSeed(9))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	injected, err := New(DefaultConfig(), WithRand(maze.NewRand(9)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if !seeded.Grid().Equal(injected.Grid()) {
		t.Error("an injected source with the same seed should produce the same maze")
	}
}

func TestStartTransitions(t *testing.T) {
	e, clock := newTestEngine(t, 1)

	e.Start()
	if e.State() != Running || !e.IsStarted() {
		t.Fatalf("State() = %v, expected Running", e.State())
	}

	// Second Start must not reset the clock reference.
	clock.Advance(2 * time.Second)
	e.Start()
	e.Update()
	if got := e.TimeRemaining(); got != DefaultTimeLimit-2 {
		t.Errorf("TimeRemaining() = %v, expected %v", got, DefaultTimeLimit-2)
	}
}

func TestIdleIgnoresMoveAndUpdate(t *testing.T) {
	e, clock := newTestEngine(t, 1)
	before := e.Snapshot()

	e.Move(cellStep, 0)
	e.Move(0, cellStep)
	clock.Advance(10 * time.Second)
	e.Update()

	if e.Snapshot() != before {
		t.Errorf("Snapshot() = %+v, expected %+v", e.Snapshot(), before)
	}
}

func TestCountdownMonotonic(t *testing.T) {
	e, clock := newTestEngine(t, 1)
	e.Start()

	prev := e.TimeRemaining()
	steps := []time.Duration{
		16 * time.Millisecond,
		0,
		250 * time.Millisecond,
		3 * time.Second,
		33 * time.Millisecond,
		12 * time.Second,
	}
	for _, d := range steps {
		clock.Advance(d)
		e.Update()

		got := e.TimeRemaining()
		if got > prev {
			t.Fatalf("TimeRemaining() went up: %v -> %v", prev, got)
		}
		if math.Abs((prev-got)-d.Seconds()) > 1e-9 {
			t.Errorf("TimeRemaining() dropped by %v, expected %v", prev-got, d.Seconds())
		}
		prev = got
	}
	if e.State() != Running {
		t.Errorf("State() = %v, expected Running", e.State())
	}
}

func TestCountdownFrameRateIndependent(t *testing.T) {
	fast, fastClock := newTestEngine(t, 1)
	slow, slowClock := newTestEngine(t, 1)
	fast.Start()
	slow.Start()

	for i := 0; i < 60; i++ {
		fastClock.Advance(50 * time.Millisecond)
		fast.Update()
	}
	for i := 0; i < 3; i++ {
		slowClock.Advance(time.Second)
		slow.Update()
	}

	if math.Abs(fast.TimeRemaining()-slow.TimeRemaining()) > 1e-9 {
		t.Errorf("fast = %v, slow = %v, expected equal", fast.TimeRemaining(), slow.TimeRemaining())
	}
}

func TestClockGoingBackwards(t *testing.T) {
	e, clock := newTestEngine(t, 1)
	e.Start()

	clock.Advance(-5 * time.Second)
	e.Update()
	if e.TimeRemaining() != DefaultTimeLimit {
		t.Errorf("TimeRemaining() = %v, expected %v", e.TimeRemaining(), DefaultTimeLimit)
	}
}

func TestTimeoutLoses(t *testing.T) {
	e, clock := newTestEngine(t, 1)
	e.Start()

	clock.Advance(59 * time.Second)
	e.Update()
	if e.State() != Running {
		t.Fatalf("State() = %v, expected Running", e.State())
	}

	clock.Advance(5 * time.Second)
	e.Update()

	if e.State() != Lost {
		t.Errorf("State() = %v, expected Lost", e.State())
	}
	if e.TimeRemaining() != 0 {
		t.Errorf("TimeRemaining() = %v, expected 0", e.TimeRemaining())
	}
	if !e.IsGameOver() || e.DidWin() {
		t.Error("lost engine should be over and not won")
	}
}

func TestTerminalIdempotence(t *testing.T) {
	lost, clock := newTestEngine(t, 3)
	lost.Start()
	clock.Advance(2 * time.Minute)
	lost.Update()

	won, _ := newTestEngine(t, 3)
	won.Start()
	walkToExit(t, won)

	for _, e := range []*Engine{lost, won} {
		before := e.Snapshot()
		if !before.State.Terminal() {
			t.Fatalf("State() = %v, expected terminal", before.State)
		}

		e.Start()
		e.Move(-cellStep, 0)
		e.Move(0, -cellStep)
		e.Update()

		if e.Snapshot() != before {
			t.Errorf("%v engine changed: %+v -> %+v", before.State, before, e.Snapshot())
		}
	}
}

// walkToExit drives the player cell by cell along the shortest route.
func walkToExit(t *testing.T, e *Engine) {
	t.Helper()

	route := e.Grid().ShortestPath()
	if route == nil {
		t.Fatal("no route to exit")
	}
	for i := 1; i < len(route); i++ {
		dx := float64(route[i].X - route[i-1].X)
		dy := float64(route[i].Y - route[i-1].Y)
		e.Move(dx*cellStep, dy*cellStep)

		if e.PlayerCell() != route[i] {
			t.Fatalf("step %d: PlayerCell() = %v, expected %v", i, e.PlayerCell(), route[i])
		}
		if i < len(route)-1 && e.State() != Running {
			t.Fatalf("step %d: State() = %v before reaching exit", i, e.State())
		}
	}
}

func TestScriptedWinFreezesTime(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 17, 99} {
		e, clock := newTestEngine(t, seed)
		e.Start()

		clock.Advance(1500 * time.Millisecond)
		e.Update()

		walkToExit(t, e)

		if e.State() != Won || !e.DidWin() || !e.IsGameOver() {
			t.Fatalf("seed %d: State() = %v, expected Won", seed, e.State())
		}

		frozen := e.TimeRemaining()
		clock.Advance(30 * time.Second)
		e.Update()
		if e.TimeRemaining() != frozen {
			t.Errorf("seed %d: TimeRemaining() = %v after win, expected %v", seed, e.TimeRemaining(), frozen)
		}
		if frozen != DefaultTimeLimit-1.5 {
			t.Errorf("seed %d: frozen time = %v, expected %v", seed, frozen, DefaultTimeLimit-1.5)
		}
	}
}

func TestCorridorScenario(t *testing.T) {
	e, err := New(DefaultConfig(), WithSeed(1), WithClock(newFakeClock()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.Start()

	g := e.Grid()
	cs := float64(e.CellSize())
	step := 5 * e.Speed()
	half := DefaultPlayerSize / 2

	x, y0 := e.Player()
	blocked := false
	for i := 0; i < 2*g.Width(); i++ {
		e.Move(5, 0)
		got, y := e.Player()

		if y != y0 {
			t.Fatalf("move %d: y = %v, expected %v", i, y, y0)
		}

		candidate := x + step
		var expected float64
		if !blocked && g.IsPath(int(math.Floor(candidate/cs)), 1) {
			expected = candidate
		} else {
			blocked = true
			edge := math.Floor(x/cs)*cs + cs - half
			expected = math.Max(x, edge)
		}

		if got != expected {
			t.Fatalf("move %d: x = %v, expected %v", i, got, expected)
		}
		if blocked && got < x {
			t.Fatalf("move %d: x moved backwards %v -> %v", i, x, got)
		}
		x = got
	}

	if !blocked {
		t.Fatal("corridor never reached a wall")
	}

	// Once against the wall x no longer advances.
	e.Move(5, 0)
	if got, _ := e.Player(); got != x {
		t.Errorf("x = %v after hitting wall, expected %v", got, x)
	}
}

func TestCollisionNeverEntersWall(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs := []float64{-5, -1, 0, 1, 5, 8, -8, 2.5}

	for _, seed := range []int64{1, 5, 11} {
		e, _ := newTestEngine(t, seed)
		e.Start()

		for i := 0; i < 3000 && e.State() == Running; i++ {
			dx := inputs[rng.Intn(len(inputs))]
			dy := inputs[rng.Intn(len(inputs))]
			beforeX, beforeY := e.Player()

			e.Move(dx, dy)
			x, y := e.Player()

			if !e.Grid().IsPath(e.PlayerCell().X, e.PlayerCell().Y) {
				t.Fatalf("seed %d move %d: player inside wall at %v", seed, i, e.PlayerCell())
			}
			if dx == 0 && x != beforeX {
				t.Fatalf("seed %d move %d: x changed without x input", seed, i)
			}
			if dy == 0 && y != beforeY {
				t.Fatalf("seed %d move %d: y changed without y input", seed, i)
			}
			if dx > 0 && x < beforeX || dx < 0 && x > beforeX {
				t.Fatalf("seed %d move %d: x moved against input %v: %v -> %v", seed, i, dx, beforeX, x)
			}
			if dy > 0 && y < beforeY || dy < 0 && y > beforeY {
				t.Fatalf("seed %d move %d: y moved against input %v: %v -> %v", seed, i, dy, beforeY, y)
			}
		}
	}
}

func TestLongStepStopsAtWall(t *testing.T) {
	e, _ := newTestEngine(t, 1)
	if e.Grid().IsPath(2, 1) {
		t.Fatal("seed 1 should wall off (2,1)")
	}
	e.Start()

	// Two cells right would land on the open lattice cell (3,1).
	e.Move(2*cellStep, 0)
	if got := e.PlayerCell(); got != maze.C(1, 1) {
		t.Fatalf("PlayerCell() = %v, expected (1,1) in front of the wall", got)
	}
	if x, _ := e.Player(); x != 30-DefaultPlayerSize/2 {
		t.Errorf("x = %v, expected %v", x, 30-DefaultPlayerSize/2)
	}
}

// walkable reports whether every cell from a to b on one row or column is PATH.
func walkable(g *maze.Grid, a, b maze.Coord) bool {
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	for c := a; ; c = c.Add(dx, dy) {
		if !g.IsPath(c.X, c.Y) {
			return false
		}
		if c == b {
			return true
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func TestLongStepsNeverCrossWalls(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inputs := []float64{-40, -24, -16, 0, 16, 24, 40}

	for _, seed := range []int64{1, 2, 9} {
		e, _ := newTestEngine(t, seed)
		e.Start()

		for i := 0; i < 2000 && e.State() == Running; i++ {
			dx := inputs[rng.Intn(len(inputs))]
			dy := inputs[rng.Intn(len(inputs))]
			before := e.PlayerCell()

			e.Move(dx, dy)
			after := e.PlayerCell()

			corner := maze.C(after.X, before.Y)
			if !walkable(e.Grid(), before, corner) || !walkable(e.Grid(), corner, after) {
				t.Fatalf("seed %d move %d: %v -> %v passed through a wall", seed, i, before, after)
			}
		}
	}
}

func TestBlockedAxisSlides(t *testing.T) {
	e, _ := newTestEngine(t, 1)
	e.Start()

	// (0,1) is border wall: moving left from the start cell clamps to the inset.
	e.Move(-cellStep, 0)
	x, y := e.Player()
	if x != 15+DefaultPlayerSize/2 {
		t.Errorf("x = %v, expected %v", x, 15+DefaultPlayerSize/2)
	}
	if y != 22.5 {
		t.Errorf("y = %v, expected 22.5", y)
	}

	// (1,0) is border wall too.
	e.Move(0, -cellStep)
	_, y = e.Player()
	if y != 15+DefaultPlayerSize/2 {
		t.Errorf("y = %v, expected %v", y, 15+DefaultPlayerSize/2)
	}
}

func TestSnapshot(t *testing.T) {
	e, clock := newTestEngine(t, 1)
	e.Start()
	clock.Advance(time.Second)
	e.Update()

	s := e.Snapshot()
	x, y := e.Player()
	if s.State != Running || s.X != x || s.Y != y || s.Col != 1 || s.Row != 1 {
		t.Errorf("Snapshot() = %+v", s)
	}
	if s.TimeLeft != DefaultTimeLimit-1 {
		t.Errorf("Snapshot().TimeLeft = %v, expected %v", s.TimeLeft, DefaultTimeLimit-1)
	}
	if s.CellSize != 15 {
		t.Errorf("Snapshot().CellSize = %d, expected 15", s.CellSize)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Idle, "Idle"},
		{Running, "Running"},
		{Won, "Won"},
		{Lost, "Lost"},
		{State(42), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
