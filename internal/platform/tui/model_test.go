package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plotj/labyrinth/internal/config"
	"github.com/plotj/labyrinth/internal/core"
	labgame "github.com/plotj/labyrinth/internal/games/labyrinth"
	"github.com/plotj/labyrinth/internal/storage"
	"github.com/plotj/labyrinth/internal/wager"
)

const (
	testFee    = 50_000_000_000_000_000  // 0.05 ETH
	testPayout = 100_000_000_000_000_000 // 0.1 ETH
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	model  Model
	game   *labgame.Game
	clock  *fakeClock
	store  *storage.Store
	ledger *wager.Ledger
}

// newHarness builds a model on a real SQLite store. A negative bankroll
// leaves the ledger out entirely.
func newHarness(t *testing.T, mode string, bankroll int64) *harness {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := &harness{
		clock: &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		store: store,
	}
	if bankroll >= 0 {
		h.ledger, err = wager.New(context.Background(), store,
			wager.Config{EntryFee: testFee, Payout: testPayout, Bankroll: bankroll}, nil)
		if err != nil {
			t.Fatalf("wager.New() failed: %v", err)
		}
	}

	h.game = labgame.New(mode, config.DefaultLabyrinthConfig()).WithClock(h.clock)
	svc := Services{Store: store, Ledger: h.ledger, Player: "alice"}
	h.model = NewModel(h.game, svc, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})
	h.model.Init()
	return h
}

// send feeds a message to the model and keeps the result.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(r rune) tea.Cmd {
	if r == ' ' {
		return h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return h.send(runeKey(r))
}

// settle runs cmd and feeds every message it yields back into the model,
// except ticks.
func (h *harness) settle(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.settle(c)
		}
	case TickMsg:
	default:
		h.send(msg)
	}
}

func (h *harness) tick() {
	h.settle(h.send(TickMsg(h.clock.now)))
}

// win walks the shortest route to the exit one cell per move.
func (h *harness) win() {
	eng := h.game.Engine()
	route := eng.Grid().ShortestPath()
	divisor := config.DefaultLabyrinthConfig().Player.SpeedDivisor
	for i := 1; i < len(route); i++ {
		eng.Move(float64(route[i].X-route[i-1].X)*divisor, float64(route[i].Y-route[i-1].Y)*divisor)
	}
}

func (h *harness) pool(t *testing.T) int64 {
	t.Helper()
	balance, err := h.store.PoolBalance(context.Background())
	if err != nil {
		t.Fatalf("PoolBalance() failed: %v", err)
	}
	return balance
}

func TestPracticeStartsWithoutLedger(t *testing.T) {
	h := newHarness(t, labgame.PracticeID, 1_000_000_000_000_000_000)

	if cmd := h.press(' '); cmd != nil {
		t.Error("practice start should not issue a ledger call")
	}
	if !h.game.State().Started {
		t.Fatal("practice run should start immediately")
	}
	if h.model.tx != wager.TxNone {
		t.Errorf("tx = %v, expected none", h.model.tx)
	}

	h.model.render()
	if got := h.model.screen.Row(23); !strings.Contains(got, "alice | Practice") {
		t.Errorf("status row = %q, expected practice label", got)
	}
	if got := h.pool(t); got != 1_000_000_000_000_000_000 {
		t.Errorf("pool = %d, expected untouched bankroll", got)
	}
}

func TestWageredWinAndClaim(t *testing.T) {
	bankroll := int64(1_000_000_000_000_000_000)
	h := newHarness(t, labgame.WageredID, bankroll)

	h.model.render()
	if got := h.model.screen.Row(23); !strings.Contains(got, "alice | Entry 0.05 ETH | Prize 0.1 ETH") {
		t.Errorf("status row = %q, expected stakes", got)
	}

	cmd := h.press(' ')
	if cmd == nil {
		t.Fatal("wagered start should issue a ledger call")
	}
	if h.game.State().Started {
		t.Error("run should wait for the entry fee")
	}
	if h.model.tx != wager.TxPending {
		t.Errorf("tx = %v, expected Pending", h.model.tx)
	}
	if again := h.press(' '); again != nil {
		t.Error("second start while pending should be ignored")
	}

	h.settle(cmd)
	if !h.game.State().Started || !h.model.paid {
		t.Fatal("run should start once the fee is paid")
	}
	if h.model.tx != wager.TxCompleted || !strings.Contains(h.model.txNote, "0.05 ETH") {
		t.Errorf("tx = %v %q, expected completed fee", h.model.tx, h.model.txNote)
	}
	if got := h.pool(t); got != bankroll+testFee {
		t.Errorf("pool = %d, expected %d", got, bankroll+testFee)
	}

	h.clock.Advance(10 * time.Second)
	h.tick()
	h.win()
	h.tick()

	if !h.model.gameState.Won || !h.model.resultSaved {
		t.Fatalf("gameState = %+v, expected a recorded win", h.model.gameState)
	}
	if !h.model.claimable || !strings.Contains(h.model.txNote, "Press C to claim") {
		t.Errorf("after win: claimable=%v note=%q", h.model.claimable, h.model.txNote)
	}

	runs, err := h.store.RecentRuns(context.Background(), labgame.WageredID, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if !r.Won || r.Player != "alice" || r.Score != 5000 || r.TimeLeft != 50 {
		t.Errorf("run = %+v, expected alice's win with 50s left", r)
	}
	if r.GridW != 39 || r.GridH != 21 || r.Duration != 10*time.Second || r.Seed != 5 {
		t.Errorf("run details = %dx%d %v seed %d", r.GridW, r.GridH, r.Duration, r.Seed)
	}

	// Further ticks do not record the run again.
	h.tick()
	if runs, _ := h.store.RecentRuns(context.Background(), "", 10); len(runs) != 1 {
		t.Errorf("run recorded %d times, expected once", len(runs))
	}

	h.settle(h.press('c'))
	if h.model.claimable || h.model.tx != wager.TxCompleted || !strings.Contains(h.model.txNote, "Claimed 0.1 ETH") {
		t.Errorf("after claim: claimable=%v tx=%v note=%q", h.model.claimable, h.model.tx, h.model.txNote)
	}
	if got := h.pool(t); got != bankroll+testFee-testPayout {
		t.Errorf("pool = %d, expected %d", got, bankroll+testFee-testPayout)
	}
	if cmd := h.press('c'); cmd != nil {
		t.Error("nothing left to claim")
	}
}

func TestWageredLossAndRestart(t *testing.T) {
	h := newHarness(t, labgame.WageredID, 1_000_000_000_000_000_000)
	h.settle(h.press(' '))

	h.press('r')
	if h.game.Engine().IsGameOver() || !h.game.State().Started {
		t.Fatal("restart should be ignored while running")
	}

	h.clock.Advance(61 * time.Second)
	h.tick()
	if !h.model.gameState.GameOver || h.model.gameState.Won {
		t.Fatalf("gameState = %+v, expected a loss", h.model.gameState)
	}
	if h.model.claimable || h.model.txNote != "Entry fee lost" {
		t.Errorf("after loss: claimable=%v note=%q", h.model.claimable, h.model.txNote)
	}
	if cmd := h.press('c'); cmd != nil {
		t.Error("a loss cannot be claimed")
	}

	before := h.game.Engine()
	h.press('r')
	if h.game.Engine() == before || h.game.State().Started {
		t.Error("restart should build a new idle maze")
	}
	if h.model.resultSaved || h.model.tx != wager.TxNone {
		t.Errorf("restart left resultSaved=%v tx=%v", h.model.resultSaved, h.model.tx)
	}

	// The next run charges a new fee.
	if cmd := h.press(' '); cmd == nil {
		t.Error("new wagered run should charge again")
	}
}

func TestClaimFailsOnEmptyPool(t *testing.T) {
	h := newHarness(t, labgame.WageredID, 0)
	h.settle(h.press(' '))
	h.win()
	h.tick()

	h.settle(h.press('c'))
	if h.model.tx != wager.TxFailed || h.model.txNote != "Prize pool cannot cover the payout" {
		t.Errorf("tx = %v %q, expected failed claim", h.model.tx, h.model.txNote)
	}
	if !h.model.claimable {
		t.Error("a failed claim should stay claimable")
	}

	h.model.render()
	if got := h.model.screen.Row(23); !strings.Contains(got, "[Failed]") {
		t.Errorf("status row = %q, expected failure", got)
	}
}

func TestBackForfeitsPaidRun(t *testing.T) {
	h := newHarness(t, labgame.WageredID, 1_000_000_000_000_000_000)
	h.settle(h.press(' '))

	if cmd := h.press('b'); cmd == nil {
		t.Error("back should end the program")
	}
	if !h.model.BackToMenu() || h.model.IsQuitting() {
		t.Errorf("BackToMenu() = %v, IsQuitting() = %v", h.model.BackToMenu(), h.model.IsQuitting())
	}

	open, err := h.store.OpenWager(context.Background(), "alice")
	if err != nil {
		t.Fatalf("OpenWager() failed: %v", err)
	}
	if open != nil {
		t.Errorf("abandoned wager %s is still open", open.ID)
	}
	if _, err := h.ledger.StartGame(context.Background(), "alice"); err != nil {
		t.Errorf("StartGame() after forfeit = %v, expected nil", err)
	}
}

func TestLeavingWaitsForLedger(t *testing.T) {
	h := newHarness(t, labgame.WageredID, 1_000_000_000_000_000_000)
	startCmd := h.press(' ')
	if startCmd == nil {
		t.Fatal("wagered start should issue a ledger call")
	}

	for _, r := range []rune{'b', 'q'} {
		if cmd := h.press(r); cmd != nil {
			t.Errorf("press(%q) while paying returned a command", r)
		}
	}
	if h.model.BackToMenu() || h.model.IsQuitting() {
		t.Fatalf("BackToMenu() = %v, IsQuitting() = %v while paying", h.model.BackToMenu(), h.model.IsQuitting())
	}

	h.settle(startCmd)
	if !h.model.paid {
		t.Fatal("fee reply should reach the model")
	}

	h.press('b')
	if !h.model.BackToMenu() {
		t.Error("back should work once the fee is settled")
	}
	open, err := h.store.OpenWager(context.Background(), "alice")
	if err != nil {
		t.Fatalf("OpenWager() failed: %v", err)
	}
	if open != nil {
		t.Errorf("wager %s is still open after leaving", open.ID)
	}
	if _, err := h.ledger.StartGame(context.Background(), "alice"); err != nil {
		t.Errorf("StartGame() after leaving = %v, expected nil", err)
	}
}

func TestWageredWithoutLedgerIsFree(t *testing.T) {
	h := newHarness(t, labgame.WageredID, -1)

	if cmd := h.press(' '); cmd != nil {
		t.Error("no ledger means no fee")
	}
	if !h.game.State().Started {
		t.Error("run should start immediately")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t, labgame.PracticeID, -1)
	h.press('q')
	if !h.model.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if v := h.model.View(); v != "" {
		t.Errorf("View() = %q after quit, expected empty", v)
	}
}

func TestResize(t *testing.T) {
	h := newHarness(t, labgame.PracticeID, -1)
	seed := h.game.Seed()

	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	if h.game.Seed() != seed {
		t.Error("same size should not rebuild the maze")
	}

	h.send(tea.WindowSizeMsg{Width: 60, Height: 20})
	if w, _ := h.game.GridSize(); w != 29 {
		t.Errorf("GridSize() width = %d after resize, expected 29", w)
	}

	h.press(' ')
	running := h.game.Engine()
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if h.game.Engine() != running {
		t.Error("resize should keep a maze in play")
	}
	if h.model.screen.Width() != 100 || h.model.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", h.model.screen.Width(), h.model.screen.Height())
	}
}
