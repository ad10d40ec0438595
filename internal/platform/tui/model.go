package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/plotj/labyrinth/internal/core"
	"github.com/plotj/labyrinth/internal/registry"
	"github.com/plotj/labyrinth/internal/storage"
	"github.com/plotj/labyrinth/internal/wager"
)

// ledgerTimeout bounds each ledger or storage call issued from the UI.
const ledgerTimeout = 5 * time.Second

// DefaultPlayer is used when no player name is configured.
const DefaultPlayer = "anonymous"

// Services are the collaborators a session uses besides the game itself.
// Store and Ledger may be nil: runs are then not recorded and wagered
// modes play for free.
type Services struct {
	Store  *storage.Store
	Ledger *wager.Ledger
	Logger *log.Logger
	Player string
}

// runDetails is implemented by games that can describe a finished run.
type runDetails interface {
	Seed() int64
	Elapsed() time.Duration
	GridSize() (w, h int)
}

type ledgerOp int

const (
	opStart ledgerOp = iota
	opEnd
	opClaim
)

// ledgerMsg carries the result of an async ledger call.
type ledgerMsg struct {
	op     ledgerOp
	won    bool
	amount int64
	err    error
}

// runSavedMsg carries the result of recording a finished run.
type runSavedMsg struct {
	id  string
	err error
}

// Model is the Bubble Tea model for one labyrinth session.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	svc         Services
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	inputFrame  core.InputFrame
	gameState   core.GameState
	quitting    bool
	backToMenu  bool
	resultSaved bool // Whether the current run has been recorded

	paid      bool // Entry fee charged for the current run
	pending   bool // A ledger call is in flight
	claimable bool
	tx        wager.TxStatus
	txNote    string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}
	if svc.Player == "" {
		svc.Player = DefaultPlayer
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on first tick (value receiver)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ledgerMsg:
		return m.handleLedger(msg), nil

	case runSavedMsg:
		if msg.err != nil {
			m.svc.Logger.Warn("could not record run", "error", msg.err)
		} else {
			m.svc.Logger.Debug("run recorded", "id", msg.id)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)

	// Leaving while the ledger works would drop its reply and strand the wager.
	if (isQuit || action == core.ActionBack) && m.pending {
		return m, nil
	}

	if isQuit {
		m.forfeit()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionBack:
		m.forfeit()
		m.backToMenu = true
		return m, tea.Quit

	case core.ActionStart:
		return m.start()

	case core.ActionRestart:
		if m.game.State().GameOver && !m.pending {
			m.restart()
		}
		return m, nil

	case core.ActionClaim:
		if !m.claimable || m.pending {
			return m, nil
		}
		m.pending = true
		m.setTx(wager.TxPending, "Claiming "+wager.FormatWei(m.svc.Ledger.Payout()))
		return m, m.claimCmd()
	}

	m.apply(action)
	return m, nil
}

// start begins a run. Wagered modes charge the entry fee first and only
// start the game once the ledger confirms.
func (m Model) start() (tea.Model, tea.Cmd) {
	if m.game.State().Started || m.pending {
		return m, nil
	}

	if m.wagered() && !m.paid {
		m.pending = true
		m.setTx(wager.TxPending, "Paying entry fee "+wager.FormatWei(m.svc.Ledger.EntryFee()))
		return m, m.startCmd()
	}

	m.apply(core.ActionStart)
	return m, nil
}

// apply hands an action to the game, immediately when it supports it.
func (m *Model) apply(a core.Action) {
	if ig, ok := m.game.(registry.Interactive); ok {
		ig.HandleAction(a)
		return
	}
	m.inputFrame.Set(a)
}

// restart discards the finished run and builds a new maze.
func (m *Model) restart() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.resultSaved = false
	m.inputFrame.Clear()
	if !m.claimable {
		m.setTx(wager.TxNone, "")
	}
}

// forfeit settles a paid run that is abandoned before its result was
// reported. It blocks for at most ledgerTimeout.
func (m *Model) forfeit() {
	if !m.paid || m.svc.Ledger == nil {
		return
	}
	m.paid = false

	st := m.game.State()
	ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
	defer cancel()
	if _, err := m.svc.Ledger.EndGame(ctx, m.svc.Player, st.GameOver && st.Won); err != nil {
		m.svc.Logger.Warn("could not settle abandoned run", "player", m.svc.Player, "error", err)
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// A maze in play is kept and scrolled instead.
	if !m.game.State().Started {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}

	// Report the result once per run
	if m.gameState.GameOver && !m.resultSaved {
		m.resultSaved = true
		cmds = append(cmds, m.saveRunCmd(m.gameState))

		if m.paid {
			m.paid = false
			m.pending = true
			m.setTx(wager.TxPending, "Settling wager")
			cmds = append(cmds, m.endCmd(m.gameState.Won))
		}
	}

	return m, tea.Batch(cmds...)
}

// handleLedger applies the result of a ledger call.
func (m Model) handleLedger(msg ledgerMsg) Model {
	m.pending = false

	if msg.err != nil {
		m.svc.Logger.Warn("ledger call failed", "player", m.svc.Player, "error", msg.err)
		m.setTx(wager.TxFailed, ledgerError(msg.err))
		return m
	}

	switch msg.op {
	case opStart:
		m.paid = true
		m.setTx(wager.TxCompleted, "Entry fee paid: "+wager.FormatWei(msg.amount))
		m.apply(core.ActionStart)

	case opEnd:
		if msg.won {
			m.claimable = true
			m.setTx(wager.TxCompleted, fmt.Sprintf("You won %s. Press C to claim", wager.FormatWei(msg.amount)))
		} else {
			m.setTx(wager.TxCompleted, "Entry fee lost")
		}

	case opClaim:
		m.claimable = false
		m.setTx(wager.TxCompleted, "Claimed "+wager.FormatWei(msg.amount))
	}
	return m
}

// ledgerError turns a ledger failure into a status line message.
func ledgerError(err error) string {
	switch {
	case errors.Is(err, wager.ErrGameInProgress):
		return "A paid game is already open"
	case errors.Is(err, wager.ErrInsufficientPool):
		return "Prize pool cannot cover the payout"
	case errors.Is(err, wager.ErrNotWinner):
		return "Nothing to claim"
	case errors.Is(err, context.DeadlineExceeded):
		return "Ledger timed out"
	}
	return err.Error()
}

func (m *Model) setTx(status wager.TxStatus, note string) {
	m.tx = status
	m.txNote = note
}

// wagered reports whether runs of the current game go through the ledger.
func (m Model) wagered() bool {
	w, ok := m.game.(registry.Wagered)
	return ok && w.Wagered() && m.svc.Ledger != nil
}

func (m Model) startCmd() tea.Cmd {
	ledger, player := m.svc.Ledger, m.svc.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
		defer cancel()

		w, err := ledger.StartGame(ctx, player)
		msg := ledgerMsg{op: opStart, err: err}
		if w != nil {
			msg.amount = w.Fee
		}
		return msg
	}
}

func (m Model) endCmd(won bool) tea.Cmd {
	ledger, player := m.svc.Ledger, m.svc.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
		defer cancel()

		w, err := ledger.EndGame(ctx, player, won)
		msg := ledgerMsg{op: opEnd, won: won, err: err}
		if w != nil {
			msg.amount = w.Payout
		}
		return msg
	}
}

func (m Model) claimCmd() tea.Cmd {
	ledger, player := m.svc.Ledger, m.svc.Player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
		defer cancel()

		amount, err := ledger.ClaimWinnings(ctx, player)
		return ledgerMsg{op: opClaim, amount: amount, err: err}
	}
}

// saveRunCmd records a finished run. Returns nil without a store.
func (m Model) saveRunCmd(st core.GameState) tea.Cmd {
	if m.svc.Store == nil {
		return nil
	}

	run := storage.Run{
		GameID:   m.game.ID(),
		Player:   m.svc.Player,
		Won:      st.Won,
		Score:    st.Score,
		TimeLeft: st.TimeLeft,
	}
	if d, ok := m.game.(runDetails); ok {
		run.Seed = d.Seed()
		run.Duration = d.Elapsed()
		run.GridW, run.GridH = d.GridSize()
	}

	store := m.svc.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
		defer cancel()

		id, err := store.SaveRun(ctx, run)
		return runSavedMsg{id: id, err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		m.svc.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".labyrinth", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.Logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.svc.Logger.Info("screenshot saved", "path", path)
}

// render draws the game and the status line into the screen buffer.
func (m Model) render() {
	m.screen.Clear()
	m.game.Render(m.screen)

	text, color := m.statusLine()
	m.screen.DrawTextColored(0, m.screen.Height()-1, text, color)
}

// statusLine returns the bottom row text: the last ledger call while one
// is shown, otherwise the player and stakes.
func (m Model) statusLine() (string, core.Color) {
	switch m.tx {
	case wager.TxPending:
		return fmt.Sprintf("[%s] %s", m.tx, m.txNote), core.ColorYellow
	case wager.TxCompleted:
		return fmt.Sprintf("[%s] %s", m.tx, m.txNote), core.ColorGreen
	case wager.TxFailed:
		return fmt.Sprintf("[%s] %s", m.tx, m.txNote), core.ColorRed
	}

	if m.wagered() {
		return fmt.Sprintf("%s | Entry %s | Prize %s",
			m.svc.Player, wager.FormatWei(m.svc.Ledger.EntryFee()), wager.FormatWei(m.svc.Ledger.Payout())), core.ColorGray
	}
	return m.svc.Player + " | Practice", core.ColorGray
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// Returns true if the player asked to go back rather than quit.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewModel(game, svc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
