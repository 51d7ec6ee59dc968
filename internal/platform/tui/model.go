package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-turrets/internal/config"
	"github.com/vovakirdan/tui-turrets/internal/core"
	"github.com/vovakirdan/tui-turrets/internal/registry"
	"github.com/vovakirdan/tui-turrets/internal/storage"
)

// debugStater is implemented by games that can describe their state as text
// for screenshots.
type debugStater interface {
	DebugState() string
}

// Model is the Bubble Tea model for playing one game variant.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	gameState core.GameState
	started   time.Time

	quitting   bool
	backToMenu bool
	recorded   bool // Whether the current game has been written to history

	flash    string
	flashSeq int
}

// NewModel creates a model and starts a new game. store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = NewLogger(nil, "", false)
	}

	game.Reset(cfg)

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger.With("variant", game.ID()),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		gameState: game.State(),
		started:   time.Now(),
	}
}

// Init sets the terminal title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.game.Title())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		frame := core.NewInputFrame()
		if m.keyMapper.MapMouseToFrame(msg, &frame) {
			m.step(frame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case clearFlashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		return m, m.saveScreenshot()
	}

	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case frame.Has(core.ActionBack):
		m.abandon()
		m.backToMenu = true
		return m, tea.Quit
	case frame.Has(core.ActionRestart):
		m.restart()
		return m, nil
	case frame.Empty():
		return m, nil
	}

	m.step(frame)
	return m, nil
}

// handleResize keeps the game in progress and only recomputes its layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// step feeds one input frame to the game and records the result.
func (m *Model) step(frame core.InputFrame) {
	result := m.game.Step(frame)
	m.gameState = result.State

	for _, ev := range result.Events {
		m.logger.Debug(ev.Name, ev.KeyVals...)
	}

	if m.gameState.GameOver && !m.recorded {
		m.logger.Info("game over",
			"winner", m.gameState.Winner,
			"white", m.gameState.WhiteScore,
			"black", m.gameState.BlackScore,
			"moves", m.gameState.Moves,
		)
		m.record(storage.EndCompleted)
	}
}

// restart starts a new game, recording the current one as abandoned.
func (m *Model) restart() {
	m.abandon()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.recorded = false
	m.started = time.Now()
	m.logger.Info("new game")
}

// abandon records a game left before it finished. Empty boards are not kept.
func (m *Model) abandon() {
	if m.recorded || m.gameState.GameOver || m.gameState.Moves == 0 {
		return
	}
	m.record(storage.EndAbandoned)
}

// record writes the current game to history once.
func (m *Model) record(reason string) {
	m.recorded = true
	if m.store == nil {
		return
	}

	st := m.gameState
	rec := storage.GameRecord{
		Variant:    m.game.ID(),
		WhiteScore: st.WhiteScore,
		BlackScore: st.BlackScore,
		Winner:     st.Winner,
		Moves:      st.Moves,
		Captures:   st.Captured,
		BonusMoves: st.BonusMoves,
		EndReason:  reason,
		Duration:   int(time.Since(m.started).Seconds()),
		Player:     m.config.Player,
	}
	id, err := m.store.SaveGame(rec)
	if err != nil {
		m.logger.Warn("could not save game", "error", err)
		return
	}
	m.logger.Debug("game saved", "id", id, "reason", reason)
}

// saveScreenshot writes the current screen, plus the board as text when the
// game provides it, under the data directory.
func (m *Model) saveScreenshot() tea.Cmd {
	m.game.Render(m.screen)

	content := m.screen.String() + "\n"
	if ds, ok := m.game.(debugStater); ok {
		content += "\n" + ds.DebugState()
	}

	name := fmt.Sprintf("screenshots/%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path, err := config.DataPath(name)
	if err == nil {
		err = os.WriteFile(path, []byte(content), 0o600)
	}
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return m.setFlash("Screenshot failed")
	}

	m.logger.Info("screenshot saved", "path", path)
	return m.setFlash("Saved " + path)
}

// setFlash shows a footer notice and schedules its removal.
func (m *Model) setFlash(text string) tea.Cmd {
	m.flashSeq++
	m.flash = text
	return clearFlashCmd(m.flashSeq, flashDuration)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.flash != "" {
		m.screen.DrawTextColor(1, m.screen.Height()-1, m.flash, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in a full-screen program with mouse support. It reports
// whether the player asked to return to the menu.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
