package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/logging"
	"github.com/vovakirdan/tui-tucan/internal/replay"
)

// DefaultScreenshotDir is where ctrl+s writes frames.
const DefaultScreenshotDir = "~/.tucan/screenshots"

// statusStyle renders the line under the playfield.
var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running the game.
// It drives the game live from the keyboard, or from a replay player.
type Model struct {
	game       core.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	recorder   *replay.Recorder
	player     *replay.Player
	shotDir    string
	inputFrame core.InputFrame
	gameState  core.GameState
	held       bool // Playback paused by the viewer
	quitting   bool
	err        error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger for host events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// WithRecorder records every live step into r.
func WithRecorder(r *replay.Recorder) ModelOption {
	return func(m *Model) {
		m.recorder = r
	}
}

// WithPlayer drives the game from a replay instead of the keyboard.
func WithPlayer(p *replay.Player) ModelOption {
	return func(m *Model) {
		m.player = p
	}
}

// WithScreenshotDir overrides where screenshots are written.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *Model) {
		m.shotDir = dir
	}
}

// NewModel creates a Bubble Tea model for game and resets the game with cfg.
// The bottom row of the screen is kept for the status line.
// If the reset fails the model quits on start and Err reports why.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		shotDir:    DefaultScreenshotDir,
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}

	if err := m.game.Reset(m.config); err != nil {
		m.logger.Error("cannot reset game", "game", m.game.ID(), "err", err)
		m.err = err
		m.quitting = true
		return m
	}
	m.gameState = m.game.State()
	return m
}

func playfieldHeight(h int) int {
	if h <= 1 {
		return 1
	}
	return h - 1
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(m.keys.MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleAction applies a mapped input. Host actions take effect at once;
// game actions are buffered until the next tick.
func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	if m.player != nil {
		if a == core.ActionPause {
			m.held = !m.held
		}
		return m, nil
	}
	m.inputFrame.Set(a)
	return m, nil
}

// handleResize processes window resize events.
// The world is independent of the cell grid, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.player != nil {
		if !m.held {
			if in, ok := m.player.Next(); ok {
				m.gameState = m.game.Step(in).State
			}
		}
		return m, tickCmd(m.config.TickRate)
	}

	in := m.inputFrame.Clone()
	result := m.game.Step(in)
	m.gameState = result.State
	if m.recorder != nil {
		m.recorder.Observe(in, result)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir, err := expandHome(m.shotDir)
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.shotDir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	if m.player == nil {
		return statusStyle.Render(m.help.View(m.keys))
	}
	status := fmt.Sprintf("replay %d/%d", m.player.Tick(), m.player.Total())
	switch {
	case m.player.Done():
		status += " - finished"
	case m.held:
		status += " - held"
	}
	return statusStyle.Render(status + "  p pause  q quit")
}

// State returns the last state the game reported.
func (m Model) State() core.GameState {
	return m.gameState
}

// Screen returns the buffer the game renders into.
func (m Model) Screen() *core.Screen {
	return m.screen
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Err returns the error that stopped the model from starting, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program with the given model and returns the
// model it ended with.
func Run(m Model) (Model, error) {
	if m.err != nil {
		return m, m.err
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse presses count as taps
	)

	final, err := p.Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
