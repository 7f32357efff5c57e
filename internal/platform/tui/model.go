package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// Options configures the trainer model.
type Options struct {
	Trainer       trainer.Options    // Width and Height are derived from the terminal
	Runtime       core.RuntimeConfig // Initial screen size, tick rate and seed
	Logger        *log.Logger
	Audio         trainer.Notifier // Sound cues; may be nil
	History       SessionSaver     // Session history; may be nil
	ScreenshotDir string           // Defaults to ~/.reflex/screenshots
	Clock         func() time.Time // Defaults to time.Now
}

// Model is the Bubble Tea model for the reflex trainer.
type Model struct {
	machine    *trainer.Machine
	screen     *core.Screen
	keys       *KeyMapper
	layout     Layout
	feedback   *feedback
	logger     *log.Logger
	config     core.RuntimeConfig
	clock      func() time.Time
	start      time.Time
	shotDir    string
	tooSmall   bool
	showLevels bool
	quitting   bool
}

// NewModel creates the model and its session machine.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = filepath.Join(os.Getenv("HOME"), ".reflex", "screenshots")
	}

	fb := &feedback{}
	notifiers := trainer.Notifiers{fb, eventLogger{logger: logger}, opts.Audio, opts.Trainer.Notifier}
	if opts.History != nil {
		notifiers = append(notifiers, historyRecorder{saver: opts.History, logger: logger})
	}

	layout := NewLayout(cfg.ScreenW, cfg.ScreenH)
	tOpts := opts.Trainer
	tOpts.Seed = cfg.Seed
	tOpts.Notifier = notifiers
	tOpts.Width, tOpts.Height = layout.PlayfieldSize()

	// A terminal that starts too small still gets a machine; it is resized
	// once the window grows.
	tooSmall := trainer.ValidatePlayfield(tOpts.Width, tOpts.Height, tOpts.Radius) != nil
	if tooSmall {
		tOpts.Width = max(tOpts.Width, 2*tOpts.Radius+1)
		tOpts.Height = max(tOpts.Height, 2*tOpts.Radius+1)
	}

	machine, err := trainer.New(tOpts)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	return Model{
		machine:  machine,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:     NewKeyMapper(),
		layout:   layout,
		feedback: fb,
		logger:   logger,
		config:   cfg,
		clock:    clock,
		start:    clock(),
		shotDir:  shotDir,
		tooSmall: tooSmall,
	}, nil
}

// Machine returns the session machine driven by the model.
func (m Model) Machine() *trainer.Machine {
	return m.machine
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// nowMs returns milliseconds since the model started.
func (m Model) nowMs(t time.Time) int64 {
	return t.Sub(m.start).Milliseconds()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		m.saveScreenshot()

	case core.ActionScores:
		if m.machine.State() != trainer.StatePlaying {
			m.showLevels = !m.showLevels
		}

	case core.ActionStart:
		if m.tooSmall {
			return m, nil
		}
		now := m.nowMs(m.clock())
		m.feedback.nowMs = now
		if m.machine.State() != trainer.StatePlaying {
			m.logger.Debug("session start", "level", m.machine.Stats().Level)
		}
		m.machine.Start(now)
	}

	return m, nil
}

// handleMouse forwards left clicks inside the playfield to the machine.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tooSmall {
		return m, nil
	}
	p, ok := m.keys.MapMouse(msg, m.layout)
	if !ok {
		return m, nil
	}
	now := m.nowMs(m.clock())
	m.feedback.nowMs = now
	m.machine.PointerDown(p, now)
	return m, nil
}

// handleResize processes window resize events. The session is kept; only a
// target that no longer fits is moved.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.layout = NewLayout(msg.Width, msg.Height)

	w, h := m.layout.PlayfieldSize()
	if err := m.machine.SetPlayfield(w, h); err != nil {
		if !m.tooSmall {
			m.logger.Warn("terminal too small", "width", msg.Width, "height", msg.Height, "error", err)
		}
		m.tooSmall = true
		return m, nil
	}
	m.tooSmall = false
	return m, nil
}

// handleTick polls the target lifetime.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	now := m.nowMs(t)
	m.feedback.nowMs = now
	if !m.tooSmall {
		m.machine.Tick(now)
	}
	return m, tickCmd(m.config.TickRate)
}

// render draws the current frame into the screen buffer.
func (m Model) render() {
	if m.tooSmall {
		drawTooSmall(m.screen)
		return
	}
	now := m.nowMs(m.clock())
	b, ok := m.feedback.current(now)
	drawFrame(m.screen, m.layout, m.machine.Snapshot(now), b, ok, m.showLevels)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.shotDir, 0o755)

	timestamp := m.clock().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("reflex_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks drive the game
	)

	_, err = p.Run()
	return err
}
