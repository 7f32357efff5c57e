package tui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// fakeClock is advanced by hand.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeSaver struct {
	saved []trainer.Summary
	err   error
}

func (f *fakeSaver) SaveSession(s trainer.Summary) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, s)
	return int64(len(f.saved)), nil
}

func newTestModel(t *testing.T, store trainer.ScoreStore, saver SessionSaver) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	opts := Options{
		Trainer:       trainer.Options{Radius: 3, Store: store},
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Logger:        log.New(io.Discard),
		ScreenshotDir: t.TempDir(),
		Clock:         clock.now,
	}
	if saver != nil {
		opts.History = saver
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m, clock
}

// screenText renders the current frame without colors.
func (m Model) screenText() string {
	m.render()
	return m.screen.String()
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

// clickTarget presses the left button on the cell holding the target centre.
func clickTarget(t *testing.T, m Model) Model {
	t.Helper()
	tgt, ok := m.Machine().Target()
	if !ok {
		t.Fatal("no active target")
	}
	r := m.layout.PlayfieldRect()
	msg := tea.MouseMsg{
		X:      r.X + tgt.Pos.X,
		Y:      r.Y + tgt.Pos.Y/unitsPerRow,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	return update(t, m, msg)
}

func TestModelStartScreen(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)

	view := m.screenText()
	for _, want := range []string{"REFLEX TRAINER", "HIGH SCORES", "Apprentice", "Press SPACE to start"} {
		if !strings.Contains(view, want) {
			t.Errorf("start screen missing %q", want)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if !strings.Contains(m.screenText(), "LEVELS") {
		t.Error("h should switch the panel to the level table")
	}
}

func TestModelPlayFlow(t *testing.T) {
	store := &trainer.MemoryStore{}
	saver := &fakeSaver{}
	m, clock := newTestModel(t, store, saver)

	m = update(t, m, space())
	if m.Machine().State() != trainer.StatePlaying {
		t.Fatalf("State() = %v after space, expected playing", m.Machine().State())
	}
	if !strings.Contains(m.screenText(), "Hits: 0/10") {
		t.Error("HUD should show the hit counter")
	}

	for i := 0; i < trainer.SessionHits; i++ {
		clock.advance(200 * time.Millisecond)
		m = clickTarget(t, m)
	}

	if m.Machine().State() != trainer.StateEnd {
		t.Fatalf("State() = %v after ten hits, expected end", m.Machine().State())
	}
	view := m.screenText()
	for _, want := range []string{"SESSION COMPLETE", "Hits: 10/10", "Mean reaction: 0.20s", "NEW RECORD!", "Press SPACE to play again"} {
		if !strings.Contains(view, want) {
			t.Errorf("end screen missing %q", want)
		}
	}

	if store.Saves != 1 {
		t.Errorf("store saved %d times, expected 1", store.Saves)
	}
	if len(saver.saved) != 1 || saver.saved[0].Hits != trainer.SessionHits {
		t.Errorf("history = %+v, expected one finished session", saver.saved)
	}

	// Restart
	m = update(t, m, space())
	if m.Machine().State() != trainer.StatePlaying || m.Machine().Stats().Hits != 0 {
		t.Error("space on the end screen should start a fresh session")
	}
}

func TestModelMissAndBanner(t *testing.T) {
	m, clock := newTestModel(t, nil, nil)
	m = update(t, m, space())

	clock.advance(100 * time.Millisecond)
	m = clickTarget(t, m)
	if !strings.Contains(m.screenText(), "+99") {
		t.Error("hit banner should show the points gained")
	}

	// Far corner of the playfield, away from any target near the centre
	tgt, _ := m.Machine().Target()
	x := 0
	if tgt.Pos.X < 40 {
		x = 79
	}
	m = update(t, m, tea.MouseMsg{X: x, Y: hudRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Machine().Stats().Score; got != 94 {
		t.Errorf("score after miss = %d, expected 94", got)
	}

	clock.advance(time.Second)
	if strings.Contains(m.screenText(), "miss") {
		t.Error("banner should expire")
	}
}

func TestModelTickExpiresTarget(t *testing.T) {
	m, clock := newTestModel(t, nil, nil)
	m = update(t, m, space())
	first, _ := m.Machine().Target()

	clock.advance(2500 * time.Millisecond)
	m = update(t, m, TickMsg(clock.now()))

	next, ok := m.Machine().Target()
	if !ok || next.SpawnMs == first.SpawnMs {
		t.Error("tick past the lifetime should replace the target")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m = update(t, m, space())

	m = update(t, m, tea.WindowSizeMsg{Width: 5, Height: 4})
	if !m.tooSmall {
		t.Fatal("5x4 terminal should be too small")
	}
	if !strings.Contains(m.screenText(), "small") {
		t.Error("too-small notice not shown")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 12})
	if m.tooSmall {
		t.Fatal("30x12 terminal should fit")
	}
	w, h := m.Machine().Playfield()
	if w != 30 || h != (12-hudRows-footerRows)*unitsPerRow {
		t.Errorf("Playfield() = (%d, %d) after resize", w, h)
	}
	if m.Machine().State() != trainer.StatePlaying {
		t.Error("resize must not reset the session")
	}
}

func TestDrawTooSmallFitsWidth(t *testing.T) {
	tests := []struct {
		width, height int
		title         string
		hint          string
	}{
		{5, 4, "small", ""},
		{7, 4, "small", "enlarge"},
		{10, 6, "too small", "enlarge"},
		{17, 6, "too small", "enlarge window"},
		{18, 6, "Terminal too small", "enlarge window"},
		{40, 10, "Terminal too small", "enlarge the window to keep playing"},
		{1, 3, "!", ""},
	}

	for _, tt := range tests {
		s := core.NewScreen(tt.width, tt.height)
		drawTooSmall(s)
		y := tt.height / 2

		if got := strings.TrimSpace(s.Row(y - 1)); got != tt.title {
			t.Errorf("%dx%d: title = %q, expected %q", tt.width, tt.height, got, tt.title)
		}
		if got := strings.TrimSpace(s.Row(y)); got != tt.hint {
			t.Errorf("%dx%d: hint = %q, expected %q", tt.width, tt.height, got, tt.hint)
		}
	}
}

func TestModelResizeNarrow(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m = update(t, m, space())

	for _, size := range []tea.WindowSizeMsg{{Width: 5, Height: 4}, {Width: 10, Height: 6}, {Width: 17, Height: 6}} {
		m = update(t, m, size)
		if !m.tooSmall {
			t.Fatalf("%dx%d should be too small", size.Width, size.Height)
		}
		if !strings.Contains(m.screenText(), "small") {
			t.Errorf("%dx%d: notice clipped:\n%s", size.Width, size.Height, m.screenText())
		}
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.shotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(m.shotDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "REFLEX TRAINER") {
		t.Error("screenshot should contain the start screen")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestHistoryRecorderLogsFailure(t *testing.T) {
	saver := &fakeSaver{err: errors.New("locked")}
	var sb strings.Builder
	rec := historyRecorder{saver: saver, logger: log.New(&sb)}

	rec.Notify(trainer.Event{Kind: trainer.EventHit})
	if sb.Len() != 0 {
		t.Error("non-completion events should be ignored")
	}

	rec.Notify(trainer.Event{Kind: trainer.EventSessionComplete, Summary: &trainer.Summary{}})
	if !strings.Contains(sb.String(), "locked") {
		t.Errorf("log = %q, expected the save error", sb.String())
	}
}
