package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// Banner durations in milliseconds.
const (
	bannerShortMs = 700
	bannerLongMs  = 1500
)

// banner is a transient message in the HUD.
type banner struct {
	text    string
	color   core.Color
	untilMs int64
}

// feedback turns trainer events into HUD banners. The model sets nowMs before
// every call into the machine so banners expire relative to the event.
type feedback struct {
	nowMs  int64
	banner banner
}

// Notify implements trainer.Notifier.
func (f *feedback) Notify(ev trainer.Event) {
	switch ev.Kind {
	case trainer.EventHit:
		f.show(fmt.Sprintf("+%d  %.2fs", ev.Delta, ev.Reaction), core.ColorGreen, bannerShortMs)
	case trainer.EventMiss:
		f.show(fmt.Sprintf("%d  miss", ev.Delta), core.ColorBrightRed, bannerShortMs)
	case trainer.EventExpired:
		f.show("too slow", core.ColorGray, bannerShortMs)
	case trainer.EventLevelUp:
		f.show("LEVEL UP! "+ev.Level.String(), core.ColorGold, bannerLongMs)
	case trainer.EventSaveFailed:
		f.show("could not save record", core.ColorRed, bannerLongMs*2)
	}
}

func (f *feedback) show(text string, c core.Color, durationMs int64) {
	f.banner = banner{text: text, color: c, untilMs: f.nowMs + durationMs}
}

// current returns the banner if it is still showing at nowMs.
func (f *feedback) current(nowMs int64) (banner, bool) {
	if f.banner.text == "" || nowMs > f.banner.untilMs {
		return banner{}, false
	}
	return f.banner, true
}

// eventLogger writes trainer events to the log.
type eventLogger struct {
	logger *log.Logger
}

// Notify implements trainer.Notifier.
func (l eventLogger) Notify(ev trainer.Event) {
	switch ev.Kind {
	case trainer.EventHit:
		l.logger.Debug("hit", "level", ev.Level, "delta", ev.Delta, "reaction", ev.Reaction)
	case trainer.EventMiss:
		l.logger.Debug("miss", "level", ev.Level, "delta", ev.Delta)
	case trainer.EventExpired:
		l.logger.Debug("target expired", "level", ev.Level)
	case trainer.EventLevelUp:
		l.logger.Info("level up", "level", ev.Level)
	case trainer.EventSessionComplete:
		s := ev.Summary
		l.logger.Info("session complete",
			"score", s.Score,
			"level", s.Level,
			"mean_reaction", fmt.Sprintf("%.3fs", s.MeanReaction),
			"best_reaction", fmt.Sprintf("%.3fs", s.BestReaction),
		)
	case trainer.EventNewRecord:
		l.logger.Info("new record", "level", ev.Level, "score", ev.Summary.Score, "previous", ev.Summary.PreviousRecord)
	case trainer.EventSaveFailed:
		l.logger.Error("could not save high scores", "error", ev.Err)
	}
}

// SessionSaver stores finished sessions.
type SessionSaver interface {
	SaveSession(trainer.Summary) (int64, error)
}

// historyRecorder appends every finished session to the history store.
type historyRecorder struct {
	saver  SessionSaver
	logger *log.Logger
}

// Notify implements trainer.Notifier.
func (h historyRecorder) Notify(ev trainer.Event) {
	if ev.Kind != trainer.EventSessionComplete || ev.Summary == nil {
		return
	}
	id, err := h.saver.SaveSession(*ev.Summary)
	if err != nil {
		h.logger.Warn("could not record session", "error", err)
		return
	}
	h.logger.Debug("session recorded", "id", id)
}
