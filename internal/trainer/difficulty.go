// Package trainer implements the reflex trainer core: the difficulty table,
// target generation, hit testing, scoring and the session state machine.
//
// Nothing in this package touches the terminal, the clock or the disk. Time is
// passed in as milliseconds, output leaves through a Notifier, and high scores
// are persisted through a ScoreStore supplied by the caller.
package trainer

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a difficulty level. Levels are ordered Apprentice < Knight < Master.
type Level int

const (
	Apprentice Level = iota
	Knight
	Master
)

// Params holds the per-level timing and scoring constants.
type Params struct {
	LifetimeMs int64 // How long a target stays up
	BasePoints int   // Points for an instant hit
}

// ErrUnknownLevel is returned by ParseLevel for names outside the table.
var ErrUnknownLevel = errors.New("trainer: unknown level")

var levelTable = [...]Params{
	Apprentice: {LifetimeMs: 2000, BasePoints: 100},
	Knight:     {LifetimeMs: 1500, BasePoints: 150},
	Master:     {LifetimeMs: 1000, BasePoints: 200},
}

var levelNames = [...]string{
	Apprentice: "Apprentice",
	Knight:     "Knight",
	Master:     "Master",
}

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{Apprentice, Knight, Master}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= Apprentice && l <= Master
}

// Params returns the table entry for the level.
// Out-of-range values resolve to Apprentice so the lookup stays total.
func (l Level) Params() Params {
	if !l.Valid() {
		return levelTable[Apprentice]
	}
	return levelTable[l]
}

// String returns the display name of the level.
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Next returns the level one step up. Master is returned unchanged.
func (l Level) Next() Level {
	if l >= Master {
		return Master
	}
	return l + 1
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive.
func ParseLevel(name string) (Level, error) {
	for _, l := range Levels() {
		if strings.EqualFold(strings.TrimSpace(name), levelNames[l]) {
			return l, nil
		}
	}
	return Apprentice, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// MarshalText implements encoding.TextMarshaler so levels serialize by name.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
