package trainer

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

// ErrPlayfieldTooSmall is returned when a target of the configured radius
// cannot fit on the playfield.
var ErrPlayfieldTooSmall = errors.New("trainer: playfield too small for target radius")

// Target is a clickable circle on the playfield.
type Target struct {
	Pos     core.Point // Centre, in playfield units
	SpawnMs int64      // Clock reading when the target appeared
}

// AgeMs returns how long the target has been up at nowMs.
func (t Target) AgeMs(nowMs int64) int64 {
	return nowMs - t.SpawnMs
}

// ValidatePlayfield checks that a target of the given radius fits inside a
// width x height playfield with its full radius as margin.
func ValidatePlayfield(width, height, radius int) error {
	if radius <= 0 {
		return fmt.Errorf("%w: radius %d must be positive", ErrPlayfieldTooSmall, radius)
	}
	if width <= 2*radius || height <= 2*radius {
		return fmt.Errorf("%w: %dx%d with radius %d", ErrPlayfieldTooSmall, width, height, radius)
	}
	return nil
}

// Generator places targets uniformly at random.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with a deterministic seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Reseed restarts the random sequence.
func (g *Generator) Reseed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Generate returns a target whose centre lies in [radius, width-radius] x
// [radius, height-radius], both bounds inclusive. The playfield must have
// passed ValidatePlayfield.
func (g *Generator) Generate(width, height, radius int, nowMs int64) Target {
	x := radius + g.rng.Intn(width-2*radius+1)
	y := radius + g.rng.Intn(height-2*radius+1)
	return Target{
		Pos:     core.Pt(x, y),
		SpawnMs: nowMs,
	}
}

// IsHit reports whether click lies within radius of the target centre.
// The boundary counts as a hit.
func IsHit(click core.Point, t Target, radius int) bool {
	return click.DistSq(t.Pos) <= radius*radius
}
