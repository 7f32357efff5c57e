package trainer

import "math"

// Scoring constants.
const (
	MinHitPoints   = 10 // Floor for a single hit, however slow
	MissPenalty    = 5  // Points lost per missed click
	KnightScore    = 1000
	MasterScore    = 2000
	reactionFactor = 10 // Points lost per second of reaction time
)

// Stats is the mutable record of one session.
// Hits always equals len(ReactionTimes) and Score never drops below zero.
type Stats struct {
	Score         int
	Hits          int
	ReactionTimes []float64 // Seconds, in hit order
	Level         Level
}

// NewStats returns a fresh session record starting at the given level.
func NewStats(level Level) Stats {
	return Stats{Level: level}
}

// HitPoints returns the score delta for a hit at the given level.
func HitPoints(reactionSeconds float64, level Level) int {
	penalty := int(math.Floor(reactionSeconds * reactionFactor))
	return max(level.Params().BasePoints-penalty, MinHitPoints)
}

// OnHit records a hit and returns the points gained. promoted is true when the
// hit moved the session up a level.
func (s *Stats) OnHit(reactionSeconds float64) (delta int, promoted bool) {
	delta = HitPoints(reactionSeconds, s.Level)
	s.Score += delta
	s.ReactionTimes = append(s.ReactionTimes, reactionSeconds)
	s.Hits++
	return delta, s.promote()
}

// OnMiss applies the miss penalty and returns the change in score, which is
// zero or negative.
func (s *Stats) OnMiss() int {
	before := s.Score
	s.Score = max(0, s.Score-MissPenalty)
	return s.Score - before
}

// promote moves up at most one level. Only OnHit calls it, so a score that
// recovers through misses never re-triggers or reverses a promotion.
func (s *Stats) promote() bool {
	switch {
	case s.Score >= KnightScore && s.Level == Apprentice:
		s.Level = Knight
	case s.Score >= MasterScore && s.Level == Knight:
		s.Level = Master
	default:
		return false
	}
	return true
}

// MeanReaction returns the average reaction time in seconds, or 0 with no hits.
func (s Stats) MeanReaction() float64 {
	if len(s.ReactionTimes) == 0 {
		return 0
	}
	var sum float64
	for _, rt := range s.ReactionTimes {
		sum += rt
	}
	return sum / float64(len(s.ReactionTimes))
}

// BestReaction returns the fastest reaction time in seconds, or 0 with no hits.
func (s Stats) BestReaction() float64 {
	if len(s.ReactionTimes) == 0 {
		return 0
	}
	best := s.ReactionTimes[0]
	for _, rt := range s.ReactionTimes[1:] {
		best = min(best, rt)
	}
	return best
}

// Clone returns a deep copy, safe to hand to readers.
func (s Stats) Clone() Stats {
	c := s
	c.ReactionTimes = append([]float64(nil), s.ReactionTimes...)
	return c
}
