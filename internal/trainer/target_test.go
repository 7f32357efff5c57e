package trainer

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

func TestValidatePlayfield(t *testing.T) {
	tests := []struct {
		name          string
		w, h, r       int
		expectInvalid bool
	}{
		{"roomy", 80, 40, 3, false},
		{"just fits", 7, 7, 3, false},
		{"width equals diameter", 6, 40, 3, true},
		{"height equals diameter", 40, 6, 3, true},
		{"zero radius", 80, 40, 0, true},
		{"negative radius", 80, 40, -2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePlayfield(tc.w, tc.h, tc.r)
			if tc.expectInvalid && !errors.Is(err, ErrPlayfieldTooSmall) {
				t.Errorf("ValidatePlayfield(%d, %d, %d) = %v, expected ErrPlayfieldTooSmall", tc.w, tc.h, tc.r, err)
			}
			if !tc.expectInvalid && err != nil {
				t.Errorf("ValidatePlayfield(%d, %d, %d) = %v, expected nil", tc.w, tc.h, tc.r, err)
			}
		})
	}
}

func TestGenerateWithinMargins(t *testing.T) {
	g := NewGenerator(7)
	const w, h, r = 30, 12, 4

	seenMinX, seenMaxX := false, false
	for i := 0; i < 5000; i++ {
		tgt := g.Generate(w, h, r, int64(i))
		if tgt.Pos.X < r || tgt.Pos.X > w-r {
			t.Fatalf("x = %d outside [%d, %d]", tgt.Pos.X, r, w-r)
		}
		if tgt.Pos.Y < r || tgt.Pos.Y > h-r {
			t.Fatalf("y = %d outside [%d, %d]", tgt.Pos.Y, r, h-r)
		}
		if tgt.SpawnMs != int64(i) {
			t.Fatalf("SpawnMs = %d, expected %d", tgt.SpawnMs, i)
		}
		seenMinX = seenMinX || tgt.Pos.X == r
		seenMaxX = seenMaxX || tgt.Pos.X == w-r
	}

	// Both bounds are inclusive
	if !seenMinX || !seenMaxX {
		t.Errorf("expected both x bounds to be reachable, min=%v max=%v", seenMinX, seenMaxX)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	g1 := NewGenerator(12345)
	g2 := NewGenerator(12345)

	for i := 0; i < 50; i++ {
		a := g1.Generate(80, 40, 3, 0)
		b := g2.Generate(80, 40, 3, 0)
		if a != b {
			t.Fatalf("Determinism failed at %d: %v vs %v", i, a, b)
		}
	}

	g1.Reseed(99)
	g2.Reseed(99)
	if g1.Generate(80, 40, 3, 0) != g2.Generate(80, 40, 3, 0) {
		t.Error("Reseed should restart identical sequences")
	}
}

func TestIsHit(t *testing.T) {
	tgt := Target{Pos: core.Pt(10, 10)}
	const radius = 5

	tests := []struct {
		name     string
		click    core.Point
		expected bool
	}{
		{"centre", core.Pt(10, 10), true},
		{"inside", core.Pt(12, 11), true},
		{"boundary horizontal", core.Pt(15, 10), true},
		{"boundary vertical", core.Pt(10, 5), true},
		{"boundary 3-4-5", core.Pt(13, 14), true},
		{"just outside horizontal", core.Pt(16, 10), false},
		{"just outside diagonal", core.Pt(14, 14), false},
		{"far away", core.Pt(0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsHit(tc.click, tgt, radius); got != tc.expected {
				t.Errorf("IsHit(%v) = %v, expected %v", tc.click, got, tc.expected)
			}
		})
	}
}

func TestIsHitMatchesDistance(t *testing.T) {
	tgt := Target{Pos: core.Pt(0, 0)}
	for radius := 1; radius <= 6; radius++ {
		for x := -8; x <= 8; x++ {
			for y := -8; y <= 8; y++ {
				want := x*x+y*y <= radius*radius
				if got := IsHit(core.Pt(x, y), tgt, radius); got != want {
					t.Fatalf("IsHit((%d,%d), r=%d) = %v, expected %v", x, y, radius, got, want)
				}
			}
		}
	}
}
