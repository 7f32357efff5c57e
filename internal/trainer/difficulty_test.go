package trainer

import (
	"errors"
	"testing"
)

func TestLevelParams(t *testing.T) {
	tests := []struct {
		level    Level
		lifetime int64
		base     int
	}{
		{Apprentice, 2000, 100},
		{Knight, 1500, 150},
		{Master, 1000, 200},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			p := tt.level.Params()
			if p.LifetimeMs != tt.lifetime {
				t.Errorf("LifetimeMs = %d, want %d", p.LifetimeMs, tt.lifetime)
			}
			if p.BasePoints != tt.base {
				t.Errorf("BasePoints = %d, want %d", p.BasePoints, tt.base)
			}
		})
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := Levels()
	if len(levels) != 3 {
		t.Fatalf("Levels() returned %d levels, want 3", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i-1] >= levels[i] {
			t.Errorf("levels not ascending: %v then %v", levels[i-1], levels[i])
		}
	}
	if Apprentice.Next() != Knight || Knight.Next() != Master || Master.Next() != Master {
		t.Error("Next() should step up one level and stop at Master")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{"exact", "Knight", Knight, false},
		{"lowercase", "master", Master, false},
		{"padded", "  Apprentice ", Apprentice, false},
		{"unknown", "Padawan", Apprentice, true},
		{"empty", "", Apprentice, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrUnknownLevel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelOutOfRangeIsTotal(t *testing.T) {
	bogus := Level(42)
	if bogus.Valid() {
		t.Error("Level(42) should not be valid")
	}
	if bogus.Params() != Apprentice.Params() {
		t.Error("out-of-range level should resolve to Apprentice params")
	}
	if _, err := bogus.MarshalText(); err == nil {
		t.Error("MarshalText should reject out-of-range level")
	}
}
