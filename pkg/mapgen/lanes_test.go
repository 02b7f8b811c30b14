package mapgen

import (
	"math/rand/v2"
	"testing"
)

func seededRand(t *testing.T) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewPCG(7, 13))
}

func stampsEvery(n int, stepMS int) []Stamp {
	stamps := make([]Stamp, n)
	for i := range stamps {
		stamps[i] = Stamp{Time: float64(i*stepMS) / 1000, Downbeat: true}
	}
	return stamps
}

func TestNoRepeatRandomNeverRepeats(t *testing.T) {
	g := NewNoRepeatRandom(4, seededRand(t))
	notes := g.Assign(stampsEvery(500, 100))
	if len(notes) != 500 {
		t.Fatalf("len(notes) = %d, want 500", len(notes))
	}
	for i, n := range notes {
		if n.Lane < 0 || n.Lane >= 4 {
			t.Fatalf("note %d lane %d out of range", i, n.Lane)
		}
		if i > 0 && n.Lane == notes[i-1].Lane {
			t.Fatalf("notes %d and %d share lane %d", i-1, i, n.Lane)
		}
	}
}

func TestNoRepeatRandomTwoLanesAlternates(t *testing.T) {
	g := NewNoRepeatRandom(2, seededRand(t))
	notes := g.Assign(stampsEvery(20, 100))
	for i := 1; i < len(notes); i++ {
		if notes[i].Lane == notes[i-1].Lane {
			t.Fatalf("lanes did not alternate at %d: %v", i, notes)
		}
	}
}

func TestNoRepeatRandomSingleLane(t *testing.T) {
	g := NewNoRepeatRandom(1, seededRand(t))
	for _, n := range g.Assign(stampsEvery(10, 100)) {
		if n.Lane != 0 {
			t.Fatalf("single-lane note got lane %d", n.Lane)
		}
	}
}

func TestNoRepeatRandomDeterministic(t *testing.T) {
	a := NewNoRepeatRandom(4, rand.New(rand.NewPCG(1, 2))).Assign(stampsEvery(50, 100))
	b := NewNoRepeatRandom(4, rand.New(rand.NewPCG(1, 2))).Assign(stampsEvery(50, 100))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at note %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCyclicPatternFollowsPattern(t *testing.T) {
	g := NewCyclicPattern(4, 0, seededRand(t)) // chordChance 0: primaries only
	pattern, ok := Pattern(g.PatternName())
	if !ok {
		t.Fatalf("unknown pattern %q", g.PatternName())
	}

	notes := g.Assign(stampsEvery(40, 125))
	if len(notes) != 40 {
		t.Fatalf("len(notes) = %d, want 40", len(notes))
	}
	for i, n := range notes {
		if want := pattern[i%len(pattern)]; n.Lane != want {
			t.Fatalf("note %d lane = %d, want pattern lane %d", i, n.Lane, want)
		}
	}
}

func TestCyclicPatternIgnoresDownbeatForCycling(t *testing.T) {
	// The pattern cursor advances per note regardless of downbeat flags.
	stamps := stampsEvery(16, 125)
	for i := range stamps {
		stamps[i].Downbeat = i%4 == 0
	}
	g := NewCyclicPattern(4, 0, seededRand(t))
	pattern, _ := Pattern(g.PatternName())
	for i, n := range g.Assign(stamps) {
		if want := pattern[i%len(pattern)]; n.Lane != want {
			t.Fatalf("note %d lane = %d, want %d", i, n.Lane, want)
		}
	}
}

func TestCyclicPatternChords(t *testing.T) {
	// chordChance 1: every downbeat gets a chord on a different lane.
	stamps := stampsEvery(32, 125)
	for i := range stamps {
		stamps[i].Downbeat = i%4 == 0
	}
	g := NewCyclicPattern(4, 1.0, seededRand(t))
	notes := g.Assign(stamps)

	wantNotes := 32 + 8 // one chord per downbeat
	if len(notes) != wantNotes {
		t.Fatalf("len(notes) = %d, want %d", len(notes), wantNotes)
	}
	for i := 0; i < len(notes)-1; i++ {
		if notes[i].TimeMS == notes[i+1].TimeMS && notes[i].Lane == notes[i+1].Lane {
			t.Fatalf("chord at %dms reuses lane %d", notes[i].TimeMS, notes[i].Lane)
		}
	}
}

func TestCyclicPatternNoChordOnSingleLane(t *testing.T) {
	g := NewCyclicPattern(1, 1.0, seededRand(t))
	notes := g.Assign(stampsEvery(8, 125))
	if len(notes) != 8 {
		t.Fatalf("single lane grew chords: %d notes, want 8", len(notes))
	}
	for _, n := range notes {
		if n.Lane != 0 {
			t.Fatalf("lane = %d, want 0", n.Lane)
		}
	}
}

func TestPickPatternCoversAll(t *testing.T) {
	rng := seededRand(t)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		name, p := pickPattern(rng)
		if len(p) != 8 {
			t.Fatalf("pattern %q has length %d, want 8", name, len(p))
		}
		seen[name] = true
	}
	for _, name := range PatternNames() {
		if !seen[name] {
			t.Errorf("pattern %q never selected", name)
		}
	}
}
