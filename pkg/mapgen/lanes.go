package mapgen

import (
	"math/rand/v2"

	"github.com/bloomify/beatforge/pkg/beatmap"
)

// LaneAssigner consumes an ordered timestamp sequence and produces laned
// notes. Implementations may add chord notes but must keep lanes distinct
// within a single timestamp.
type LaneAssigner interface {
	Assign(stamps []Stamp) []beatmap.Note
}

// NoRepeatRandom assigns lanes uniformly at random, never landing two
// consecutive notes on the same lane (when there is more than one lane to
// choose from).
type NoRepeatRandom struct {
	Lanes int
	rng   *rand.Rand
}

// NewNoRepeatRandom returns a no-repeat random assigner over lanes columns.
func NewNoRepeatRandom(lanes int, rng *rand.Rand) *NoRepeatRandom {
	return &NoRepeatRandom{Lanes: lanes, rng: rng}
}

func (g *NoRepeatRandom) Assign(stamps []Stamp) []beatmap.Note {
	notes := make([]beatmap.Note, 0, len(stamps))
	last := -1
	for _, s := range stamps {
		lane := g.pick(last)
		notes = append(notes, beatmap.Note{TimeMS: toMS(s.Time), Lane: lane})
		last = lane
	}
	return notes
}

// pick draws a lane excluding last. With one lane, or before the first note,
// nothing is excluded.
func (g *NoRepeatRandom) pick(last int) int {
	if g.Lanes <= 1 {
		return 0
	}
	if last < 0 {
		return g.rng.IntN(g.Lanes)
	}
	lane := g.rng.IntN(g.Lanes - 1)
	if lane >= last {
		lane++
	}
	return lane
}

// CyclicPattern assigns lanes by cycling a fixed 8-step pattern chosen once
// per run, and rolls for an extra chord note on each downbeat.
type CyclicPattern struct {
	Lanes       int
	ChordChance float64

	rng         *rand.Rand
	patternName string
	pattern     []int
	pos         int
}

// NewCyclicPattern picks one stream pattern at random and returns the
// assigner for it.
func NewCyclicPattern(lanes int, chordChance float64, rng *rand.Rand) *CyclicPattern {
	name, p := pickPattern(rng)
	return &CyclicPattern{
		Lanes:       lanes,
		ChordChance: chordChance,
		rng:         rng,
		patternName: name,
		pattern:     p,
	}
}

// PatternName reports which pattern this run cycles through.
func (g *CyclicPattern) PatternName() string { return g.patternName }

func (g *CyclicPattern) Assign(stamps []Stamp) []beatmap.Note {
	notes := make([]beatmap.Note, 0, len(stamps))
	for _, s := range stamps {
		ms := toMS(s.Time)
		// Patterns are written for 4 lanes; fold into the configured count.
		lane := g.pattern[g.pos%len(g.pattern)] % g.Lanes
		g.pos++
		notes = append(notes, beatmap.Note{TimeMS: ms, Lane: lane})

		// Chords only land on downbeats, and never on the primary lane.
		if s.Downbeat && g.Lanes > 1 && g.rng.Float64() < g.ChordChance {
			chord := g.rng.IntN(g.Lanes - 1)
			if chord >= lane {
				chord++
			}
			notes = append(notes, beatmap.Note{TimeMS: ms, Lane: chord})
		}
	}
	return notes
}

func toMS(sec float64) int {
	return int(sec * 1000)
}
