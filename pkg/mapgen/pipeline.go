package mapgen

import (
	"math/rand/v2"

	"github.com/bloomify/beatforge/pkg/analysis"
	"github.com/bloomify/beatforge/pkg/beatmap"
)

// Meta is the song metadata stamped into the assembled beatmap.
type Meta struct {
	Title     string
	Artist    string
	Mapper    string
	AudioPath string
	ImagePath string
}

// Stats summarizes what the pipeline did, for reporting.
type Stats struct {
	OnsetsDetected int
	OnsetsKept     int
	StreamSections int
	Notes          int
	Pattern        string // expert profile only
}

// Result is a generated beatmap plus its run statistics.
type Result struct {
	Beatmap *beatmap.Beatmap
	Stats   Stats
}

// Generate runs the full pipeline for one analysis snapshot. The rng is the
// only source of randomness; a fixed seed reproduces the exact note list.
func Generate(a *analysis.Analysis, meta Meta, cfg Config, rng *rand.Rand) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		notes []beatmap.Note
		stats Stats
	)
	stats.OnsetsDetected = len(a.OnsetTimes)

	if cfg.Profile == ProfileExpert {
		grid := BuildGrid(a.BeatTimes)
		flags := ClassifyBeats(a, cfg.EnergyPercentile)
		sections := DetectStreams(flags, cfg.MinStreamBeats)
		stamps := StreamStamps(grid, sections, a.OnsetTimes, cfg.StreamSubdivision)

		assigner := NewCyclicPattern(cfg.Lanes, cfg.ChordChance, rng)
		notes = assigner.Assign(stamps)
		stats.StreamSections = len(sections)
		stats.Pattern = assigner.PatternName()
		stats.OnsetsKept = stats.OnsetsDetected
	} else {
		onsets := a.OnsetTimes
		if cfg.Profile == ProfileSmart {
			onsets = FilterOnsets(a, cfg.Difficulty)
		}
		stamps := OnsetStamps(onsets)

		assigner := NewNoRepeatRandom(cfg.Lanes, rng)
		notes = assigner.Assign(stamps)
		stats.OnsetsKept = len(onsets)
	}

	beatmap.SortNotes(notes)
	stats.Notes = len(notes)

	m := assemble(a, meta, cfg, notes)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Result{Beatmap: m, Stats: stats}, nil
}

// assemble packages metadata and the final note list. Pure data
// transformation; the notes are already sorted.
func assemble(a *analysis.Analysis, meta Meta, cfg Config, notes []beatmap.Note) *beatmap.Beatmap {
	m := &beatmap.Beatmap{
		Title:     meta.Title,
		Artist:    meta.Artist,
		Mapper:    meta.Mapper,
		AudioPath: meta.AudioPath,
		ImagePath: meta.ImagePath,
		BPM:       beatmap.Round2(a.BPM),
		Notes:     notes,
	}
	if m.Notes == nil {
		m.Notes = []beatmap.Note{}
	}
	if cfg.EmitTiming {
		offset := 0.0
		if len(a.BeatTimes) > 0 {
			offset = a.BeatTimes[0] * 1000
		}
		offset = beatmap.Round2(offset)
		length := a.DurationMS()
		m.OffsetMS = &offset
		m.SongLengthMS = &length
	}
	return m
}
