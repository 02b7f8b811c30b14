// Package mapgen turns an audio analysis into a beatmap.
//
// One configurable pipeline covers the three generator profiles:
//
//   - chaotic: every detected onset becomes a note, lanes chosen at random
//     with no immediate repeats.
//   - smart: onsets are filtered by energy percentile according to the
//     difficulty setting, then laned like chaotic.
//   - expert: the beat grid is scanned for sustained high-energy sections;
//     those become subdivided note streams laned by a fixed cyclic pattern,
//     with occasional chords on downbeats. Quieter beats get a single
//     onset-aligned note.
//
// The stream path and the onset path are alternative timestamp strategies;
// the profile selects exactly one, so energy-difficulty filtering and stream
// detection never combine.
//
// All randomness flows through an injected *rand.Rand so a fixed seed yields
// a fully deterministic map.
package mapgen

import "fmt"

// Profile selects which generator variant the pipeline runs.
type Profile string

const (
	ProfileChaotic Profile = "chaotic"
	ProfileSmart   Profile = "smart"
	ProfileExpert  Profile = "expert"
)

// Config is the full generation configuration surface.
type Config struct {
	Profile Profile

	// Lanes is the number of input columns, >= 1.
	Lanes int

	// Difficulty in [0,1] drives onset filtering for the smart profile:
	// 1.0 keeps every onset, values near 0 keep only the loudest.
	Difficulty float64

	// StreamSubdivision is notes per beat inside a stream, >= 1.
	// 4 = 1/4 notes, 6 = triplets, 8 = very fast.
	StreamSubdivision int

	// MinStreamBeats is how many beats of sustained energy are required
	// before a stream section opens, >= 0.
	MinStreamBeats float64

	// ChordChance in [0,1] is the probability of adding a chord note on a
	// stream-profile downbeat.
	ChordChance float64

	// EnergyPercentile is the RMS percentile above which a beat counts as
	// high-energy. 60 means the top 40% of the curve qualifies.
	EnergyPercentile float64

	// EmitTiming controls whether offset_ms and song_length_ms appear in
	// the output. The simple profiles emit them, the expert profile does not.
	EmitTiming bool
}

// DefaultConfig returns the standard settings for a profile, matching the
// shipped presets of each generator variant.
func DefaultConfig(p Profile) Config {
	cfg := Config{
		Profile:           p,
		Lanes:             4,
		Difficulty:        1.0,
		StreamSubdivision: 4,
		MinStreamBeats:    4.0,
		ChordChance:       0.25,
		EnergyPercentile:  60,
		EmitTiming:        p != ProfileExpert,
	}
	return cfg
}

// ConfigError reports an out-of-range or unknown configuration value.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mapgen: invalid %s: %s", e.Field, e.Msg)
}

// Validate fails fast on malformed configuration so no undefined lane index
// or subdivision ever reaches the pipeline.
func (c *Config) Validate() error {
	switch c.Profile {
	case ProfileChaotic, ProfileSmart, ProfileExpert:
	default:
		return &ConfigError{"profile", fmt.Sprintf("unknown profile %q", c.Profile)}
	}
	if c.Lanes < 1 {
		return &ConfigError{"lanes", fmt.Sprintf("must be >= 1, got %d", c.Lanes)}
	}
	if c.Difficulty < 0 || c.Difficulty > 1 {
		return &ConfigError{"difficulty", fmt.Sprintf("must be in [0,1], got %v", c.Difficulty)}
	}
	if c.StreamSubdivision < 1 {
		return &ConfigError{"stream_subdivision", fmt.Sprintf("must be >= 1, got %d", c.StreamSubdivision)}
	}
	if c.MinStreamBeats < 0 {
		return &ConfigError{"min_stream_duration_beats", fmt.Sprintf("must be >= 0, got %v", c.MinStreamBeats)}
	}
	if c.ChordChance < 0 || c.ChordChance > 1 {
		return &ConfigError{"chord_chance", fmt.Sprintf("must be in [0,1], got %v", c.ChordChance)}
	}
	if c.EnergyPercentile < 0 || c.EnergyPercentile > 100 {
		return &ConfigError{"energy_percentile", fmt.Sprintf("must be in [0,100], got %v", c.EnergyPercentile)}
	}
	return nil
}
