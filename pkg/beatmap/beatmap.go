// Package beatmap defines the beatmap output model and its JSON codec.
//
// A beatmap is the final product of a generation run: song metadata plus an
// ordered list of timed, lane-assigned notes. The JSON shape is the interchange
// format consumed by the game client:
//
//	{
//	  "title": "...", "artist": "...", "mapper": "...",
//	  "audio_path": "song.mp3", "image_path": "art.png",
//	  "bpm": 174.42,
//	  "offset_ms": 23.22,        // optional
//	  "song_length_ms": 215000,  // optional
//	  "notes": [{"time": 1042, "lane": 2}, ...]
//	}
//
// Note times are integer milliseconds and notes are sorted ascending by time.
// Two notes may share a time (a chord) but never a lane at that time.
package beatmap

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// Note is a single playable note: a time in milliseconds and a lane index.
type Note struct {
	TimeMS int `json:"time"`
	Lane   int `json:"lane"`
}

// Beatmap is a complete generated map for one song.
//
// OffsetMS and SongLengthMS are optional; whether they are emitted is decided
// by the generator profile, not by zero-value elision.
type Beatmap struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Mapper    string `json:"mapper"`
	AudioPath string `json:"audio_path"`
	ImagePath string `json:"image_path"`

	// BPM is rounded to 2 decimals before assembly.
	BPM float64 `json:"bpm"`

	OffsetMS     *float64 `json:"offset_ms,omitempty"`
	SongLengthMS *int     `json:"song_length_ms,omitempty"`

	Notes []Note `json:"notes"`
}

// Round2 rounds v to 2 decimal places, the precision used for the bpm and
// offset_ms fields.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SortNotes sorts notes ascending by time. The sort is stable so that a chord
// keeps its primary note before the added note.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].TimeMS < notes[j].TimeMS
	})
}

// Validate checks the structural invariants of the note list: non-negative
// times and lanes, ascending time order, and pairwise distinct lanes among
// notes sharing a timestamp.
func (m *Beatmap) Validate() error {
	seen := map[int]bool{}
	for i, n := range m.Notes {
		if n.TimeMS < 0 {
			return fmt.Errorf("note %d: negative time %d", i, n.TimeMS)
		}
		if n.Lane < 0 {
			return fmt.Errorf("note %d: negative lane %d", i, n.Lane)
		}
		if i > 0 {
			prev := m.Notes[i-1].TimeMS
			if n.TimeMS < prev {
				return fmt.Errorf("note %d: time %d before previous %d", i, n.TimeMS, prev)
			}
			if n.TimeMS != prev {
				clear(seen)
			}
		}
		if seen[n.Lane] {
			return fmt.Errorf("note %d: duplicate lane %d at time %d", i, n.Lane, n.TimeMS)
		}
		seen[n.Lane] = true
	}
	return nil
}

// Encode writes the beatmap as indented JSON.
func Encode(w io.Writer, m *Beatmap) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(m)
}

// Decode parses a beatmap from JSON.
func Decode(r io.Reader) (*Beatmap, error) {
	var m Beatmap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse beatmap: %w", err)
	}
	return &m, nil
}

// WriteFile writes the beatmap to path as indented JSON.
func WriteFile(path string, m *Beatmap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create beatmap file: %w", err)
	}
	defer f.Close()
	if err := Encode(f, m); err != nil {
		return fmt.Errorf("write beatmap file: %w", err)
	}
	return f.Close()
}

// ReadFile reads a beatmap JSON file.
func ReadFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
