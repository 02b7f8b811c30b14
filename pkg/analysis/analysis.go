// Package analysis defines the contract with the external audio analyzer.
//
// The generator does not decode audio or run DSP itself. An external analyzer
// processes the waveform and hands over a compact analysis document: tempo,
// beat-track timestamps, onset timestamps, and the per-frame RMS energy curve.
// This package models that document as an immutable snapshot and loads it from
// sidecar files written next to the audio (JSON or msgpack).
//
// Frame conventions follow the analyzer: RMS frame i covers samples starting
// at i*HopLength at the given SampleRate. Beat and onset times are seconds.
package analysis

import (
	"fmt"
	"math"
	"sort"
)

// Default frame parameters, used when the sidecar omits them.
const (
	DefaultSampleRate = 22050
	DefaultHopLength  = 512
)

// Analysis is the full result of analyzing one audio file. Produced once per
// run and treated as read-only by every downstream component.
type Analysis struct {
	// BPM is the estimated tempo.
	BPM float64 `json:"bpm" msgpack:"bpm"`

	// SampleRate and HopLength describe how the analyzer framed the signal.
	SampleRate int `json:"sample_rate" msgpack:"sample_rate"`
	HopLength  int `json:"hop_length" msgpack:"hop_length"`

	// BeatTimes are the beat-track timestamps in seconds, strictly increasing.
	BeatTimes []float64 `json:"beat_times" msgpack:"beat_times"`

	// OnsetTimes are detected sound-event starts in seconds, non-decreasing.
	OnsetTimes []float64 `json:"onset_times" msgpack:"onset_times"`

	// RMS is the per-frame energy curve.
	RMS []float64 `json:"rms" msgpack:"rms"`
}

// applyDefaults fills in frame parameters the sidecar omitted.
func (a *Analysis) applyDefaults() {
	if a.SampleRate == 0 {
		a.SampleRate = DefaultSampleRate
	}
	if a.HopLength == 0 {
		a.HopLength = DefaultHopLength
	}
}

// Validate checks the document invariants. Empty beat or onset lists are
// valid: the generator degrades to an empty or sparse note list instead of
// failing.
func (a *Analysis) Validate() error {
	if a.BPM <= 0 || math.IsNaN(a.BPM) || math.IsInf(a.BPM, 0) {
		return fmt.Errorf("analysis: bpm must be positive, got %v", a.BPM)
	}
	if a.SampleRate <= 0 {
		return fmt.Errorf("analysis: sample_rate must be positive, got %d", a.SampleRate)
	}
	if a.HopLength <= 0 {
		return fmt.Errorf("analysis: hop_length must be positive, got %d", a.HopLength)
	}
	for i := 1; i < len(a.BeatTimes); i++ {
		if a.BeatTimes[i] <= a.BeatTimes[i-1] {
			return fmt.Errorf("analysis: beat_times not strictly increasing at %d (%v <= %v)",
				i, a.BeatTimes[i], a.BeatTimes[i-1])
		}
	}
	for i := 1; i < len(a.OnsetTimes); i++ {
		if a.OnsetTimes[i] < a.OnsetTimes[i-1] {
			return fmt.Errorf("analysis: onset_times not sorted at %d", i)
		}
	}
	for i, v := range a.RMS {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("analysis: rms[%d] = %v, want >= 0", i, v)
		}
	}
	return nil
}

// FrameIndex maps a timestamp in seconds to the RMS frame covering it.
// The result may be out of range for times past the analyzed signal; callers
// decide how to treat that.
func (a *Analysis) FrameIndex(t float64) int {
	return int(t*float64(a.SampleRate)) / a.HopLength
}

// FrameEnergy returns the RMS energy at time t, and false when t maps past
// the end of the curve.
func (a *Analysis) FrameEnergy(t float64) (float64, bool) {
	i := a.FrameIndex(t)
	if i < 0 || i >= len(a.RMS) {
		return 0, false
	}
	return a.RMS[i], true
}

// DurationMS returns the analyzed signal length in whole milliseconds,
// derived from the frame count.
func (a *Analysis) DurationMS() int {
	return int(float64(len(a.RMS)) * float64(a.HopLength) / float64(a.SampleRate) * 1000)
}

// Percentile computes the p-th percentile (0..100) of values using linear
// interpolation between closest ranks. It is a pure function over a snapshot;
// the input slice is not modified. Returns 0 for an empty input.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
