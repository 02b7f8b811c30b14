package mapgen

import "github.com/bloomify/beatforge/pkg/analysis"

// ClassifyBeats labels each beat timestamp as high-energy or not. The
// threshold is the given percentile of the whole RMS curve, computed once; a
// beat qualifies only when its nearest frame's energy strictly exceeds it.
// Beats mapping past the end of the analyzed signal are never high-energy.
func ClassifyBeats(a *analysis.Analysis, percentile float64) []bool {
	threshold := analysis.Percentile(a.RMS, percentile)
	flags := make([]bool, len(a.BeatTimes))
	for i, t := range a.BeatTimes {
		if e, ok := a.FrameEnergy(t); ok {
			flags[i] = e > threshold
		}
	}
	return flags
}

// FilterOnsets keeps the onsets loud enough for the requested difficulty.
// The cutoff is the (1-difficulty)*100 percentile of the onsets' own
// nearest-frame energies, and onsets at or above it survive: difficulty 1.0
// keeps everything, difficulty near 0 keeps only the loudest hits.
// No onsets in, none out.
func FilterOnsets(a *analysis.Analysis, difficulty float64) []float64 {
	if len(a.OnsetTimes) == 0 {
		return nil
	}
	strengths := make([]float64, len(a.OnsetTimes))
	for i, t := range a.OnsetTimes {
		strengths[i], _ = a.FrameEnergy(t)
	}
	threshold := analysis.Percentile(strengths, (1-difficulty)*100)

	kept := make([]float64, 0, len(a.OnsetTimes))
	for i, t := range a.OnsetTimes {
		if strengths[i] >= threshold {
			kept = append(kept, t)
		}
	}
	return kept
}
