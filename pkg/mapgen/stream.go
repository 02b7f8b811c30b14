package mapgen

// Section is a contiguous run of high-energy beats long enough to carry a
// stream. The range is half-open: beats [Start, End).
type Section struct {
	Start, End int
}

// Contains reports whether beat index i falls inside the section.
func (s Section) Contains(i int) bool {
	return s.Start <= i && i < s.End
}

// DetectStreams scans per-beat energy flags left to right and emits a section
// for every high-energy run of at least minBeats beats (a run exactly
// minBeats long qualifies). A run still open at the end of the track closes
// at the final index. Sections come out disjoint and ordered by construction.
func DetectStreams(flags []bool, minBeats float64) []Section {
	var sections []Section
	start := -1
	for i, high := range flags {
		switch {
		case high && start == -1:
			start = i
		case !high && start != -1:
			if float64(i-start) >= minBeats {
				sections = append(sections, Section{Start: start, End: i})
			}
			start = -1
		}
	}
	if start != -1 && float64(len(flags)-start) >= minBeats {
		sections = append(sections, Section{Start: start, End: len(flags)})
	}
	return sections
}

// inAnySection reports whether beat index i is covered by any section.
func inAnySection(sections []Section, i int) bool {
	for _, s := range sections {
		if s.Contains(i) {
			return true
		}
	}
	return false
}
