package mapgen

// Stamp is a note timestamp before lane assignment. Downbeat marks the first
// subdivision of a beat interval (or any non-subdivided note) and gates chord
// insertion.
type Stamp struct {
	Time     float64 // seconds
	Downbeat bool
}

// StreamStamps walks the beat grid in order and emits note timestamps: inside
// a stream section each interval is cut into subdivision evenly spaced notes
// (the first marked as the downbeat); outside, a single note lands on the
// earliest onset inside the interval, falling back to the interval start when
// the interval is silent. Output time order follows grid order and is
// monotonic because beat starts increase and intra-interval offsets increase.
func StreamStamps(grid []BeatInterval, sections []Section, onsets []float64, subdivision int) []Stamp {
	var stamps []Stamp
	for _, iv := range grid {
		if inAnySection(sections, iv.Index) {
			step := (iv.End - iv.Start) / float64(subdivision)
			for k := 0; k < subdivision; k++ {
				stamps = append(stamps, Stamp{
					Time:     iv.Start + float64(k)*step,
					Downbeat: k == 0,
				})
			}
			continue
		}
		t := iv.Start
		for _, onset := range onsets {
			if onset >= iv.End {
				break
			}
			if onset >= iv.Start {
				t = onset
				break
			}
		}
		stamps = append(stamps, Stamp{Time: t, Downbeat: true})
	}
	return stamps
}

// OnsetStamps wraps raw onset timestamps as stamps. Every onset-driven note
// counts as a downbeat.
func OnsetStamps(onsets []float64) []Stamp {
	stamps := make([]Stamp, len(onsets))
	for i, t := range onsets {
		stamps[i] = Stamp{Time: t, Downbeat: true}
	}
	return stamps
}
