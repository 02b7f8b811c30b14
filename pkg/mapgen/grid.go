package mapgen

// BeatInterval is the span between two consecutive beat-track timestamps.
type BeatInterval struct {
	Index      int
	Start, End float64
}

// BuildGrid pairs each beat timestamp with its successor to form the beat
// grid. The final timestamp starts no interval. Fewer than two beats yield an
// empty grid, which makes every beat-driven downstream stage a no-op.
func BuildGrid(beatTimes []float64) []BeatInterval {
	if len(beatTimes) < 2 {
		return nil
	}
	grid := make([]BeatInterval, 0, len(beatTimes)-1)
	for i := 0; i+1 < len(beatTimes); i++ {
		grid = append(grid, BeatInterval{
			Index: i,
			Start: beatTimes[i],
			End:   beatTimes[i+1],
		})
	}
	return grid
}
