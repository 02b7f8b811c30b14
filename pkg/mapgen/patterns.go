package mapgen

import "math/rand/v2"

// Stream patterns are fixed 8-step lane cycles tuned for 4-lane playability.
// Represented as data so new patterns are an entry here, not a code branch.
var patterns = map[string][]int{
	"zig_zag":   {0, 2, 1, 3, 2, 0, 3, 1},
	"staircase": {0, 1, 2, 3, 2, 1, 0, 1},
	"in_out":    {0, 3, 1, 2, 1, 3, 0, 2},
}

// patternNames is kept sorted so a seeded rng picks deterministically.
var patternNames = []string{"in_out", "staircase", "zig_zag"}

// PatternNames lists the available stream pattern names.
func PatternNames() []string {
	names := make([]string, len(patternNames))
	copy(names, patternNames)
	return names
}

// Pattern returns the lane cycle for a named pattern.
func Pattern(name string) ([]int, bool) {
	p, ok := patterns[name]
	return p, ok
}

// pickPattern selects one pattern uniformly at random for a generation run.
func pickPattern(rng *rand.Rand) (string, []int) {
	name := patternNames[rng.IntN(len(patternNames))]
	return name, patterns[name]
}
