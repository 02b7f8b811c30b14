package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// audioExtensions are the audio file types the generator accepts.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".flac": true,
}

// findAudioFile picks the audio file to map when none was given: the first
// eligible file in dir by name order. No eligible file is a hard error,
// reported before any analysis work.
func findAudioFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no audio file (.mp3/.wav/.ogg/.flac) found in %s", dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// audioStem returns the audio file name without directory or extension; it
// becomes the beatmap title and the output name prefix.
func audioStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
