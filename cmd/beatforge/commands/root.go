package commands

import (
	"github.com/spf13/cobra"
)

// Global flags.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "beatforge",
	Short: "Offline beatmap generator for rhythm games",
	Long: `beatforge - turn analyzed audio into lane-based beatmaps.

The generator consumes an analysis sidecar written by the external audio
analyzer (song.analysis.json next to song.mp3) and produces a beatmap JSON
file with timed, lane-assigned notes.

Generator modes:
  chaotic  every detected onset becomes a note
  smart    onsets filtered by energy according to --difficulty
  expert   beat-grid streams through high-energy sections, cyclic
           lane patterns and downbeat chords

Defaults for the generate flags can be stored in the config directory:
  macOS:   ~/Library/Application Support/beatforge/config.yaml
  Linux:   ~/.config/beatforge/config.yaml
  Windows: %AppData%/beatforge/config.yaml

Examples:
  # Pick the first audio file in the working directory, expert mode
  beatforge generate

  # Smart mode with a fixed seed for reproducible lane choices
  beatforge generate song.mp3 --mode smart --difficulty 0.8 --seed 42

  # Count the notes of a generated map
  beatforge inspect song_expert_autogen.json -q '.notes | length'`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
