package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bloomify/beatforge/pkg/beatmap"
	"github.com/bloomify/beatforge/pkg/preview"
)

var (
	previewOutput string
	previewWidth  int
	previewHeight int
	previewLanes  int
)

var previewCmd = &cobra.Command{
	Use:   "preview <beatmap.json>",
	Short: "Render a beatmap to a PNG density image",
	Long: `Render a beatmap as a PNG: time left to right, lanes top to bottom.
Stream sections show up as dense dot runs, chords as vertical pairs.

Examples:
  beatforge preview song_expert_autogen.json
  beatforge preview map.json -o map.png --width 2000 --lanes 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := beatmap.ReadFile(args[0])
		if err != nil {
			return err
		}

		out := previewOutput
		if out == "" {
			out = strings.TrimSuffix(args[0], ".json") + ".png"
		}
		opts := preview.Options{Width: previewWidth, Height: previewHeight, Lanes: previewLanes}
		if err := preview.WritePNG(out, m, opts); err != nil {
			return err
		}
		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "rendered %d notes\n", len(m.Notes))
		}
		fmt.Printf("Preview saved to: %s\n", out)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "output PNG path (default <beatmap>.png)")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "image width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", 0, "image height in pixels")
	previewCmd.Flags().IntVar(&previewLanes, "lanes", 0, "lane rows (default: from the map)")
	rootCmd.AddCommand(previewCmd)
}
