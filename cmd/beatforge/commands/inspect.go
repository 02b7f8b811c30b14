package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/bloomify/beatforge/pkg/cli"
)

var (
	inspectQuery  string
	inspectFormat string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <beatmap.json>",
	Short: "Run a jq expression over a beatmap JSON file",
	Long: `Query a generated beatmap with a jq expression.

Examples:
  beatforge inspect map.json -q '.bpm'
  beatforge inspect map.json -q '.notes | length'
  beatforge inspect map.json -q '[.notes[].lane] | unique'
  beatforge inspect map.json -q '.notes[] | select(.lane == 0) | .time' --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := gojq.Parse(inspectQuery)
		if err != nil {
			return fmt.Errorf("invalid jq expression %q: %w", inspectQuery, err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		iter := query.Run(doc)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, isErr := v.(error); isErr {
				return fmt.Errorf("jq: %w", err)
			}
			if err := cli.Output(v, cli.OutputOptions{Format: cli.OutputFormat(inspectFormat)}); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectQuery, "query", "q", ".", "jq expression")
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "json", "output format: json, yaml")
	rootCmd.AddCommand(inspectCmd)
}
