// Package cli provides output and formatting helpers for the beatforge
// command-line tool: structured result printing (YAML/JSON/raw), duration and
// size formatting, and the styled generation summary.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how structured results are printed.
type OutputFormat string

const (
	// FormatYAML prints YAML, the default for terminals.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON prints indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatRaw prints byte/string payloads verbatim.
	FormatRaw OutputFormat = "raw"
)

// OutputOptions configures Output.
type OutputOptions struct {
	// Format is the output format. Empty means YAML.
	Format OutputFormat

	// File is the output file path; empty writes to stdout.
	File string

	// Writer overrides File when set.
	Writer io.Writer
}

// Output writes a structured result to the configured destination.
func Output(result any, opts OutputOptions) error {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML, "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatRaw:
		switch v := result.(type) {
		case []byte:
			_, err := w.Write(v)
			return err
		case string:
			_, err := io.WriteString(w, v)
			return err
		default:
			return fmt.Errorf("raw format needs bytes or string, got %T", result)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}
