// Package main is the entry point for the beatforge CLI.
//
// Usage:
//
//	beatforge [flags] <command> [args]
//
// Commands:
//
//	generate   - Generate a beatmap from an analyzed audio file
//	inspect    - Run a jq expression over a beatmap JSON file
//	preview    - Render a beatmap to a PNG density image
//	cache      - Analysis cache maintenance (stats, clear)
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/bloomify/beatforge/cmd/beatforge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
