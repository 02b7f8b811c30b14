package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bloomify/beatforge/cmd/beatforge/internal/build"
	"github.com/bloomify/beatforge/cmd/beatforge/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(build.String())
		if IsVerbose() {
			fmt.Printf("  go:     %s\n", runtime.Version())
			if dir, err := config.Dir(); err == nil {
				fmt.Printf("  config: %s\n", dir)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
