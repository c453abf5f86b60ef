package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fulldiveVR/codex/cmd"
	"github.com/fulldiveVR/codex/internal/compiler"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version, commit, and build date of appcheck, along with the
Go runtime and the TypeScript compiler that --compiler tsc would use.`,
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		fmt.Fprintf(w, "appcheck version %s\n", cmd.Version)
		fmt.Fprintf(w, "  commit: %s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:  %s\n", cmd.Date)
		fmt.Fprintf(w, "  go:     %s\n", runtime.Version())

		tsc := "not found"
		if path, err := compiler.NewTSCChecker(compiler.WithTSCPath(loadedConfig.Compiler.TSCPath)).Resolve(); err == nil {
			tsc = path
		}
		fmt.Fprintf(w, "  tsc:    %s\n", tsc)
	},
}
