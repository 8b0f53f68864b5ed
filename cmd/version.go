package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Build metadata, overridden at release time via -ldflags. The zero values
// mark a from-source build.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the secscope build version",
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		fmt.Fprint(cmd.OutOrStdout(), versionString(verbose))
	},
}

func versionString(verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "secscope %s\n", Version)
	if verbose {
		fmt.Fprintf(&b, "  commit:  %s\n", GitCommit)
		fmt.Fprintf(&b, "  built:   %s\n", BuildDate)
		fmt.Fprintf(&b, "  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return b.String()
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Include commit, build date, and runtime details")
}
