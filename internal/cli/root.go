package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes for CI gating.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "scour",
	Short: "LLM-backed source code security scanner",
	Long:  "Scour walks a source tree, submits eligible files to an LLM backend chunk by chunk, and emits structured security findings with deterministic exit codes.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print scour version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "scour version %s\n", version)
	},
}
