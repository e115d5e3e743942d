package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/scour-dev/scour/internal/config"
	"github.com/scour-dev/scour/internal/logging"
	"github.com/scour-dev/scour/internal/providers"
	"github.com/scour-dev/scour/internal/report"
	"github.com/scour-dev/scour/internal/scan"
)

// Scan flags
var (
	flagTokens     string
	flagBackend    string
	flagFormat     string
	flagOut        string
	flagFailOn     string
	flagProfile    string
	flagLogFile    string
	flagChunkSize  int
	flagWorkers    int
	flagNoRedact   bool
	flagNoCache    bool
	flagNoProgress bool
	flagVerbose    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory tree for security issues",
	Long:  "Scan walks the given directory (default: current directory), analyzes every supported source file, and writes a findings report.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runScan(root, cfg)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&flagTokens, "tokens", "", "API tokens, comma-separated (overrides config and SCOUR_TOKENS)")
	scanCmd.Flags().StringVar(&flagBackend, "backend", "", "Analysis backend (groq)")
	scanCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, html)")
	scanCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	scanCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, low, medium, high, critical)")
	scanCmd.Flags().StringVar(&flagProfile, "profile", "", "Audit profile YAML file")
	scanCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Log file path")
	scanCmd.Flags().IntVar(&flagChunkSize, "chunk-size", 0, "Maximum characters per analysis chunk")
	scanCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Number of files analyzed concurrently")
	scanCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	scanCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable the response cache")
	scanCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Disable the progress bar")
	scanCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Verbose console logging")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagTokens != "" {
		m["tokens"] = flagTokens
	}
	if flagBackend != "" {
		m["backend"] = flagBackend
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagProfile != "" {
		m["profileFile"] = flagProfile
	}
	if flagLogFile != "" {
		m["logFile"] = flagLogFile
	}
	if flagChunkSize > 0 {
		m["chunkSize"] = fmt.Sprintf("%d", flagChunkSize)
	}
	if flagWorkers > 0 {
		m["workers"] = fmt.Sprintf("%d", flagWorkers)
	}
	return m
}

func runScan(root string, cfg config.Config) {
	if flagNoRedact {
		off := false
		cfg.Privacy.RedactSecrets = &off
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if flagNoCache {
		off := false
		cfg.Cache.Enabled = &off
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if err == config.ErrNoTokens {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return
	}

	logger, closeLog, err := logging.New(cfg.LogFile, flagVerbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	defer closeLog()

	client, err := providers.New(cfg.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitUsageError
		}
		return
	}

	eng, err := scan.NewEngine(cfg, client, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	files, err := eng.Discover(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No supported source files under %s\n", root)
		return
	}

	if !flagNoProgress {
		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		eng.OnFile = func(string) { _ = bar.Add(1) }
	}

	logger.Infow("starting scan", "root", root, "files", len(files), "workers", cfg.Workers)

	collector := report.NewCollector()
	eng.AnalyzeFiles(context.Background(), files, collector)
	rep := collector.Build(root, version)

	if err := report.WriteReport(rep, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	printSummary(rep)

	// Check fail-on threshold
	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, fr := range rep.Files {
			for _, f := range fr.Findings {
				if scan.MeetsThreshold(f.Severity, cfg.FailOn) {
					exitCode = ExitFindings
					return
				}
			}
		}
	}
}

// printSummary writes a one-glance severity summary to stderr so it shows
// up even when the report itself goes to a file.
func printSummary(rep *report.Report) {
	c := rep.Summary.Counts
	parts := []string{}
	add := func(n int, label string, attr color.Attribute) {
		if n == 0 {
			return
		}
		parts = append(parts, color.New(attr).Sprintf("%d %s", n, label))
	}
	add(c.Critical, "critical", color.FgRed)
	add(c.High, "high", color.FgHiRed)
	add(c.Medium, "medium", color.FgYellow)
	add(c.Low, "low", color.FgWhite)
	add(c.Info, "info", color.FgCyan)

	if len(parts) == 0 {
		fmt.Fprintf(os.Stderr, "%s %d files analyzed, no findings\n",
			color.GreenString("✓"), len(rep.Files))
		return
	}
	fmt.Fprintf(os.Stderr, "%d files analyzed: %s\n", len(rep.Files), strings.Join(parts, ", "))
}
