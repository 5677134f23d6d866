package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-nfc-checklist/internal/analyzer"
	"github.com/penwyp/go-nfc-checklist/internal/config"
	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
	"github.com/penwyp/go-nfc-checklist/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug     bool
	logFormat string

	// Settings
	configFile   string
	codesFile    string
	commentsFile string
	timezone     string

	// Time window
	startTime string
	endTime   string

	// Output related
	outputFormat string
	noColor      bool
	export       bool
	exportFile   string

	watch bool

	rootCmd = &cobra.Command{
		Use:   "go-nfc-checklist <detections.csv> [flags]",
		Short: "Build hourly eBird checklists from nocturnal flight call detections",
		Long: `go-nfc-checklist turns a CSV of nocturnal flight call detections into per-hour checklists.

Each detection is placed in the calendar date and hour it was heard, with overnight
sessions rolling over to the next date at midnight. Every hour reports its observed
duration and a count per species.

Examples:
  go-nfc-checklist detections.csv                               # Print checklists
  go-nfc-checklist detections.csv --output table                # Print as a table
  go-nfc-checklist detections.csv --export                      # Also write an eBird import file
  go-nfc-checklist detections.csv --start "2020/09/08 00:30:00" --end "2020/09/08 02:30:00"
  go-nfc-checklist detections.csv --watch                       # Rebuild whenever the file changes`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runChecklist,
	}
)

const (
	defaultLogFile = "~/.nfc-checklist/logs/app.log"
)

func init() {
	// Settings
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default ./nfc-checklist.yaml or ~/.nfc-checklist/config.yaml)")
	rootCmd.Flags().StringVar(&codesFile, "codes", "",
		"Species codes table (CSV with Code and Species columns)")
	rootCmd.Flags().StringVar(&commentsFile, "comments", "",
		"Species comments file (JSON)")
	rootCmd.Flags().StringVar(&timezone, "timezone", "",
		"Timezone of the detection timestamps (e.g., America/New_York, UTC)")

	// Time window
	rootCmd.Flags().StringVar(&startTime, "start", "",
		"Only count detections after this time (YYYY/MM/DD HH:mm:ss)")
	rootCmd.Flags().StringVar(&endTime, "end", "",
		"Only count detections before this time (YYYY/MM/DD HH:mm:ss)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "console",
		"Output format (console, table, json)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable coloured output")
	rootCmd.Flags().BoolVarP(&export, "export", "e", false,
		"Write the checklists in eBird record format")
	rootCmd.Flags().StringVar(&exportFile, "export-file", "",
		"Export file path (default from config, export.csv)")

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Rebuild the checklists whenever the input file changes")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")
}

func runChecklist(cmd *cobra.Command, args []string) error {
	// Determine log level based on debug flag
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	// Initialize logging
	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, debug, util.ParseLogFormat(logFormat)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer util.CloseLogger()

	settings, err := config.Load(configFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, settings)
	if settings.ConfigFile != "" {
		util.LogDebugf("Using config file: %s", settings.ConfigFile)
	}

	if err := util.InitializeTimeProvider(settings.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	// Filter times are read in the configured timezone.
	filter, err := parseFilter(startTime, endTime)
	if err != nil {
		return err
	}

	util.ConfigureColor(os.Stdout, noColor)

	a, err := analyzer.New(&analyzer.Config{
		InputFile:    expandPath(args[0]),
		OutputFormat: outputFormat,
		Filter:       filter,
		Export:       export,
		ExportFile:   exportFile,
		Settings:     settings,
	}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if watch {
		return watchAndRun(cmd.Context(), a, expandPath(args[0]), cmd.ErrOrStderr())
	}

	_, err = a.Run()
	return err
}

// applyFlagOverrides lets explicitly set flags win over file and environment settings.
func applyFlagOverrides(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("codes") {
		settings.CodesFile = codesFile
	}
	if flags.Changed("comments") {
		settings.CommentsFile = commentsFile
	}
	if flags.Changed("timezone") {
		settings.Timezone = timezone
	}
	settings.CodesFile = expandPath(settings.CodesFile)
	settings.CommentsFile = expandPath(settings.CommentsFile)
}

// parseFilter builds the time window from --start and --end. Both or neither must be given.
func parseFilter(start, end string) (*checklist.TimeFilter, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, errors.New("--start and --end must be given together")
	}

	from, err := util.ParseFilterTime(start)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	to, err := util.ParseFilterTime(end)
	if err != nil {
		return nil, fmt.Errorf("--end: %w", err)
	}
	return checklist.NewTimeFilter(from, to)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
