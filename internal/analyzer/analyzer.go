package analyzer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/config"
	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
	"github.com/penwyp/go-nfc-checklist/internal/data/parser"
	"github.com/penwyp/go-nfc-checklist/internal/data/species"
	"github.com/penwyp/go-nfc-checklist/internal/presentation/formatter"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

type Config struct {
	InputFile    string
	OutputFormat string
	Filter       *checklist.TimeFilter // nil reports whole sessions
	Export       bool
	ExportFile   string // overrides Settings.Export.File
	Settings     *config.Settings
}

type Analyzer struct {
	config    *Config
	parser    *parser.Parser
	formatter formatter.Formatter
	out       io.Writer
	warn      io.Writer
	stats     *RunStats
}

// New creates an Analyzer writing the report to out and export warnings to warn.
func New(cfg *Config, out, warn io.Writer) (*Analyzer, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	f, err := formatter.New(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}
	if warn == nil {
		warn = os.Stderr
	}

	return &Analyzer{
		config:    cfg,
		parser:    parser.NewParser(),
		formatter: f,
		out:       out,
		warn:      warn,
		stats:     NewRunStats(),
	}, nil
}

// Stats returns the totals across all runs.
func (a *Analyzer) Stats() *RunStats {
	return a.stats
}

// Run parses the input, builds the checklist, prints it and optionally exports it.
func (a *Analyzer) Run() (*checklist.Checklist, error) {
	startTime := time.Now()
	util.LogInfo("Building checklists", util.F("input", a.config.InputFile))

	// Phase 1: Parse detections
	parseStart := time.Now()
	events, err := a.parser.ParseFile(a.config.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read detections: %w", err)
	}
	parseDuration := time.Since(parseStart)
	util.LogDebug(fmt.Sprintf("Phase 1 - Parse duration: %v, detections: %d", parseDuration, len(events)))

	if len(events) == 0 {
		util.LogWarn("No detections found", util.F("input", a.config.InputFile))
	}

	// Phase 2: Bucket detections by date and hour
	buildStart := time.Now()
	list, err := checklist.Build(events, a.config.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build checklists: %w", err)
	}
	hours := list.Hours()
	buildDuration := time.Since(buildStart)
	util.LogDebug(fmt.Sprintf("Phase 2 - Bucketing duration: %v, buckets: %d, reported hours: %d",
		buildDuration, list.Buckets.Len(), len(hours)))

	assigned := 0
	for _, hour := range hours {
		assigned += hour.Detections
	}
	a.stats.Record(len(events), assigned, list.Buckets.Len(), len(hours))

	// Phase 3: Format and output
	outputStart := time.Now()
	if err := a.formatter.Format(a.out, hours); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	outputDuration := time.Since(outputStart)
	util.LogDebug(fmt.Sprintf("Phase 3 - Formatting and output duration: %v", outputDuration))

	// Phase 4: Export
	var exportDuration time.Duration
	if a.config.Export {
		exportStart := time.Now()
		if err := a.export(hours); err != nil {
			return nil, err
		}
		exportDuration = time.Since(exportStart)
		util.LogDebug(fmt.Sprintf("Phase 4 - Export duration: %v", exportDuration))
	}

	util.LogDebug(fmt.Sprintf("Total duration: %v (parse:%v bucket:%v output:%v export:%v)",
		time.Since(startTime), parseDuration, buildDuration, outputDuration, exportDuration))

	return list, nil
}

func (a *Analyzer) export(hours []checklist.Hour) error {
	settings := a.config.Settings

	codes, err := species.LoadCodes(settings.CodesFile)
	if err != nil {
		return fmt.Errorf("failed to load species codes: %w", err)
	}
	annotations, err := species.LoadAnnotations(settings.CommentsFile)
	if err != nil {
		return fmt.Errorf("failed to load species comments: %w", err)
	}

	path := a.config.ExportFile
	if path == "" {
		path = settings.Export.File
	}

	exporter := formatter.NewEBirdExporter(settings.Export, codes, annotations, a.warn)
	rows, err := exporter.ExportFile(path, hours)
	if err != nil {
		return err
	}
	a.stats.RecordExport(rows)
	util.LogInfo("Exported checklists", util.F("file", path), util.F("rows", rows))
	return nil
}
