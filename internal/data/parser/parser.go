package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/core/model"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedRow is returned when a row value cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
)

// Column names of the detections export.
const (
	ColSeason          = "season"
	ColDate            = "date"
	ColDetectionTime   = "real_detection_time"
	ColRecordingStart  = "recording_start"
	ColRecordingLength = "recording_length"
	ColSpecies         = "species"
	ColDetector        = "detector"
)

// RequiredColumns lists the columns every input must carry.
var RequiredColumns = []string{
	ColSeason, ColDate, ColDetectionTime, ColRecordingStart,
	ColRecordingLength, ColSpecies, ColDetector,
}

type cachedFile struct {
	size    int64
	modTime time.Time
	events  []model.DetectionEvent
}

// Parser reads detection exports. Parsed files are kept in memory and reused
// while their size and modification time are unchanged.
type Parser struct {
	mu    sync.Mutex
	cache map[string]cachedFile
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{cache: make(map[string]cachedFile)}
}

// ParseFile parses the detections file at path.
func (p *Parser) ParseFile(path string) ([]model.DetectionEvent, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		p.mu.Unlock()
		util.LogDebugf("Reusing parsed detections for unchanged file: %s", path)
		return cached.events, nil
	}
	p.mu.Unlock()

	util.LogDebugf("Start parsing file: %s", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	events, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	p.mu.Lock()
	p.cache[path] = cachedFile{size: info.Size(), modTime: info.ModTime(), events: events}
	p.mu.Unlock()

	return events, nil
}

// Parse reads a detections CSV with a header row. Rows with an empty season are dropped.
func Parse(r io.Reader) ([]model.DetectionEvent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var events []model.DetectionEvent
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line, _ := reader.FieldPos(0)

		row, err := columns.row(record, line)
		if err != nil {
			return nil, err
		}
		if row[ColSeason] == "" {
			skipped++
			continue
		}

		event, err := toEvent(row, line)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	util.LogDebugf("Parsed %d detections, skipped %d rows without a season", len(events), skipped)
	return events, nil
}

type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	columns := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

func (c columnIndex) row(record []string, line int) (map[string]string, error) {
	row := make(map[string]string, len(RequiredColumns))
	for _, name := range RequiredColumns {
		i := c[name]
		if i >= len(record) {
			// A short trailing row (e.g. a lone newline) only matters when it has a season.
			if name == ColSeason {
				row[name] = ""
				continue
			}
			if row[ColSeason] == "" {
				return row, nil
			}
			return nil, fmt.Errorf("%w: line %d has no %s value", ErrMalformedRow, line, name)
		}
		row[name] = strings.TrimSpace(record[i])
	}
	return row, nil
}

func toEvent(row map[string]string, line int) (model.DetectionEvent, error) {
	day, err := util.ParseSessionDate(row[ColDate])
	if err != nil {
		return model.DetectionEvent{}, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
	}
	at, err := util.ParseDetectionTime(row[ColDetectionTime])
	if err != nil {
		return model.DetectionEvent{}, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
	}
	start, err := util.ParseClock(row[ColRecordingStart])
	if err != nil {
		return model.DetectionEvent{}, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
	}
	length, err := util.ParseRecordingLength(row[ColRecordingLength])
	if err != nil {
		return model.DetectionEvent{}, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
	}

	return model.DetectionEvent{
		Season:          row[ColSeason],
		DetectionTime:   at,
		SessionDate:     util.FormatSessionDate(day),
		SessionDay:      day,
		RecordingStart:  start,
		RecordingLength: length,
		Species:         strings.ToLower(row[ColSpecies]),
		Detector:        row[ColDetector],
		Line:            line,
	}, nil
}
