package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/penwyp/go-nfc-checklist/internal/config"
	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
	"github.com/penwyp/go-nfc-checklist/internal/core/constants"
	"github.com/penwyp/go-nfc-checklist/internal/data/species"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// EBirdColumns is the eBird record format column order. The export itself has no header row.
var EBirdColumns = []string{
	"Common Name", "Genus", "Species", "Number", "Species Comments",
	"Location Name", "Latitude", "Longitude", "Date", "Start Time",
	"State/Province", "Country Code", "Protocol", "Number of Observers",
	"Duration", "All observations reported?", "Effort Distance Miles",
	"Effort area acres", "Submission Comments",
}

// EBirdExporter writes checklists in the eBird record format.
type EBirdExporter struct {
	settings    config.Export
	codes       *species.Codes
	annotations species.Annotations
	warn        io.Writer
}

// NewEBirdExporter creates an exporter. Suspect species are reported on warn.
func NewEBirdExporter(settings config.Export, codes *species.Codes, annotations species.Annotations, warn io.Writer) *EBirdExporter {
	if warn == nil {
		warn = io.Discard
	}
	return &EBirdExporter{
		settings:    settings,
		codes:       codes,
		annotations: annotations,
		warn:        warn,
	}
}

// Format writes one row per species per hour.
func (e *EBirdExporter) Format(w io.Writer, hours []checklist.Hour) error {
	return writeRecords(w, e.Records(hours))
}

// ExportFile writes the export to path, creating parent directories, and
// returns the number of rows written.
func (e *EBirdExporter) ExportFile(path string, hours []checklist.Hour) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	records := e.Records(hours)
	if err := writeRecords(file, records); err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to write export file: %w", err)
	}
	return len(records), file.Close()
}

func writeRecords(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Records builds the export rows in EBirdColumns order.
func (e *EBirdExporter) Records(hours []checklist.Hour) [][]string {
	var records [][]string
	for _, hour := range hours {
		duration := ""
		if hour.DurationKnown {
			duration = strconv.Itoa(hour.Duration)
		}
		for _, count := range hour.Counts {
			records = append(records, []string{
				e.commonName(count),
				"",
				"",
				strconv.Itoa(count.Count),
				e.speciesComment(count, hour.Detector),
				e.settings.LocationName,
				e.settings.Latitude,
				e.settings.Longitude,
				util.FormatExportDate(hour.Start),
				util.ShortHour(hour.Label),
				e.settings.State,
				e.settings.Country,
				e.settings.Protocol,
				strconv.Itoa(e.settings.Observers),
				duration,
				e.settings.AllObservationsReported,
				"",
				"",
				e.settings.SubmissionComments,
			})
		}
	}
	return records
}

func (e *EBirdExporter) commonName(count checklist.SpeciesCount) string {
	switch {
	case count.Unclassified():
		return constants.UnclassifiedCommonName
	case count.Suspect():
		fmt.Fprintln(e.warn, util.SuspectColor.Sprintf("%s:\t %d", count.Label(), count.Count))
		util.LogWarn("Suspect species code exported without a common name",
			util.F("code", count.Label()), util.F("count", count.Count))
		return ""
	}

	name, ok := e.codes.CommonName(count.Code)
	if !ok {
		util.LogWarn("Species code not found in codes table", util.F("code", count.Label()))
	}
	return name
}

func (e *EBirdExporter) speciesComment(count checklist.SpeciesCount, detector string) string {
	if !count.Unclassified() {
		if a, ok := e.annotations.Lookup(count.Code); ok {
			return fmt.Sprintf("%d NFC. %s All NFC calls identified here follow this pattern, unless noted. "+
				"If the number of identified calls does not match the NFC count, it is because the calls occurred "+
				"close enough to each other to make it unclear whether or not a single bird was calling. "+
				"For more on %s NFC identification, consult this checklist %s, or the updated page at %s%s.",
				count.Count, a.Text, count.Label(), a.Example, e.settings.SpeciesPageURL, strings.ToLower(count.Code))
		}
	}
	return fmt.Sprintf("%d NFC. Detected automatically using Vesper %s detector, available at %s. "+
		"Manually classified using Vesper by me.", count.Count, detector, e.settings.VesperURL)
}
