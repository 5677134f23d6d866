// Package fixtures writes detection files for tests.
package fixtures

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Header is the column row of a detections export.
var Header = []string{
	"season", "year", "detector", "species", "date",
	"recording_start", "recording_length", "real_detection_time",
}

// Call is one detection. An empty Species is an unclassified call.
type Call struct {
	At       time.Time
	Species  string
	Detector string // defaults to the night's detector
}

// Night is one recording session and its calls.
type Night struct {
	Season   string
	Start    time.Time // session date and recorder start time
	Length   time.Duration
	Detector string
	Calls    []Call
}

// Rows renders the night's calls as export rows.
func (n Night) Rows() [][]string {
	season := n.Season
	if season == "" {
		season = "Fall"
	}

	rows := make([][]string, 0, len(n.Calls))
	for _, call := range n.Calls {
		detector := call.Detector
		if detector == "" {
			detector = n.Detector
		}
		rows = append(rows, []string{
			season,
			n.Start.Format("2006"),
			detector,
			call.Species,
			n.Start.Format("01/02/06"),
			n.Start.Format("15:04:05"),
			formatLength(n.Length),
			call.At.Format("01/02/06 15:04:05"),
		})
	}
	return rows
}

// WriteDetections writes a detections export holding every night to path.
func WriteDetections(path string, nights ...Night) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, night := range nights {
		if err := w.WriteAll(night.Rows()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatLength(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}
