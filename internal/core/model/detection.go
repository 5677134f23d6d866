package model

import (
	"strings"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/core/constants"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// DetectionEvent is one detected call, parsed from a row of the detections export.
type DetectionEvent struct {
	Season          string        `json:"season"`
	DetectionTime   time.Time     `json:"detectionTime"`
	SessionDate     string        `json:"sessionDate"`     // MM/DD/YY of the recording night
	SessionDay      time.Time     `json:"sessionDay"`      // SessionDate at midnight
	RecordingStart  util.Clock    `json:"recordingStart"`  // time of day the recorder started
	RecordingLength time.Duration `json:"recordingLength"` // total length of the night's recording
	Species         string        `json:"species"`         // lowercased code, empty when unclassified
	Detector        string        `json:"detector"`
	Line            int           `json:"line"` // source line, for error messages
}

// Unclassified reports whether the call was never assigned a species.
func (e DetectionEvent) Unclassified() bool {
	return e.Species == ""
}

// Family returns the coarse detector family of the event.
func (e DetectionEvent) Family() DetectorFamily {
	return FamilyOf(e.Detector)
}

// DetectorFamily collapses detector names to the two groups reported for unclassified calls.
type DetectorFamily string

const (
	FamilyTseep  DetectorFamily = constants.TseepFamily
	FamilyThrush DetectorFamily = constants.ThrushFamily
)

// FamilyOf classifies a raw detector name.
func FamilyOf(detector string) DetectorFamily {
	if strings.Contains(strings.ToLower(detector), constants.TseepDetectorMarker) {
		return FamilyTseep
	}
	return FamilyThrush
}
