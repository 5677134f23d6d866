package checklist

import (
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/core/model"
)

// Checklist is the bucketed result of one run.
type Checklist struct {
	Buckets  *Buckets
	Sessions SessionIndex
	Filter   *TimeFilter
}

// Hour is a non-empty bucket prepared for reporting.
type Hour struct {
	Date          string         `json:"date"`
	Label         string         `json:"hour"`
	Start         time.Time      `json:"start"`
	Duration      int            `json:"duration"`
	DurationKnown bool           `json:"durationKnown"`
	Detections    int            `json:"detections"`
	Counts        []SpeciesCount `json:"counts"`
	Detector      string         `json:"detector"` // detector name of the bucket's first detection
}

// Build runs date extraction, bucket generation and event assignment.
func Build(events []model.DetectionEvent, filter *TimeFilter) (*Checklist, error) {
	sessions := BuildSessionIndex(events)
	dates := ExtractSessionDates(events, filter)

	buckets, err := GenerateBuckets(dates, sessions)
	if err != nil {
		return nil, err
	}
	if err := Assign(events, buckets, sessions, filter); err != nil {
		return nil, err
	}

	return &Checklist{
		Buckets:  buckets,
		Sessions: sessions,
		Filter:   filter,
	}, nil
}

// Hours returns every non-empty bucket with its duration and species counts,
// in mapping order.
func (c *Checklist) Hours() []Hour {
	var hours []Hour
	for _, bucket := range c.Buckets.All() {
		if bucket.Empty() {
			continue
		}
		minutes, ok := Duration(bucket, c.Filter)
		hours = append(hours, Hour{
			Date:          bucket.Key.Date,
			Label:         bucket.Key.Hour,
			Start:         bucket.Start,
			Duration:      minutes,
			DurationKnown: ok,
			Detections:    len(bucket.Events),
			Counts:        CountSpecies(bucket.Events),
			Detector:      bucket.Events[0].Detector,
		})
	}
	return hours
}
