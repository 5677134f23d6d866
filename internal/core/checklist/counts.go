package checklist

import (
	"strings"

	"github.com/penwyp/go-nfc-checklist/internal/core/constants"
	"github.com/penwyp/go-nfc-checklist/internal/core/model"
)

// SpeciesCount is the number of calls of one species, or of unclassified
// calls from one detector family, within a bucket.
type SpeciesCount struct {
	Code   string               `json:"code,omitempty"` // lowercased; empty when unclassified
	Family model.DetectorFamily `json:"family,omitempty"`
	Count  int                  `json:"count"`
}

// Unclassified reports whether the count covers calls without a species.
func (c SpeciesCount) Unclassified() bool {
	return c.Code == ""
}

// Label is the uppercased species code, or the detector family for unclassified calls.
func (c SpeciesCount) Label() string {
	if c.Unclassified() {
		return string(c.Family)
	}
	return strings.ToUpper(c.Code)
}

// Suspect flags codes that are usually data-entry mistakes.
func (c SpeciesCount) Suspect() bool {
	return c.Code == constants.SuspectSpeciesCode
}

// CountSpecies tallies events by species in first-seen order. Unclassified
// calls are tallied per detector family and never merged into a named species.
func CountSpecies(events []model.DetectionEvent) []SpeciesCount {
	index := make(map[string]int)
	var counts []SpeciesCount
	for _, event := range events {
		key := event.Species
		var family model.DetectorFamily
		if event.Unclassified() {
			family = event.Family()
			key = "\x00" + string(family)
		}

		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, SpeciesCount{Code: event.Species, Family: family})
		}
		counts[i].Count++
	}
	return counts
}
