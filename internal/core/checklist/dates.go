package checklist

import "github.com/penwyp/go-nfc-checklist/internal/core/model"

// ExtractSessionDates returns the distinct session dates that have at least
// one detection inside filter, in first-seen order. Dates are derived per
// event: a session contributes nothing unless one of its own detections qualifies.
func ExtractSessionDates(events []model.DetectionEvent, filter *TimeFilter) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, event := range events {
		if !filter.Contains(event.DetectionTime) {
			continue
		}
		if _, ok := seen[event.SessionDate]; ok {
			continue
		}
		seen[event.SessionDate] = struct{}{}
		dates = append(dates, event.SessionDate)
	}
	return dates
}
