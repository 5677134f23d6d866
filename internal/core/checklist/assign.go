package checklist

import (
	"github.com/penwyp/go-nfc-checklist/internal/core/model"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// KeyFor returns the bucket a detection belongs to within its session.
func KeyFor(event model.DetectionEvent, session Session) BucketKey {
	at := event.DetectionTime
	date := util.FormatSessionDate(at)
	if date == session.Date && at.Hour() == session.StartClock.Hour {
		return BucketKey{Date: date, Hour: session.StartLabel()}
	}
	return BucketKey{Date: date, Hour: util.HourLabel(at.Hour())}
}

// Assign routes every detection inside filter into its pre-generated bucket.
// A detection whose bucket was never generated yields ErrOrphanEvent.
func Assign(events []model.DetectionEvent, buckets *Buckets, sessions SessionIndex, filter *TimeFilter) error {
	assigned := 0
	for _, event := range events {
		if !filter.Contains(event.DetectionTime) {
			continue
		}
		session, err := sessions.Lookup(event.SessionDate)
		if err != nil {
			return err
		}
		if err := buckets.add(KeyFor(event, session), event); err != nil {
			return err
		}
		assigned++
	}

	util.LogDebugf("Assigned %d of %d detections to %d buckets", assigned, len(events), buckets.Len())
	return nil
}
