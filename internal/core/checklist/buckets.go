package checklist

import (
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// GenerateBuckets builds the empty hour buckets spanned by the session of each date.
//
// The first bucket of a session is keyed by the literal recording start time and
// collects everything up to the next top of the hour. Subsequent buckets are keyed
// "H:00:00" and filed under the calendar date they fall on, so pre-dawn hours of
// an evening session roll over to the following date.
func GenerateBuckets(dates []string, sessions SessionIndex) (*Buckets, error) {
	buckets := NewBuckets()
	for _, date := range dates {
		buckets.ensureDate(date)
	}

	for _, date := range dates {
		session, err := sessions.Lookup(date)
		if err != nil {
			return nil, err
		}

		start := session.Start()
		end := session.End()
		buckets.seed(BucketKey{Date: date, Hour: session.StartLabel()}, start)

		for t := util.TruncateHour(start).Add(time.Hour); !t.After(end); t = t.Add(time.Hour) {
			key := BucketKey{
				Date: util.FormatSessionDate(t),
				Hour: util.HourLabel(t.Hour()),
			}
			buckets.seed(key, t)
		}

		util.LogDebugf("Generated buckets for session %s: %s -> %s",
			date, start.Format(time.DateTime), end.Format(time.DateTime))
	}

	return buckets, nil
}
