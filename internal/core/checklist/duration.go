package checklist

import (
	"github.com/penwyp/go-nfc-checklist/internal/core/constants"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// Duration returns the minutes of observation covered by bucket.
// ok is false for an empty bucket: nothing was observed, which is not zero minutes.
//
// The effective window is the session's recording window, or the filter clipped
// to it. A bucket in the window's last hour runs up to the end minute, one in
// its first hour runs from the start minute, and every other bucket is a full hour.
func Duration(bucket Bucket, filter *TimeFilter) (minutes int, ok bool) {
	if bucket.Empty() {
		return 0, false
	}

	session := SessionOf(bucket.Events[0])
	recStart, recEnd := session.Start(), session.End()

	start, end := recStart, recEnd
	if filter != nil {
		start, end = filter.Start, filter.End
		if start.Before(recStart) {
			start = recStart
		}
		if end.After(recEnd) {
			end = recEnd
		}
	}

	at := bucket.Start
	switch {
	case util.SameHour(at, end):
		if util.SameHour(at, start) {
			return end.Minute() - start.Minute(), true
		}
		return end.Minute(), true
	case util.SameHour(at, start):
		return constants.MinutesPerHour - start.Minute(), true
	default:
		return constants.MinutesPerHour, true
	}
}
