package checklist

import (
	"testing"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/core/constants"
	"github.com/penwyp/go-nfc-checklist/internal/core/model"
	"github.com/penwyp/go-nfc-checklist/internal/util"
	"github.com/stretchr/testify/require"
)

// detection builds an event in UTC the way the parser would.
func detection(t *testing.T, sessionDate, detectedAt, start, length, species, detector string) model.DetectionEvent {
	t.Helper()

	day, err := time.ParseInLocation(constants.SessionDateLayout, sessionDate, time.UTC)
	require.NoError(t, err)
	at, err := time.ParseInLocation(constants.DetectionTimeLayout, detectedAt, time.UTC)
	require.NoError(t, err)
	clock, err := util.ParseClock(start)
	require.NoError(t, err)
	recLength, err := util.ParseRecordingLength(length)
	require.NoError(t, err)

	return model.DetectionEvent{
		Season:          "fall",
		DetectionTime:   at,
		SessionDate:     sessionDate,
		SessionDay:      day,
		RecordingStart:  clock,
		RecordingLength: recLength,
		Species:         species,
		Detector:        detector,
	}
}

func filterAt(t *testing.T, start, end string) *TimeFilter {
	t.Helper()

	s, err := time.ParseInLocation(constants.FilterTimeLayout, start, time.UTC)
	require.NoError(t, err)
	e, err := time.ParseInLocation(constants.FilterTimeLayout, end, time.UTC)
	require.NoError(t, err)
	f, err := NewTimeFilter(s, e)
	require.NoError(t, err)
	return f
}

func hoursOf(b *Buckets) map[string][]string {
	out := make(map[string][]string)
	for _, date := range b.Dates() {
		out[date] = b.Hours(date)
	}
	return out
}
