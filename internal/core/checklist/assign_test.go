package checklist

import (
	"testing"

	"github.com/penwyp/go-nfc-checklist/internal/core/model"
	"github.com/penwyp/go-nfc-checklist/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		detected string
		expected BucketKey
	}{
		{
			name:     "start hour uses the literal recording start",
			detected: "09/07/20 23:45:10",
			expected: BucketKey{Date: "09/07/20", Hour: "23:30:00"},
		},
		{
			name:     "after midnight rolls to the next date",
			detected: "09/08/20 00:10:00",
			expected: BucketKey{Date: "09/08/20", Hour: "0:00:00"},
		},
		{
			name:     "start hour of the following day is an interior hour",
			detected: "09/08/20 23:40:00",
			expected: BucketKey{Date: "09/08/20", Hour: "23:00:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := detection(t, "09/07/20", tt.detected, "23:30:00", "26:00:00", "wiwa", "tseep")
			assert.Equal(t, tt.expected, KeyFor(e, SessionOf(e)))
		})
	}
}

func TestAssign_CoverageInvariant(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 20:20:00", "20:15:00", "10:00:00", "wiwa", "tseep"),
		detection(t, "09/07/20", "09/07/20 21:59:59", "20:15:00", "10:00:00", "", "tseep"),
		detection(t, "09/07/20", "09/08/20 00:00:00", "20:15:00", "10:00:00", "swth", "thrush"),
		detection(t, "09/07/20", "09/08/20 06:05:00", "20:15:00", "10:00:00", "", "thrush"),
		detection(t, "09/08/20", "09/08/20 20:30:00", "20:00:00", "8:00:00", "amre", "tseep"),
	}

	c, err := Build(events, nil)
	require.NoError(t, err)

	found := make(map[int]int)
	for _, bucket := range c.Buckets.All() {
		for _, e := range bucket.Events {
			for i := range events {
				if events[i].DetectionTime.Equal(e.DetectionTime) {
					found[i]++
				}
			}
			assert.Equal(t, bucket.Start.Hour(), e.DetectionTime.Hour(), "bucket %s holds %s", bucket.Key, e.DetectionTime)
			assert.Equal(t, bucket.Key.Date, util.FormatSessionDate(e.DetectionTime))
		}
	}
	for i := range events {
		assert.Equal(t, 1, found[i], "event %d must be in exactly one bucket", i)
	}
}

func TestAssign_OrphanEvent(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 23:45:00", "23:30:00", "2:00:00", "wiwa", "tseep"),
		detection(t, "09/07/20", "09/08/20 03:10:00", "23:30:00", "2:00:00", "wiwa", "tseep"),
	}
	events[1].Line = 3

	_, err := Build(events, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrphanEvent)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "09/08/20 3:00:00")
}

func TestAssign_BeforeRecordingStartIsOrphan(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 19:10:00", "20:15:00", "10:00:00", "wiwa", "tseep"),
	}

	_, err := Build(events, nil)
	assert.ErrorIs(t, err, ErrOrphanEvent)
}

func TestAssign_FilterSkipsOutsideEvents(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 21:10:00", "20:15:00", "10:00:00", "wiwa", "tseep"),
		detection(t, "09/07/20", "09/08/20 02:10:00", "20:15:00", "10:00:00", "swth", "thrush"),
		detection(t, "09/07/20", "09/08/20 04:00:00", "20:15:00", "10:00:00", "swth", "thrush"),
	}
	f := filterAt(t, "2020/09/08 00:00:00", "2020/09/08 04:00:00")

	c, err := Build(events, f)
	require.NoError(t, err)

	var total int
	for _, b := range c.Buckets.All() {
		total += len(b.Events)
	}
	assert.Equal(t, 1, total, "only the 02:10 detection lies strictly inside the filter")

	b, ok := c.Buckets.Bucket(BucketKey{Date: "09/08/20", Hour: "2:00:00"})
	require.True(t, ok)
	assert.Len(t, b.Events, 1)
}
