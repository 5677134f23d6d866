package checklist

import (
	"testing"

	"github.com/penwyp/go-nfc-checklist/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketAt(t *testing.T, c *Checklist, date, hour string) Bucket {
	t.Helper()
	b, ok := c.Buckets.Bucket(BucketKey{Date: date, Hour: hour})
	require.True(t, ok, "bucket %s %s", date, hour)
	return b
}

func TestDuration_EndToEndExample(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 23:45:10", "23:30:00", "1:00:00", "wiwa", "tseep"),
	}

	c, err := Build(events, nil)
	require.NoError(t, err)

	b := bucketAt(t, c, "09/07/20", "23:30:00")
	require.Len(t, b.Events, 1)

	minutes, ok := Duration(b, nil)
	require.True(t, ok)
	assert.Equal(t, 30, minutes, "recording ends 00:30 in another hour, so only 23:30-24:00 counts")
}

func TestDuration_EmptyBucketHasNoValue(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 23:45:10", "23:30:00", "3:00:00", "wiwa", "tseep"),
	}
	c, err := Build(events, nil)
	require.NoError(t, err)

	minutes, ok := Duration(bucketAt(t, c, "09/08/20", "1:00:00"), nil)
	assert.False(t, ok)
	assert.Zero(t, minutes)
}

func TestDuration_Boundaries(t *testing.T) {
	const start, length = "20:15:00", "10:27:00" // ends 09/08 06:42

	tests := []struct {
		name     string
		detected string
		date     string
		hour     string
		expected int
	}{
		{name: "first partial hour", detected: "09/07/20 20:30:00", date: "09/07/20", hour: "20:15:00", expected: 45},
		{name: "interior hour", detected: "09/07/20 22:30:00", date: "09/07/20", hour: "22:00:00", expected: 60},
		{name: "interior hour after midnight", detected: "09/08/20 00:30:00", date: "09/08/20", hour: "0:00:00", expected: 60},
		{name: "last partial hour", detected: "09/08/20 06:40:00", date: "09/08/20", hour: "6:00:00", expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []model.DetectionEvent{detection(t, "09/07/20", tt.detected, start, length, "wiwa", "tseep")}
			c, err := Build(events, nil)
			require.NoError(t, err)

			minutes, ok := Duration(bucketAt(t, c, tt.date, tt.hour), nil)
			require.True(t, ok)
			assert.Equal(t, tt.expected, minutes)
		})
	}
}

func TestDuration_SingleHourSession(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 21:20:00", "21:10:00", "0:35:00", "", "tseep"),
	}
	c, err := Build(events, nil)
	require.NoError(t, err)

	minutes, ok := Duration(bucketAt(t, c, "09/07/20", "21:10:00"), nil)
	require.True(t, ok)
	assert.Equal(t, 35, minutes)
}

func TestDuration_FilterClipping(t *testing.T) {
	events := []model.DetectionEvent{
		detection(t, "09/07/20", "09/07/20 04:40:00", "02:00:00", "6:00:00", "wiwa", "tseep"),
		detection(t, "09/07/20", "09/07/20 05:10:00", "02:00:00", "6:00:00", "wiwa", "tseep"),
		detection(t, "09/07/20", "09/07/20 07:50:00", "02:00:00", "6:00:00", "wiwa", "tseep"),
	}

	t.Run("filter start inside the session", func(t *testing.T) {
		f := filterAt(t, "2020/09/07 04:30:00", "2020/09/07 12:00:00")
		c, err := Build(events, f)
		require.NoError(t, err)

		minutes, ok := Duration(bucketAt(t, c, "09/07/20", "4:00:00"), f)
		require.True(t, ok)
		assert.Equal(t, 30, minutes)

		minutes, ok = Duration(bucketAt(t, c, "09/07/20", "5:00:00"), f)
		require.True(t, ok)
		assert.Equal(t, 60, minutes)
	})

	t.Run("filter end beyond recording end is clamped", func(t *testing.T) {
		f := filterAt(t, "2020/09/07 04:30:00", "2020/09/07 12:00:00")
		c, err := Build(events, f)
		require.NoError(t, err)

		// Recording ends at 08:00, so hour 7 is a full interior hour.
		minutes, ok := Duration(bucketAt(t, c, "09/07/20", "7:00:00"), f)
		require.True(t, ok)
		assert.Equal(t, 60, minutes)
	})

	t.Run("filter start before recording start is clamped", func(t *testing.T) {
		early := []model.DetectionEvent{
			detection(t, "09/07/20", "09/07/20 02:40:00", "02:20:00", "6:00:00", "wiwa", "tseep"),
		}
		f := filterAt(t, "2020/09/07 00:00:00", "2020/09/07 07:15:00")
		c, err := Build(early, f)
		require.NoError(t, err)

		minutes, ok := Duration(bucketAt(t, c, "09/07/20", "02:20:00"), f)
		require.True(t, ok)
		assert.Equal(t, 40, minutes)
	})

	t.Run("filter end inside the session", func(t *testing.T) {
		f := filterAt(t, "2020/09/07 00:00:00", "2020/09/07 05:25:00")
		c, err := Build(events, f)
		require.NoError(t, err)

		minutes, ok := Duration(bucketAt(t, c, "09/07/20", "5:00:00"), f)
		require.True(t, ok)
		assert.Equal(t, 25, minutes)
	})
}

func TestDuration_SumEqualsRecordingLength(t *testing.T) {
	// One call per hour from 20:15 to 06:15 covers every bucket of the night.
	times := []string{
		"09/07/20 20:20:00", "09/07/20 21:20:00", "09/07/20 22:20:00", "09/07/20 23:20:00",
		"09/08/20 00:20:00", "09/08/20 01:20:00", "09/08/20 02:20:00", "09/08/20 03:20:00",
		"09/08/20 04:20:00", "09/08/20 05:20:00", "09/08/20 06:10:00",
	}
	var events []model.DetectionEvent
	for _, at := range times {
		events = append(events, detection(t, "09/07/20", at, "20:15:00", "10:00:00", "wiwa", "tseep"))
	}

	c, err := Build(events, nil)
	require.NoError(t, err)

	total := 0
	for _, h := range c.Hours() {
		require.True(t, h.DurationKnown)
		total += h.Duration
	}
	assert.Equal(t, 600, total)
}
