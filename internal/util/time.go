package util

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/core/constants"
)

// TimeProvider is a global time utility that handles timezone-aware time operations
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	mu.Lock()
	defer mu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	// Only set the global provider if successful
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider instance
// If not initialized, it defaults to Local timezone
func GetTimeProvider() *TimeProvider {
	if globalTimeProvider == nil {
		InitializeTimeProvider("Local")
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Europe/London", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the configured timezone
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.Now().In(tp.location)
}

// Parse parses value with layout in the configured timezone
func (tp *TimeProvider) Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, strings.TrimSpace(value), tp.Location())
}

// Clock is a time of day as written in the recording_start column.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock parses an "HH:mm:ss" time of day.
func ParseClock(value string) (Clock, error) {
	t, err := time.Parse(constants.ClockLayout, strings.TrimSpace(value))
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// On returns the instant this clock time occurs on the calendar date of day.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, c.Second, 0, day.Location())
}

// String renders the clock zero padded, e.g. "03:05:00".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ParseRecordingLength parses an "H:MM:SS" length. Hours may exceed 23.
func ParseRecordingLength(value string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid recording length %q: expected H:MM:SS", value)
	}

	var fields [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid recording length %q: bad field %q", value, part)
		}
		fields[i] = n
	}
	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("invalid recording length %q: minutes and seconds must be below 60", value)
	}

	return time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second, nil
}

// ParseSessionDate parses an "MM/DD/YY" date in the configured timezone.
func ParseSessionDate(value string) (time.Time, error) {
	t, err := GetTimeProvider().Parse(constants.SessionDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session date %q: %w", value, err)
	}
	return t, nil
}

// ParseDetectionTime parses an "MM/DD/YY HH:mm:ss" timestamp in the configured timezone.
func ParseDetectionTime(value string) (time.Time, error) {
	t, err := GetTimeProvider().Parse(constants.DetectionTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid detection time %q: %w", value, err)
	}
	return t, nil
}

// ParseFilterTime parses a "YYYY/MM/DD HH:mm:ss" filter bound in the configured timezone.
func ParseFilterTime(value string) (time.Time, error) {
	t, err := GetTimeProvider().Parse(constants.FilterTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid filter time %q (want YYYY/MM/DD HH:mm:ss): %w", value, err)
	}
	return t, nil
}

// FormatSessionDate renders t as "MM/DD/YY".
func FormatSessionDate(t time.Time) string {
	return t.Format(constants.SessionDateLayout)
}

// FormatExportDate renders t as "M/DD/YYYY".
func FormatExportDate(t time.Time) string {
	return t.Format(constants.ExportDateLayout)
}

// TruncateHour drops minutes and seconds in t's own location.
func TruncateHour(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
}

// SameHour reports whether a and b fall in the same clock hour of the same day.
func SameHour(a, b time.Time) bool {
	return TruncateHour(a).Equal(TruncateHour(b.In(a.Location())))
}

// HourLabel returns the interior bucket label for hour, e.g. "0:00:00".
func HourLabel(hour int) string {
	return fmt.Sprintf(constants.HourLabelFormat, hour)
}

// ShortHour trims a bucket label to "H:MM".
func ShortHour(label string) string {
	parts := strings.Split(label, ":")
	if len(parts) < 2 {
		return label
	}
	return strings.Join(parts[:2], ":")
}
