// Package checklist groups NFC detections into per-hour eBird checklists.
//
// A run extracts the session dates that have qualifying detections, generates
// the empty hour buckets each overnight session spans (rolling post-midnight
// hours onto the following calendar date), routes every detection into its
// bucket and finally derives each bucket's observed duration.
package checklist

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/core/model"
)

var (
	// ErrMissingSession is returned when a date has no session metadata.
	ErrMissingSession = errors.New("missing session metadata")
	// ErrOrphanEvent is returned when a detection falls outside every generated bucket.
	ErrOrphanEvent = errors.New("detection does not fall in any session hour")
	// ErrInvalidFilter is returned for a filter whose end is not after its start.
	ErrInvalidFilter = errors.New("invalid time filter")
)

// TimeFilter restricts a run to detections strictly between Start and End.
type TimeFilter struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeFilter validates and returns a filter.
func NewTimeFilter(start, end time.Time) (*TimeFilter, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidFilter,
			end.Format(time.DateTime), start.Format(time.DateTime))
	}
	return &TimeFilter{Start: start, End: end}, nil
}

// Contains reports whether t lies strictly inside the filter.
// A nil filter contains every instant.
func (f *TimeFilter) Contains(t time.Time) bool {
	if f == nil {
		return true
	}
	return t.After(f.Start) && t.Before(f.End)
}

// BucketKey identifies one hour bucket.
type BucketKey struct {
	Date string `json:"date"` // MM/DD/YY
	Hour string `json:"hour"` // "H:00:00", or the literal recording start for a session's first bucket
}

func (k BucketKey) String() string {
	return k.Date + " " + k.Hour
}

// Bucket holds the detections of one clock hour (or partial first hour) of a session.
type Bucket struct {
	Key    BucketKey
	Start  time.Time // instant the bucket label denotes
	Events []model.DetectionEvent
}

// Empty reports whether nothing was observed in the bucket.
func (b Bucket) Empty() bool {
	return len(b.Events) == 0
}

type dayBuckets struct {
	hours  []string
	byHour map[string]*Bucket
}

// Buckets maps date -> hour label -> Bucket, preserving insertion order at both levels.
type Buckets struct {
	dates  []string
	byDate map[string]*dayBuckets
}

// NewBuckets returns an empty mapping.
func NewBuckets() *Buckets {
	return &Buckets{byDate: make(map[string]*dayBuckets)}
}

func (b *Buckets) ensureDate(date string) *dayBuckets {
	day, ok := b.byDate[date]
	if !ok {
		day = &dayBuckets{byHour: make(map[string]*Bucket)}
		b.byDate[date] = day
		b.dates = append(b.dates, date)
	}
	return day
}

// seed creates an empty bucket unless the key already exists.
func (b *Buckets) seed(key BucketKey, start time.Time) {
	day := b.ensureDate(key.Date)
	if _, ok := day.byHour[key.Hour]; ok {
		return
	}
	day.byHour[key.Hour] = &Bucket{Key: key, Start: start}
	day.hours = append(day.hours, key.Hour)
}

// add appends event to an existing bucket; it never creates keys.
func (b *Buckets) add(key BucketKey, event model.DetectionEvent) error {
	day, ok := b.byDate[key.Date]
	if !ok {
		return fmt.Errorf("%w: line %d at %s has no bucket %s",
			ErrOrphanEvent, event.Line, event.DetectionTime.Format(time.DateTime), key)
	}
	bucket, ok := day.byHour[key.Hour]
	if !ok {
		return fmt.Errorf("%w: line %d at %s has no bucket %s",
			ErrOrphanEvent, event.Line, event.DetectionTime.Format(time.DateTime), key)
	}
	bucket.Events = append(bucket.Events, event)
	return nil
}

// Dates returns the dates in insertion order.
func (b *Buckets) Dates() []string {
	return slices.Clone(b.dates)
}

// Hours returns the hour labels of date in insertion order.
func (b *Buckets) Hours(date string) []string {
	day, ok := b.byDate[date]
	if !ok {
		return nil
	}
	return slices.Clone(day.hours)
}

// Bucket returns a snapshot of the bucket at key.
func (b *Buckets) Bucket(key BucketKey) (Bucket, bool) {
	day, ok := b.byDate[key.Date]
	if !ok {
		return Bucket{}, false
	}
	bucket, ok := day.byHour[key.Hour]
	if !ok {
		return Bucket{}, false
	}
	snapshot := *bucket
	snapshot.Events = slices.Clone(bucket.Events)
	return snapshot, true
}

// All returns snapshots of every bucket, dates first then hours, in insertion order.
func (b *Buckets) All() []Bucket {
	var all []Bucket
	for _, date := range b.dates {
		for _, hour := range b.byDate[date].hours {
			bucket, _ := b.Bucket(BucketKey{Date: date, Hour: hour})
			all = append(all, bucket)
		}
	}
	return all
}

// Len returns the number of buckets.
func (b *Buckets) Len() int {
	n := 0
	for _, day := range b.byDate {
		n += len(day.hours)
	}
	return n
}
