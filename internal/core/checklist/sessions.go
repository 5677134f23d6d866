package checklist

import (
	"fmt"
	"time"

	"github.com/penwyp/go-nfc-checklist/internal/core/model"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// Session is one overnight recording run.
type Session struct {
	Date       string        `json:"date"`
	Day        time.Time     `json:"day"`
	StartClock util.Clock    `json:"startClock"`
	Length     time.Duration `json:"length"`
}

// SessionOf derives the session metadata carried by a detection row.
func SessionOf(event model.DetectionEvent) Session {
	return Session{
		Date:       event.SessionDate,
		Day:        event.SessionDay,
		StartClock: event.RecordingStart,
		Length:     event.RecordingLength,
	}
}

// Start is the instant recording began.
func (s Session) Start() time.Time {
	return s.StartClock.On(s.Day)
}

// End is the instant recording stopped.
func (s Session) End() time.Time {
	return s.Start().Add(s.Length)
}

// StartLabel keys the session's first, possibly partial, bucket.
func (s Session) StartLabel() string {
	return s.StartClock.String()
}

// SessionIndex maps a session date to its metadata.
type SessionIndex map[string]Session

// BuildSessionIndex indexes sessions by date, taking metadata from the first row of each date.
func BuildSessionIndex(events []model.DetectionEvent) SessionIndex {
	index := make(SessionIndex)
	for _, event := range events {
		if _, ok := index[event.SessionDate]; ok {
			continue
		}
		index[event.SessionDate] = SessionOf(event)
	}
	return index
}

// Lookup returns the session for date or ErrMissingSession.
func (idx SessionIndex) Lookup(date string) (Session, error) {
	session, ok := idx[date]
	if !ok {
		return Session{}, fmt.Errorf("%w for date %s", ErrMissingSession, date)
	}
	return session, nil
}
