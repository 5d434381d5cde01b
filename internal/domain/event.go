package domain

import (
	"strings"
	"time"
)

const (
	EventDateLayout = "2006-01-02"
	EventTimeLayout = "15:04"
)

type Event struct {
	ID               int64  `json:"id"`
	PlaceID          int64  `json:"place_ID"`
	EventName        string `json:"event_name"`
	EventDate        string `json:"event_date"`
	EventTime        string `json:"event_time"`
	EventDescription string `json:"event_description"`
}

// Date parses EventDate. Backends sometimes return a full timestamp, so the
// date prefix is used when the value is longer than a plain date.
func (e Event) Date() (time.Time, bool) {
	raw := strings.TrimSpace(e.EventDate)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if len(raw) > len(EventDateLayout) {
		raw = raw[:len(EventDateLayout)]
	}
	t, err := time.Parse(EventDateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type EventEdit struct {
	EventName        string
	EventDate        string
	EventTime        string
	EventDescription string
}

func (e EventEdit) Apply(ev Event) Event {
	ev.EventName = e.EventName
	ev.EventDate = e.EventDate
	ev.EventTime = e.EventTime
	ev.EventDescription = e.EventDescription
	return ev
}

const DisplayDateLayout = "1/2/2006"

// DisplayDate renders the date as month/day/year, or the raw value when it
// cannot be parsed.
func (e Event) DisplayDate() string {
	t, ok := e.Date()
	if !ok {
		return e.EventDate
	}
	return t.Format(DisplayDateLayout)
}

// FormDate is EventDate as a date input expects it.
func (e Event) FormDate() string {
	t, ok := e.Date()
	if !ok {
		return e.EventDate
	}
	return t.Format(EventDateLayout)
}
