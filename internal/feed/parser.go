// Package feed loads the published events CSV.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"governanceevents/internal/domain"
)

// Column order of the events feed.
const (
	colTitle = iota
	colType
	colDescription
	colDate
	colTime
	colLocation
	colMeetingMode
	colStatus
	colPrice
	colMeetingLink
	colMeetingID
)

// Parser reads the events CSV.
type Parser struct {
	// HasHeader skips the first record.
	HasHeader bool
	// Location is the time zone event dates are read in; nil means UTC.
	Location *time.Location
	// Now supplies the date used when a row's date is unreadable; nil means time.Now.
	Now func() time.Time
}

// NewParser returns a Parser for a feed with a header row, reading dates in loc.
func NewParser(loc *time.Location) Parser {
	return Parser{HasHeader: true, Location: loc}
}

// Parse reads every record of r into an event. IDs are the 1-based row index after the header.
func (p Parser) Parse(r io.Reader) ([]*domain.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var events []*domain.Event
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read events feed: %w", err)
		}
		if first {
			first = false
			if p.HasHeader {
				continue
			}
		}
		events = append(events, p.event(strconv.Itoa(len(events)+1), rec))
	}
	return events, nil
}

func (p Parser) event(id string, rec []string) *domain.Event {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	lowerOr := func(i int, fallback string) string {
		if v := strings.ToLower(field(i)); v != "" {
			return v
		}
		return fallback
	}
	return &domain.Event{
		ID:          id,
		Title:       field(colTitle),
		Type:        domain.EventType(lowerOr(colType, string(domain.EventTypeTraining))),
		Description: field(colDescription),
		Date:        p.date(field(colDate)),
		Time:        field(colTime),
		Location:    field(colLocation),
		MeetingMode: domain.MeetingMode(lowerOr(colMeetingMode, string(domain.MeetingModePhysical))),
		Status:      domain.EventStatus(lowerOr(colStatus, string(domain.EventStatusUpcoming))),
		Price:       domain.ParsePrice(field(colPrice)),
		MeetingLink: field(colMeetingLink),
		MeetingID:   field(colMeetingID),
	}
}

func (p Parser) date(s string) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	if d, err := time.ParseInLocation(domain.DateLayout, s, loc); err == nil {
		return d
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	t := now().In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
