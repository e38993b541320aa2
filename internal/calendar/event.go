package calendar

import "governanceevents/internal/domain"

// FromDomain maps a domain event to the fields calendar export needs.
func FromDomain(e *domain.Event) Event {
	return Event{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
	}
}
