package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventType distinguishes trainings from workshops.
type EventType string

const (
	EventTypeTraining EventType = "training"
	EventTypeWorkshop EventType = "workshop"
)

// MeetingMode says whether an event is attended online or physically.
type MeetingMode string

const (
	MeetingModeOnline   MeetingMode = "online"
	MeetingModePhysical MeetingMode = "physical"
)

// EventStatus separates upcoming events from past ones.
type EventStatus string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusPast     EventStatus = "past"
)

// DateLayout is the calendar-date format used by the event feed and the API.
const DateLayout = "2006-01-02"

// Price is either Free or Paid(amount). The zero value is Free.
// On the wire it is the string "free" or a positive integer amount in KES.
type Price struct {
	Amount int
}

// Free returns the price of a free event.
func Free() Price { return Price{} }

// Paid returns the price of a paid event. Non-positive amounts are treated as free.
func Paid(amount int) Price {
	if amount <= 0 {
		return Price{}
	}
	return Price{Amount: amount}
}

// IsFree reports whether registration requires no payment.
func (p Price) IsFree() bool { return p.Amount <= 0 }

// String returns "free" or the decimal amount.
func (p Price) String() string {
	if p.IsFree() {
		return "free"
	}
	return strconv.Itoa(p.Amount)
}

// Label is the human-facing badge: "Free" or "KES 5,000".
func (p Price) Label() string {
	if p.IsFree() {
		return "Free"
	}
	return "KES " + groupThousands(p.Amount)
}

// ParsePrice reads a feed or form value. "free" and "" are free; anything that is not an integer
// falls back to free as well, matching how the site has always read the feed.
func ParsePrice(s string) Price {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "free" {
		return Free()
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Free()
	}
	return Paid(n)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.IsFree() {
		return []byte(`"free"`), nil
	}
	return []byte(strconv.Itoa(p.Amount)), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*p = Paid(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("price must be \"free\" or an integer: %w", err)
	}
	*p = ParsePrice(s)
	return nil
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Event represents a training or workshop published on the site.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Time        string      `json:"time"`
	Location    string      `json:"location"`
	Type        EventType   `json:"type"`
	MeetingMode MeetingMode `json:"meeting_mode"`
	Status      EventStatus `json:"status"`
	Price       Price       `json:"price" swaggertype:"string"`
	MeetingLink string      `json:"meeting_link,omitempty"`
	MeetingID   string      `json:"meeting_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsOnline reports whether the event is attended online.
func (e *Event) IsOnline() bool {
	return e.MeetingMode == MeetingModeOnline
}

// FormattedDate renders the date the way confirmations show it, e.g. "Sunday, 15 March 2026".
func (e *Event) FormattedDate() string {
	return e.Date.Format("Monday, 2 January 2006")
}

// MeetingDetails is the meeting or venue line sent with a confirmation.
func (e *Event) MeetingDetails() string {
	if e.IsOnline() {
		return fmt.Sprintf("Platform: Zoom | Meeting Link: %s | Meeting ID: %s", orTBA(e.MeetingLink), orTBA(e.MeetingID))
	}
	return "Venue: " + e.Location
}

func orTBA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "TBA"
	}
	return s
}

// EventFilter narrows event listings. Zero values match everything.
type EventFilter struct {
	Status EventStatus
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventSource loads the published event feed.
type EventSource interface {
	Load(ctx context.Context) ([]*Event, error)
}

// EventService defines event listing for the site and event management for the admin panel.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id string) error
	// SyncFromSource imports feed events the repository does not hold yet and returns how many were created.
	SyncFromSource(ctx context.Context) (int, error)
}
