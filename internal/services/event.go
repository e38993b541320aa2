package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"governanceevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	source         domain.EventSource
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns an EventService over eventRepo. source may be nil when no feed is configured.
func NewEventService(eventRepo domain.EventRepository, source domain.EventSource, logger *slog.Logger, timeout time.Duration) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:      eventRepo,
		source:         source,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.eventRepo.List(ctx, filter)
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := prepareEvent(event); err != nil {
		return err
	}
	now := s.now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) UpdateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event == nil || event.ID == "" {
		return fmt.Errorf("event id is required: %w", domain.ErrInvalidInput)
	}
	existing, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if err := prepareEvent(event); err != nil {
		return err
	}
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = s.now().UTC()
	return s.eventRepo.Update(ctx, event)
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.eventRepo.Delete(ctx, id)
}

// SyncFromSource matches feed events to stored ones by title and date and creates the missing ones.
func (s *eventService) SyncFromSource(ctx context.Context) (int, error) {
	if s.source == nil {
		return 0, fmt.Errorf("no event feed configured: %w", domain.ErrInvalidInput)
	}
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	incoming, err := s.source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load event feed: %w", err)
	}
	stored, err := s.eventRepo.List(ctx, domain.EventFilter{})
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}
	known := make(map[string]struct{}, len(stored))
	for _, e := range stored {
		known[eventKey(e)] = struct{}{}
	}

	created := 0
	now := s.now().UTC()
	for _, e := range incoming {
		key := eventKey(e)
		if _, ok := known[key]; ok {
			continue
		}
		if err := prepareEvent(e); err != nil {
			s.logger.WarnContext(ctx, "skip feed event", "title", e.Title, "error", err)
			continue
		}
		e.ID = ""
		e.CreatedAt = now
		e.UpdatedAt = now
		if err := s.eventRepo.Create(ctx, e); err != nil {
			return created, fmt.Errorf("create event %q: %w", e.Title, err)
		}
		known[key] = struct{}{}
		created++
	}
	s.logger.InfoContext(ctx, "event feed synced", "feed_events", len(incoming), "created", created)
	return created, nil
}

func eventKey(e *domain.Event) string {
	return strings.ToLower(strings.TrimSpace(e.Title)) + "|" + e.Date.Format(domain.DateLayout)
}

// prepareEvent trims and defaults event fields, rejecting what cannot be shown on the site.
func prepareEvent(e *domain.Event) error {
	if e == nil {
		return fmt.Errorf("event is required: %w", domain.ErrInvalidInput)
	}
	e.Title = strings.TrimSpace(e.Title)
	e.Location = strings.TrimSpace(e.Location)
	if e.Type == "" {
		e.Type = domain.EventTypeTraining
	}
	if e.MeetingMode == "" {
		e.MeetingMode = domain.MeetingModePhysical
	}
	if e.Status == "" {
		e.Status = domain.EventStatusUpcoming
	}

	fields := map[string]string{}
	if e.Title == "" {
		fields["title"] = "Title is required"
	}
	if e.Date.IsZero() {
		fields["date"] = "Date is required"
	}
	if e.Type != domain.EventTypeTraining && e.Type != domain.EventTypeWorkshop {
		fields["type"] = "Type must be one of: training, workshop"
	}
	if e.MeetingMode != domain.MeetingModeOnline && e.MeetingMode != domain.MeetingModePhysical {
		fields["meeting_mode"] = "Meeting mode must be one of: online, physical"
	}
	if e.Status != domain.EventStatusUpcoming && e.Status != domain.EventStatusPast {
		fields["status"] = "Status must be one of: upcoming, past"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
