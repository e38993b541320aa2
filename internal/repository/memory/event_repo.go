package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"governanceevents/internal/domain"
)

type eventRepo struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

// NewEventRepository returns an empty in-memory EventRepository.
func NewEventRepository() domain.EventRepository {
	return &eventRepo{events: make(map[string]*domain.Event)}
}

func (r *eventRepo) Create(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	c := *event
	r.events[event.ID] = &c
	return nil
}

func (r *eventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *e
	return &c, nil
}

// List returns matching events ordered by date, then title.
func (r *eventRepo) List(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r *eventRepo) Update(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *event
	r.events[event.ID] = &c
	return nil
}

func (r *eventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}
