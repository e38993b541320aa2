package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"governanceevents/internal/domain"
)

type registrationRepo struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Registration
	byRef map[string]string // confirmation ref -> id
}

// NewRegistrationRepository returns an empty in-memory RegistrationRepository.
func NewRegistrationRepository() domain.RegistrationRepository {
	return &registrationRepo{
		byID:  make(map[string]*domain.Registration),
		byRef: make(map[string]string),
	}
}

func (r *registrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byRef[reg.ConfirmationRef]; taken {
		return domain.ErrDuplicateReference
	}
	reg.ID = uuid.NewString()
	r.byID[reg.ID] = reg.Clone()
	r.byRef[reg.ConfirmationRef] = reg.ID
	return nil
}

func (r *registrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reg.Clone(), nil
}

func (r *registrationRepo) GetByReference(_ context.Context, ref string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byRef[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *registrationRepo) List(_ context.Context, filter domain.RegistrationFilter) ([]*domain.Registration, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.EmailQuery))
	matched := make([]*domain.Registration, 0, len(r.byID))
	for _, reg := range r.byID {
		if filter.EventID != "" && reg.EventID != filter.EventID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(reg.Email), query) {
			continue
		}
		matched = append(matched, reg)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ConfirmationRef < matched[j].ConfirmationRef
	})

	start, end := filter.Window(len(matched))
	page := make([]*domain.Registration, 0, end-start)
	for _, reg := range matched[start:end] {
		page = append(page, reg.Clone())
	}
	return page, len(matched), nil
}

func (r *registrationRepo) UpdatePaymentStatus(_ context.Context, ref string, from, to domain.PaymentStatus, updatedAt time.Time) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byRef[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	reg := r.byID[id]
	if reg.PaymentStatus != from {
		return nil, domain.ErrInvalidTransition
	}
	reg.PaymentStatus = to
	reg.UpdatedAt = updatedAt
	return reg.Clone(), nil
}

func (r *registrationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byRef, reg.ConfirmationRef)
	delete(r.byID, id)
	return nil
}
