package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"governanceevents/internal/domain"
)

type paymentRepo struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	byReg    map[string]string // registration id -> latest payment id
}

// NewPaymentRepository returns an empty in-memory PaymentRepository.
func NewPaymentRepository() domain.PaymentRepository {
	return &paymentRepo{
		payments: make(map[string]*domain.Payment),
		byReg:    make(map[string]string),
	}
}

func (r *paymentRepo) Create(_ context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = uuid.NewString()
	c := *p
	r.payments[p.ID] = &c
	r.byReg[p.RegistrationID] = p.ID
	return nil
}

func (r *paymentRepo) GetByRegistrationID(_ context.Context, registrationID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byReg[registrationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *r.payments[id]
	return &c, nil
}

func (r *paymentRepo) UpdateStatus(_ context.Context, id string, status domain.PaymentRecordStatus, transactionRef string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	p.TransactionRef = transactionRef
	p.UpdatedAt = updatedAt
	return nil
}
