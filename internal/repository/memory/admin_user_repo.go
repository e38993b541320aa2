package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"governanceevents/internal/domain"
)

type adminUserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.AdminUser
}

// NewAdminUserRepository returns an empty in-memory AdminUserRepository.
func NewAdminUserRepository() domain.AdminUserRepository {
	return &adminUserRepo{byEmail: make(map[string]*domain.AdminUser)}
}

func (r *adminUserRepo) Create(_ context.Context, user *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return domain.ErrInvalidInput
	}
	user.ID = uuid.NewString()
	c := *user
	r.byEmail[key] = &c
	return nil
}

func (r *adminUserRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *u
	return &c, nil
}
