package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"governanceevents/internal/adapters/auth"
	"governanceevents/internal/domain"
	"governanceevents/internal/repository/memory"
	"governanceevents/internal/services"
)

const (
	adminEmail    = "admin@cgc.co.ke"
	adminPassword = "Governance#2026"
)

func TestBcryptHasher_AdminAccount(t *testing.T) {
	ctx := context.Background()
	users := memory.NewAdminUserRepository()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	svc := services.NewAuthService(users, hasher, auth.NewJWTIssuer("test-secret"), time.Hour)

	require.NoError(t, svc.EnsureAdmin(ctx, "  ADMIN@cgc.co.ke ", adminPassword))

	admin, err := users.GetByEmail(ctx, adminEmail)
	require.NoError(t, err)
	assert.Len(t, admin.Salt, 64)
	assert.NotContains(t, admin.PasswordHash, adminPassword)
	cost, err := bcrypt.Cost([]byte(admin.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	require.NoError(t, hasher.Compare(admin.PasswordHash, admin.Salt, adminPassword))
	assert.ErrorIs(t, hasher.Compare(admin.PasswordHash, admin.Salt, strings.ToLower(adminPassword)), domain.ErrInvalidCredentials)

	token, err := svc.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	_, err = svc.Login(ctx, adminEmail, "not-the-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestBcryptHasher_SaltsDiffer(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)
	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	hash, err := h.Hash(a, adminPassword)
	require.NoError(t, err)
	assert.ErrorIs(t, h.Compare(hash, b, adminPassword), domain.ErrInvalidCredentials)
}

func TestBcryptHasher_CostOutOfRangeUsesDefault(t *testing.T) {
	for _, cost := range []int{0, bcrypt.MaxCost + 1} {
		h := auth.NewBcryptHasher(cost)
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		hash, err := h.Hash(salt, adminPassword)
		require.NoError(t, err)
		got, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, got)
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)
	err := h.Compare("not-a-bcrypt-hash", "salt", adminPassword)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
