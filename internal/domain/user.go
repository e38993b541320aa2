package domain

import (
	"context"
	"time"
)

// AdminUser is an operator of the admin panel.
// swagger:model AdminUser
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAdminUser returns a new AdminUser. ID is typically set by the repository on create.
func NewAdminUser(email, passwordHash, salt string, createdAt time.Time) *AdminUser {
	return &AdminUser{
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// AdminUserRepository defines the interface for admin user storage
type AdminUserRepository interface {
	Create(ctx context.Context, user *AdminUser) error
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// AuthService authenticates admin panel operators.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	// EnsureAdmin creates the admin account if it does not exist yet.
	EnsureAdmin(ctx context.Context, email, password string) error
}
