package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"governanceevents/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	expiry := 24 * time.Hour
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", []string{RoleAdmin}, expiry)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, []string{RoleAdmin}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantID  string
		errIs   error
		wantErr bool
	}{
		{
			name: "valid admin token",
			token: func(t *testing.T) string {
				tok, err := issuer.Issue("user-1", "a@example.com", []string{RoleAdmin}, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantID: "user-1",
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := issuer.Issue("user-1", "a@example.com", []string{RoleAdmin}, -time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: true,
			errIs:   domain.ErrInvalidCredentials,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := NewJWTIssuer("other").Issue("user-1", "a@example.com", []string{RoleAdmin}, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: true,
			errIs:   domain.ErrInvalidCredentials,
		},
		{
			name: "missing admin role",
			token: func(t *testing.T) string {
				tok, err := issuer.Issue("user-1", "a@example.com", []string{"attendee"}, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: true,
			errIs:   domain.ErrForbidden,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not-a-jwt" },
			wantErr: true,
			errIs:   domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := verifier.Verify(tt.token(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
