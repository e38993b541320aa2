package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"governanceevents/internal/delivery/http/helpers"
	"governanceevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	loginErr  error
	lastEmail string
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (string, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "signed.jwt.token", nil
}

func (f *fakeAuthService) EnsureAdmin(context.Context, string, string) error { return nil }

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		loginErr       error
		wantStatus     int
		wantCode       string
		wantBodySubstr string
	}{
		{name: "success", body: `{"email":" Admin@CGC.co.ke ","password":"s3cret-pass"}`, wantStatus: http.StatusOK},
		{name: "missing password", body: `{"email":"admin@cgc.co.ke"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest, wantBodySubstr: "password is required"},
		{name: "missing email", body: `{"password":"x"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest, wantBodySubstr: "email is required"},
		{name: "wrong credentials", body: `{"email":"admin@cgc.co.ke","password":"nope"}`, loginErr: domain.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "unexpected", body: `{"email":"admin@cgc.co.ke","password":"x"}`, loginErr: errors.New("db error"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{loginErr: tt.loginErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var resp LoginResponse
			apiErr := decodeEnvelope(t, rr.Body, &resp)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				if tt.wantBodySubstr != "" {
					assert.Contains(t, apiErr.Message, tt.wantBodySubstr)
				}
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, LoginResponse{Token: "signed.jwt.token", TokenType: "Bearer"}, resp)
			assert.Equal(t, "admin@cgc.co.ke", fake.lastEmail)
		})
	}
}
