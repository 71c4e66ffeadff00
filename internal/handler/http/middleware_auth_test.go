// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costhook/costhook/internal/service"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/models"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantToken  string
		wantErr    error
	}{
		{
			name:       "bearer token",
			authHeader: "Bearer abc.def.ghi",
			wantToken:  "abc.def.ghi",
		},
		{
			name:       "scheme only",
			authHeader: "Bearer",
			wantErr:    ErrInvalidAuthorizationHeader,
		},
		{
			name:       "empty token after scheme",
			authHeader: "Bearer ",
			wantErr:    ErrEmptyToken,
		},
		{
			name:       "bare token without scheme",
			authHeader: "abc.def.ghi",
			wantErr:    ErrInvalidAuthorizationHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.authHeader)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthMiddleware_InjectsClaimsAndProfileID(t *testing.T) {
	authUserID := uuid.New()
	profileID := uuid.New()

	h := newTestHandler(t, testServices{
		auth: &mockAuthSvc{
			verifyTokenFn: func(_ context.Context, tokenString string) (models.TokenClaims, error) {
				assert.Equal(t, "valid-token", tokenString)
				return models.TokenClaims{AuthUserID: authUserID}, nil
			},
		},
		profile: &mockProfileSvc{
			getOrCreateFn: func(_ context.Context, claims models.TokenClaims) (models.UserProfile, error) {
				assert.Equal(t, authUserID, claims.AuthUserID)
				return models.UserProfile{ID: profileID, AuthUserID: authUserID}, nil
			},
		},
	})

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true

		gotClaims, ok := utils.GetClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, authUserID, gotClaims.AuthUserID)

		gotProfileID, ok := utils.GetProfileIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, profileID, gotProfileID)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, nextCalled)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newTestHandler(t, testServices{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run without credentials")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrEmptyAuthorizationHeader.Error())
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := newTestHandler(t, testServices{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run without credentials")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "sometoken")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	h := newTestHandler(t, testServices{
		auth: &mockAuthSvc{
			verifyTokenFn: func(_ context.Context, _ string) (models.TokenClaims, error) {
				return models.TokenClaims{}, service.ErrTokenIsExpired
			},
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run with an expired token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrTokenIsExpired.Error())
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	h := newTestHandler(t, testServices{
		auth: &mockAuthSvc{
			verifyTokenFn: func(_ context.Context, _ string) (models.TokenClaims, error) {
				return models.TokenClaims{}, service.ErrInvalidToken
			},
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run with an invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ProfileResolutionFailure(t *testing.T) {
	h := newTestHandler(t, testServices{
		auth: &mockAuthSvc{
			verifyTokenFn: func(_ context.Context, _ string) (models.TokenClaims, error) {
				return models.TokenClaims{AuthUserID: uuid.New()}, nil
			},
		},
		profile: &mockProfileSvc{
			getOrCreateFn: func(_ context.Context, _ models.TokenClaims) (models.UserProfile, error) {
				return models.UserProfile{}, errors.New("unexpected DB error: connection refused")
			},
		},
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run when profile resolution fails")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
