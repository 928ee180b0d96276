package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	customjwt "github.com/magabrotheeeer/city-classifieds/internal/lib/jwt"

	"io"
	"log/slog"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*customjwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*customjwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handlerCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		uid := r.Context().Value(middlewarectx.UserUID)
		email := r.Context().Value(middlewarectx.Email)
		role := r.Context().Value(middlewarectx.Role)
		assert.Equal(t, "uid-1", uid)
		assert.Equal(t, "jan@example.com", email)
		assert.Equal(t, "mieszkaniec", role)
		w.WriteHeader(http.StatusOK)
	})

	middleware := middlewarectx.JWTMiddleware(authMock, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *customjwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token validation error",
			authHeader:     "Bearer token",
			mockClaims:     nil,
			mockErr:        errors.New("token is expired"),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer validtoken",
			mockClaims: &customjwt.CustomClaims{
				UserUID: "uid-1",
				Email:   "jan@example.com",
				Role:    "mieszkaniec",
			},
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			authMock.ExpectedCalls = nil // reset calls
			authMock.Calls = nil
			if tt.mockClaims != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", mock.Anything, strings.TrimPrefix(tt.authHeader, "Bearer ")).
					Return(tt.mockClaims, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}

func TestOptionalJWTMiddleware(t *testing.T) {
	logger := newNoopLogger()

	t.Run("anonymous request passes through", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		var uid any
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid = r.Context().Value(middlewarectx.UserUID)
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/listings", nil)
		middlewarectx.OptionalJWTMiddleware(authMock, logger)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, uid)
		authMock.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
	})

	t.Run("bad token still passes through anonymously", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		authMock.On("ValidateToken", mock.Anything, "garbage").
			Return(nil, errors.New("token is malformed")).Once()

		var uid any
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid = r.Context().Value(middlewarectx.UserUID)
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/listings", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		middlewarectx.OptionalJWTMiddleware(authMock, logger)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, uid)
	})

	t.Run("valid token fills identity", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		authMock.On("ValidateToken", mock.Anything, "validtoken").
			Return(&customjwt.CustomClaims{UserUID: "uid-1", Email: "jan@example.com", Role: "mieszkaniec"}, nil).Once()

		var uid any
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid = r.Context().Value(middlewarectx.UserUID)
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/listings", nil)
		req.Header.Set("Authorization", "Bearer validtoken")
		middlewarectx.OptionalJWTMiddleware(authMock, logger)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "uid-1", uid)
	})
}
