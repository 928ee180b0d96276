package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/city-classifieds/internal/http/middlewarectx"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

type ListingServiceMock struct {
	mock.Mock
}

func (m *ListingServiceMock) Create(ctx context.Context, ownerUID string, req models.DummyListing) (string, error) {
	args := m.Called(ctx, ownerUID, req)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validForm() models.DummyListing {
	price := 150.0
	return models.DummyListing{
		Title:       "Naprawa rowerów",
		Description: "Serwis rowerowy z dojazdem na terenie całego miasta.",
		Category:    "Usługi",
		Location:    "Centrum",
		Price:       &price,
	}
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ListingServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	tests := []struct {
		name           string
		requestBody    interface{}
		ctxUID         string
		mockID         string
		mockErr        error
		wantStatusCode int
		wantData       map[string]any
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid listing",
			requestBody:    validForm(),
			ctxUID:         "uid-1",
			mockID:         "listing-1",
			wantStatusCode: http.StatusOK,
			wantData:       map[string]any{"id": "listing-1"},
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			ctxUID:         "uid-1",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "validation error - short description",
			requestBody: models.DummyListing{
				Title:       "Naprawa rowerów",
				Description: "krótko",
				Category:    "Usługi",
				Location:    "Centrum",
			},
			ctxUID:         "uid-1",
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Description is too short",
			wantStatus:     "Error",
		},
		{
			name:           "missing identity in context",
			requestBody:    validForm(),
			ctxUID:         "",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
		{
			name:           "service failure",
			requestBody:    validForm(),
			ctxUID:         "uid-1",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not create listing",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockID != "" || tt.mockErr != nil {
				serviceMock.On("Create", mock.Anything, tt.ctxUID, tt.requestBody.(models.DummyListing)).
					Return(tt.mockID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.ctxUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.ctxUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.wantData != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				for k, v := range tt.wantData {
					assert.Equal(t, v, data[k])
				}
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
