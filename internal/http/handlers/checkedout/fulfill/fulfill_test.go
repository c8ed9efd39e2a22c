package fulfill

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/celestialcentral/storefront/internal/http/middlewarectx"
	"github.com/celestialcentral/storefront/internal/models"
	fulfillmentservice "github.com/celestialcentral/storefront/internal/services/fulfillment"
)

// Мок сервиса фулфилмента
type FulfillServiceMock struct {
	mock.Mock
}

func (m *FulfillServiceMock) Run(ctx context.Context, user *models.User) (*fulfillmentservice.Result, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillmentservice.Result), args.Error(1)
}

// Мок хранилища authState-куки
type AuthStoreMock struct {
	mock.Mock
}

func (m *AuthStoreMock) Logout(w http.ResponseWriter) {
	m.Called(w)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestFulfillHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: 4, Name: "Ada", Email: "ada@example.com"}

	full := &fulfillmentservice.Result{
		Licenses: []models.License{
			{LicenseKey: "LIC-1", Name: "Star Atlas", UsesRemaining: 3},
		},
		Downloads: map[int]models.DownloadStatus{1: models.DownloadCompleted},
	}
	partial := &fulfillmentservice.Result{
		Downloads: map[int]models.DownloadStatus{1: models.DownloadPending},
	}

	tests := []struct {
		name           string
		mockResult     *fulfillmentservice.Result
		mockErr        error
		callService    bool
		wantLogout     bool
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:           "successful fulfillment",
			mockResult:     full,
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "empty cart",
			mockErr:        fulfillmentservice.ErrEmptyCart,
			callService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "cart is empty",
		},
		{
			name:           "expired session erases auth state",
			mockErr:        fulfillmentservice.ErrUnauthorized,
			callService:    true,
			wantLogout:     true,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "user not authorized, please log in again",
		},
		{
			name:           "license list unavailable returns partial result",
			mockResult:     partial,
			mockErr:        assert.AnError,
			callService:    true,
			wantStatusCode: http.StatusBadGateway,
			wantStatus:     "Error",
			wantError:      "failed to load licenses",
		},
		{
			name:           "license creation failed",
			mockErr:        assert.AnError,
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "failed to complete purchase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(FulfillServiceMock)
			storeMock := new(AuthStoreMock)
			handler := New(newNoopLogger(), serviceMock, storeMock)

			if tt.callService {
				serviceMock.On("Run", mock.Anything, user).
					Return(tt.mockResult, tt.mockErr).Once()
			}
			if tt.wantLogout {
				storeMock.On("Logout", mock.Anything).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/checkedout", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.User, user)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			if tt.wantStatusCode == http.StatusOK {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				licenses, ok := data["licenses"].([]any)
				assert.True(t, ok)
				assert.Len(t, licenses, 1)
			}

			// Частичный результат с очищенной корзиной виден клиенту
			// даже при недоступном списке лицензий.
			if tt.wantStatusCode == http.StatusBadGateway {
				_, ok := got["data"].(map[string]any)
				assert.True(t, ok)
			}

			serviceMock.AssertExpectations(t)
			storeMock.AssertExpectations(t)
		})
	}
}
