package read

import (
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

	"github.com/celestialcentral/storefront/internal/http/middlewarectx"
	"github.com/celestialcentral/storefront/internal/models"
	cartservice "github.com/celestialcentral/storefront/internal/services/cart"
)

// Мок сервиса корзины
type CartServiceMock struct {
	mock.Mock
}

func (m *CartServiceMock) Get(ctx context.Context, userID int) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
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

func newAuthedRequest(user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	if user != nil {
		ctx = context.WithValue(ctx, middlewarectx.User, user)
	}
	return req.WithContext(ctx)
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: 5, Name: "Ada", Email: "ada@example.com"}
	items := []models.CartItem{
		{ProductID: 1, Name: "Star Atlas", Price: 10, Quantity: 2},
		{ProductID: 2, Name: "Nebula Pack", Price: 4.5, Quantity: 1},
	}

	tests := []struct {
		name           string
		user           *models.User
		mockItems      []models.CartItem
		mockErr        error
		callService    bool
		wantLogout     bool
		wantStatusCode int
		wantStatus     string
		wantError      string
		wantTotal      float64
	}{
		{
			name:           "cart with items",
			user:           user,
			mockItems:      items,
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantTotal:      24.5,
		},
		{
			name:           "empty cart",
			user:           user,
			mockItems:      []models.CartItem{},
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantTotal:      0,
		},
		{
			name:           "expired session erases auth state",
			user:           user,
			mockErr:        cartservice.ErrUnauthorized,
			callService:    true,
			wantLogout:     true,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "user not authorized, please log in again",
		},
		{
			name:           "backend error",
			user:           user,
			mockErr:        errors.New("backend unavailable"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "failed to load cart",
		},
		{
			name:           "no user in context",
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "user not authorized, please log in again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(CartServiceMock)
			storeMock := new(AuthStoreMock)
			handler := New(newNoopLogger(), serviceMock, storeMock)

			if tt.callService {
				serviceMock.On("Get", mock.Anything, user.ID).
					Return(tt.mockItems, tt.mockErr).Once()
			}
			if tt.wantLogout {
				storeMock.On("Logout", mock.Anything).Once()
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newAuthedRequest(tt.user))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantTotal, data["grand_total"])
			}

			serviceMock.AssertExpectations(t)
			storeMock.AssertExpectations(t)
		})
	}
}
