package pay

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

	"github.com/celestialcentral/storefront/internal/http/middlewarectx"
	"github.com/celestialcentral/storefront/internal/models"
	"github.com/celestialcentral/storefront/internal/paymentprovider"
	checkoutservice "github.com/celestialcentral/storefront/internal/services/checkout"
)

// Мок сервиса оплаты
type PayServiceMock struct {
	mock.Mock
}

func (m *PayServiceMock) Pay(ctx context.Context, user *models.User, attemptID, cardToken string) (*checkoutservice.Attempt, error) {
	args := m.Called(ctx, user, attemptID, cardToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkoutservice.Attempt), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPayHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: 9, Name: "Ada", Email: "ada@example.com"}
	attemptID := "7f9c24e5-1d5c-4b1a-9f3a-0d6f3f2b8a11"

	succeeded := &checkoutservice.Attempt{ID: attemptID, State: checkoutservice.StateSucceeded}
	failed := &checkoutservice.Attempt{ID: attemptID, State: checkoutservice.StateFailed, Message: "Your card was declined."}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockAttempt    *checkoutservice.Attempt
		mockErr        error
		callService    bool
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name: "successful payment",
			requestBody: models.DummyPay{
				AttemptID: attemptID,
				CardToken: "tok_visa",
			},
			mockAttempt:    succeeded,
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name: "validation error - attempt id is not uuid",
			requestBody: models.DummyPay{
				AttemptID: "not-a-uuid",
				CardToken: "tok_visa",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field AttemptID can contain only uuid",
		},
		{
			name: "attempt not found",
			requestBody: models.DummyPay{
				AttemptID: attemptID,
				CardToken: "tok_visa",
			},
			mockErr:        checkoutservice.ErrAttemptNotFound,
			callService:    true,
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "Error",
			wantError:      "payment attempt not found",
		},
		{
			name: "attempt not ready",
			requestBody: models.DummyPay{
				AttemptID: attemptID,
				CardToken: "tok_visa",
			},
			mockAttempt:    failed,
			mockErr:        checkoutservice.ErrNotReady,
			callService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "payment system is not ready. Please try again later.",
		},
		{
			name: "card declined returns processor message verbatim",
			requestBody: models.DummyPay{
				AttemptID: attemptID,
				CardToken: "tok_chargeDeclined",
			},
			mockAttempt:    failed,
			mockErr:        &paymentprovider.PaymentError{Message: "Your card was declined."},
			callService:    true,
			wantStatusCode: http.StatusPaymentRequired,
			wantStatus:     "Error",
			wantError:      "Your card was declined.",
		},
		{
			name: "processor unavailable",
			requestBody: models.DummyPay{
				AttemptID: attemptID,
				CardToken: "tok_visa",
			},
			mockAttempt:    failed,
			mockErr:        errors.New("connection refused"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "Failed to process payment. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(PayServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.callService {
				serviceMock.On("Pay", mock.Anything, user, attemptID, mock.Anything).
					Return(tt.mockAttempt, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/checkout/pay", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.User, user)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))

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
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				attempt, ok := data["attempt"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, string(checkoutservice.StateSucceeded), attempt["state"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
