package cart

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celestialcentral/storefront/internal/backend"
	"github.com/celestialcentral/storefront/internal/models"
)

type BackendMock struct{ mock.Mock }

func (m *BackendMock) GetCart(ctx context.Context, userID int) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *BackendMock) RemoveCartItem(ctx context.Context, userID, productID int) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *BackendMock) ClearCart(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGet_Success(t *testing.T) {
	backendMock := new(BackendMock)
	items := []models.CartItem{{ProductID: 1, Name: "A", Price: 10, Quantity: 2}}
	backendMock.On("GetCart", mock.Anything, 7).Return(items, nil)

	service := New(backendMock, newTestLogger())
	got, err := service.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	backendMock.AssertExpectations(t)
}

func TestGet_Unauthorized(t *testing.T) {
	backendMock := new(BackendMock)
	backendMock.On("GetCart", mock.Anything, 7).
		Return(nil, &backend.RequestError{Status: 401, Body: "token expired"})

	service := New(backendMock, newTestLogger())
	_, err := service.Get(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRemove_Unauthorized(t *testing.T) {
	backendMock := new(BackendMock)
	backendMock.On("RemoveCartItem", mock.Anything, 7, 3).
		Return(&backend.RequestError{Status: 401, Body: "token expired"})

	service := New(backendMock, newTestLogger())
	err := service.Remove(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRemove_OtherErrorIsNotUnauthorized(t *testing.T) {
	backendMock := new(BackendMock)
	backendMock.On("RemoveCartItem", mock.Anything, 7, 3).Return(errors.New("connection refused"))

	service := New(backendMock, newTestLogger())
	err := service.Remove(context.Background(), 7, 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.CartItem
		expected float64
	}{
		{
			name:     "пустая корзина",
			items:    nil,
			expected: 0,
		},
		{
			name:     "одна позиция",
			items:    []models.CartItem{{ProductID: 1, Name: "A", Price: 10, Quantity: 2}},
			expected: 20,
		},
		{
			name: "несколько позиций",
			items: []models.CartItem{
				{ProductID: 1, Price: 10, Quantity: 2},
				{ProductID: 2, Price: 4.5, Quantity: 1},
			},
			expected: 24.5,
		},
		{
			name: "отсутствующая цена деградирует до нуля",
			items: []models.CartItem{
				{ProductID: 1, Quantity: 3},
				{ProductID: 2, Price: 5, Quantity: 1},
			},
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, GrandTotal(tt.items), 1e-9)
		})
	}
}
