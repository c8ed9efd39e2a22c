package products

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celestialcentral/storefront/internal/models"
)

type BackendMock struct{ mock.Mock }

func (m *BackendMock) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *BackendMock) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

var testProducts = []models.Product{
	{ID: 1, Name: "Orion Pack", Description: "star atlas", Price: 9.99},
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestList_CacheMiss(t *testing.T) {
	backendMock := new(BackendMock)
	cacheMock := new(CacheMock)

	cacheMock.On("Get", "products:all", mock.Anything).Return(false, nil)
	backendMock.On("ListProducts", mock.Anything).Return(testProducts, nil)
	cacheMock.On("Set", "products:all", testProducts, time.Hour).Return(nil)

	service := New(backendMock, cacheMock, time.Hour, newTestLogger())
	got, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProducts, got)
	backendMock.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestList_CacheHitSkipsBackend(t *testing.T) {
	backendMock := new(BackendMock)
	cacheMock := new(CacheMock)

	cacheMock.On("Get", "products:all", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(1).(*[]models.Product)
			*out = testProducts
		}).Return(true, nil)

	service := New(backendMock, cacheMock, time.Hour, newTestLogger())
	got, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProducts, got)
	backendMock.AssertNotCalled(t, "ListProducts", mock.Anything)
}

func TestRead_CacheMiss(t *testing.T) {
	backendMock := new(BackendMock)
	cacheMock := new(CacheMock)

	cacheMock.On("Get", "product:1", mock.Anything).Return(false, nil)
	backendMock.On("GetProduct", mock.Anything, 1).Return(&testProducts[0], nil)
	cacheMock.On("Set", "product:1", &testProducts[0], time.Hour).Return(nil)

	service := New(backendMock, cacheMock, time.Hour, newTestLogger())
	got, err := service.Read(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &testProducts[0], got)
}

func TestList_CacheSetFailureIsNotFatal(t *testing.T) {
	backendMock := new(BackendMock)
	cacheMock := new(CacheMock)

	cacheMock.On("Get", "products:all", mock.Anything).Return(false, nil)
	backendMock.On("ListProducts", mock.Anything).Return(testProducts, nil)
	cacheMock.On("Set", "products:all", testProducts, time.Hour).Return(assert.AnError)

	service := New(backendMock, cacheMock, time.Hour, newTestLogger())
	got, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProducts, got)
}
