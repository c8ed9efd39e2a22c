package user

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

func (m *BackendMock) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *BackendMock) LoginUser(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogin_Success(t *testing.T) {
	backendMock := new(BackendMock)
	expected := &models.User{ID: 7, Name: "Ada", Email: "ada@example.com"}
	backendMock.On("LoginUser", mock.Anything, "ada@example.com", "secret").Return(expected, nil)

	service := New(backendMock, newTestLogger())
	got, err := service.Login(context.Background(), models.DummyLogin{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	backendMock := new(BackendMock)
	backendMock.On("LoginUser", mock.Anything, "ada@example.com", "wrong").
		Return(nil, &backend.RequestError{Status: 401, Body: "invalid credentials"})

	service := New(backendMock, newTestLogger())
	_, err := service.Login(context.Background(), models.DummyLogin{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_OtherError(t *testing.T) {
	backendMock := new(BackendMock)
	backendMock.On("LoginUser", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	service := New(backendMock, newTestLogger())
	_, err := service.Login(context.Background(), models.DummyLogin{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Success(t *testing.T) {
	backendMock := new(BackendMock)
	expected := &models.User{ID: 9, Name: "Eve", Email: "eve@example.com"}
	backendMock.On("CreateUser", mock.Anything, "Eve", "eve@example.com", "secret").Return(expected, nil)

	service := New(backendMock, newTestLogger())
	got, err := service.Register(context.Background(), models.DummySignup{
		Name: "Eve", Email: "eve@example.com", Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
