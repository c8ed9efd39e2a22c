// Package user содержит бизнес-логику регистрации и входа пользователей.
// Пароли не хэшируются на стороне витрины: учётными записями владеет backend.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/celestialcentral/storefront/internal/backend"
	"github.com/celestialcentral/storefront/internal/models"
)

// ErrInvalidCredentials — backend отверг пару email/пароль.
var ErrInvalidCredentials = errors.New("email or password is incorrect")

// Backend определяет операции backend для работы с учётными записями.
type Backend interface {
	CreateUser(ctx context.Context, name, email, password string) (*models.User, error)
	LoginUser(ctx context.Context, email, password string) (*models.User, error)
}

// Service реализует регистрацию и вход.
type Service struct {
	backend Backend
	log     *slog.Logger
}

// New создает новый Service.
func New(backend Backend, log *slog.Logger) *Service {
	return &Service{
		backend: backend,
		log:     log,
	}
}

// Register создаёт новую учётную запись.
func (s *Service) Register(ctx context.Context, req models.DummySignup) (*models.User, error) {
	const op = "services.user.Register"

	created, err := s.backend.CreateUser(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.Int("user_id", created.ID))
	return created, nil
}

// Login аутентифицирует пользователя. Ответ 401 означает неверные
// учётные данные.
func (s *Service) Login(ctx context.Context, req models.DummyLogin) (*models.User, error) {
	const op = "services.user.Login"

	logged, err := s.backend.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		if backend.IsUnauthorized(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user logged in", slog.Int("user_id", logged.ID))
	return logged, nil
}
