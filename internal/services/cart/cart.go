// Package cart содержит бизнес-логику работы с серверной корзиной.
//
// Каждая операция независима, общих транзакций нет: источником истины
// остаётся backend. Ответ 401 на любую операцию корзины приводится к
// ErrUnauthorized — вызывающий обязан разлогинить пользователя и
// отправить его на страницу логина.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/celestialcentral/storefront/internal/backend"
	"github.com/celestialcentral/storefront/internal/models"
)

// ErrUnauthorized сигнализирует, что backend отверг операцию с корзиной
// по причине недействительной аутентификации.
var ErrUnauthorized = errors.New("user not authorized")

// Backend определяет операции backend, нужные слою корзины.
type Backend interface {
	// GetCart возвращает содержимое корзины пользователя.
	GetCart(ctx context.Context, userID int) ([]models.CartItem, error)
	// RemoveCartItem удаляет одну позицию из корзины.
	RemoveCartItem(ctx context.Context, userID, productID int) error
	// ClearCart очищает корзину целиком.
	ClearCart(ctx context.Context, userID int) error
}

// Service реализует слой запросов к корзине.
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

// Get возвращает текущий снимок корзины пользователя.
func (s *Service) Get(ctx context.Context, userID int) ([]models.CartItem, error) {
	const op = "services.cart.Get"

	items, err := s.backend.GetCart(ctx, userID)
	if err != nil {
		if backend.IsUnauthorized(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// Remove удаляет позицию из корзины. Локальный снимок вызывающего после
// успеха корректируется по равенству productId, без повторного чтения.
func (s *Service) Remove(ctx context.Context, userID, productID int) error {
	const op = "services.cart.Remove"

	if err := s.backend.RemoveCartItem(ctx, userID, productID); err != nil {
		if backend.IsUnauthorized(err) {
			return fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed item from cart",
		slog.Int("user_id", userID), slog.Int("product_id", productID))
	return nil
}

// Clear очищает корзину пользователя целиком.
func (s *Service) Clear(ctx context.Context, userID int) error {
	const op = "services.cart.Clear"

	if err := s.backend.ClearCart(ctx, userID); err != nil {
		if backend.IsUnauthorized(err) {
			return fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GrandTotal подсчитывает общую стоимость корзины.
// Отсутствующая цена позиции трактуется как 0; пустая корзина даёт 0.00.
func GrandTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Total()
	}
	return total
}
