// Package products содержит бизнес-логику каталога с кешированием.
package products

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/celestialcentral/storefront/internal/models"
)

// Backend определяет операции backend, нужные каталогу.
type Backend interface {
	// ListProducts возвращает весь каталог.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct возвращает один товар по идентификатору.
	GetProduct(ctx context.Context, id int) (*models.Product, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует чтение каталога с кешем поверх backend.
type Service struct {
	backend Backend
	cache   Cache
	ttl     time.Duration
	log     *slog.Logger
}

// New создает новый Service.
func New(backend Backend, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		backend: backend,
		cache:   cache,
		ttl:     ttl,
		log:     log,
	}
}

// List возвращает каталог товаров, используя кеш или backend.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	const op = "services.products.List"

	var cached []models.Product
	found, err := s.cache.Get("products:all", &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set("products:all", products, s.ttl); err != nil {
		s.log.Warn("failed to cache products", slog.Any("err", err))
	}
	return products, nil
}

// Read возвращает один товар, используя кеш или backend.
func (s *Service) Read(ctx context.Context, id int) (*models.Product, error) {
	const op = "services.products.Read"

	var cached *models.Product
	cacheKey := fmt.Sprintf("product:%d", id)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	product, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(cacheKey, product, s.ttl); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return product, nil
}

// ListRaw возвращает каталог напрямую из backend, минуя кеш.
// Используется отладочной страницей.
func (s *Service) ListRaw(ctx context.Context) ([]models.Product, error) {
	const op = "services.products.ListRaw"

	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}
