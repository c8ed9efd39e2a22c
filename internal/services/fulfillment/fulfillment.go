// Package fulfillment реализует пост-оплатную последовательность:
// корзина -> создание лицензий -> свежий список лицензий -> загрузка
// купленных файлов -> очистка корзины.
//
// Шаги выполняются строго по порядку, без автоматических повторов.
// Ошибка на шагах корзины и создания лицензий прерывает всю
// последовательность; ошибка загрузки отдельного товара не мешает
// остальным; очистка корзины выполняется безусловно после успешного
// создания лицензий, её ошибка сообщается отдельно.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"time"

	"github.com/celestialcentral/storefront/internal/backend"
	"github.com/celestialcentral/storefront/internal/lib/sl"
	"github.com/celestialcentral/storefront/internal/models"
)

// defaultExtension используется, когда backend не объявил Content-Type
// загружаемого файла.
const defaultExtension = ".zip"

var (
	// ErrEmptyCart — корзина пуста, лицензии не создаются.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnauthorized — backend отверг чтение корзины.
	ErrUnauthorized = errors.New("user not authorized")
)

// Backend определяет операции backend, нужные фулфилменту.
type Backend interface {
	GetCart(ctx context.Context, userID int) ([]models.CartItem, error)
	CreateLicenses(ctx context.Context, userID int, items []models.LicenseItem) error
	ListLicenses(ctx context.Context, userID int) ([]models.License, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	DownloadProduct(ctx context.Context, id int) ([]byte, string, error)
	ClearCart(ctx context.Context, userID int) error
}

// Saver сохраняет загруженный файл на стороне клиента.
type Saver interface {
	Save(filename string, data []byte) error
}

// Result описывает итог одного прогона фулфилмента.
type Result struct {
	Licenses []models.License `json:"licenses"`
	// Downloads — карта productId -> статус загрузки; живёт только в
	// памяти одного прогона.
	Downloads      map[int]models.DownloadStatus `json:"downloads"`
	ClearCartError string                        `json:"clear_cart_error,omitempty"`
}

// Service реализует оркестратор фулфилмента.
type Service struct {
	backend Backend
	saver   Saver
	delay   time.Duration // Пауза между последовательными загрузками
	log     *slog.Logger
}

// New создает новый Service. delay задаёт паузу между загрузками,
// ограничивающую нагрузку на backend.
func New(backend Backend, saver Saver, delay time.Duration, log *slog.Logger) *Service {
	return &Service{
		backend: backend,
		saver:   saver,
		delay:   delay,
		log:     log,
	}
}

// Run выполняет один прогон фулфилмента для пользователя.
//
// Возвращает результат с лицензиями и статусами загрузок. Ошибка чтения
// корзины или создания лицензий возвращается без результата. Ошибка
// свежего чтения списка лицензий возвращается вместе с результатом:
// загрузки при этом пропускаются, но корзина всё равно очищается.
func (s *Service) Run(ctx context.Context, user *models.User) (*Result, error) {
	const op = "services.fulfillment.Run"

	items, err := s.backend.GetCart(ctx, user.ID)
	if err != nil {
		if backend.IsUnauthorized(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	licenseItems := make([]models.LicenseItem, 0, len(items))
	for _, item := range items {
		licenseItems = append(licenseItems, models.LicenseItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
		})
	}
	if err := s.backend.CreateLicenses(ctx, user.ID, licenseItems); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("licenses created", slog.Int("user_id", user.ID), slog.Int("items", len(items)))

	result := &Result{Downloads: make(map[int]models.DownloadStatus, len(items))}
	for _, item := range items {
		result.Downloads[item.ProductID] = models.DownloadPending
	}

	// Источник истины для отображения — свежее чтение, а не ответ на
	// создание лицензий.
	licenses, listErr := s.backend.ListLicenses(ctx, user.ID)
	if listErr == nil {
		result.Licenses = licenses
		s.downloadAll(ctx, items, result)
	} else {
		s.log.Error("failed to fetch licenses", sl.Op(op), sl.Err(listErr))
	}

	// Очистка выполняется безусловно после успешного создания лицензий,
	// независимо от исходов отдельных загрузок.
	if err := s.backend.ClearCart(ctx, user.ID); err != nil {
		result.ClearCartError = err.Error()
		s.log.Error("failed to clear cart", sl.Op(op), sl.Err(err))
	}

	if listErr != nil {
		return result, fmt.Errorf("%s: %w", op, listErr)
	}
	return result, nil
}

// downloadAll последовательно загружает каждый купленный товар ровно один
// раз. Ошибка одного товара не прерывает цикл; между загрузками выдержана
// фиксированная пауза.
func (s *Service) downloadAll(ctx context.Context, items []models.CartItem, result *Result) {
	const op = "services.fulfillment.downloadAll"

	for i, item := range items {
		if i > 0 && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return
			}
		}

		result.Downloads[item.ProductID] = models.DownloadInProgress

		if _, err := s.backend.GetProduct(ctx, item.ProductID); err != nil {
			s.log.Error("product check failed", sl.Op(op),
				slog.Int("product_id", item.ProductID), sl.Err(err))
			result.Downloads[item.ProductID] = models.DownloadFailed
			continue
		}

		data, contentType, err := s.backend.DownloadProduct(ctx, item.ProductID)
		if err != nil {
			s.log.Error("download failed", sl.Op(op),
				slog.Int("product_id", item.ProductID), sl.Err(err))
			result.Downloads[item.ProductID] = models.DownloadFailed
			continue
		}

		filename := item.Name + extensionFor(contentType)
		if err := s.saver.Save(filename, data); err != nil {
			s.log.Error("save failed", sl.Op(op),
				slog.String("filename", filename), sl.Err(err))
			result.Downloads[item.ProductID] = models.DownloadFailed
			continue
		}

		result.Downloads[item.ProductID] = models.DownloadCompleted
		s.log.Info("product downloaded", slog.Int("product_id", item.ProductID),
			slog.String("filename", filename))
	}
}

// extensionFor выводит расширение файла из объявленного Content-Type.
// Неизвестный или пустой тип даёт фиксированное архивное расширение.
func extensionFor(contentType string) string {
	if contentType == "" {
		return defaultExtension
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return defaultExtension
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return defaultExtension
	}
	return exts[0]
}
