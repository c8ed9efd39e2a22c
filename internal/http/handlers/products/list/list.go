// Package list реализует HTTP-обработчик списка товаров каталога.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/celestialcentral/storefront/internal/http/response"
	"github.com/celestialcentral/storefront/internal/lib/sl"
	"github.com/celestialcentral/storefront/internal/models"
)

// Handler управляет HTTP-запросами на получение каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения каталога.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список товаров
// @Description Возвращает все товары каталога, с кэшированием в Redis.
// @Tags Products
// @Produce  json
// @Success 200 {object} map[string]any "Список товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.products.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to load products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load products"))
		return
	}

	log.Info("products listed", slog.Int("count", len(products)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
	}))
}
