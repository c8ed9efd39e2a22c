// Package debug реализует служебную страницу просмотра сырого каталога.
//
// В отличие от списка товаров, кэш здесь не используется: страница нужна,
// чтобы смотреть ровно то, что отдаёт backend.
package debug

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

// Handler управляет HTTP-запросами на служебный просмотр каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение каталога в обход кэша.
type Service interface {
	ListRaw(ctx context.Context) ([]models.Product, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Служебный просмотр каталога
// @Description Возвращает товары напрямую из backend без кэша. При ошибке текст ошибки backend отдаётся как есть.
// @Tags Products
// @Produce  json
// @Success 200 {object} map[string]any "Список товаров"
// @Failure 500 {object} response.ErrorResponse "Текст ошибки backend"
// @Router /debug [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.products.debug"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.ListRaw(r.Context())
	if err != nil {
		log.Error("failed to load raw catalog", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"products": products,
	}))
}
