// Package read реализует HTTP-обработчик карточки товара.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/celestialcentral/storefront/internal/backend"
	"github.com/celestialcentral/storefront/internal/http/response"
	"github.com/celestialcentral/storefront/internal/lib/sl"
	"github.com/celestialcentral/storefront/internal/models"
)

// Handler управляет HTTP-запросами на чтение одного товара.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения товара по идентификатору.
type Service interface {
	Read(ctx context.Context, id int) (*models.Product, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка товара
// @Description Возвращает товар по идентификатору из пути.
// @Tags Products
// @Produce  json
// @Param id path int true "ID товара"
// @Success 200 {object} map[string]any "Товар"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.products.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid product id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product id"))
		return
	}

	product, err := h.service.Read(r.Context(), id)
	if err != nil {
		var reqErr *backend.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			log.Error("product not found", slog.Int("product_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to load product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load product"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"product": product,
	}))
}
