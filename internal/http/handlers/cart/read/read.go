// Package read реализует HTTP-обработчик страницы корзины.
//
// Ответ 401 от backend означает протухшую сессию: обработчик стирает
// authState-куку и возвращает 401, чтобы клиент ушёл на страницу логина.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/celestialcentral/storefront/internal/http/middlewarectx"
	"github.com/celestialcentral/storefront/internal/http/response"
	"github.com/celestialcentral/storefront/internal/lib/sl"
	"github.com/celestialcentral/storefront/internal/models"
	cartservice "github.com/celestialcentral/storefront/internal/services/cart"
)

// Handler управляет HTTP-запросами на чтение корзины.
type Handler struct {
	log       *slog.Logger
	service   Service
	authStore AuthStore
}

// Service описывает интерфейс чтения корзины.
type Service interface {
	Get(ctx context.Context, userID int) ([]models.CartItem, error)
}

// AuthStore описывает стирание состояния аутентификации.
type AuthStore interface {
	Logout(w http.ResponseWriter)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, authStore AuthStore) *Handler {
	return &Handler{log: log, service: service, authStore: authStore}
}

// ServeHTTP godoc
// @Summary Содержимое корзины
// @Description Возвращает позиции корзины и общую стоимость. При 401 от backend стирает authState-куку.
// @Tags Cart
// @Produce  json
// @Success 200 {object} map[string]any "Позиции и общая стоимость"
// @Failure 401 {object} response.ErrorResponse "Сессия недействительна"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart [get]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user not authorized, please log in again"))
		return
	}

	items, err := h.service.Get(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, cartservice.ErrUnauthorized) {
			log.Error("backend rejected session", slog.Int("user_id", user.ID))
			h.authStore.Logout(w)
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not authorized, please log in again"))
			return
		}
		log.Error("failed to load cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load cart"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"items":       items,
		"grand_total": cartservice.GrandTotal(items),
	}))
}
