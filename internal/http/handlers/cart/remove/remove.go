// Package remove реализует HTTP-обработчик удаления позиции из корзины.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/celestialcentral/storefront/internal/http/middlewarectx"
	"github.com/celestialcentral/storefront/internal/http/response"
	"github.com/celestialcentral/storefront/internal/lib/sl"
	cartservice "github.com/celestialcentral/storefront/internal/services/cart"
)

// Handler управляет HTTP-запросами на удаление позиции корзины.
type Handler struct {
	log       *slog.Logger
	service   Service
	authStore AuthStore
}

// Service описывает интерфейс удаления позиции из корзины.
type Service interface {
	Remove(ctx context.Context, userID, productID int) error
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
// @Summary Удаление позиции из корзины
// @Description Удаляет позицию по productId. Клиент после успеха убирает строку из локального снимка без повторного чтения.
// @Tags Cart
// @Produce  json
// @Param id path int true "ID товара"
// @Success 200 {object} map[string]any "ID удалённого товара"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Сессия недействительна"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart/{id} [delete]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.remove"
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

	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid product id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid product id"))
		return
	}

	if err := h.service.Remove(r.Context(), user.ID, productID); err != nil {
		if errors.Is(err, cartservice.ErrUnauthorized) {
			log.Error("backend rejected session", slog.Int("user_id", user.ID))
			h.authStore.Logout(w)
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not authorized, please log in again"))
			return
		}
		log.Error("failed to remove cart item", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove item from cart"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"product_id": productID,
	}))
}
