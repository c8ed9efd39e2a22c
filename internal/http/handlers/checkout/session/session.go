// Package session реализует HTTP-обработчик hosted-checkout сессии
// (ранний вариант оплаты через страницу процессора).
package session

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
	checkoutservice "github.com/celestialcentral/storefront/internal/services/checkout"
)

// Handler управляет HTTP-запросами на создание hosted-checkout сессии.
type Handler struct {
	log       *slog.Logger
	service   Service
	authStore AuthStore
}

// Service описывает интерфейс создания hosted-checkout сессии.
type Service interface {
	HostedSession(ctx context.Context, user *models.User) (string, error)
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
// @Summary Hosted-checkout сессия
// @Description Создаёт сессию оплаты на стороне процессора под текущую корзину.
// @Tags Checkout
// @Produce  json
// @Success 200 {object} map[string]any "Идентификатор сессии"
// @Failure 400 {object} response.ErrorResponse "Корзина пуста"
// @Failure 401 {object} response.ErrorResponse "Сессия недействительна"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /checkout/session [post]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.session"
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

	sessionID, err := h.service.HostedSession(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, checkoutservice.ErrUnauthorized):
			log.Error("backend rejected session", slog.Int("user_id", user.ID))
			h.authStore.Logout(w)
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not authorized, please log in again"))
		case errors.Is(err, checkoutservice.ErrEmptyCart):
			log.Error("cart is empty", slog.Int("user_id", user.ID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cart is empty"))
		default:
			log.Error("failed to create checkout session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create checkout session"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"session_id": sessionID,
	}))
}
