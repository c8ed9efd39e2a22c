// Package fulfill реализует HTTP-обработчик пост-оплатной страницы.
//
// Обработчик запускает последовательность: создание лицензий, свежее чтение
// их списка, загрузка купленных файлов и очистка корзины. Частичный неуспех
// (недоступный список лицензий или упавшая загрузка) не скрывает уже
// выполненные шаги: клиент получает результат с тем, что получилось.
package fulfill

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
	fulfillmentservice "github.com/celestialcentral/storefront/internal/services/fulfillment"
)

// Handler управляет HTTP-запросами на пост-оплатный фулфилмент.
type Handler struct {
	log       *slog.Logger
	service   Service
	authStore AuthStore
}

// Service описывает интерфейс прогона фулфилмента.
type Service interface {
	Run(ctx context.Context, user *models.User) (*fulfillmentservice.Result, error)
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
// @Summary Пост-оплатный фулфилмент
// @Description Создаёт лицензии по корзине, загружает купленные файлы и очищает корзину. Недоступный список лицензий пропускает загрузки, но корзина очищается.
// @Tags Checkedout
// @Produce  json
// @Success 200 {object} map[string]any "Лицензии и статусы загрузок"
// @Failure 400 {object} response.ErrorResponse "Корзина пуста"
// @Failure 401 {object} response.ErrorResponse "Сессия недействительна"
// @Failure 502 {object} response.ErrorResponse "Список лицензий недоступен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /checkedout [post]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkedout.fulfill"
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

	result, err := h.service.Run(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, fulfillmentservice.ErrUnauthorized):
			log.Error("backend rejected session", slog.Int("user_id", user.ID))
			h.authStore.Logout(w)
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not authorized, please log in again"))
			return
		case errors.Is(err, fulfillmentservice.ErrEmptyCart):
			log.Error("cart is empty", slog.Int("user_id", user.ID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cart is empty"))
			return
		case result != nil:
			// Лицензии создались, но их список прочитать не удалось:
			// отдаём частичный результат, чтобы клиент видел, что корзина
			// уже очищена.
			log.Error("fulfillment finished with error", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Response{
				Status: response.StatusError,
				Error:  "failed to load licenses",
				Data:   result,
			})
			return
		default:
			log.Error("fulfillment failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to complete purchase"))
			return
		}
	}

	log.Info("fulfillment completed", slog.Int("user_id", user.ID),
		slog.Int("licenses", len(result.Licenses)))
	render.JSON(w, r, response.OKWithData(result))
}
