// Package pay реализует HTTP-обработчик подтверждения оплаты.
//
// Отклонённый процессором платёж отдаётся клиенту с HTTP 402 и дословным
// сообщением процессора; попытка при этом гаснет, повтор требует нового
// запроса подготовки.
package pay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/celestialcentral/storefront/internal/http/middlewarectx"
	"github.com/celestialcentral/storefront/internal/http/response"
	"github.com/celestialcentral/storefront/internal/lib/sl"
	"github.com/celestialcentral/storefront/internal/models"
	"github.com/celestialcentral/storefront/internal/paymentprovider"
	checkoutservice "github.com/celestialcentral/storefront/internal/services/checkout"
)

// Handler управляет HTTP-запросами на подтверждение оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс подтверждения оплаты.
type Service interface {
	Pay(ctx context.Context, user *models.User, attemptID, cardToken string) (*checkoutservice.Attempt, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтверждение оплаты
// @Description Подтверждает платёж по подготовленной попытке. Отказ процессора возвращается дословно со статусом 402.
// @Tags Checkout
// @Accept  json
// @Produce  json
// @Param request body models.DummyPay true "Идентификатор попытки и токен карты"
// @Success 200 {object} map[string]any "Попытка в состоянии succeeded"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или попытка не готова"
// @Failure 402 {object} response.ErrorResponse "Платёж отклонён процессором"
// @Failure 404 {object} response.ErrorResponse "Попытка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /checkout/pay [post]
// @Security CookieAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.pay"
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

	var req models.DummyPay
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	attempt, err := h.service.Pay(r.Context(), user, req.AttemptID, req.CardToken)
	if err != nil {
		var payErr *paymentprovider.PaymentError
		switch {
		case errors.Is(err, checkoutservice.ErrAttemptNotFound):
			log.Error("payment attempt not found", slog.String("attempt_id", req.AttemptID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("payment attempt not found"))
		case errors.Is(err, checkoutservice.ErrNotReady):
			log.Error("payment attempt is not ready", slog.String("attempt_id", req.AttemptID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("payment system is not ready. Please try again later."))
		case errors.As(err, &payErr):
			log.Error("payment declined", slog.String("attempt_id", req.AttemptID), sl.Err(err))
			w.WriteHeader(http.StatusPaymentRequired)
			render.JSON(w, r, response.Error(payErr.Message))
		default:
			log.Error("failed to process payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to process payment. Please try again."))
		}
		return
	}

	log.Info("payment confirmed", slog.String("attempt_id", attempt.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"attempt": attempt,
	}))
}
