// Package login реализует HTTP-обработчик входа пользователя.
//
// Handler принимает JSON с email и паролем, валидирует их, аутентифицирует
// пользователя через backend и при успехе записывает authState-куку.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/celestialcentral/storefront/internal/http/response"
	"github.com/celestialcentral/storefront/internal/lib/sl"
	"github.com/celestialcentral/storefront/internal/models"
	userservice "github.com/celestialcentral/storefront/internal/services/user"
)

// Handler управляет HTTP-запросами на вход пользователя.
type Handler struct {
	log       *slog.Logger        // Логгер для записи информации и ошибок
	service   Service             // Сервис бизнес-логики входа
	authStore AuthStore           // Хранилище authState-куки
	validate  *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, req models.DummyLogin) (*models.User, error)
}

// AuthStore описывает запись состояния аутентификации в ответ.
type AuthStore interface {
	Login(w http.ResponseWriter, user models.User) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, authStore AuthStore) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		authStore: authStore,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя через backend и выставляет authState-куку.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyLogin true "Email и пароль"
// @Success 200 {object} map[string]any "Данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLogin
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

	logged, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, userservice.ErrInvalidCredentials) {
			log.Error("invalid credentials", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("email or password is incorrect"))
			return
		}
		log.Error("failed to login user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("an unexpected error occurred, please try again"))
		return
	}

	if err := h.authStore.Login(w, *logged); err != nil {
		log.Error("failed to persist auth state", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("an unexpected error occurred, please try again"))
		return
	}

	log.Info("user logged in", slog.Int("user_id", logged.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": logged,
	}))
}
