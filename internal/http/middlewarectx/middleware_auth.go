// Package middlewarectx содержит HTTP middleware витрины.
//
// AuthMiddleware восстанавливает состояние аутентификации из authState-куки
// и кладёт пользователя в контекст запроса. Неаутентифицированный запрос к
// защищённой странице получает HTTP 401 — клиентская оболочка по нему
// уводит пользователя на страницу логина.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/celestialcentral/storefront/internal/http/response"
	"github.com/celestialcentral/storefront/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для данных пользователя в контексте.
const User Key = "user"

// AuthStore описывает чтение состояния аутентификации из запроса.
type AuthStore interface {
	Load(r *http.Request) models.AuthState
}

// AuthMiddleware возвращает HTTP middleware, который требует
// аутентифицированного пользователя.
//
// Если authState валиден, кладёт пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(store AuthStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			state := store.Load(r)
			if !state.IsAuthenticated || state.User == nil {
				log.Error("request without valid auth state")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user not authorized, please log in again"))
				return
			}

			ctx := context.WithValue(r.Context(), User, state.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext достаёт пользователя, положенного AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}
