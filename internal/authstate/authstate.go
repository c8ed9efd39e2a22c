// Package authstate реализует типизированный сервис хранения состояния
// аутентификации витрины.
//
// Всё состояние живёт в одной куке с фиксированным именем "authState",
// значение которой — подписанный JWT с данными пользователя. Login
// сохраняет состояние, Logout стирает куку целиком; асимметрия
// намеренная и повторяет жизненный цикл authState из §3.
package authstate

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/celestialcentral/storefront/internal/models"
)

// CookieName — фиксированный ключ клиентского хранилища.
const CookieName = "authState"

// Claims описывает пользовательские данные, хранящиеся в JWT куки.
type Claims struct {
	User                 models.User `json:"user"` // Данные пользователя
	jwt.RegisteredClaims             // Встроенные стандартные claims JWT
}

// Store подписывает, читает и стирает authState-куку.
type Store struct {
	secretKey string        // Секретный ключ для подписи
	tokenTTL  time.Duration // Время жизни состояния
}

// New создаёт новый Store с секретным ключом и TTL.
func New(secretKey string, tokenTTL time.Duration) *Store {
	return &Store{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
	}
}

// GenerateToken создаёт подписанный JWT с данными пользователя.
func (s *Store) GenerateToken(user models.User) (string, error) {
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims.
func (s *Store) ParseToken(tokenStr string) (*Claims, error) {
	const op = "authstate.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// Load восстанавливает AuthState из запроса. Отсутствующая, просроченная
// или повреждённая кука даёт состояние "не аутентифицирован" без ошибки.
func (s *Store) Load(r *http.Request) models.AuthState {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return models.AuthState{}
	}
	claims, err := s.ParseToken(cookie.Value)
	if err != nil {
		return models.AuthState{}
	}
	user := claims.User
	return models.AuthState{IsAuthenticated: true, User: &user}
}

// Login записывает аутентифицированное состояние в куку ответа.
func (s *Store) Login(w http.ResponseWriter, user models.User) error {
	token, err := s.GenerateToken(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout стирает сохранённое состояние целиком.
func (s *Store) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
