package backend

import (
	"context"
	"net/http"

	"github.com/celestialcentral/storefront/internal/models"
)

type loginResponse struct {
	User models.User `json:"user"`
}

// CreateUser регистрирует новую учётную запись.
func (c *Client) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/users", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginUser аутентифицирует пользователя и возвращает его данные.
func (c *Client) LoginUser(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
