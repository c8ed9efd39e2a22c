package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/celestialcentral/storefront/internal/models"
)

// CreateLicenses запрашивает создание лицензий на купленные позиции корзины.
func (c *Client) CreateLicenses(ctx context.Context, userID int, items []models.LicenseItem) error {
	body := map[string]any{
		"userId": userID,
		"items":  items,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/licenses", body, nil)
}

// ListLicenses возвращает все лицензии пользователя.
// Именно этот свежий список, а не ответ на создание, служит источником
// истины для отображения.
func (c *Client) ListLicenses(ctx context.Context, userID int) ([]models.License, error) {
	var licenses []models.License
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/licenses/%d", userID), nil, &licenses); err != nil {
		return nil, err
	}
	return licenses, nil
}
