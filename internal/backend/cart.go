package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/celestialcentral/storefront/internal/models"
)

// GetCart возвращает содержимое серверной корзины пользователя.
func (c *Client) GetCart(ctx context.Context, userID int) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/cart/%d", userID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem добавляет позицию в корзину пользователя.
func (c *Client) AddCartItem(ctx context.Context, userID, productID, quantity int) error {
	body := map[string]int{
		"userId":    userID,
		"productId": productID,
		"quantity":  quantity,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/cart/add", body, nil)
}

// RemoveCartItem удаляет одну позицию из корзины пользователя.
func (c *Client) RemoveCartItem(ctx context.Context, userID, productID int) error {
	body := map[string]int{
		"userId":    userID,
		"productId": productID,
	}
	return c.doJSON(ctx, http.MethodDelete, "/api/cart/remove", body, nil)
}

// ClearCart полностью очищает корзину пользователя.
// Контракт зафиксирован как DELETE с телом {userId}, по аналогии с remove.
func (c *Client) ClearCart(ctx context.Context, userID int) error {
	body := map[string]int{"userId": userID}
	return c.doJSON(ctx, http.MethodDelete, "/api/cart/clear", body, nil)
}
