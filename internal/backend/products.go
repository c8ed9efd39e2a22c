package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/celestialcentral/storefront/internal/models"
)

// ListProducts возвращает весь каталог товаров.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct возвращает один товар по идентификатору.
// Используется и как проверка существования перед загрузкой.
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DownloadProduct скачивает бинарный файл товара и возвращает содержимое
// вместе с объявленным Content-Type.
func (c *Client) DownloadProduct(ctx context.Context, id int) ([]byte, string, error) {
	return c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/download", id))
}
