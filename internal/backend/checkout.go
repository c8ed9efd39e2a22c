package backend

import (
	"context"
	"net/http"

	"github.com/celestialcentral/storefront/internal/models"
)

type checkoutSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreatePaymentIntent создаёт у backend платёжное намерение под текущее
// содержимое корзины и возвращает его непрозрачный клиентский секрет.
func (c *Client) CreatePaymentIntent(ctx context.Context, items []models.CartItem) (*models.PaymentIntent, error) {
	body := map[string]any{"items": items}
	var intent models.PaymentIntent
	if err := c.doJSON(ctx, http.MethodPost, "/api/checkout/create-payment-intent", body, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateCheckoutSession создаёт hosted-checkout сессию (ранний вариант
// оплаты через страницу процессора) и возвращает её идентификатор.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []models.CartItem) (string, error) {
	body := map[string]any{"items": items}
	var resp checkoutSessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/checkout/create-checkout-session", body, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}
