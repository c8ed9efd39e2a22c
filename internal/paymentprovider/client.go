// Package paymentprovider реализует клиент Stripe PaymentIntents.
//
// Витрина владеет только publishable-ключом и погашает клиентский секрет,
// выданный backend-ом при создании платёжного намерения. Секрет расходуется
// ровно один раз: повторная попытка оплаты требует нового намерения.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client инкапсулирует доступ к API Stripe.
type Client struct {
	publishableKey string
	apiURL         string
	httpClient     *http.Client
}

// NewClient создаёт новый клиент Stripe с publishable-ключом.
func NewClient(publishableKey string) *Client {
	return &Client{
		publishableKey: publishableKey,
		apiURL:         "https://api.stripe.com/v1",
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithURL создаёт клиент с переопределённым адресом API.
// Используется в тестах.
func NewClientWithURL(publishableKey, apiURL string) *Client {
	c := NewClient(publishableKey)
	c.apiURL = strings.TrimRight(apiURL, "/")
	return c
}

// IntentIDFromClientSecret выделяет идентификатор платёжного намерения
// из клиентского секрета вида "pi_..._secret_...".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}

// ConfirmPaymentIntent подтверждает платёж по клиентскому секрету,
// создавая платёжный метод из карточного токена виджета и передавая
// платёжные реквизиты покупателя.
//
// Любая ошибка процессора возвращается как *PaymentError с исходным
// текстом сообщения.
func (c *Client) ConfirmPaymentIntent(ctx context.Context, clientSecret, cardToken string, billing BillingDetails) (*PaymentIntent, error) {
	const op = "paymentprovider.ConfirmPaymentIntent"

	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][token]", cardToken)
	form.Set("payment_method_data[billing_details][name]", billing.Name)
	form.Set("payment_method_data[billing_details][email]", billing.Email)

	endpoint := fmt.Sprintf("%s/payment_intents/%s/confirm", c.apiURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.SetBasicAuth(c.publishableKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil || errResp.Error.Message == "" {
			return nil, &PaymentError{Message: "unexpected status: " + resp.Status}
		}
		return nil, &PaymentError{Message: errResp.Error.Message}
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &intent, nil
}
