package paymentprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentIDFromClientSecret(t *testing.T) {
	tests := []struct {
		name         string
		clientSecret string
		expectedID   string
		wantErr      bool
	}{
		{
			name:         "корректный секрет",
			clientSecret: "pi_3ABC_secret_xyz",
			expectedID:   "pi_3ABC",
		},
		{
			name:         "без разделителя",
			clientSecret: "pi_3ABC",
			wantErr:      true,
		},
		{
			name:         "пустой идентификатор",
			clientSecret: "_secret_xyz",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := IntentIDFromClientSecret(tt.clientSecret)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestConfirmPaymentIntent_Succeeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_3ABC/confirm", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		username, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "pk_test_123", username)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_3ABC_secret_xyz", r.PostForm.Get("client_secret"))
		assert.Equal(t, "tok_visa", r.PostForm.Get("payment_method_data[card][token]"))
		assert.Equal(t, "Ada", r.PostForm.Get("payment_method_data[billing_details][name]"))
		assert.Equal(t, "ada@example.com", r.PostForm.Get("payment_method_data[billing_details][email]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_3ABC","status":"succeeded","amount":2000}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("pk_test_123", srv.URL)
	intent, err := client.ConfirmPaymentIntent(context.Background(), "pi_3ABC_secret_xyz", "tok_visa",
		BillingDetails{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, intent.Status)
	assert.Equal(t, "pi_3ABC", intent.ID)
}

func TestConfirmPaymentIntent_CardDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Your card was declined.","type":"card_error","code":"card_declined"}}`))
	}))
	defer srv.Close()

	client := NewClientWithURL("pk_test_123", srv.URL)
	_, err := client.ConfirmPaymentIntent(context.Background(), "pi_3ABC_secret_xyz", "tok_visa", BillingDetails{})
	require.Error(t, err)

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	// Сообщение процессора показывается дословно.
	assert.Equal(t, "Your card was declined.", payErr.Message)
}

func TestConfirmPaymentIntent_MalformedSecret(t *testing.T) {
	client := NewClient("pk_test_123")
	_, err := client.ConfirmPaymentIntent(context.Background(), "not-a-secret", "tok_visa", BillingDetails{})
	require.Error(t, err)
}
