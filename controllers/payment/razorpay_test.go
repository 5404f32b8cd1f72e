package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test-key-secret"
	sig := signPayload("order_ABC", "pay_XYZ", secret)

	require.True(t, VerifySignature("order_ABC", "pay_XYZ", sig, secret))
	require.False(t, VerifySignature("order_ABC", "pay_XYZ", sig, "wrong-secret"))
	require.False(t, VerifySignature("order_ABC", "pay_OTHER", sig, secret))
	require.False(t, VerifySignature("order_ABC", "pay_XYZ", "deadbeef", secret))
	require.False(t, VerifySignature("order_ABC", "pay_XYZ", "", secret))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key-id", user)
		require.Equal(t, "key-secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.EqualValues(t, 125000, payload["amount"])
		require.Equal(t, "INR", payload["currency"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "order_ABC", "amount": 125000, "currency": "INR",
			"receipt": payload["receipt"], "status": "created",
		})
	}))
	defer srv.Close()

	client := NewClient("key-id", "key-secret")
	client.BaseURL = srv.URL

	order, err := client.CreateOrder(125000, "INR", "rcpt-1")
	require.NoError(t, err)
	require.Equal(t, "order_ABC", order.ID)
	require.EqualValues(t, 125000, order.Amount)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"description":"bad credentials"}}`))
	}))
	defer srv.Close()

	client := NewClient("key-id", "bad-secret")
	client.BaseURL = srv.URL

	_, err := client.CreateOrder(100, "INR", "rcpt-1")
	require.Error(t, err)
}
