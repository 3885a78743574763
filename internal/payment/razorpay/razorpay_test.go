package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifierRoundTrip(t *testing.T) {
	v := NewVerifier("test_secret")
	sig := v.Sign("order_A1", "pay_B2")

	assert.Len(t, sig, 64)
	assert.True(t, v.Verify("order_A1", "pay_B2", sig))
	assert.True(t, v.Verify(" order_A1 ", "pay_B2", " "+sig+" "))
	assert.False(t, v.Verify("order_A1", "pay_B3", sig))
	assert.False(t, v.Verify("order_A1", "pay_B2", sig[:63]+"0"))
	assert.False(t, v.Verify("order_A1", "pay_B2", ""))
}

func TestVerifierDistinctPairsProduceDistinctSignatures(t *testing.T) {
	v := NewVerifier("test_secret")
	seen := map[string]struct{}{}
	pairs := [][2]string{
		{"order_1", "pay_1"},
		{"order_1", "pay_2"},
		{"order_2", "pay_1"},
		{"order_1|pay", "1"},
	}
	for _, pair := range pairs {
		sig := v.Sign(pair[0], pair[1])
		seen[sig] = struct{}{}
	}
	// "order_1|pay"+"|"+"1" 与 "order_1"+"|"+"pay|1" 不同，四组应互不相同
	assert.Len(t, seen, len(pairs))
}

func TestVerifierWithoutSecretRejects(t *testing.T) {
	v := NewVerifier("  ")
	assert.False(t, v.Configured())
	assert.False(t, v.Verify("order_1", "pay_1", NewVerifier("x").Sign("order_1", "pay_1")))
}

func TestCreateOrderSendsBasicAuthAndMinorAmount(t *testing.T) {
	var captured createOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rzp_test_key", user)
		require.Equal(t, "rzp_test_secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_RZP123",
			"amount":   captured.Amount,
			"currency": captured.Currency,
			"receipt":  captured.Receipt,
			"status":   "created",
		})
	}))
	defer server.Close()

	cfg := &Config{KeyID: "rzp_test_key", KeySecret: "rzp_test_secret", APIBaseURL: server.URL}
	cfg.Normalize()

	result, err := CreateOrder(context.Background(), cfg, CreateOrderInput{
		AmountMinor: 128000,
		Receipt:     "ORD-2601-00001",
		Notes:       map[string]string{"order_id": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "order_RZP123", result.ID)
	assert.Equal(t, int64(128000), captured.Amount)
	assert.Equal(t, "INR", captured.Currency)
	assert.Equal(t, "ORD-2601-00001", captured.Receipt)
	assert.Equal(t, "1", captured.Notes["order_id"])
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	}))
	defer server.Close()

	cfg := &Config{KeyID: "k", KeySecret: "s", APIBaseURL: server.URL}
	cfg.Normalize()

	_, err := CreateOrder(context.Background(), cfg, CreateOrderInput{AmountMinor: 100, Receipt: "ORD-2601-00002"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResponseInvalid))
	assert.Contains(t, err.Error(), "Authentication failed")
}

func TestCreateOrderRejectsInvalidInput(t *testing.T) {
	cfg := &Config{KeyID: "k", KeySecret: "s"}
	cfg.Normalize()

	_, err := CreateOrder(context.Background(), cfg, CreateOrderInput{AmountMinor: 0, Receipt: "r"})
	assert.True(t, errors.Is(err, ErrConfigInvalid))

	_, err = CreateOrder(context.Background(), &Config{KeySecret: "s", APIBaseURL: defaultAPIBaseURL}, CreateOrderInput{AmountMinor: 1, Receipt: "r"})
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{KeyID: " k ", APIBaseURL: "https://api.razorpay.com/ "}
	cfg.Normalize()
	assert.Equal(t, "k", cfg.KeyID)
	assert.Equal(t, "https://api.razorpay.com", cfg.APIBaseURL)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
}
