package paygate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ProcessPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/charges", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "123456", req.PatronID)
		assert.Equal(t, 1.50, req.Amount)
		assert.Equal(t, "Late fees for '1984'", req.Description)

		json.NewEncoder(w).Encode(gatewayResponse{
			Approved:      true,
			TransactionID: "txn_test_001",
			Message:       "Charged $1.50",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 10, 0)
	charge, err := c.ProcessPayment(context.Background(), "123456", 1.50, "Late fees for '1984'")

	require.NoError(t, err)
	assert.True(t, charge.Approved)
	assert.Equal(t, "txn_test_001", charge.TransactionID)
	assert.Equal(t, "Charged $1.50", charge.Message)
}

func TestClient_RefundPayment_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)
		json.NewEncoder(w).Encode(gatewayResponse{
			Approved: false,
			Message:  "transaction not found",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 10, 0)
	charge, err := c.RefundPayment(context.Background(), "txn_missing", 5.00)

	require.NoError(t, err)
	assert.False(t, charge.Approved)
	assert.Equal(t, "transaction not found", charge.Message)
}

func TestClient_RetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(gatewayResponse{Approved: true, TransactionID: "txn_retry"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 100, 2)
	charge, err := c.ProcessPayment(context.Background(), "123456", 2.00, "Late fees")

	require.NoError(t, err)
	assert.True(t, charge.Approved)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 100, 3)
	_, err := c.ProcessPayment(context.Background(), "123456", 2.00, "Late fees")

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
