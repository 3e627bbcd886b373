package mobilemoney_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/adapters/out/mobilemoney"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTransaction_ConfirmedTransaction_ReturnsConfirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/MM-12345", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reference":"MM-12345","amount":7500,"status":"confirmed"}`))
	}))
	defer server.Close()

	gateway := mobilemoney.NewGateway(server.URL)

	tx, err := gateway.GetTransaction(context.Background(), "MM-12345")

	require.NoError(t, err)
	assert.Equal(t, "MM-12345", tx.Reference)
	assert.InDelta(t, 7500.0, tx.Amount, 0.001)
	assert.True(t, tx.Confirmed)
}

func TestGetTransaction_PendingTransaction_NotConfirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reference":"MM-777","amount":1200,"status":"pending"}`))
	}))
	defer server.Close()

	gateway := mobilemoney.NewGateway(server.URL)

	tx, err := gateway.GetTransaction(context.Background(), "MM-777")

	require.NoError(t, err)
	assert.False(t, tx.Confirmed)
}

func TestGetTransaction_UnknownReference_ReturnsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	gateway := mobilemoney.NewGateway(server.URL)

	_, err := gateway.GetTransaction(context.Background(), "MM-MISSING")

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetTransaction_ProviderError_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := mobilemoney.NewGateway(server.URL)

	_, err := gateway.GetTransaction(context.Background(), "MM-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
}
