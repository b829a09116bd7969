package orchestrator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_PostsOrderDetails(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Notify(context.Background(), OrderDetails{
		OrderID:    "12",
		ProductID:  "7",
		Quantity:   3,
		TotalPrice: 59.97,
	})

	require.NoError(t, err)
	// wire keys are the external contract
	assert.Equal(t, "12", got["OrderId"])
	assert.Equal(t, "7", got["ProductId"])
	assert.Equal(t, float64(3), got["Quantity"])
	assert.InDelta(t, 59.97, got["TotalPrice"].(float64), 0.001)
}

func TestNotify_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Notify(context.Background(), OrderDetails{OrderID: "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNotify_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL)
	err := c.Notify(context.Background(), OrderDetails{OrderID: "1"})

	assert.Error(t, err)
}

func TestNotify_Unconfigured(t *testing.T) {
	c := NewClient("")
	err := c.Notify(context.Background(), OrderDetails{OrderID: "1"})
	assert.Error(t, err)
}
