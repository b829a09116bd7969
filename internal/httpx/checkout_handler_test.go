package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/craftworks/storefront/internal/orders"
	"github.com/craftworks/storefront/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlot struct {
	docs map[int64][]byte
}

func (f *fakeSlot) Put(_ context.Context, userID int64, doc []byte) error {
	f.docs[userID] = doc
	return nil
}

func (f *fakeSlot) Take(_ context.Context, userID int64) ([]byte, error) {
	doc, ok := f.docs[userID]
	if !ok {
		return nil, redisx.ErrNoSlot
	}
	delete(f.docs, userID)
	return doc, nil
}

func newCheckoutFixture() (*chi.Mux, *fakeSlot) {
	slot := &fakeSlot{docs: map[int64][]byte{}}
	r := chi.NewRouter()
	h := &CheckoutHandler{Slot: slot}
	h.Register(r)
	return r, slot
}

func validOptions() orders.DeliveryOptions {
	return orders.DeliveryOptions{
		Recipient:  "A. Ndlovu",
		Street:     "12 Market St",
		City:       "Johannesburg",
		PostalCode: "2001",
		Method:     orders.DeliveryExpress,
	}
}

func TestCheckout_StoresOptionsAndHandsOff(t *testing.T) {
	r, slot := newCheckoutFixture()

	body, _ := json.Marshal(validOptions())
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CheckoutResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/transaction", resp.Next)
	assert.Contains(t, slot.docs, int64(3))
}

func TestCheckout_InvalidOptions_NothingStored(t *testing.T) {
	r, slot := newCheckoutFixture()

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader([]byte(`{"method":"drone"}`)))
	req.Header.Set("X-User-ID", "3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, slot.docs)
}

func TestCheckout_SlotIsReadOnce(t *testing.T) {
	r, _ := newCheckoutFixture()

	body, _ := json.Marshal(validOptions())
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "3")
	r.ServeHTTP(httptest.NewRecorder(), req)

	take := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/checkout/delivery", nil)
		req.Header.Set("X-User-ID", "3")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := take()
	require.Equal(t, http.StatusOK, first.Code)
	var opts orders.DeliveryOptions
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &opts))
	assert.Equal(t, "A. Ndlovu", opts.Recipient)

	second := take()
	assert.Equal(t, http.StatusNotFound, second.Code)
}

func TestCheckout_MissingIdentity(t *testing.T) {
	r, _ := newCheckoutFixture()

	body, _ := json.Marshal(validOptions())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
