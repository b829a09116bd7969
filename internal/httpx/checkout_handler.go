package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/craftworks/storefront/internal/orders"
	"github.com/craftworks/storefront/internal/redisx"
	"github.com/go-chi/chi/v5"
)

// DeliverySlot stores one serialized delivery-options document per user for
// exactly one subsequent read; *redisx.DeliverySlot satisfies it.
type DeliverySlot interface {
	Put(ctx context.Context, userID int64, doc []byte) error
	Take(ctx context.Context, userID int64) ([]byte, error)
}

type CheckoutHandler struct {
	Slot DeliverySlot
}

type CheckoutResp struct {
	Next string `json:"next"`
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Post("/checkout", h.checkout)
	r.Get("/checkout/delivery", h.takeDelivery)
}

// checkout validates delivery options and stashes them for the transaction
// component. Nothing is persisted; the slot is the hand-off.
func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var opts orders.DeliveryOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if errs := opts.Validate(); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	doc, err := json.Marshal(opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.Slot.Put(ctx, userID, doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CheckoutResp{Next: "/transaction"})
}

// takeDelivery is the transaction component's single read of the slot. The
// read consumes the document; a second call returns 404.
func (h *CheckoutHandler) takeDelivery(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	doc, err := h.Slot.Take(ctx, userID)
	if errors.Is(err, redisx.ErrNoSlot) {
		writeError(w, http.StatusNotFound, "delivery options not set")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
