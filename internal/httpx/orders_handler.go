package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/craftworks/storefront/internal/catalog"
	kafkax "github.com/craftworks/storefront/internal/kafka"
	"github.com/craftworks/storefront/internal/orchestrator"
	"github.com/craftworks/storefront/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

type OrderStore interface {
	Create(ctx context.Context, o orders.Order) (int64, error)
	Get(ctx context.Context, id int64) (orders.Order, error)
	ListByUser(ctx context.Context, userID int64, before time.Time) ([]orders.Order, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Notifier hands the persisted order to the external processing workflow.
type Notifier interface {
	Notify(ctx context.Context, d orchestrator.OrderDetails) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Products ProductStore
	Orders   OrderStore
	Notifier Notifier
	Producer Publisher
	Service  string
}

type PlaceOrderReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type PlaceOrderResp struct {
	OrderID    int64 `json:"order_id"`
	TotalCents int64 `json:"total_cents"`
	Notified   bool  `json:"notified"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Delete("/orders/{id}", h.deleteOrder)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := h.Products.Get(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Total is fixed at submission time; deliberately no stock bounds check
	// here, stock is applied by the fulfillment consumer.
	order := orders.Order{
		ProductID:  product.ID,
		UserID:     userID,
		Quantity:   req.Quantity,
		OrderDate:  time.Now().UTC(),
		TotalCents: product.PriceCents * int64(req.Quantity),
	}
	order.ID, err = h.Orders.Create(ctx, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// At-most-once hand-off: the order above is durable either way, a failure
	// here is logged and reported only through the notified flag.
	notified := true
	if err := h.Notifier.Notify(ctx, orchestrator.OrderDetails{
		OrderID:    strconv.FormatInt(order.ID, 10),
		ProductID:  strconv.FormatInt(order.ProductID, 10),
		Quantity:   order.Quantity,
		TotalPrice: float64(order.TotalCents) / 100,
	}); err != nil {
		log.Printf("orchestrator notify failed: order_id=%d err=%v", order.ID, err)
		notified = false
	}

	h.publishCreated(r, order)

	writeJSON(w, http.StatusCreated, PlaceOrderResp{
		OrderID:    order.ID,
		TotalCents: order.TotalCents,
		Notified:   notified,
	})
}

func (h *OrdersHandler) publishCreated(r *http.Request, o orders.Order) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.FormatInt(o.ID, 10),
		Payload: kafkax.MustMarshal(orders.OrderCreatedPayload{
			OrderID:    o.ID,
			ProductID:  o.ProductID,
			UserID:     o.UserID,
			Quantity:   o.Quantity,
			TotalCents: o.TotalCents,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Orders.ListByUser(ctx, userID, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Orders.Get(ctx, id)
	if errors.Is(err, orders.ErrNotFound) || (err == nil && o.UserID != userID) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Orders.Delete(ctx, id, userID)
	if errors.Is(err, orders.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
