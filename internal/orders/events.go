package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated     = "OrderCreated"
	EventOrderFulfilled   = "OrderFulfilled"
	EventOrderBackordered = "OrderBackordered"
)

type Envelope struct {
	EventID       string          `json:"event_id"` // uuid
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"` // e.g. "storefront-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID    int64 `json:"order_id"`
	ProductID  int64 `json:"product_id"`
	UserID     int64 `json:"user_id"`
	Quantity   int   `json:"quantity"`
	TotalCents int64 `json:"total_cents"`
}

type OrderFulfilledPayload struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Remaining int   `json:"remaining"`
}

type OrderBackorderedPayload struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Required  int   `json:"required"`
	Available int   `json:"available"`
}
