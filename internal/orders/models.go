package orders

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

// Order is written once at submission and never updated. TotalCents is the
// product price at submission time multiplied by quantity; later price changes
// do not touch it.
type Order struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	UserID     int64     `json:"user_id"`
	Quantity   int       `json:"quantity"`
	OrderDate  time.Time `json:"order_date"`
	TotalCents int64     `json:"total_cents"`
}
