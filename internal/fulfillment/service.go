package fulfillment

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	kafkax "github.com/craftworks/storefront/internal/kafka"
	"github.com/craftworks/storefront/internal/orders"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// StockApplier decrements catalog stock; *catalog.Repo satisfies it.
type StockApplier interface {
	ReduceStock(ctx context.Context, productID int64, qty int) (applied bool, available int, err error)
}

type Deduper interface {
	SeenOrMark(ctx context.Context, eventID string) (bool, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service applies placed orders to catalog stock. Fulfilled and backordered
// outcomes go to separate topics.
type Service struct {
	Stock             StockApplier
	Dedup             Deduper
	ProducerFulfilled Publisher
	ProducerBackorder Publisher
	ServiceName       string
}

// HandleOrderCreated is the consumer handler for order.created. Returning nil
// lets the consumer commit the offset.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	// A redelivered event must not decrement stock twice.
	seen, err := s.Dedup.SeenOrMark(ctx, env.EventID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	applied, available, err := s.Stock.ReduceStock(ctx, p.ProductID, p.Quantity)
	if err != nil {
		return err
	}

	if applied {
		s.publishFulfilled(p, available, env.TraceID)
		return nil
	}
	log.Printf("backorder: order_id=%d product_id=%d required=%d available=%d",
		p.OrderID, p.ProductID, p.Quantity, available)
	s.publishBackordered(p, available, env.TraceID)
	return nil
}

func (s *Service) publishFulfilled(p orders.OrderCreatedPayload, remaining int, trace string) {
	ev := s.envelope(orders.EventOrderFulfilled, p.OrderID, trace)
	ev.Payload = kafkax.MustMarshal(orders.OrderFulfilledPayload{
		OrderID:   p.OrderID,
		ProductID: p.ProductID,
		Quantity:  p.Quantity,
		Remaining: remaining,
	})
	s.ProducerFulfilled.Publish(orders.PartitionKey(p.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderFulfilled)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *Service) publishBackordered(p orders.OrderCreatedPayload, available int, trace string) {
	ev := s.envelope(orders.EventOrderBackordered, p.OrderID, trace)
	ev.Payload = kafkax.MustMarshal(orders.OrderBackorderedPayload{
		OrderID:   p.OrderID,
		ProductID: p.ProductID,
		Required:  p.Quantity,
		Available: available,
	})
	s.ProducerBackorder.Publish(orders.PartitionKey(p.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderBackordered)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *Service) envelope(eventType string, orderID int64, trace string) orders.Envelope {
	return orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: strconv.FormatInt(orderID, 10),
	}
}
