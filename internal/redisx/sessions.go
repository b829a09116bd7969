package redisx

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNoSlot is returned when the delivery slot is empty or already consumed.
var ErrNoSlot = errors.New("delivery options not set")

// DeliverySlot holds one serialized delivery-options document per user.
// Put overwrites; Take removes the document together with the read, so the
// downstream transaction component sees it at most once.
type DeliverySlot struct {
	R *redis.Client
}

func (s *DeliverySlot) Put(ctx context.Context, userID int64, doc []byte) error {
	key := fmt.Sprintf(KeyDeliveryOptions, userID)
	return s.R.Set(ctx, key, doc, TTLDeliveryOptions).Err()
}

func (s *DeliverySlot) Take(ctx context.Context, userID int64) ([]byte, error) {
	key := fmt.Sprintf(KeyDeliveryOptions, userID)
	v, err := s.R.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSlot
	}
	return v, err
}

// Dedup marks processed event ids so a redelivered message is applied once.
type Dedup struct {
	R       *redis.Client
	Service string
}

// SeenOrMark reports whether eventID was already marked; if not, it marks it.
func (d *Dedup) SeenOrMark(ctx context.Context, eventID string) (bool, error) {
	key := fmt.Sprintf(KeyDedup, d.Service, eventID)
	set, err := d.R.SetNX(ctx, key, "1", TTLDedup).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}
