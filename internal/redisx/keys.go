package redisx

import "time"

const (
	// Delivery options written at checkout, read exactly once by the
	// transaction component: checkout:delivery:{user_id} -> JSON document
	KeyDeliveryOptions = "checkout:delivery:%d"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLDeliveryOptions = 30 * time.Minute
	TTLDedup           = 48 * time.Hour
)
