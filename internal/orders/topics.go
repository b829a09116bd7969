package orders

import "strconv"

const (
	TopicOrderCreated     = "order.created"
	TopicOrderFulfilled   = "order.fulfilled"
	TopicOrderBackordered = "order.backordered"
)

// Partition key = order id, so every event for one order stays ordered.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
