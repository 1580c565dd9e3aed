package outbox

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExchangeOrderEvents is the RabbitMQ exchange all order lifecycle events are
// published to.
const ExchangeOrderEvents = "orders.events"

// Routing keys for order lifecycle events.
const (
	RoutingKeyOrderCreated   = "order.created"
	RoutingKeyOrderUpdated   = "order.updated"
	RoutingKeyOrderConfirmed = "order.confirmed"
	RoutingKeyOrderCancelled = "order.cancelled"
	RoutingKeyOrderDeleted   = "order.deleted"
)

const defaultMaxRetries = 5

// Message represents an event waiting to be published to RabbitMQ.
type Message struct {
	ID           int64
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// NewOrderEvent builds an outbox message for an order lifecycle event. The
// payload is the JSON-serialized order snapshot (or a minimal document for
// deletions).
func NewOrderEvent(routingKey string, payload any) (Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal order event payload: %w", err)
	}

	now := time.Now()

	return Message{
		ExchangeName: ExchangeOrderEvents,
		RoutingKey:   routingKey,
		Payload:      body,
		ContentType:  "application/json",
		MaxRetries:   defaultMaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}, nil
}
