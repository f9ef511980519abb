package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	ProductCreated      = "ProductCreated"
	ProductUpdated      = "ProductUpdated"
	ProductDeleted      = "ProductDeleted"
	ProductStockChanged = "ProductStockChanged"
	OrderCreated        = "OrderCreated"
)

// Envelope is the wire format shared with the order service.
type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type ProductPayload struct {
	ID         int64  `json:"id"`
	SKU        string `json:"sku"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	BasePrice  string `json:"base_price"`
	TotalStock int    `json:"total_stock"`
	StockState string `json:"stock_state"`
	IsActive   bool   `json:"is_active"`
}

type OrderPayload struct {
	ID    int64              `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, payload interface{}) error
	Close() error
}

// Encode wraps payload in an Envelope with a fresh event id.
func Encode(eventType string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s payload", eventType)
	}
	return json.Marshal(Envelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Payload:   body,
		Timestamp: time.Now().UTC(),
	})
}

func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "unmarshal event envelope")
	}
	return &env, nil
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                               { return nil }
