package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Reader is the part of *kafka.Reader the listener consumes.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type StockDecreaser interface {
	DecreaseStock(ctx context.Context, id int64, quantity int) (*model.Product, error)
}

// OrderListener deducts stock for every line of an OrderCreated event.
type OrderListener struct {
	reader     Reader
	uc         StockDecreaser
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewOrderListener(reader Reader, uc StockDecreaser, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		reader:     reader,
		uc:         uc,
		logger:     log,
		retryDelay: time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order Kafka listener")
	for {
		msg, err := l.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping order Kafka listener")
				return
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.retryDelay):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

func (l *OrderListener) Close() error {
	return l.reader.Close()
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	env, err := event.Decode(value)
	if err != nil {
		l.logger.Error("Failed to decode event", zap.Error(err))
		return
	}
	if env.EventType != event.OrderCreated {
		return
	}

	var order event.OrderPayload
	if err := json.Unmarshal(env.Payload, &order); err != nil {
		l.logger.Error("Failed to unmarshal order payload", zap.String("event_id", env.EventID), zap.Error(err))
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.Int64("order_id", order.ID))

	for _, item := range order.Items {
		p, err := l.uc.DecreaseStock(ctx, item.ProductID, item.Quantity)
		switch {
		case apperror.IsInsufficientStock(err):
			l.logger.Warn("Insufficient stock for order item",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
				zap.String("detail", err.Error()),
			)
		case err != nil:
			l.logger.Error("Failed to decrease stock for order item",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
		case p == nil:
			l.logger.Warn("Order item references unknown product",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
			)
		}
	}
}
