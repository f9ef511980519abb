package usecase

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// publish emits a product event after the change is committed. Failures are
// logged and never surface to the caller.
func (uc *productUseCase) publish(ctx context.Context, eventType string, p *model.Product) {
	payload := event.ProductPayload{
		ID:         p.ID,
		SKU:        p.SKU,
		Slug:       p.Slug,
		Title:      p.Title,
		BasePrice:  p.BasePrice.String(),
		TotalStock: p.TotalStock,
		StockState: string(p.StockState),
		IsActive:   p.IsActive,
	}
	if err := uc.publisher.Publish(ctx, strconv.FormatInt(p.ID, 10), eventType, payload); err != nil {
		uc.logger.Error("failed to publish product event",
			zap.String("event_type", eventType),
			zap.Int64("product_id", p.ID),
			zap.Error(err),
		)
	}
}
