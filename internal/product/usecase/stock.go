package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// UpdateStock sets an absolute quantity and derives the stock state from it.
func (uc *productUseCase) UpdateStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, apperror.NewValidation("quantity must be greater than or equal to 0")
	}
	if quantity > model.MaxStock {
		return nil, apperror.NewValidation("quantity must be at most %d", model.MaxStock)
	}

	found, err := uc.repos.Products.SetStock(ctx, id, quantity, model.StockStateFor(quantity))
	if err != nil || !found {
		return nil, err
	}

	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	uc.stockChanged(ctx, p)
	return p, nil
}

// DecreaseStock fails with an InsufficientStockError instead of going below zero.
func (uc *productUseCase) DecreaseStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	if err := validDelta(quantity); err != nil {
		return nil, err
	}

	p, err := uc.repos.Products.AdjustStock(ctx, id, -quantity)
	if err != nil {
		return nil, err
	}
	if p == nil {
		current, err := uc.repos.Products.GetByID(ctx, id)
		if err != nil || current == nil {
			return nil, err
		}
		return nil, &apperror.InsufficientStockError{
			ProductID: id,
			Requested: quantity,
			Available: current.TotalStock,
		}
	}

	uc.stockChanged(ctx, p)
	return p, nil
}

func (uc *productUseCase) IncreaseStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	if err := validDelta(quantity); err != nil {
		return nil, err
	}

	p, err := uc.repos.Products.AdjustStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if p == nil {
		current, err := uc.repos.Products.GetByID(ctx, id)
		if err != nil || current == nil {
			return nil, err
		}
		return nil, apperror.NewValidation("stock for product %d cannot exceed %d: current %d, requested %d",
			id, model.MaxStock, current.TotalStock, quantity)
	}

	uc.stockChanged(ctx, p)
	return p, nil
}

func validDelta(quantity int) error {
	if quantity <= 0 {
		return apperror.NewValidation("quantity must be greater than 0")
	}
	if quantity > model.MaxStock {
		return apperror.NewValidation("quantity must be at most %d", model.MaxStock)
	}
	return nil
}

func (uc *productUseCase) stockChanged(ctx context.Context, p *model.Product) {
	uc.logger.Debug("Stock changed",
		zap.Int64("product_id", p.ID),
		zap.Int("total_stock", p.TotalStock),
		zap.String("stock_state", string(p.StockState)),
	)
	uc.publish(ctx, event.ProductStockChanged, p)
}
