package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type ProductFilters struct {
	CategoryID *int64
	BrandID    *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    bool
	StockState *model.StockState
	Featured   *bool
	Search     string // title, description or sku
	SortBy     string // id, title, base_price, created_at, updated_at, total_stock
	SortOrder  string // asc, desc
	Offset     int
	Limit      int
}

type StockResponse struct {
	ID         int64            `json:"id"`
	SKU        string           `json:"sku"`
	TotalStock int              `json:"total_stock"`
	StockState model.StockState `json:"stock_state"`
}

func NewStockResponse(p *model.Product) StockResponse {
	return StockResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		TotalStock: p.TotalStock,
		StockState: p.StockState,
	}
}
