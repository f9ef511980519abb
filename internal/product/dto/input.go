package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Specifications struct {
	SpecImages []string `json:"spec_images" validate:"dive,required,max=500"`
}

type CreateProductInput struct {
	Title            string           `json:"title" validate:"required,max=255"`
	Slug             *string          `json:"slug" validate:"omitnil,max=255"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description"`
	SKU              string           `json:"sku" validate:"required,max=50"`
	BasePrice        decimal.Decimal  `json:"base_price"`
	OldPrice         *decimal.Decimal `json:"old_price"`
	StockState       model.StockState `json:"stock_state" validate:"omitempty,oneof=Available OutOfStock Discontinued"`
	TotalStock       int              `json:"total_stock" validate:"gte=0,lte=2147483647"`
	MinOrderQuantity *int             `json:"min_order_quantity" validate:"omitnil,gte=1"`
	MetaTitle        *string          `json:"meta_title" validate:"omitnil,max=255"`
	MetaDescription  *string          `json:"meta_description"`
	CategoryID       int64            `json:"category_id" validate:"required,gt=0"`
	BrandID          *int64           `json:"brand_id" validate:"omitnil,gt=0"`
	ShopID           *int64           `json:"shop_id" validate:"omitnil,gt=0"`
	IsActive         *bool            `json:"is_active"`
	IsFeatured       bool             `json:"is_featured"`

	TagIDs   []int64 `json:"tag_ids"`
	ImageIDs []int64 `json:"image_ids"`

	// Compound creation: images by URL, tags by name, one variant per color.
	Specifications Specifications `json:"specifications"`
	TagNames       []string       `json:"tags_names" validate:"dive,required,max=50"`
	Colors         []string       `json:"colors" validate:"dive,required,max=100"`
}

// UpdateProductInput is a partial update. TagIDs and ImageIDs replace the
// whole association set when non-nil.
type UpdateProductInput struct {
	Title            *string           `json:"title" validate:"omitnil,min=1,max=255"`
	Slug             *string           `json:"slug" validate:"omitnil,max=255"`
	Description      *string           `json:"description"`
	ShortDescription *string           `json:"short_description"`
	SKU              *string           `json:"sku" validate:"omitnil,min=1,max=50"`
	BasePrice        *decimal.Decimal  `json:"base_price"`
	OldPrice         *decimal.Decimal  `json:"old_price"`
	StockState       *model.StockState `json:"stock_state" validate:"omitnil,oneof=Available OutOfStock Discontinued"`
	TotalStock       *int              `json:"total_stock" validate:"omitnil,gte=0,lte=2147483647"`
	MinOrderQuantity *int              `json:"min_order_quantity" validate:"omitnil,gte=1"`
	MetaTitle        *string           `json:"meta_title" validate:"omitnil,max=255"`
	MetaDescription  *string           `json:"meta_description"`
	CategoryID       *int64            `json:"category_id" validate:"omitnil,gt=0"`
	BrandID          *int64            `json:"brand_id" validate:"omitnil,gt=0"`
	ShopID           *int64            `json:"shop_id" validate:"omitnil,gt=0"`
	IsActive         *bool             `json:"is_active"`
	IsFeatured       *bool             `json:"is_featured"`

	TagIDs   []int64 `json:"tag_ids"`
	ImageIDs []int64 `json:"image_ids"`
}

type StockChangeInput struct {
	Quantity int `json:"quantity" validate:"gt=0,lte=2147483647"`
}
