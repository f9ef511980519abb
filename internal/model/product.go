package model

import (
	"math"

	"github.com/shopspring/decimal"
)

type StockState string

const (
	StockAvailable    StockState = "Available"
	StockOutOfStock   StockState = "OutOfStock"
	StockDiscontinued StockState = "Discontinued"
)

func (s StockState) Valid() bool {
	switch s {
	case StockAvailable, StockOutOfStock, StockDiscontinued:
		return true
	}
	return false
}

// MaxStock is the largest quantity the INTEGER stock columns hold.
const MaxStock = math.MaxInt32

// StockStateFor derives the availability from an absolute quantity.
func StockStateFor(quantity int) StockState {
	if quantity <= 0 {
		return StockOutOfStock
	}
	return StockAvailable
}

type Product struct {
	BaseModel
	Title            string           `db:"title" json:"title"`
	Slug             string           `db:"slug" json:"slug"`
	Description      *string          `db:"description" json:"description"`
	ShortDescription *string          `db:"short_description" json:"short_description"`
	SKU              string           `db:"sku" json:"sku"`
	BasePrice        decimal.Decimal  `db:"base_price" json:"base_price"`
	OldPrice         *decimal.Decimal `db:"old_price" json:"old_price"` // Nullable
	StockState       StockState       `db:"stock_state" json:"stock_state"`
	TotalStock       int              `db:"total_stock" json:"total_stock"`
	MinOrderQuantity int              `db:"min_order_quantity" json:"min_order_quantity"`
	MetaTitle        *string          `db:"meta_title" json:"meta_title"`
	MetaDescription  *string          `db:"meta_description" json:"meta_description"`
	CategoryID       int64            `db:"category_id" json:"category_id"`
	BrandID          *int64           `db:"brand_id" json:"brand_id"`
	ShopID           *int64           `db:"shop_id" json:"shop_id"`
	IsActive         bool             `db:"is_active" json:"is_active"`
	IsFeatured       bool             `db:"is_featured" json:"is_featured"`

	// Relations, filled by LoadRelations
	Category *Category        `db:"-" json:"category"`
	Brand    *Brand           `db:"-" json:"brand"`
	Shop     *Shop            `db:"-" json:"shop"`
	Tags     []Tag            `db:"-" json:"tags"`
	Images   []Image          `db:"-" json:"images"`
	Variants []ProductVariant `db:"-" json:"variants"`
}

func (Product) TableName() string { return "products" }

type ProductVariant struct {
	BaseModel
	ProductID     int64           `db:"product_id" json:"product_id"`
	AttributeID   int64           `db:"attribute_id" json:"attribute_id"`
	PriceModifier decimal.Decimal `db:"price_modifier" json:"price_modifier"`
	StockQuantity int             `db:"stock_quantity" json:"stock_quantity"`
	SKUSuffix     *string         `db:"sku_suffix" json:"sku_suffix"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	Attribute     *Attribute      `db:"-" json:"attribute,omitempty"`
}
