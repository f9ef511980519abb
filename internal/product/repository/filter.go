package repository

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

// Whitelisted sort columns. "price" is accepted as an alias of base_price.
var sortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"base_price":  "base_price",
	"price":       "base_price",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
	"total_stock": "total_stock",
}

// BuildFilter renders the conjunctive WHERE clause for a product listing.
// Inactive products are always excluded.
func BuildFilter(f *dto.ProductFilters) (string, map[string]interface{}) {
	conditions := []string{"is_active = TRUE"}
	args := map[string]interface{}{}

	if f.CategoryID != nil {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = *f.CategoryID
	}
	if f.BrandID != nil {
		conditions = append(conditions, "brand_id = :brand_id")
		args["brand_id"] = *f.BrandID
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "base_price >= :min_price")
		args["min_price"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "base_price <= :max_price")
		args["max_price"] = *f.MaxPrice
	}
	if f.InStock {
		conditions = append(conditions, "total_stock > 0")
	}
	if f.StockState != nil {
		conditions = append(conditions, "stock_state = :stock_state")
		args["stock_state"] = string(*f.StockState)
	}
	if f.Featured != nil {
		conditions = append(conditions, "is_featured = :is_featured")
		args["is_featured"] = *f.Featured
	}
	if f.Search != "" {
		conditions = append(conditions, "(title ILIKE :search OR description ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// OrderBy falls back to newest first for unknown sort fields.
func OrderBy(f *dto.ProductFilters) string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		return defaultOrder
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir + ", id " + dir
}
