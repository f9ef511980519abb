package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	// CreateWithRelations inserts the product and, for each non-nil id list,
	// its tag and image associations.
	CreateWithRelations(ctx context.Context, product *model.Product, tagIDs, imageIDs []int64) error
	CreateVariant(ctx context.Context, variant *model.ProductVariant) error

	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
	GetAll(ctx context.Context, offset, limit int, activeOnly bool) ([]model.Product, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
	GetByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]model.Product, error)
	GetByBrand(ctx context.Context, brandID int64, offset, limit int) ([]model.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]model.Product, error)
	Search(ctx context.Context, query string, offset, limit int) ([]model.Product, error)
	Filter(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// LoadRelations fills category, brand, shop, tags, images and variants
	// for the whole slice using one query per relation kind.
	LoadRelations(ctx context.Context, products []model.Product) error

	Update(ctx context.Context, id int64, changes crud.Changes) error
	// UpdateWithRelations writes changes and replaces the tag/image sets whose
	// id list is non-nil.
	UpdateWithRelations(ctx context.Context, id int64, changes crud.Changes, tagIDs, imageIDs []int64) error
	ReplaceTags(ctx context.Context, productID int64, tagIDs []int64) error
	ReplaceImages(ctx context.Context, productID int64, imageIDs []int64) error

	// SetStock writes an absolute quantity and reports whether the product exists.
	SetStock(ctx context.Context, id int64, quantity int, state model.StockState) (bool, error)
	// AdjustStock adds delta atomically. It returns nil when the product is
	// missing or the result would be negative.
	AdjustStock(ctx context.Context, id int64, delta int) (*model.Product, error)

	Delete(ctx context.Context, id int64) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	CountOrderItems(ctx context.Context, productID int64) (int, error)

	IsSKUUnique(ctx context.Context, sku string, excludeID int64) (bool, error)
	IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error)
}
