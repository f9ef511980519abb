package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	SearchProducts(ctx context.Context, query string, offset, limit int) ([]model.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]model.Product, error)
	GetProductsByBrand(ctx context.Context, brandID int64, offset, limit int) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id int64, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	SoftDeleteProduct(ctx context.Context, id int64) (bool, error)
	CountProducts(ctx context.Context, activeOnly bool) (int, error)

	// Stock ops
	UpdateStock(ctx context.Context, id int64, quantity int) (*model.Product, error)
	DecreaseStock(ctx context.Context, id int64, quantity int) (*model.Product, error)
	IncreaseStock(ctx context.Context, id int64, quantity int) (*model.Product, error)
}
