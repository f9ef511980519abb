package brand

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/brand/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateBrand(ctx context.Context, input *dto.CreateBrandInput) (*model.Brand, error)
	GetBrand(ctx context.Context, id int64) (*model.Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (*model.Brand, error)
	ListBrands(ctx context.Context, filters *dto.BrandFilters) ([]model.Brand, error)
	GetPopularBrands(ctx context.Context, limit int) ([]model.Brand, error)
	UpdateBrand(ctx context.Context, id int64, input *dto.UpdateBrandInput) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id int64) (bool, error)
	CountBrands(ctx context.Context, activeOnly bool) (int, error)
}
