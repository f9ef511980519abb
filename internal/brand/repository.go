package brand

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, brand *model.Brand) error
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*model.Brand, error)
	GetByName(ctx context.Context, name string) (*model.Brand, error)
	GetAll(ctx context.Context, offset, limit int, activeOnly bool) ([]model.Brand, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
	SearchByName(ctx context.Context, name string, offset, limit int) ([]model.Brand, error)
	GetPopular(ctx context.Context, limit int) ([]model.Brand, error)
	Update(ctx context.Context, id int64, changes crud.Changes) error
	Delete(ctx context.Context, id int64) (bool, error)
	IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error)
	IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error)
	CountProducts(ctx context.Context, id int64) (int, error)
}
