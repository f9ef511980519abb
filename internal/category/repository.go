package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	GetAll(ctx context.Context, offset, limit int, activeOnly bool) ([]model.Category, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
	SearchByName(ctx context.Context, name string, offset, limit int) ([]model.Category, error)
	GetRoots(ctx context.Context) ([]model.Category, error)
	GetChildren(ctx context.Context, parentID int64) ([]model.Category, error)
	GetTree(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id int64, changes crud.Changes) error
	Delete(ctx context.Context, id int64) (bool, error)
	IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error)
	IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error)
	CountChildren(ctx context.Context, id int64) (int, error)
	CountProducts(ctx context.Context, id int64) (int, error)
}
