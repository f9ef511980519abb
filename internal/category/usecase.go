package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	GetRootCategories(ctx context.Context) ([]model.Category, error)
	GetChildren(ctx context.Context, parentID int64) ([]model.Category, error)
	GetTree(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int64, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
	CountCategories(ctx context.Context, activeOnly bool) (int, error)
}
