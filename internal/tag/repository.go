package tag

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, tag *model.Tag) error
	// Upsert inserts the tag or loads the existing row with the same name into it.
	Upsert(ctx context.Context, tag *model.Tag) error
	GetByID(ctx context.Context, id int64) (*model.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*model.Tag, error)
	GetByName(ctx context.Context, name string) (*model.Tag, error)
	GetAll(ctx context.Context, offset, limit int, activeOnly bool) ([]model.Tag, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
	SearchByName(ctx context.Context, name string, offset, limit int) ([]model.Tag, error)
	GetPopular(ctx context.Context, limit int) ([]model.Tag, error)
	Update(ctx context.Context, id int64, changes crud.Changes) error
	Delete(ctx context.Context, id int64) (bool, error)
	IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error)
	IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error)
}
