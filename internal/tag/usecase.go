package tag

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/tag/dto"
)

type UseCase interface {
	CreateTag(ctx context.Context, input *dto.CreateTagInput) (*model.Tag, error)
	GetTag(ctx context.Context, id int64) (*model.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*model.Tag, error)
	ListTags(ctx context.Context, filters *dto.TagFilters) ([]model.Tag, error)
	GetPopularTags(ctx context.Context, limit int) ([]model.Tag, error)
	UpdateTag(ctx context.Context, id int64, input *dto.UpdateTagInput) (*model.Tag, error)
	DeleteTag(ctx context.Context, id int64) (bool, error)
	CountTags(ctx context.Context, activeOnly bool) (int, error)
}
