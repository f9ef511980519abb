package usecase

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/slug"
	"github.com/fekuna/omnipos-catalog-service/internal/tag"
	"github.com/fekuna/omnipos-catalog-service/internal/tag/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
)

const slugMaxLen = 50

type tagUseCase struct {
	repo   tag.Repository
	logger logger.ZapLogger
}

func NewTagUseCase(repo tag.Repository, log logger.ZapLogger) tag.UseCase {
	return &tagUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *tagUseCase) CreateTag(ctx context.Context, input *dto.CreateTagInput) (*model.Tag, error) {
	if err := validation.Struct(ctx, input); err != nil {
		return nil, err
	}

	slugValue, err := slug.Resolve(input.Slug, input.Name, slugMaxLen)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, input.Name, slugValue, 0); err != nil {
		return nil, err
	}

	t := &model.Tag{Name: input.Name, Slug: slugValue, IsActive: true}
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}

	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *tagUseCase) GetTag(ctx context.Context, id int64) (*model.Tag, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *tagUseCase) GetTagBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	return uc.repo.GetBySlug(ctx, slug)
}

func (uc *tagUseCase) ListTags(ctx context.Context, f *dto.TagFilters) ([]model.Tag, error) {
	if f.Search != "" {
		return uc.repo.SearchByName(ctx, f.Search, f.Offset, f.Limit)
	}
	return uc.repo.GetAll(ctx, f.Offset, f.Limit, f.ActiveOnly)
}

func (uc *tagUseCase) GetPopularTags(ctx context.Context, limit int) ([]model.Tag, error) {
	return uc.repo.GetPopular(ctx, limit)
}

func (uc *tagUseCase) UpdateTag(ctx context.Context, id int64, input *dto.UpdateTagInput) (*model.Tag, error) {
	if err := validation.Struct(ctx, input); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	changes := crud.Changes{}
	name := existing.Name
	if input.Name != nil {
		name = *input.Name
		changes["name"] = name
	}

	slugValue := existing.Slug
	if input.Slug != nil || (input.Name != nil && *input.Name != existing.Name) {
		if slugValue, err = slug.Resolve(input.Slug, name, slugMaxLen); err != nil {
			return nil, err
		}
		changes["slug"] = slugValue
	}

	if err := uc.ensureUnique(ctx, name, slugValue, id); err != nil {
		return nil, err
	}
	crud.Set(changes, "is_active", input.IsActive)

	if err := uc.repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

// DeleteTag removes the tag; product associations cascade.
func (uc *tagUseCase) DeleteTag(ctx context.Context, id int64) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

func (uc *tagUseCase) CountTags(ctx context.Context, activeOnly bool) (int, error) {
	return uc.repo.Count(ctx, activeOnly)
}

func (uc *tagUseCase) ensureUnique(ctx context.Context, name, slugValue string, excludeID int64) error {
	ok, err := uc.repo.IsNameUnique(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("tag with name %q already exists", name)
	}

	ok, err = uc.repo.IsSlugUnique(ctx, slugValue, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("tag with slug %q already exists", slugValue)
	}
	return nil
}
