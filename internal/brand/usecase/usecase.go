package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/brand/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/slug"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
)

const slugMaxLen = 100

type brandUseCase struct {
	repo   brand.Repository
	logger logger.ZapLogger
}

func NewBrandUseCase(repo brand.Repository, log logger.ZapLogger) brand.UseCase {
	return &brandUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *brandUseCase) CreateBrand(ctx context.Context, input *dto.CreateBrandInput) (*model.Brand, error) {
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

	b := &model.Brand{
		Name:        input.Name,
		Slug:        slugValue,
		LogoURL:     input.LogoURL,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		b.IsActive = *input.IsActive
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	uc.logger.Info("Brand created", zap.Int64("brand_id", b.ID), zap.String("slug", b.Slug))
	return b, nil
}

func (uc *brandUseCase) GetBrand(ctx context.Context, id int64) (*model.Brand, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *brandUseCase) GetBrandBySlug(ctx context.Context, slug string) (*model.Brand, error) {
	return uc.repo.GetBySlug(ctx, slug)
}

func (uc *brandUseCase) ListBrands(ctx context.Context, f *dto.BrandFilters) ([]model.Brand, error) {
	if f.Search != "" {
		return uc.repo.SearchByName(ctx, f.Search, f.Offset, f.Limit)
	}
	return uc.repo.GetAll(ctx, f.Offset, f.Limit, f.ActiveOnly)
}

func (uc *brandUseCase) GetPopularBrands(ctx context.Context, limit int) ([]model.Brand, error) {
	return uc.repo.GetPopular(ctx, limit)
}

func (uc *brandUseCase) UpdateBrand(ctx context.Context, id int64, input *dto.UpdateBrandInput) (*model.Brand, error) {
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

	crud.Set(changes, "logo_url", input.LogoURL)
	crud.Set(changes, "description", input.Description)
	crud.Set(changes, "is_active", input.IsActive)

	if err := uc.repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

// DeleteBrand refuses while any product references the brand.
func (uc *brandUseCase) DeleteBrand(ctx context.Context, id int64) (bool, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	products, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return false, err
	}
	if products > 0 {
		return false, apperror.NewValidation("cannot delete brand with products")
	}

	return uc.repo.Delete(ctx, id)
}

func (uc *brandUseCase) CountBrands(ctx context.Context, activeOnly bool) (int, error) {
	return uc.repo.Count(ctx, activeOnly)
}

func (uc *brandUseCase) ensureUnique(ctx context.Context, name, slugValue string, excludeID int64) error {
	ok, err := uc.repo.IsNameUnique(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("brand with name %q already exists", name)
	}

	ok, err = uc.repo.IsSlugUnique(ctx, slugValue, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("brand with slug %q already exists", slugValue)
	}
	return nil
}
