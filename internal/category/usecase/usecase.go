package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/slug"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
)

const slugMaxLen = 100

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
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

	if input.ParentID != nil {
		parent, err := uc.repo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewValidation("parent category %d does not exist", *input.ParentID)
		}
	}

	cat := &model.Category{
		Name:        input.Name,
		Slug:        slugValue,
		Description: input.Description,
		ParentID:    input.ParentID,
		IsActive:    true,
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.logger.Info("Category created", zap.Int64("category_id", cat.ID), zap.String("slug", cat.Slug))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *categoryUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return uc.repo.GetBySlug(ctx, slug)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	if f.Search != "" {
		return uc.repo.SearchByName(ctx, f.Search, f.Offset, f.Limit)
	}
	return uc.repo.GetAll(ctx, f.Offset, f.Limit, f.ActiveOnly)
}

func (uc *categoryUseCase) GetRootCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.GetRoots(ctx)
}

func (uc *categoryUseCase) GetChildren(ctx context.Context, parentID int64) ([]model.Category, error) {
	parent, err := uc.repo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NotFound("category %d not found", parentID)
	}
	return uc.repo.GetChildren(ctx, parentID)
}

func (uc *categoryUseCase) GetTree(ctx context.Context) ([]model.Category, error) {
	return uc.repo.GetTree(ctx)
}

// UpdateCategory returns (nil, nil) when the category does not exist.
func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id int64, input *dto.UpdateCategoryInput) (*model.Category, error) {
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
		slugValue, err = slug.Resolve(input.Slug, name, slugMaxLen)
		if err != nil {
			return nil, err
		}
		changes["slug"] = slugValue
	}

	if err := uc.ensureUnique(ctx, name, slugValue, id); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if err := uc.ensureValidParent(ctx, id, *input.ParentID); err != nil {
			return nil, err
		}
		changes["parent_id"] = *input.ParentID
	}
	crud.Set(changes, "description", input.Description)
	crud.Set(changes, "is_active", input.IsActive)

	if err := uc.repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}

	return uc.repo.GetByID(ctx, id)
}

// DeleteCategory refuses while children or products still reference the category.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	children, err := uc.repo.CountChildren(ctx, id)
	if err != nil {
		return false, err
	}
	if children > 0 {
		return false, apperror.NewValidation("cannot delete category with subcategories")
	}

	products, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return false, err
	}
	if products > 0 {
		return false, apperror.NewValidation("cannot delete category with products")
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		uc.logger.Info("Category deleted", zap.Int64("category_id", id))
	}
	return deleted, nil
}

func (uc *categoryUseCase) CountCategories(ctx context.Context, activeOnly bool) (int, error) {
	return uc.repo.Count(ctx, activeOnly)
}

func (uc *categoryUseCase) ensureUnique(ctx context.Context, name, slugValue string, excludeID int64) error {
	ok, err := uc.repo.IsNameUnique(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("category with name %q already exists", name)
	}

	ok, err = uc.repo.IsSlugUnique(ctx, slugValue, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("category with slug %q already exists", slugValue)
	}
	return nil
}

// ensureValidParent rejects missing parents and any parent whose ancestor
// chain reaches id, which covers self-parenting.
func (uc *categoryUseCase) ensureValidParent(ctx context.Context, id, parentID int64) error {
	if parentID == id {
		return apperror.NewValidation("category cannot be its own parent")
	}

	seen := map[int64]bool{id: true}
	current := parentID
	for {
		node, err := uc.repo.GetByID(ctx, current)
		if err != nil {
			return err
		}
		if node == nil {
			if current == parentID {
				return apperror.NewValidation("parent category %d does not exist", parentID)
			}
			return nil
		}
		if node.ParentID == nil {
			return nil
		}
		if seen[*node.ParentID] {
			return apperror.NewValidation("category %d cannot be moved under its own descendant", id)
		}
		seen[current] = true
		current = *node.ParentID
	}
}
