package usecase

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func newUseCase() (category.UseCase, *catalogtest.Store) {
	store := catalogtest.NewStore()
	return NewCategoryUseCase(&catalogtest.CategoryRepository{Store: store}, logger.NewNop()), store
}

func ptr[T any](v T) *T { return &v }

func mustCreate(t *testing.T, uc category.UseCase, input dto.CreateCategoryInput) *model.Category {
	t.Helper()
	c, err := uc.CreateCategory(context.Background(), &input)
	require.NoError(t, err)
	return c
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	uc, _ := newUseCase()

	c := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Home Appliances"})

	assert.Equal(t, "home-appliances", c.Slug)
	assert.True(t, c.IsActive)
	assert.NotZero(t, c.ID)
}

func TestCreateCategoryRejectsDuplicateDerivedSlug(t *testing.T) {
	uc, _ := newUseCase()
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Laptops"})

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "laptops", Slug: nil})

	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "Phones", ParentID: ptr(int64(42))})

	require.Error(t, err)
	assert.Equal(t, "parent category 42 does not exist", apperror.ValidationMessage(err))
}

func TestCreateCategoryValidatesInput(t *testing.T) {
	uc, store := newUseCase()

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: ""})

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, store.Categories.Rows)
}

func TestUpdateCategoryRegeneratesSlugOnRename(t *testing.T) {
	uc, _ := newUseCase()
	c := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Laptops"})

	updated, err := uc.UpdateCategory(context.Background(), c.ID, &dto.UpdateCategoryInput{Name: ptr("Gaming Laptops")})

	require.NoError(t, err)
	assert.Equal(t, "gaming-laptops", updated.Slug)
	assert.Equal(t, "Gaming Laptops", updated.Name)
}

func TestUpdateCategoryMissingReturnsNil(t *testing.T) {
	uc, _ := newUseCase()

	updated, err := uc.UpdateCategory(context.Background(), 99, &dto.UpdateCategoryInput{Name: ptr("x")})

	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateCategoryRejectsCycles(t *testing.T) {
	uc, _ := newUseCase()
	root := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Electronics"})
	child := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Computers", ParentID: &root.ID})

	_, err := uc.UpdateCategory(context.Background(), root.ID, &dto.UpdateCategoryInput{ParentID: &root.ID})
	assert.Equal(t, "category cannot be its own parent", apperror.ValidationMessage(err))

	_, err = uc.UpdateCategory(context.Background(), root.ID, &dto.UpdateCategoryInput{ParentID: &child.ID})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateCategoryKeepsOwnNameUnique(t *testing.T) {
	uc, _ := newUseCase()
	c := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Laptops"})
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Phones"})

	_, err := uc.UpdateCategory(context.Background(), c.ID, &dto.UpdateCategoryInput{Name: ptr("Laptops")})
	require.NoError(t, err)

	_, err = uc.UpdateCategory(context.Background(), c.ID, &dto.UpdateCategoryInput{Name: ptr("Phones")})
	assert.True(t, apperror.IsValidation(err))
}

func TestDeleteCategoryGuards(t *testing.T) {
	uc, store := newUseCase()
	root := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Electronics"})
	child := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Computers", ParentID: &root.ID})
	store.Products.Insert(&model.Product{Title: "Laptop", SKU: "L1", Slug: "laptop", CategoryID: child.ID})

	_, err := uc.DeleteCategory(context.Background(), root.ID)
	assert.Equal(t, "cannot delete category with subcategories", apperror.ValidationMessage(err))

	_, err = uc.DeleteCategory(context.Background(), child.ID)
	assert.Equal(t, "cannot delete category with products", apperror.ValidationMessage(err))

	got, err := uc.GetCategory(context.Background(), root.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	deleted, err := uc.DeleteCategory(context.Background(), 1234)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetTreeAndChildren(t *testing.T) {
	uc, _ := newUseCase()
	root := mustCreate(t, uc, dto.CreateCategoryInput{Name: "Electronics"})
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Phones", ParentID: &root.ID})
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Computers", ParentID: &root.ID})
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Archived", ParentID: &root.ID, IsActive: ptr(false)})

	tree, err := uc.GetTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Computers", tree[0].Children[0].Name)

	_, err = uc.GetChildren(context.Background(), 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetTreePropagatesChildrenError(t *testing.T) {
	uc, store := newUseCase()
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Electronics"})
	store.Fail["GetChildren"] = errors.New("children query failed")

	tree, err := uc.GetTree(context.Background())

	assert.EqualError(t, err, "children query failed")
	assert.Nil(t, tree)
}

func TestListCategoriesActiveOnlyByDefault(t *testing.T) {
	uc, _ := newUseCase()
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Visible"})
	mustCreate(t, uc, dto.CreateCategoryInput{Name: "Hidden", IsActive: ptr(false)})

	active, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{ActiveOnly: true, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{Search: "vis", Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Visible", found[0].Name)
}
