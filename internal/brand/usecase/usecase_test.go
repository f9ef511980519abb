package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/brand/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func newUseCase() (brand.UseCase, *catalogtest.Store) {
	store := catalogtest.NewStore()
	return NewBrandUseCase(&catalogtest.BrandRepository{Store: store}, logger.NewNop()), store
}

func create(t *testing.T, uc brand.UseCase, name string) *model.Brand {
	t.Helper()
	b, err := uc.CreateBrand(context.Background(), &dto.CreateBrandInput{Name: name})
	require.NoError(t, err)
	return b
}

func TestCreateBrand(t *testing.T) {
	uc, _ := newUseCase()

	b := create(t, uc, "Acme Corp")
	assert.Equal(t, "acme-corp", b.Slug)

	_, err := uc.CreateBrand(context.Background(), &dto.CreateBrandInput{Name: "Acme Corp"})
	assert.Equal(t, `brand with name "Acme Corp" already exists`, apperror.ValidationMessage(err))

	bad := "Not A Slug"
	_, err = uc.CreateBrand(context.Background(), &dto.CreateBrandInput{Name: "Other", Slug: &bad})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateBrandPartial(t *testing.T) {
	uc, _ := newUseCase()
	b := create(t, uc, "Acme")
	logo := "https://cdn.example.com/acme.png"

	updated, err := uc.UpdateBrand(context.Background(), b.ID, &dto.UpdateBrandInput{LogoURL: &logo})

	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "acme", updated.Slug)
	require.NotNil(t, updated.LogoURL)
	assert.Equal(t, logo, *updated.LogoURL)
}

func TestDeleteBrandWithProductsFails(t *testing.T) {
	uc, store := newUseCase()
	b := create(t, uc, "Acme")
	store.Products.Insert(&model.Product{Title: "Laptop", SKU: "L1", Slug: "laptop", BrandID: &b.ID, IsActive: true})

	_, err := uc.DeleteBrand(context.Background(), b.ID)
	assert.Equal(t, "cannot delete brand with products", apperror.ValidationMessage(err))

	other := create(t, uc, "Globex")
	deleted, err := uc.DeleteBrand(context.Background(), other.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestPopularBrandsRankByActiveProducts(t *testing.T) {
	uc, store := newUseCase()
	acme := create(t, uc, "Acme")
	globex := create(t, uc, "Globex")
	create(t, uc, "Initech")
	for i, id := range []int64{globex.ID, globex.ID, acme.ID} {
		brandID := id
		store.Products.Insert(&model.Product{SKU: string(rune('a' + i)), BrandID: &brandID, IsActive: true})
	}

	popular, err := uc.GetPopularBrands(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, "Globex", popular[0].Name)
	assert.Equal(t, "Acme", popular[1].Name)
}
