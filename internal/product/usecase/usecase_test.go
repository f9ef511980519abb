package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	branddto "github.com/fekuna/omnipos-catalog-service/internal/brand/dto"
	branduc "github.com/fekuna/omnipos-catalog-service/internal/brand/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	categorydto "github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	categoryuc "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type published struct {
	key       string
	eventType string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key, eventType string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{key, eventType})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

type fixture struct {
	uc        product.UseCase
	store     *catalogtest.Store
	publisher *recordingPublisher
	category  *model.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := catalogtest.NewStore()
	publisher := &recordingPublisher{}
	repos := Repositories{
		Products:   &catalogtest.ProductRepository{Store: store},
		Categories: &catalogtest.CategoryRepository{Store: store},
		Brands:     &catalogtest.BrandRepository{Store: store},
		Shops:      &catalogtest.ShopRepository{Store: store},
		Tags:       &catalogtest.TagRepository{Store: store},
		Images:     &catalogtest.ImageRepository{Store: store},
		Attributes: &catalogtest.AttributeRepository{Store: store},
	}
	uc := NewProductUseCase(repos, &catalogtest.Transactor{Store: store}, publisher, logger.NewNop())

	cat := &model.Category{Name: "Laptops", Slug: "laptops", IsActive: true}
	store.Categories.Insert(cat)
	return &fixture{uc: uc, store: store, publisher: publisher, category: cat}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

func (f *fixture) input(title, sku string) *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Title:      title,
		SKU:        sku,
		BasePrice:  price("100"),
		TotalStock: 10,
		CategoryID: f.category.ID,
	}
}

func (f *fixture) create(t *testing.T, in *dto.CreateProductInput) *model.Product {
	t.Helper()
	p, err := f.uc.CreateProduct(context.Background(), in)
	require.NoError(t, err)
	return p
}

func TestEndToEndCatalogScenario(t *testing.T) {
	ctx := context.Background()
	store := catalogtest.NewStore()
	categories := categoryuc.NewCategoryUseCase(&catalogtest.CategoryRepository{Store: store}, logger.NewNop())
	brands := branduc.NewBrandUseCase(&catalogtest.BrandRepository{Store: store}, logger.NewNop())
	products := NewProductUseCase(Repositories{
		Products:   &catalogtest.ProductRepository{Store: store},
		Categories: &catalogtest.CategoryRepository{Store: store},
		Brands:     &catalogtest.BrandRepository{Store: store},
		Shops:      &catalogtest.ShopRepository{Store: store},
		Tags:       &catalogtest.TagRepository{Store: store},
		Images:     &catalogtest.ImageRepository{Store: store},
		Attributes: &catalogtest.AttributeRepository{Store: store},
	}, &catalogtest.Transactor{Store: store}, nil, logger.NewNop())

	laptops, err := categories.CreateCategory(ctx, &categorydto.CreateCategoryInput{Name: "Laptops"})
	require.NoError(t, err)
	assert.Equal(t, "laptops", laptops.Slug)
	acme, err := brands.CreateBrand(ctx, &branddto.CreateBrandInput{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "acme", acme.Slug)

	created, err := products.CreateProduct(ctx, &dto.CreateProductInput{
		Title:      "Acme Book",
		SKU:        "AB-1",
		BasePrice:  price("500"),
		CategoryID: laptops.ID,
		BrandID:    &acme.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-book", created.Slug)
	assert.Equal(t, model.StockOutOfStock, created.StockState)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Laptops", created.Category.Name)

	bySlug, err := products.GetProductBySlug(ctx, "acme-book")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	bySKU, err := products.GetProductBySKU(ctx, "AB-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySKU.ID)

	filtered, total, err := products.ListProducts(ctx, &dto.ProductFilters{CategoryID: &laptops.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, created.ID, filtered[0].ID)

	byBrand, err := products.GetProductsByBrand(ctx, acme.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, "Acme", byBrand[0].Brand.Name)
}

func TestCreateProductCompound(t *testing.T) {
	f := newFixture(t)
	in := f.input("Ultra Book 14", "UB-14")
	in.Specifications.SpecImages = []string{"https://img/1.png", "https://img/2.png", "https://img/1.png"}
	in.TagNames = []string{"laptop", " sale ", "laptop"}
	in.Colors = []string{"Silver", "Black"}

	p := f.create(t, in)

	require.Len(t, p.Images, 2)
	assert.Equal(t, "https://img/1.png", p.Images[0].URL)
	assert.True(t, p.Images[0].IsPrimary)
	assert.False(t, p.Images[1].IsPrimary)
	assert.Equal(t, 2, p.Images[1].SortOrder)
	require.NotNil(t, p.Images[0].AltText)
	assert.Equal(t, "Ultra Book 14 - Image 1", *p.Images[0].AltText)

	require.Len(t, p.Tags, 2)
	assert.Equal(t, "laptop", p.Tags[0].Name)
	assert.Equal(t, "sale", p.Tags[1].Name)

	require.Len(t, p.Variants, 2)
	for _, v := range p.Variants {
		assert.Equal(t, 10, v.StockQuantity)
		assert.True(t, v.PriceModifier.IsZero())
		require.NotNil(t, v.Attribute)
		assert.Equal(t, "Color", v.Attribute.AttributeType.Name)
	}
	assert.Equal(t, []string{event.ProductCreated}, f.publisher.types())
}

func TestCreateProductReusesTagsImagesAndColors(t *testing.T) {
	f := newFixture(t)
	first := f.input("Phone A", "PA")
	first.TagNames = []string{"new"}
	first.Specifications.SpecImages = []string{"https://img/shared.png"}
	first.Colors = []string{"Red"}
	second := f.input("Phone B", "PB")
	second.TagNames = []string{"new"}
	second.Specifications.SpecImages = []string{"https://img/shared.png"}
	second.Colors = []string{"Red"}

	a := f.create(t, first)
	b := f.create(t, second)

	assert.Len(t, f.store.Tags.Rows, 1)
	assert.Len(t, f.store.Images.Rows, 1)
	assert.Len(t, f.store.Attributes.Rows, 1)
	assert.Len(t, f.store.AttributeTypes.Rows, 1)
	assert.Len(t, f.store.Variants.Rows, 2)
	assert.Equal(t, a.Tags[0].ID, b.Tags[0].ID)
	assert.Equal(t, a.Images[0].ID, b.Images[0].ID)
}

func TestCreateProductRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.store.Fail["CreateVariant"] = errors.New("variant insert failed")
	in := f.input("Tablet", "TB-1")
	in.TagNames = []string{"tablet"}
	in.Colors = []string{"Blue"}

	_, err := f.uc.CreateProduct(context.Background(), in)

	require.Error(t, err)
	assert.Empty(t, f.store.Products.Rows)
	assert.Empty(t, f.store.Tags.Rows)
	assert.Empty(t, f.publisher.types())
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	f.create(t, f.input("Existing", "SKU-1"))

	cases := map[string]struct {
		mutate func(*dto.CreateProductInput)
		msg    string
	}{
		"duplicate sku": {
			mutate: func(in *dto.CreateProductInput) { in.SKU = "SKU-1" },
			msg:    `product with sku "SKU-1" already exists`,
		},
		"duplicate derived slug": {
			mutate: func(in *dto.CreateProductInput) { in.Title = "existing" },
			msg:    `product with slug "existing" already exists`,
		},
		"old price not above base": {
			mutate: func(in *dto.CreateProductInput) { in.OldPrice = pricePtr("100") },
			msg:    "old_price must be greater than base_price",
		},
		"zero price": {
			mutate: func(in *dto.CreateProductInput) { in.BasePrice = decimal.Zero },
			msg:    "base_price must be greater than 0",
		},
		"unknown category": {
			mutate: func(in *dto.CreateProductInput) { in.CategoryID = 999 },
			msg:    "category 999 does not exist",
		},
		"unknown brand": {
			mutate: func(in *dto.CreateProductInput) { id := int64(5); in.BrandID = &id },
			msg:    "brand 5 does not exist",
		},
		"unknown shop": {
			mutate: func(in *dto.CreateProductInput) { id := int64(6); in.ShopID = &id },
			msg:    "shop 6 does not exist",
		},
		"negative stock": {
			mutate: func(in *dto.CreateProductInput) { in.TotalStock = -1 },
			msg:    "total_stock must be at least 0",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := f.input("Fresh Product", "SKU-NEW")
			tc.mutate(in)

			_, err := f.uc.CreateProduct(context.Background(), in)

			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			assert.Equal(t, tc.msg, apperror.ValidationMessage(err))
		})
	}
	assert.Len(t, f.store.Products.Rows, 1)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	in := f.input("Old Title", "UP-1")
	in.OldPrice = pricePtr("150")
	p := f.create(t, in)
	tag := &model.Tag{Name: "fresh", Slug: "fresh", IsActive: true}
	f.store.Tags.Insert(tag)

	title := "New Title"
	updated, err := f.uc.UpdateProduct(context.Background(), p.ID, &dto.UpdateProductInput{
		Title:  &title,
		TagIDs: []int64{tag.ID, tag.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, "UP-1", updated.SKU)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "fresh", updated.Tags[0].Name)
	assert.Equal(t, []string{event.ProductCreated, event.ProductUpdated}, f.publisher.types())
}

func TestUpdateProductRollsBackWhenTagsFail(t *testing.T) {
	f := newFixture(t)
	p := f.create(t, f.input("Kept Title", "RB-1"))
	f.store.Fail["ReplaceTags"] = errors.New("tag link failed")

	title := "Changed"
	_, err := f.uc.UpdateProduct(context.Background(), p.ID, &dto.UpdateProductInput{
		Title:  &title,
		TagIDs: []int64{},
	})

	require.Error(t, err)
	assert.Equal(t, "Kept Title", f.store.Products.Get(p.ID).Title)
	assert.Equal(t, []string{event.ProductCreated}, f.publisher.types())
}

func TestCreateProductRollsBackWhenImagesFail(t *testing.T) {
	f := newFixture(t)
	f.store.Fail["ReplaceImages"] = errors.New("image link failed")
	in := f.input("Camera", "CM-1")
	in.Specifications.SpecImages = []string{"https://img/camera.png"}

	_, err := f.uc.CreateProduct(context.Background(), in)

	require.Error(t, err)
	assert.Empty(t, f.store.Products.Rows)
	assert.Empty(t, f.store.Images.Rows)
}

func TestUpdateProductChecksMergedPrices(t *testing.T) {
	f := newFixture(t)
	in := f.input("Priced", "PR-1")
	in.OldPrice = pricePtr("150")
	p := f.create(t, in)

	_, err := f.uc.UpdateProduct(context.Background(), p.ID, &dto.UpdateProductInput{BasePrice: pricePtr("200")})

	assert.Equal(t, "old_price must be greater than base_price", apperror.ValidationMessage(err))
}

func TestUpdateProductStockDerivesState(t *testing.T) {
	f := newFixture(t)
	p := f.create(t, f.input("Stocked", "ST-1"))
	zero := 0

	updated, err := f.uc.UpdateProduct(context.Background(), p.ID, &dto.UpdateProductInput{TotalStock: &zero})

	require.NoError(t, err)
	assert.Equal(t, model.StockOutOfStock, updated.StockState)
}

func TestUpdateProductMissing(t *testing.T) {
	f := newFixture(t)
	title := "x"

	p, err := f.uc.UpdateProduct(context.Background(), 404, &dto.UpdateProductInput{Title: &title})

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	in := f.input("Doomed", "DM-1")
	in.Colors = []string{"Red"}
	p := f.create(t, in)

	deleted, err := f.uc.DeleteProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, f.store.Variants.Rows)

	deleted, err = f.uc.DeleteProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteProductWithOrdersFails(t *testing.T) {
	f := newFixture(t)
	p := f.create(t, f.input("Ordered", "OR-1"))
	f.store.OrderItems[p.ID] = 2

	_, err := f.uc.DeleteProduct(context.Background(), p.ID)

	assert.Equal(t, "cannot delete product referenced by orders", apperror.ValidationMessage(err))
	assert.Len(t, f.store.Products.Rows, 1)
}

func TestSoftDeleteHidesFromListings(t *testing.T) {
	f := newFixture(t)
	p := f.create(t, f.input("Hidden", "HD-1"))
	f.create(t, f.input("Shown", "SH-1"))

	ok, err := f.uc.SoftDeleteProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, total, err := f.uc.ListProducts(context.Background(), &dto.ProductFilters{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Shown", list[0].Title)

	active, err := f.uc.CountProducts(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
	all, err := f.uc.CountProducts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, all)
}

func TestListProductsPriceRange(t *testing.T) {
	f := newFixture(t)
	for _, tc := range []struct{ sku, price string }{{"P1", "50"}, {"P2", "100"}, {"P3", "150"}, {"P4", "200"}} {
		in := f.input("Item "+tc.sku, tc.sku)
		in.BasePrice = price(tc.price)
		f.create(t, in)
	}

	list, total, err := f.uc.ListProducts(context.Background(), &dto.ProductFilters{
		MinPrice:  pricePtr("100"),
		MaxPrice:  pricePtr("150"),
		SortBy:    "price",
		SortOrder: "asc",
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "P2", list[0].SKU)
	assert.Equal(t, "P3", list[1].SKU)

	empty, total, err := f.uc.ListProducts(context.Background(), &dto.ProductFilters{
		MinPrice: pricePtr("1000"),
		MaxPrice: pricePtr("2000"),
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, _, err = f.uc.ListProducts(context.Background(), &dto.ProductFilters{
		MinPrice: pricePtr("10"),
		MaxPrice: pricePtr("1"),
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestSearchAndFeatured(t *testing.T) {
	f := newFixture(t)
	in := f.input("Gaming Mouse", "GM-1")
	in.IsFeatured = true
	f.create(t, in)
	f.create(t, f.input("Office Chair", "OC-1"))

	found, err := f.uc.SearchProducts(context.Background(), "mouse", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "GM-1", found[0].SKU)

	featured, err := f.uc.GetFeaturedProducts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Gaming Mouse", featured[0].Title)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	p, err := f.uc.CreateProduct(context.Background(), f.input("Resilient", "RS-1"))

	require.NoError(t, err)
	assert.NotNil(t, p)
}
