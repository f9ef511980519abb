package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/attribute"
	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/image"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/shop"
	"github.com/fekuna/omnipos-catalog-service/internal/slug"
	"github.com/fekuna/omnipos-catalog-service/internal/tag"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
)

const slugMaxLen = 255

// Repositories groups the stores a product operation touches.
type Repositories struct {
	Products   product.Repository
	Categories category.Repository
	Brands     brand.Repository
	Shops      shop.Repository
	Tags       tag.Repository
	Images     image.Repository
	Attributes attribute.Repository
}

type productUseCase struct {
	repos     Repositories
	tx        database.Transactor
	publisher event.Publisher
	logger    logger.ZapLogger
}

func NewProductUseCase(repos Repositories, tx database.Transactor, publisher event.Publisher, log logger.ZapLogger) product.UseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &productUseCase{
		repos:     repos,
		tx:        tx,
		publisher: publisher,
		logger:    log,
	}
}

// CreateProduct inserts the product together with its tags, images and color
// variants in one transaction.
func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validation.Struct(ctx, input); err != nil {
		return nil, err
	}

	slugValue, err := slug.Resolve(input.Slug, input.Title, slugMaxLen)
	if err != nil {
		return nil, err
	}
	if err := validatePrices(input.BasePrice, input.OldPrice); err != nil {
		return nil, err
	}
	if err := uc.ensureReferences(ctx, &input.CategoryID, input.BrandID, input.ShopID); err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, input.SKU, slugValue, 0); err != nil {
		return nil, err
	}

	p := &model.Product{
		Title:            input.Title,
		Slug:             slugValue,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		SKU:              input.SKU,
		BasePrice:        input.BasePrice,
		OldPrice:         input.OldPrice,
		StockState:       input.StockState,
		TotalStock:       input.TotalStock,
		MinOrderQuantity: 1,
		MetaTitle:        input.MetaTitle,
		MetaDescription:  input.MetaDescription,
		CategoryID:       input.CategoryID,
		BrandID:          input.BrandID,
		ShopID:           input.ShopID,
		IsActive:         true,
		IsFeatured:       input.IsFeatured,
	}
	if p.StockState == "" {
		p.StockState = model.StockStateFor(p.TotalStock)
	}
	if input.MinOrderQuantity != nil {
		p.MinOrderQuantity = *input.MinOrderQuantity
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		tagIDs, err := uc.resolveTags(ctx, input.TagIDs, input.TagNames)
		if err != nil {
			return err
		}
		imageIDs, err := uc.resolveImages(ctx, input.ImageIDs, input.Title, input.Specifications.SpecImages)
		if err != nil {
			return err
		}
		if err := uc.repos.Products.CreateWithRelations(ctx, p, tagIDs, imageIDs); err != nil {
			return err
		}
		return uc.createColorVariants(ctx, p, input.Colors)
	})
	if err != nil {
		return nil, err
	}

	created, err := uc.repos.Products.GetByIDWithRelations(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Product created", zap.Int64("product_id", p.ID), zap.String("sku", p.SKU))
	uc.publish(ctx, event.ProductCreated, created)
	return created, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return uc.repos.Products.GetByIDWithRelations(ctx, id)
}

func (uc *productUseCase) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	p, err := uc.repos.Products.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return p, err
	}
	return uc.withRelations(ctx, p)
}

func (uc *productUseCase) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	p, err := uc.repos.Products.GetBySKU(ctx, sku)
	if err != nil || p == nil {
		return p, err
	}
	return uc.withRelations(ctx, p)
}

// ListProducts applies filters and returns the page plus the total match count.
func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.MinPrice != nil && filters.MaxPrice != nil && filters.MinPrice.GreaterThan(*filters.MaxPrice) {
		return nil, 0, apperror.NewValidation("min_price must not exceed max_price")
	}

	products, count, err := uc.repos.Products.Filter(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.repos.Products.LoadRelations(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query string, offset, limit int) ([]model.Product, error) {
	products, err := uc.repos.Products.Search(ctx, query, offset, limit)
	return uc.attach(ctx, products, err)
}

func (uc *productUseCase) GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	products, err := uc.repos.Products.GetFeatured(ctx, limit)
	return uc.attach(ctx, products, err)
}

func (uc *productUseCase) GetProductsByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]model.Product, error) {
	products, err := uc.repos.Products.GetByCategory(ctx, categoryID, offset, limit)
	return uc.attach(ctx, products, err)
}

func (uc *productUseCase) GetProductsByBrand(ctx context.Context, brandID int64, offset, limit int) ([]model.Product, error) {
	products, err := uc.repos.Products.GetByBrand(ctx, brandID, offset, limit)
	return uc.attach(ctx, products, err)
}

// UpdateProduct returns (nil, nil) when the product does not exist. Price
// ordering is checked against the merged old and new values.
func (uc *productUseCase) UpdateProduct(ctx context.Context, id int64, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validation.Struct(ctx, input); err != nil {
		return nil, err
	}

	existing, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	changes := crud.Changes{}
	title := existing.Title
	if input.Title != nil {
		title = *input.Title
		changes["title"] = title
	}

	slugValue := existing.Slug
	if input.Slug != nil || (input.Title != nil && *input.Title != existing.Title) {
		slugValue, err = slug.Resolve(input.Slug, title, slugMaxLen)
		if err != nil {
			return nil, err
		}
		changes["slug"] = slugValue
	}

	sku := existing.SKU
	if input.SKU != nil {
		sku = *input.SKU
		changes["sku"] = sku
	}
	if err := uc.ensureUnique(ctx, sku, slugValue, id); err != nil {
		return nil, err
	}

	basePrice := existing.BasePrice
	if input.BasePrice != nil {
		basePrice = *input.BasePrice
		changes["base_price"] = basePrice
	}
	oldPrice := existing.OldPrice
	if input.OldPrice != nil {
		oldPrice = input.OldPrice
		changes["old_price"] = *input.OldPrice
	}
	if err := validatePrices(basePrice, oldPrice); err != nil {
		return nil, err
	}

	if err := uc.ensureReferences(ctx, input.CategoryID, input.BrandID, input.ShopID); err != nil {
		return nil, err
	}
	crud.Set(changes, "category_id", input.CategoryID)
	crud.Set(changes, "brand_id", input.BrandID)
	crud.Set(changes, "shop_id", input.ShopID)

	crud.Set(changes, "total_stock", input.TotalStock)
	crud.Set(changes, "stock_state", input.StockState)
	if input.TotalStock != nil && input.StockState == nil && existing.StockState != model.StockDiscontinued {
		changes["stock_state"] = model.StockStateFor(*input.TotalStock)
	}

	crud.Set(changes, "description", input.Description)
	crud.Set(changes, "short_description", input.ShortDescription)
	crud.Set(changes, "min_order_quantity", input.MinOrderQuantity)
	crud.Set(changes, "meta_title", input.MetaTitle)
	crud.Set(changes, "meta_description", input.MetaDescription)
	crud.Set(changes, "is_active", input.IsActive)
	crud.Set(changes, "is_featured", input.IsFeatured)

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		return uc.repos.Products.UpdateWithRelations(ctx, id, changes, uniqueIDs(input.TagIDs), uniqueIDs(input.ImageIDs))
	})
	if err != nil {
		return nil, err
	}

	updated, err := uc.repos.Products.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, event.ProductUpdated, updated)
	return updated, nil
}

// DeleteProduct refuses while order items still reference the product.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	existing, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	orders, err := uc.repos.Products.CountOrderItems(ctx, id)
	if err != nil {
		return false, err
	}
	if orders > 0 {
		return false, apperror.NewValidation("cannot delete product referenced by orders")
	}

	deleted, err := uc.repos.Products.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		uc.logger.Info("Product deleted", zap.Int64("product_id", id))
		uc.publish(ctx, event.ProductDeleted, existing)
	}
	return deleted, nil
}

// SoftDeleteProduct hides the product from listings and keeps its row.
func (uc *productUseCase) SoftDeleteProduct(ctx context.Context, id int64) (bool, error) {
	deleted, err := uc.repos.Products.SoftDelete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return true, err
	}
	if p != nil {
		uc.publish(ctx, event.ProductUpdated, p)
	}
	return true, nil
}

func (uc *productUseCase) CountProducts(ctx context.Context, activeOnly bool) (int, error) {
	return uc.repos.Products.Count(ctx, activeOnly)
}

func (uc *productUseCase) withRelations(ctx context.Context, p *model.Product) (*model.Product, error) {
	products := []model.Product{*p}
	if err := uc.repos.Products.LoadRelations(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// attach loads relations for a repository list result.
func (uc *productUseCase) attach(ctx context.Context, products []model.Product, err error) ([]model.Product, error) {
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Products.LoadRelations(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (uc *productUseCase) ensureUnique(ctx context.Context, sku, slugValue string, excludeID int64) error {
	ok, err := uc.repos.Products.IsSKUUnique(ctx, sku, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("product with sku %q already exists", sku)
	}

	ok, err = uc.repos.Products.IsSlugUnique(ctx, slugValue, excludeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewValidation("product with slug %q already exists", slugValue)
	}
	return nil
}

// ensureReferences checks every non-nil foreign key points at an existing row.
func (uc *productUseCase) ensureReferences(ctx context.Context, categoryID, brandID, shopID *int64) error {
	if categoryID != nil {
		c, err := uc.repos.Categories.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NewValidation("category %d does not exist", *categoryID)
		}
	}
	if brandID != nil {
		b, err := uc.repos.Brands.GetByID(ctx, *brandID)
		if err != nil {
			return err
		}
		if b == nil {
			return apperror.NewValidation("brand %d does not exist", *brandID)
		}
	}
	if shopID != nil {
		s, err := uc.repos.Shops.GetByID(ctx, *shopID)
		if err != nil {
			return err
		}
		if s == nil {
			return apperror.NewValidation("shop %d does not exist", *shopID)
		}
	}
	return nil
}

func validatePrices(base decimal.Decimal, old *decimal.Decimal) error {
	if !base.IsPositive() {
		return apperror.NewValidation("base_price must be greater than 0")
	}
	if old == nil {
		return nil
	}
	if !old.IsPositive() {
		return apperror.NewValidation("old_price must be greater than 0")
	}
	if !old.GreaterThan(base) {
		return apperror.NewValidation("old_price must be greater than base_price")
	}
	return nil
}

// uniqueIDs drops duplicates and keeps nil distinct from empty.
func uniqueIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
