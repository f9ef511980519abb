package catalogtest

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type ProductRepository struct {
	Store *Store
}

func (r *ProductRepository) Create(_ context.Context, p *model.Product) error {
	if err := r.Store.fail("CreateProduct"); err != nil {
		return err
	}
	if r.Store.Products.Find(func(x *model.Product) bool { return x.SKU == p.SKU || x.Slug == p.Slug }) != nil {
		return apperror.NewValidation("products_sku_key already exists")
	}
	r.Store.Products.Insert(p)
	return nil
}

func (r *ProductRepository) CreateWithRelations(ctx context.Context, p *model.Product, tagIDs, imageIDs []int64) error {
	if err := r.Create(ctx, p); err != nil {
		return err
	}
	if tagIDs != nil {
		if err := r.ReplaceTags(ctx, p.ID, tagIDs); err != nil {
			return err
		}
	}
	if imageIDs != nil {
		return r.ReplaceImages(ctx, p.ID, imageIDs)
	}
	return nil
}

func (r *ProductRepository) CreateVariant(_ context.Context, v *model.ProductVariant) error {
	if err := r.Store.fail("CreateVariant"); err != nil {
		return err
	}
	r.Store.Variants.Insert(v)
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*model.Product, error) {
	return r.Store.Products.Get(id), nil
}

func (r *ProductRepository) GetByIDWithRelations(ctx context.Context, id int64) (*model.Product, error) {
	p := r.Store.Products.Get(id)
	if p == nil {
		return nil, nil
	}
	products := []model.Product{*p}
	if err := r.LoadRelations(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *ProductRepository) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	return r.Store.Products.Find(func(p *model.Product) bool { return p.Slug == slug }), nil
}

func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*model.Product, error) {
	return r.Store.Products.Find(func(p *model.Product) bool { return p.SKU == sku }), nil
}

func (r *ProductRepository) GetAll(_ context.Context, offset, limit int, activeOnly bool) ([]model.Product, error) {
	rows := r.Store.Products.All(func(p *model.Product) bool { return !activeOnly || p.IsActive })
	return paginate(rows, offset, limit), nil
}

func (r *ProductRepository) Count(_ context.Context, activeOnly bool) (int, error) {
	return len(r.Store.Products.All(func(p *model.Product) bool { return !activeOnly || p.IsActive })), nil
}

func (r *ProductRepository) GetByCategory(_ context.Context, categoryID int64, offset, limit int) ([]model.Product, error) {
	rows := r.newestFirst(func(p *model.Product) bool { return p.IsActive && p.CategoryID == categoryID })
	return paginate(rows, offset, limit), nil
}

func (r *ProductRepository) GetByBrand(_ context.Context, brandID int64, offset, limit int) ([]model.Product, error) {
	rows := r.newestFirst(func(p *model.Product) bool { return p.IsActive && p.BrandID != nil && *p.BrandID == brandID })
	return paginate(rows, offset, limit), nil
}

func (r *ProductRepository) GetFeatured(_ context.Context, limit int) ([]model.Product, error) {
	rows := r.newestFirst(func(p *model.Product) bool { return p.IsActive && p.IsFeatured })
	return paginate(rows, 0, limit), nil
}

func (r *ProductRepository) Search(_ context.Context, q string, offset, limit int) ([]model.Product, error) {
	rows := r.newestFirst(func(p *model.Product) bool { return p.IsActive && matches(p, q) })
	return paginate(rows, offset, limit), nil
}

func (r *ProductRepository) Filter(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	rows := r.Store.Products.All(func(p *model.Product) bool {
		switch {
		case !p.IsActive:
			return false
		case f.CategoryID != nil && p.CategoryID != *f.CategoryID:
			return false
		case f.BrandID != nil && (p.BrandID == nil || *p.BrandID != *f.BrandID):
			return false
		case f.MinPrice != nil && p.BasePrice.LessThan(*f.MinPrice):
			return false
		case f.MaxPrice != nil && p.BasePrice.GreaterThan(*f.MaxPrice):
			return false
		case f.InStock && p.TotalStock <= 0:
			return false
		case f.StockState != nil && p.StockState != *f.StockState:
			return false
		case f.Featured != nil && p.IsFeatured != *f.Featured:
			return false
		case f.Search != "" && !matches(p, f.Search):
			return false
		}
		return true
	})
	sortProducts(rows, f.SortBy, f.SortOrder)
	return paginate(rows, f.Offset, f.Limit), len(rows), nil
}

func (r *ProductRepository) LoadRelations(_ context.Context, products []model.Product) error {
	s := r.Store
	for i := range products {
		p := &products[i]
		p.Category = s.Categories.Get(p.CategoryID)
		if p.BrandID != nil {
			p.Brand = s.Brands.Get(*p.BrandID)
		}
		if p.ShopID != nil {
			p.Shop = s.Shops.Get(*p.ShopID)
		}

		p.Tags = []model.Tag{}
		for _, id := range s.ProductTags[p.ID] {
			if t := s.Tags.Get(id); t != nil {
				p.Tags = append(p.Tags, *t)
			}
		}
		sort.SliceStable(p.Tags, func(a, b int) bool { return p.Tags[a].Name < p.Tags[b].Name })

		p.Images = []model.Image{}
		for _, id := range s.ProductImages[p.ID] {
			if img := s.Images.Get(id); img != nil {
				p.Images = append(p.Images, *img)
			}
		}
		sort.SliceStable(p.Images, func(a, b int) bool {
			if p.Images[a].SortOrder != p.Images[b].SortOrder {
				return p.Images[a].SortOrder < p.Images[b].SortOrder
			}
			return p.Images[a].ID < p.Images[b].ID
		})

		p.Variants = s.Variants.All(func(v *model.ProductVariant) bool { return v.ProductID == p.ID })
		for j := range p.Variants {
			v := &p.Variants[j]
			v.Attribute = s.Attributes.Get(v.AttributeID)
			if v.Attribute != nil {
				v.Attribute.AttributeType = s.AttributeTypes.Get(v.Attribute.AttributeTypeID)
			}
		}
	}
	return nil
}

func (r *ProductRepository) Update(_ context.Context, id int64, changes crud.Changes) error {
	if err := r.Store.fail("UpdateProduct"); err != nil {
		return err
	}
	return r.Store.Products.Update(id, changes)
}

func (r *ProductRepository) UpdateWithRelations(ctx context.Context, id int64, changes crud.Changes, tagIDs, imageIDs []int64) error {
	if err := r.Update(ctx, id, changes); err != nil {
		return err
	}
	if tagIDs != nil {
		if err := r.ReplaceTags(ctx, id, tagIDs); err != nil {
			return err
		}
	}
	if imageIDs != nil {
		return r.ReplaceImages(ctx, id, imageIDs)
	}
	return nil
}

// ReplaceTags links only ids that exist, like the INSERT ... SELECT it stands in for.
func (r *ProductRepository) ReplaceTags(_ context.Context, productID int64, tagIDs []int64) error {
	if err := r.Store.fail("ReplaceTags"); err != nil {
		return err
	}
	var ids []int64
	for _, id := range tagIDs {
		if r.Store.Tags.Get(id) != nil {
			ids = append(ids, id)
		}
	}
	r.Store.ProductTags[productID] = ids
	return nil
}

func (r *ProductRepository) ReplaceImages(_ context.Context, productID int64, imageIDs []int64) error {
	if err := r.Store.fail("ReplaceImages"); err != nil {
		return err
	}
	var ids []int64
	for _, id := range imageIDs {
		if r.Store.Images.Get(id) != nil {
			ids = append(ids, id)
		}
	}
	r.Store.ProductImages[productID] = ids
	return nil
}

func (r *ProductRepository) SetStock(_ context.Context, id int64, quantity int, state model.StockState) (bool, error) {
	p := r.Store.Products.Get(id)
	if p == nil {
		return false, nil
	}
	return true, r.Store.Products.Update(id, crud.Changes{"total_stock": quantity, "stock_state": state})
}

func (r *ProductRepository) AdjustStock(_ context.Context, id int64, delta int) (*model.Product, error) {
	p := r.Store.Products.Get(id)
	if p == nil || p.TotalStock+delta < 0 || p.TotalStock+delta > model.MaxStock {
		return nil, nil
	}
	total := p.TotalStock + delta
	err := r.Store.Products.Update(id, crud.Changes{"total_stock": total, "stock_state": model.StockStateFor(total)})
	if err != nil {
		return nil, err
	}
	return r.Store.Products.Get(id), nil
}

// Delete cascades to variants and association rows.
func (r *ProductRepository) Delete(_ context.Context, id int64) (bool, error) {
	if !r.Store.Products.Delete(id) {
		return false, nil
	}
	for _, v := range r.Store.Variants.All(func(v *model.ProductVariant) bool { return v.ProductID == id }) {
		r.Store.Variants.Delete(v.ID)
	}
	delete(r.Store.ProductTags, id)
	delete(r.Store.ProductImages, id)
	return true, nil
}

func (r *ProductRepository) SoftDelete(_ context.Context, id int64) (bool, error) {
	if r.Store.Products.Get(id) == nil {
		return false, nil
	}
	return true, r.Store.Products.Update(id, crud.Changes{"is_active": false})
}

func (r *ProductRepository) CountOrderItems(_ context.Context, productID int64) (int, error) {
	return r.Store.OrderItems[productID], nil
}

func (r *ProductRepository) IsSKUUnique(_ context.Context, sku string, excludeID int64) (bool, error) {
	return r.Store.Products.Find(func(p *model.Product) bool { return p.SKU == sku && p.ID != excludeID }) == nil, nil
}

func (r *ProductRepository) IsSlugUnique(_ context.Context, slug string, excludeID int64) (bool, error) {
	return r.Store.Products.Find(func(p *model.Product) bool { return p.Slug == slug && p.ID != excludeID }) == nil, nil
}

func (r *ProductRepository) newestFirst(keep func(*model.Product) bool) []model.Product {
	rows := r.Store.Products.All(keep)
	sortProducts(rows, "", "")
	return rows
}

func matches(p *model.Product, q string) bool {
	if containsFold(p.Title, q) || containsFold(p.SKU, q) {
		return true
	}
	return p.Description != nil && containsFold(*p.Description, q)
}

// sortProducts mirrors the repository ordering: known columns with id as a
// tiebreaker, newest first otherwise. Ids stand in for creation time.
func sortProducts(rows []model.Product, sortBy, order string) {
	desc := !strings.EqualFold(order, "asc")
	var cmp func(a, b *model.Product) int
	switch sortBy {
	case "title":
		cmp = func(a, b *model.Product) int { return strings.Compare(a.Title, b.Title) }
	case "base_price", "price":
		cmp = func(a, b *model.Product) int { return a.BasePrice.Cmp(b.BasePrice) }
	case "total_stock":
		cmp = func(a, b *model.Product) int { return a.TotalStock - b.TotalStock }
	case "id", "created_at", "updated_at":
		cmp = func(a, b *model.Product) int { return 0 }
	default:
		desc = true
		cmp = func(a, b *model.Product) int { return 0 }
	}

	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp(&rows[i], &rows[j])
		if c == 0 {
			c = int(rows[i].ID - rows[j].ID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

type ImageRepository struct {
	Store *Store
}

func (r *ImageRepository) GetByURL(_ context.Context, url string) (*model.Image, error) {
	return r.Store.Images.Find(func(img *model.Image) bool { return img.URL == url }), nil
}

func (r *ImageRepository) Upsert(_ context.Context, img *model.Image) error {
	if existing := r.Store.Images.Find(func(x *model.Image) bool { return x.URL == img.URL }); existing != nil {
		*img = *existing
		return nil
	}
	r.Store.Images.Insert(img)
	return nil
}

type AttributeRepository struct {
	Store *Store
}

func (r *AttributeRepository) EnsureType(_ context.Context, t *model.AttributeType) error {
	if existing := r.Store.AttributeTypes.Find(func(x *model.AttributeType) bool { return x.Name == t.Name }); existing != nil {
		*t = *existing
		return nil
	}
	r.Store.AttributeTypes.Insert(t)
	return nil
}

func (r *AttributeRepository) UpsertValue(_ context.Context, a *model.Attribute) error {
	existing := r.Store.Attributes.Find(func(x *model.Attribute) bool {
		return x.AttributeTypeID == a.AttributeTypeID && x.Value == a.Value
	})
	if existing != nil {
		*a = *existing
		return nil
	}
	r.Store.Attributes.Insert(a)
	return nil
}
