package catalogtest

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type CategoryRepository struct {
	Store *Store
}

func (r *CategoryRepository) Create(_ context.Context, c *model.Category) error {
	if err := r.Store.fail("CreateCategory"); err != nil {
		return err
	}
	if r.Store.Categories.Find(func(x *model.Category) bool { return x.Name == c.Name || x.Slug == c.Slug }) != nil {
		return apperror.NewValidation("categories_name_key already exists")
	}
	r.Store.Categories.Insert(c)
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*model.Category, error) {
	return r.Store.Categories.Get(id), nil
}

func (r *CategoryRepository) GetBySlug(_ context.Context, slug string) (*model.Category, error) {
	return r.Store.Categories.Find(func(c *model.Category) bool { return c.Slug == slug }), nil
}

func (r *CategoryRepository) GetByName(_ context.Context, name string) (*model.Category, error) {
	return r.Store.Categories.Find(func(c *model.Category) bool { return c.Name == name }), nil
}

func (r *CategoryRepository) GetAll(_ context.Context, offset, limit int, activeOnly bool) ([]model.Category, error) {
	rows := r.Store.Categories.All(func(c *model.Category) bool { return !activeOnly || c.IsActive })
	return paginate(rows, offset, limit), nil
}

func (r *CategoryRepository) Count(_ context.Context, activeOnly bool) (int, error) {
	return len(r.Store.Categories.All(func(c *model.Category) bool { return !activeOnly || c.IsActive })), nil
}

func (r *CategoryRepository) SearchByName(_ context.Context, name string, offset, limit int) ([]model.Category, error) {
	rows := r.Store.Categories.All(func(c *model.Category) bool { return c.IsActive && containsFold(c.Name, name) })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return paginate(rows, offset, limit), nil
}

func (r *CategoryRepository) GetRoots(context.Context) ([]model.Category, error) {
	rows := r.Store.Categories.All(func(c *model.Category) bool { return c.IsActive && c.ParentID == nil })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (r *CategoryRepository) GetChildren(_ context.Context, parentID int64) ([]model.Category, error) {
	if err := r.Store.fail("GetChildren"); err != nil {
		return nil, err
	}
	rows := r.Store.Categories.All(func(c *model.Category) bool {
		return c.IsActive && c.ParentID != nil && *c.ParentID == parentID
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (r *CategoryRepository) GetTree(ctx context.Context) ([]model.Category, error) {
	roots, err := r.GetRoots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roots {
		if roots[i].Children, err = r.GetChildren(ctx, roots[i].ID); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

func (r *CategoryRepository) Update(_ context.Context, id int64, changes crud.Changes) error {
	return r.Store.Categories.Update(id, changes)
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.Store.Categories.Delete(id), nil
}

func (r *CategoryRepository) IsNameUnique(_ context.Context, name string, excludeID int64) (bool, error) {
	return r.Store.Categories.Find(func(c *model.Category) bool { return c.Name == name && c.ID != excludeID }) == nil, nil
}

func (r *CategoryRepository) IsSlugUnique(_ context.Context, slug string, excludeID int64) (bool, error) {
	return r.Store.Categories.Find(func(c *model.Category) bool { return c.Slug == slug && c.ID != excludeID }) == nil, nil
}

func (r *CategoryRepository) CountChildren(_ context.Context, id int64) (int, error) {
	return len(r.Store.Categories.All(func(c *model.Category) bool { return c.ParentID != nil && *c.ParentID == id })), nil
}

func (r *CategoryRepository) CountProducts(_ context.Context, id int64) (int, error) {
	return len(r.Store.Products.All(func(p *model.Product) bool { return p.CategoryID == id })), nil
}

type BrandRepository struct {
	Store *Store
}

func (r *BrandRepository) Create(_ context.Context, b *model.Brand) error {
	if r.Store.Brands.Find(func(x *model.Brand) bool { return x.Name == b.Name || x.Slug == b.Slug }) != nil {
		return apperror.NewValidation("brands_name_key already exists")
	}
	r.Store.Brands.Insert(b)
	return nil
}

func (r *BrandRepository) GetByID(_ context.Context, id int64) (*model.Brand, error) {
	return r.Store.Brands.Get(id), nil
}

func (r *BrandRepository) GetBySlug(_ context.Context, slug string) (*model.Brand, error) {
	return r.Store.Brands.Find(func(b *model.Brand) bool { return b.Slug == slug }), nil
}

func (r *BrandRepository) GetByName(_ context.Context, name string) (*model.Brand, error) {
	return r.Store.Brands.Find(func(b *model.Brand) bool { return b.Name == name }), nil
}

func (r *BrandRepository) GetAll(_ context.Context, offset, limit int, activeOnly bool) ([]model.Brand, error) {
	rows := r.Store.Brands.All(func(b *model.Brand) bool { return !activeOnly || b.IsActive })
	return paginate(rows, offset, limit), nil
}

func (r *BrandRepository) Count(_ context.Context, activeOnly bool) (int, error) {
	return len(r.Store.Brands.All(func(b *model.Brand) bool { return !activeOnly || b.IsActive })), nil
}

func (r *BrandRepository) SearchByName(_ context.Context, name string, offset, limit int) ([]model.Brand, error) {
	rows := r.Store.Brands.All(func(b *model.Brand) bool { return b.IsActive && containsFold(b.Name, name) })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return paginate(rows, offset, limit), nil
}

func (r *BrandRepository) GetPopular(_ context.Context, limit int) ([]model.Brand, error) {
	counts := map[int64]int{}
	for _, p := range r.Store.Products.All(func(p *model.Product) bool { return p.IsActive && p.BrandID != nil }) {
		counts[*p.BrandID]++
	}
	rows := r.Store.Brands.All(func(b *model.Brand) bool { return b.IsActive && counts[b.ID] > 0 })
	sort.SliceStable(rows, func(i, j int) bool {
		if counts[rows[i].ID] != counts[rows[j].ID] {
			return counts[rows[i].ID] > counts[rows[j].ID]
		}
		return rows[i].Name < rows[j].Name
	})
	return paginate(rows, 0, limit), nil
}

func (r *BrandRepository) Update(_ context.Context, id int64, changes crud.Changes) error {
	return r.Store.Brands.Update(id, changes)
}

func (r *BrandRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.Store.Brands.Delete(id), nil
}

func (r *BrandRepository) IsNameUnique(_ context.Context, name string, excludeID int64) (bool, error) {
	return r.Store.Brands.Find(func(b *model.Brand) bool { return b.Name == name && b.ID != excludeID }) == nil, nil
}

func (r *BrandRepository) IsSlugUnique(_ context.Context, slug string, excludeID int64) (bool, error) {
	return r.Store.Brands.Find(func(b *model.Brand) bool { return b.Slug == slug && b.ID != excludeID }) == nil, nil
}

func (r *BrandRepository) CountProducts(_ context.Context, id int64) (int, error) {
	return len(r.Store.Products.All(func(p *model.Product) bool { return p.BrandID != nil && *p.BrandID == id })), nil
}

type ShopRepository struct {
	Store *Store
}

func (r *ShopRepository) GetByID(_ context.Context, id int64) (*model.Shop, error) {
	return r.Store.Shops.Get(id), nil
}

type TagRepository struct {
	Store *Store
}

func (r *TagRepository) Create(_ context.Context, t *model.Tag) error {
	if r.Store.Tags.Find(func(x *model.Tag) bool { return x.Name == t.Name || x.Slug == t.Slug }) != nil {
		return apperror.NewValidation("tags_name_key already exists")
	}
	r.Store.Tags.Insert(t)
	return nil
}

func (r *TagRepository) Upsert(_ context.Context, t *model.Tag) error {
	if err := r.Store.fail("UpsertTag"); err != nil {
		return err
	}
	if existing := r.Store.Tags.Find(func(x *model.Tag) bool { return x.Name == t.Name }); existing != nil {
		*t = *existing
		return nil
	}
	r.Store.Tags.Insert(t)
	return nil
}

func (r *TagRepository) GetByID(_ context.Context, id int64) (*model.Tag, error) {
	return r.Store.Tags.Get(id), nil
}

func (r *TagRepository) GetBySlug(_ context.Context, slug string) (*model.Tag, error) {
	return r.Store.Tags.Find(func(t *model.Tag) bool { return t.Slug == slug }), nil
}

func (r *TagRepository) GetByName(_ context.Context, name string) (*model.Tag, error) {
	return r.Store.Tags.Find(func(t *model.Tag) bool { return t.Name == name }), nil
}

func (r *TagRepository) GetAll(_ context.Context, offset, limit int, activeOnly bool) ([]model.Tag, error) {
	rows := r.Store.Tags.All(func(t *model.Tag) bool { return !activeOnly || t.IsActive })
	return paginate(rows, offset, limit), nil
}

func (r *TagRepository) Count(_ context.Context, activeOnly bool) (int, error) {
	return len(r.Store.Tags.All(func(t *model.Tag) bool { return !activeOnly || t.IsActive })), nil
}

func (r *TagRepository) SearchByName(_ context.Context, name string, offset, limit int) ([]model.Tag, error) {
	rows := r.Store.Tags.All(func(t *model.Tag) bool { return t.IsActive && containsFold(t.Name, name) })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return paginate(rows, offset, limit), nil
}

func (r *TagRepository) GetPopular(_ context.Context, limit int) ([]model.Tag, error) {
	counts := map[int64]int{}
	for productID, tagIDs := range r.Store.ProductTags {
		p := r.Store.Products.Get(productID)
		if p == nil || !p.IsActive {
			continue
		}
		for _, id := range tagIDs {
			counts[id]++
		}
	}
	rows := r.Store.Tags.All(func(t *model.Tag) bool { return t.IsActive && counts[t.ID] > 0 })
	sort.SliceStable(rows, func(i, j int) bool {
		if counts[rows[i].ID] != counts[rows[j].ID] {
			return counts[rows[i].ID] > counts[rows[j].ID]
		}
		return rows[i].Name < rows[j].Name
	})
	return paginate(rows, 0, limit), nil
}

func (r *TagRepository) Update(_ context.Context, id int64, changes crud.Changes) error {
	return r.Store.Tags.Update(id, changes)
}

func (r *TagRepository) Delete(_ context.Context, id int64) (bool, error) {
	if !r.Store.Tags.Delete(id) {
		return false, nil
	}
	for productID, ids := range r.Store.ProductTags {
		r.Store.ProductTags[productID] = without(ids, id)
	}
	return true, nil
}

func (r *TagRepository) IsNameUnique(_ context.Context, name string, excludeID int64) (bool, error) {
	return r.Store.Tags.Find(func(t *model.Tag) bool { return t.Name == name && t.ID != excludeID }) == nil, nil
}

func (r *TagRepository) IsSlugUnique(_ context.Context, slug string, excludeID int64) (bool, error) {
	return r.Store.Tags.Find(func(t *model.Tag) bool { return t.Slug == slug && t.ID != excludeID }) == nil, nil
}

func without(ids []int64, id int64) []int64 {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
