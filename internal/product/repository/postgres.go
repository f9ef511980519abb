package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

const defaultOrder = "created_at DESC, id DESC"

type PGRepository struct {
	*crud.Repository[model.Product]
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{Repository: crud.NewRepository[model.Product](db)}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            title, slug, description, short_description, sku,
            base_price, old_price, stock_state, total_stock, min_order_quantity,
            meta_title, meta_description, category_id, brand_id, shop_id,
            is_active, is_featured
        )
        VALUES (
            :title, :slug, :description, :short_description, :sku,
            :base_price, :old_price, :stock_state, :total_stock, :min_order_quantity,
            :meta_title, :meta_description, :category_id, :brand_id, :shop_id,
            :is_active, :is_featured
        )
        RETURNING id, created_at, updated_at
    `
	return r.Insert(ctx, query, p, &p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// CreateWithRelations must run inside a transaction to be atomic.
func (r *PGRepository) CreateWithRelations(ctx context.Context, p *model.Product, tagIDs, imageIDs []int64) error {
	if err := r.Create(ctx, p); err != nil {
		return err
	}
	if tagIDs != nil {
		if err := r.ReplaceTags(ctx, p.ID, tagIDs); err != nil {
			return err
		}
	}
	if imageIDs != nil {
		if err := r.ReplaceImages(ctx, p.ID, imageIDs); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.ProductVariant) error {
	query := `
        INSERT INTO product_variants (product_id, attribute_id, price_modifier, stock_quantity, sku_suffix, is_active)
        VALUES (:product_id, :attribute_id, :price_modifier, :stock_quantity, :sku_suffix, :is_active)
        RETURNING id, created_at, updated_at
    `
	return r.Insert(ctx, query, v, &v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *PGRepository) GetByIDWithRelations(ctx context.Context, id int64) (*model.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	products := []model.Product{*p}
	if err := r.LoadRelations(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.FindOne(ctx, "slug", slug)
}

func (r *PGRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return r.FindOne(ctx, "sku", sku)
}

func (r *PGRepository) GetByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]model.Product, error) {
	query := `SELECT * FROM products WHERE category_id = $1 AND is_active = TRUE ORDER BY ` + defaultOrder +
		crud.Paginate(offset, limit)
	return r.selectProducts(ctx, "list products by category", query, categoryID)
}

func (r *PGRepository) GetByBrand(ctx context.Context, brandID int64, offset, limit int) ([]model.Product, error) {
	query := `SELECT * FROM products WHERE brand_id = $1 AND is_active = TRUE ORDER BY ` + defaultOrder +
		crud.Paginate(offset, limit)
	return r.selectProducts(ctx, "list products by brand", query, brandID)
}

func (r *PGRepository) GetFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	query := `SELECT * FROM products WHERE is_featured = TRUE AND is_active = TRUE ORDER BY ` + defaultOrder +
		crud.Paginate(0, limit)
	return r.selectProducts(ctx, "list featured products", query)
}

// Search matches title, description or sku case-insensitively among active products.
func (r *PGRepository) Search(ctx context.Context, q string, offset, limit int) ([]model.Product, error) {
	query := `
        SELECT * FROM products
        WHERE is_active = TRUE AND (title ILIKE $1 OR description ILIKE $1 OR sku ILIKE $1)
        ORDER BY ` + defaultOrder + crud.Paginate(offset, limit)
	return r.selectProducts(ctx, "search products", query, "%"+q+"%")
}

func (r *PGRepository) Filter(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	where, args := BuildFilter(f)
	conn := r.Conn(ctx)

	countQuery, countArgs, err := conn.BindNamed("SELECT count(*) FROM products"+where, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "bind product count")
	}
	var count int
	if err := conn.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "count filtered products")
	}

	listQuery, listArgs, err := conn.BindNamed(
		"SELECT * FROM products"+where+" ORDER BY "+OrderBy(f)+crud.Paginate(f.Offset, f.Limit), args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "bind product filter")
	}
	products, err := r.selectProducts(ctx, "filter products", listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) CountOrderItems(ctx context.Context, productID int64) (int, error) {
	var count int
	err := r.Conn(ctx).GetContext(ctx, &count, `SELECT count(*) FROM order_items WHERE product_id = $1`, productID)
	return count, errors.Wrap(err, "count order items")
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "sku", sku, excludeID)
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "slug", slug, excludeID)
}

func (r *PGRepository) selectProducts(ctx context.Context, op, query string, args ...interface{}) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.Conn(ctx).SelectContext(ctx, &products, query, args...); err != nil {
		return nil, errors.Wrap(err, op)
	}
	return products, nil
}
