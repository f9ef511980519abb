package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type PGRepository struct {
	*crud.Repository[model.Brand]
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{Repository: crud.NewRepository[model.Brand](db)}
}

func (r *PGRepository) Create(ctx context.Context, b *model.Brand) error {
	query := `
        INSERT INTO brands (name, slug, logo_url, description, is_active)
        VALUES (:name, :slug, :logo_url, :description, :is_active)
        RETURNING id, created_at, updated_at
    `
	return r.Insert(ctx, query, b, &b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*model.Brand, error) {
	return r.FindOne(ctx, "slug", slug)
}

func (r *PGRepository) GetByName(ctx context.Context, name string) (*model.Brand, error) {
	return r.FindOne(ctx, "name", name)
}

// GetPopular ranks active brands by their number of active products.
func (r *PGRepository) GetPopular(ctx context.Context, limit int) ([]model.Brand, error) {
	brands := []model.Brand{}
	query := `
        SELECT b.*
        FROM brands b
        JOIN products p ON p.brand_id = b.id AND p.is_active = TRUE
        WHERE b.is_active = TRUE
        GROUP BY b.id
        ORDER BY count(p.id) DESC, b.name
    ` + crud.Paginate(0, limit)
	if err := r.Conn(ctx).SelectContext(ctx, &brands, query); err != nil {
		return nil, errors.Wrap(err, "list popular brands")
	}
	return brands, nil
}

func (r *PGRepository) IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "name", name, excludeID)
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "slug", slug, excludeID)
}

func (r *PGRepository) CountProducts(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.Conn(ctx).GetContext(ctx, &count, `SELECT count(*) FROM products WHERE brand_id = $1`, id)
	return count, errors.Wrap(err, "count brand products")
}
