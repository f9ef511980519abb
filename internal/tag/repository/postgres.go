package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type PGRepository struct {
	*crud.Repository[model.Tag]
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{Repository: crud.NewRepository[model.Tag](db)}
}

func (r *PGRepository) Create(ctx context.Context, t *model.Tag) error {
	query := `
        INSERT INTO tags (name, slug, is_active)
        VALUES (:name, :slug, :is_active)
        RETURNING id, created_at, updated_at
    `
	return r.Insert(ctx, query, t, &t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Upsert is keyed on name. The no-op DO UPDATE makes RETURNING yield the
// existing row, so concurrent creators of the same tag share one id.
func (r *PGRepository) Upsert(ctx context.Context, t *model.Tag) error {
	query := `
        INSERT INTO tags (name, slug, is_active)
        VALUES (:name, :slug, :is_active)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, slug, is_active, created_at, updated_at
    `
	return r.Insert(ctx, query, t, &t.ID, &t.Slug, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	return r.FindOne(ctx, "slug", slug)
}

func (r *PGRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	return r.FindOne(ctx, "name", name)
}

// GetPopular ranks active tags by the number of active products carrying them.
func (r *PGRepository) GetPopular(ctx context.Context, limit int) ([]model.Tag, error) {
	tags := []model.Tag{}
	query := `
        SELECT t.*
        FROM tags t
        JOIN product_tags pt ON pt.tag_id = t.id
        JOIN products p ON p.id = pt.product_id AND p.is_active = TRUE
        WHERE t.is_active = TRUE
        GROUP BY t.id
        ORDER BY count(p.id) DESC, t.name
    ` + crud.Paginate(0, limit)
	if err := r.Conn(ctx).SelectContext(ctx, &tags, query); err != nil {
		return nil, errors.Wrap(err, "list popular tags")
	}
	return tags, nil
}

func (r *PGRepository) IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "name", name, excludeID)
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "slug", slug, excludeID)
}
