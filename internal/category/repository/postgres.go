package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type PGRepository struct {
	*crud.Repository[model.Category]
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{Repository: crud.NewRepository[model.Category](db)}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (name, slug, description, parent_id, is_active)
        VALUES (:name, :slug, :description, :parent_id, :is_active)
        RETURNING id, created_at, updated_at
    `
	return r.Insert(ctx, query, c, &c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *PGRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.FindOne(ctx, "slug", slug)
}

func (r *PGRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return r.FindOne(ctx, "name", name)
}

func (r *PGRepository) GetRoots(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT * FROM categories WHERE parent_id IS NULL AND is_active = TRUE ORDER BY name`
	if err := r.Conn(ctx).SelectContext(ctx, &categories, query); err != nil {
		return nil, errors.Wrap(err, "list root categories")
	}
	return categories, nil
}

func (r *PGRepository) GetChildren(ctx context.Context, parentID int64) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT * FROM categories WHERE parent_id = $1 AND is_active = TRUE ORDER BY name`
	if err := r.Conn(ctx).SelectContext(ctx, &categories, query, parentID); err != nil {
		return nil, errors.Wrap(err, "list child categories")
	}
	return categories, nil
}

// GetTree returns active roots, each carrying its active direct children.
// All rows are read in one query and grouped by parent in memory.
func (r *PGRepository) GetTree(ctx context.Context) ([]model.Category, error) {
	var all []model.Category
	query := `SELECT * FROM categories WHERE is_active = TRUE ORDER BY name`
	if err := r.Conn(ctx).SelectContext(ctx, &all, query); err != nil {
		return nil, errors.Wrap(err, "load category tree")
	}
	return BuildTree(all), nil
}

// BuildTree groups flat rows into roots with one level of children.
func BuildTree(all []model.Category) []model.Category {
	children := make(map[int64][]model.Category)
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	roots := []model.Category{}
	for _, c := range all {
		if c.ParentID == nil {
			c.Children = children[c.ID]
			if c.Children == nil {
				c.Children = []model.Category{}
			}
			roots = append(roots, c)
		}
	}
	return roots
}

func (r *PGRepository) IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "name", name, excludeID)
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return r.IsUnique(ctx, "slug", slug, excludeID)
}

// CountChildren counts every direct child, active or not, since any of them
// still references the parent row.
func (r *PGRepository) CountChildren(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.Conn(ctx).GetContext(ctx, &count, `SELECT count(*) FROM categories WHERE parent_id = $1`, id)
	return count, errors.Wrap(err, "count child categories")
}

func (r *PGRepository) CountProducts(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.Conn(ctx).GetContext(ctx, &count, `SELECT count(*) FROM products WHERE category_id = $1`, id)
	return count, errors.Wrap(err, "count category products")
}
