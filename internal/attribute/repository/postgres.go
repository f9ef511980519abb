package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) EnsureType(ctx context.Context, t *model.AttributeType) error {
	query := `
        INSERT INTO attribute_types (name, slug, input_type, is_required, is_active)
        VALUES (:name, :slug, :input_type, :is_required, :is_active)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING *
    `
	return r.upsert(ctx, query, t, "ensure attribute type")
}

func (r *PGRepository) UpsertValue(ctx context.Context, a *model.Attribute) error {
	query := `
        INSERT INTO attributes (attribute_type_id, value, slug, hex_color, sort_order, is_active)
        VALUES (:attribute_type_id, :value, :slug, :hex_color, :sort_order, :is_active)
        ON CONFLICT (attribute_type_id, value) DO UPDATE SET value = EXCLUDED.value
        RETURNING *
    `
	return r.upsert(ctx, query, a, "upsert attribute")
}

func (r *PGRepository) upsert(ctx context.Context, query string, dest interface{}, op string) error {
	conn := database.Conn(ctx, r.DB)
	bound, args, err := conn.BindNamed(query, dest)
	if err != nil {
		return errors.Wrap(err, op)
	}
	return database.MapError(conn.QueryRowxContext(ctx, bound, args...).StructScan(dest), op)
}
