package repository

import (
	"context"
	"database/sql"

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

func (r *PGRepository) GetByURL(ctx context.Context, url string) (*model.Image, error) {
	var img model.Image
	err := database.Conn(ctx, r.DB).GetContext(ctx, &img, `SELECT * FROM images WHERE url = $1 LIMIT 1`, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get image by url")
	}
	return &img, nil
}

func (r *PGRepository) Upsert(ctx context.Context, img *model.Image) error {
	query := `
        INSERT INTO images (url, alt_text, is_primary, sort_order)
        VALUES (:url, :alt_text, :is_primary, :sort_order)
        ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
        RETURNING *
    `
	conn := database.Conn(ctx, r.DB)
	bound, args, err := conn.BindNamed(query, img)
	if err != nil {
		return errors.Wrap(err, "bind image upsert")
	}
	err = conn.QueryRowxContext(ctx, bound, args...).StructScan(img)
	return database.MapError(err, "upsert image")
}
