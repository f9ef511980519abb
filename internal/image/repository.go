package image

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	GetByURL(ctx context.Context, url string) (*model.Image, error)
	// Upsert inserts img or, when the URL is already stored, loads the existing
	// row into img unchanged.
	Upsert(ctx context.Context, img *model.Image) error
}
