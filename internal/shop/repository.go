package shop

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
}
