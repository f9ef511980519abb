package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type PGRepository struct {
	*crud.Repository[model.Shop]
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{Repository: crud.NewRepository[model.Shop](db)}
}
