package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func (r *PGRepository) SetStock(ctx context.Context, id int64, quantity int, state model.StockState) (bool, error) {
	res, err := r.Conn(ctx).ExecContext(ctx, `
        UPDATE products
        SET total_stock = $1, stock_state = $2, updated_at = NOW()
        WHERE id = $3
    `, quantity, string(state), id)
	if err != nil {
		return false, errors.Wrap(err, "set stock")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "set stock rows affected")
	}
	return n > 0, nil
}

// AdjustStock is a single conditional UPDATE, so concurrent decrements cannot
// both pass the availability check. It returns nil when the product is missing
// or the result would leave [0, model.MaxStock].
func (r *PGRepository) AdjustStock(ctx context.Context, id int64, delta int) (*model.Product, error) {
	var p model.Product
	err := r.Conn(ctx).GetContext(ctx, &p, `
        UPDATE products
        SET total_stock = total_stock + $1,
            stock_state = CASE WHEN total_stock + $1 <= 0 THEN 'OutOfStock' ELSE 'Available' END,
            updated_at = NOW()
        WHERE id = $2 AND total_stock::bigint + $1 BETWEEN 0 AND $3
        RETURNING *
    `, delta, id, model.MaxStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "adjust stock")
	}
	return &p, nil
}
