package crud

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
)

// Entity is a row type stored in a table with id, is_active and updated_at columns.
type Entity interface {
	TableName() string
}

// Changes maps column names to new values for a partial update.
type Changes map[string]any

// Set records a column only when value is non-nil.
func Set[V any](c Changes, column string, value *V) {
	if value != nil {
		c[column] = *value
	}
}

// Columns returns the changed column names in a stable order.
func (c Changes) Columns() []string {
	cols := make([]string, 0, len(c))
	for k := range c {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Repository implements the operations every aggregate table shares.
type Repository[T Entity] struct {
	DB    *sqlx.DB
	table string
}

func NewRepository[T Entity](db *sqlx.DB) *Repository[T] {
	var zero T
	return &Repository[T]{DB: db, table: zero.TableName()}
}

func (r *Repository[T]) Table() string {
	return r.table
}

// Conn returns the executor bound to ctx (transaction or pool).
func (r *Repository[T]) Conn(ctx context.Context) database.Executor {
	return database.Conn(ctx, r.DB)
}

func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return r.FindOne(ctx, "id", id)
}

// FindOne returns the first row where column equals value, or (nil, nil).
// column must be a trusted identifier.
func (r *Repository[T]) FindOne(ctx context.Context, column string, value any) (*T, error) {
	var item T
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1 LIMIT 1`, r.table, column)
	err := r.Conn(ctx).GetContext(ctx, &item, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get %s by %s", r.table, column)
	}
	return &item, nil
}

func (r *Repository[T]) GetAll(ctx context.Context, offset, limit int, activeOnly bool) ([]T, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, r.table)
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY id` + Paginate(offset, limit)

	items := []T{}
	if err := r.Conn(ctx).SelectContext(ctx, &items, query); err != nil {
		return nil, errors.Wrapf(err, "list %s", r.table)
	}
	return items, nil
}

func (r *Repository[T]) Count(ctx context.Context, activeOnly bool) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, r.table)
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}

	var count int
	if err := r.Conn(ctx).GetContext(ctx, &count, query); err != nil {
		return 0, errors.Wrapf(err, "count %s", r.table)
	}
	return count, nil
}

// Update writes only the supplied columns and bumps updated_at.
func (r *Repository[T]) Update(ctx context.Context, id int64, changes Changes) error {
	if len(changes) == 0 {
		return nil
	}

	sets := make([]string, 0, len(changes)+1)
	args := make(map[string]interface{}, len(changes)+1)
	for _, col := range changes.Columns() {
		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
		args[col] = changes[col]
	}
	sets = append(sets, "updated_at = NOW()")
	args["id"] = id

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = :id`, r.table, strings.Join(sets, ", "))
	_, err := r.Conn(ctx).NamedExecContext(ctx, query, args)
	return database.MapError(err, "update "+r.table)
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	return r.execAffected(ctx, query, id)
}

func (r *Repository[T]) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, r.table)
	return r.execAffected(ctx, query, id)
}

// IsUnique reports whether no row other than excludeID has column = value.
// Inactive rows count as taken.
func (r *Repository[T]) IsUnique(ctx context.Context, column string, value any, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, r.table, column)
	args := []interface{}{value}
	if excludeID != 0 {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	var count int
	if err := r.Conn(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrapf(err, "check %s.%s uniqueness", r.table, column)
	}
	return count == 0, nil
}

// SearchByName matches name case-insensitively among active rows.
func (r *Repository[T]) SearchByName(ctx context.Context, name string, offset, limit int) ([]T, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE is_active = TRUE AND name ILIKE $1 ORDER BY name`, r.table) +
		Paginate(offset, limit)

	items := []T{}
	if err := r.Conn(ctx).SelectContext(ctx, &items, query, "%"+name+"%"); err != nil {
		return nil, errors.Wrapf(err, "search %s", r.table)
	}
	return items, nil
}

// Insert runs a named INSERT ... RETURNING statement and scans the returned
// columns into dest.
func (r *Repository[T]) Insert(ctx context.Context, query string, arg interface{}, dest ...interface{}) error {
	conn := r.Conn(ctx)
	bound, args, err := conn.BindNamed(query, arg)
	if err != nil {
		return errors.Wrapf(err, "bind insert %s", r.table)
	}
	err = conn.QueryRowxContext(ctx, bound, args...).Scan(dest...)
	return database.MapError(err, "insert "+r.table)
}

func (r *Repository[T]) execAffected(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := r.Conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "exec on %s", r.table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return n > 0, nil
}

// Paginate renders a LIMIT/OFFSET suffix; limit <= 0 means unbounded.
func Paginate(offset, limit int) string {
	var b strings.Builder
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	if offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", offset)
	}
	return b.String()
}
