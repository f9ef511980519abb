package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

var productColumns = []string{
	"id", "title", "slug", "description", "short_description", "sku",
	"base_price", "old_price", "stock_state", "total_stock", "min_order_quantity",
	"meta_title", "meta_description", "category_id", "brand_id", "shop_id",
	"is_active", "is_featured", "created_at", "updated_at",
}

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func productRow(id int64, stock int, state string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productColumns).AddRow(
		id, "Acme Book", "acme-book", nil, nil, "AB-1",
		"500.00", nil, state, stock, 1,
		nil, nil, int64(1), nil, nil,
		true, false, now, now,
	)
}

func TestAdjustStockReturnsUpdatedRow(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $2 AND total_stock::bigint + $1 BETWEEN 0 AND $3`)).
		WithArgs(-3, int64(1), model.MaxStock).
		WillReturnRows(productRow(1, 7, "Available"))

	p, err := repo.AdjustStock(context.Background(), 1, -3)

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 7, p.TotalStock)
	assert.Equal(t, model.StockAvailable, p.StockState)
	assert.Equal(t, "500", p.BasePrice.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStockBelowZeroReturnsNil(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE products`)).
		WithArgs(-30, int64(1), model.MaxStock).
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := repo.AdjustStock(context.Background(), 1, -30)

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestAdjustStockAboveColumnRangeReturnsNil(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`BETWEEN 0 AND $3`)).
		WithArgs(model.MaxStock, int64(1), model.MaxStock).
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := repo.AdjustStock(context.Background(), 1, model.MaxStock)

	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStockReportsMissingProduct(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`SET total_stock = $1, stock_state = $2, updated_at = NOW()`)).
		WithArgs(0, "OutOfStock", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.SetStock(context.Background(), 9, 0, model.StockOutOfStock)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO products`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "products_sku_key"})

	err := repo.Create(context.Background(), &model.Product{Title: "Acme Book", SKU: "AB-1", Slug: "acme-book"})

	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestFilterCountsAndPages(t *testing.T) {
	repo, mock := newRepo(t)
	category := int64(1)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM products WHERE is_active = TRUE AND category_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM products WHERE is_active = TRUE AND category_id = $1 ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 10`)).
		WithArgs(int64(1)).
		WillReturnRows(productRow(11, 1, "Available"))

	products, total, err := repo.Filter(context.Background(), &dto.ProductFilters{CategoryID: &category, Offset: 10, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, products, 1)
	assert.Equal(t, int64(11), products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRelationsEmptyIsNoop(t *testing.T) {
	repo, mock := newRepo(t)

	require.NoError(t, repo.LoadRelations(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTagsWithEmptySetOnlyClears(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product_tags WHERE product_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.ReplaceTags(context.Background(), 4, []int64{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOrderItems(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM order_items WHERE product_id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountOrderItems(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
