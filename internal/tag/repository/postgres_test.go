package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

var tagColumns = []string{"id", "name", "slug", "is_active", "created_at", "updated_at"}

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestGetPopularRanksByActiveProducts(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN product_tags pt ON pt.tag_id = t.id`) +
		`\s+` + regexp.QuoteMeta(`JOIN products p ON p.id = pt.product_id AND p.is_active = TRUE`) +
		`\s+WHERE t.is_active = TRUE\s+GROUP BY t.id\s+` +
		regexp.QuoteMeta(`ORDER BY count(p.id) DESC, t.name`) + `\s+LIMIT 3$`).
		WillReturnRows(sqlmock.NewRows(tagColumns).
			AddRow(int64(4), "common", "common", true, now, now))

	tags, err := repo.GetPopular(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "common", tags[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPopularEmptyIsEmptySlice(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM tags t`).WillReturnRows(sqlmock.NewRows(tagColumns))

	tags, err := repo.GetPopular(context.Background(), 3)

	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestUpsertReturnsExistingRow(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name`)).
		WithArgs("sale", "sale", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "is_active", "created_at", "updated_at"}).
			AddRow(int64(7), "sale", true, now, now))

	tag := &model.Tag{Name: "sale", Slug: "sale", IsActive: true}
	require.NoError(t, repo.Upsert(context.Background(), tag))

	assert.Equal(t, int64(7), tag.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
