package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/tag"
	"github.com/fekuna/omnipos-catalog-service/internal/tag/dto"
)

func newUseCase() tag.UseCase {
	store := catalogtest.NewStore()
	return NewTagUseCase(&catalogtest.TagRepository{Store: store}, logger.NewNop())
}

func TestTagLifecycle(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.CreateTag(ctx, &dto.CreateTagInput{Name: "Summer Sale"})
	require.NoError(t, err)
	assert.Equal(t, "summer-sale", created.Slug)

	bySlug, err := uc.GetTagBySlug(ctx, "summer-sale")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	name := "Winter Sale"
	updated, err := uc.UpdateTag(ctx, created.ID, &dto.UpdateTagInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "winter-sale", updated.Slug)

	deleted, err := uc.DeleteTag(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	missing, err := uc.GetTag(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateTagTooLong(t *testing.T) {
	uc := newUseCase()

	_, err := uc.CreateTag(context.Background(), &dto.CreateTagInput{
		Name: "this tag name is definitely longer than fifty characters",
	})

	assert.Equal(t, "name must be at most 50", apperror.ValidationMessage(err))
}

func TestCreateTagDuplicate(t *testing.T) {
	uc := newUseCase()
	_, err := uc.CreateTag(context.Background(), &dto.CreateTagInput{Name: "new"})
	require.NoError(t, err)

	_, err = uc.CreateTag(context.Background(), &dto.CreateTagInput{Name: "new"})

	assert.True(t, apperror.IsValidation(err))
}
