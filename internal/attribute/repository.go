package attribute

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// EnsureType returns the attribute type with t.Name, creating it from t when missing.
	EnsureType(ctx context.Context, t *model.AttributeType) error
	// UpsertValue returns the attribute with (a.AttributeTypeID, a.Value), creating it when missing.
	UpsertValue(ctx context.Context, a *model.Attribute) error
}
