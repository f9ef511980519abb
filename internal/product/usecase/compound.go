package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/slug"
)

const (
	tagSlugMaxLen  = 50
	colorTypeName  = "Color"
	colorTypeSlug  = "color"
	colorInputType = "select"
)

// resolveTags unions explicit tag ids with the ids of tags named in names,
// creating missing tags. It returns nil when neither list was supplied so the
// association is left untouched.
func (uc *productUseCase) resolveTags(ctx context.Context, ids []int64, names []string) ([]int64, error) {
	if ids == nil && names == nil {
		return nil, nil
	}

	out := append([]int64{}, ids...)
	for _, name := range uniqueStrings(names) {
		tagSlug, err := slug.Resolve(nil, name, tagSlugMaxLen)
		if err != nil {
			return nil, err
		}
		t := &model.Tag{Name: name, Slug: tagSlug, IsActive: true}
		if err := uc.repos.Tags.Upsert(ctx, t); err != nil {
			return nil, err
		}
		out = append(out, t.ID)
	}
	return uniqueIDs(out), nil
}

// resolveImages unions explicit image ids with images stored by URL. The first
// URL becomes the primary image.
func (uc *productUseCase) resolveImages(ctx context.Context, ids []int64, title string, urls []string) ([]int64, error) {
	if ids == nil && urls == nil {
		return nil, nil
	}

	out := append([]int64{}, ids...)
	for i, url := range uniqueStrings(urls) {
		alt := fmt.Sprintf("%s - Image %d", title, i+1)
		img := &model.Image{
			URL:       url,
			AltText:   &alt,
			IsPrimary: i == 0,
			SortOrder: i + 1,
		}
		if err := uc.repos.Images.Upsert(ctx, img); err != nil {
			return nil, err
		}
		out = append(out, img.ID)
	}
	return uniqueIDs(out), nil
}

// createColorVariants adds one variant per color, each carrying the product's
// whole stock and no price modifier.
func (uc *productUseCase) createColorVariants(ctx context.Context, p *model.Product, colors []string) error {
	colors = uniqueStrings(colors)
	if len(colors) == 0 {
		return nil
	}

	colorType := &model.AttributeType{
		Name:      colorTypeName,
		Slug:      colorTypeSlug,
		InputType: colorInputType,
		IsActive:  true,
	}
	if err := uc.repos.Attributes.EnsureType(ctx, colorType); err != nil {
		return err
	}

	for _, color := range colors {
		valueSlug := slug.Make(color)
		if valueSlug == "" {
			valueSlug = strings.ToLower(color)
		}
		attr := &model.Attribute{
			AttributeTypeID: colorType.ID,
			Value:           color,
			Slug:            valueSlug,
			IsActive:        true,
		}
		if err := uc.repos.Attributes.UpsertValue(ctx, attr); err != nil {
			return err
		}

		variant := &model.ProductVariant{
			ProductID:     p.ID,
			AttributeID:   attr.ID,
			PriceModifier: decimal.Zero,
			StockQuantity: p.TotalStock,
			IsActive:      true,
		}
		if err := uc.repos.Products.CreateVariant(ctx, variant); err != nil {
			return err
		}
	}
	return nil
}

// uniqueStrings trims values and drops blanks and repeats, keeping order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
