package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type productTag struct {
	ProductID int64 `db:"product_id"`
	model.Tag
}

type productImage struct {
	ProductID int64 `db:"product_id"`
	model.Image
}

func (r *PGRepository) LoadRelations(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	var categoryIDs, brandIDs, shopIDs []int64
	for _, p := range products {
		ids = append(ids, p.ID)
		categoryIDs = append(categoryIDs, p.CategoryID)
		if p.BrandID != nil {
			brandIDs = append(brandIDs, *p.BrandID)
		}
		if p.ShopID != nil {
			shopIDs = append(shopIDs, *p.ShopID)
		}
	}

	categories, err := loadByIDs[model.Category](ctx, r, "categories", categoryIDs)
	if err != nil {
		return err
	}
	brands, err := loadByIDs[model.Brand](ctx, r, "brands", brandIDs)
	if err != nil {
		return err
	}
	shops, err := loadByIDs[model.Shop](ctx, r, "shops", shopIDs)
	if err != nil {
		return err
	}
	tags, err := r.loadTags(ctx, ids)
	if err != nil {
		return err
	}
	images, err := r.loadImages(ctx, ids)
	if err != nil {
		return err
	}
	variants, err := r.loadVariants(ctx, ids)
	if err != nil {
		return err
	}

	for i := range products {
		p := &products[i]
		if c, ok := categories[p.CategoryID]; ok {
			p.Category = &c
		}
		if p.BrandID != nil {
			if b, ok := brands[*p.BrandID]; ok {
				p.Brand = &b
			}
		}
		if p.ShopID != nil {
			if s, ok := shops[*p.ShopID]; ok {
				p.Shop = &s
			}
		}
		p.Tags = nonNil(tags[p.ID])
		p.Images = nonNil(images[p.ID])
		p.Variants = nonNil(variants[p.ID])
	}
	return nil
}

// loadByIDs fetches rows of a table keyed by id in one query.
func loadByIDs[T interface{ PrimaryKey() int64 }](ctx context.Context, r *PGRepository, table string, ids []int64) (map[int64]T, error) {
	out := make(map[int64]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []T
	if err := r.Conn(ctx).SelectContext(ctx, &rows, `SELECT * FROM `+table+` WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, errors.Wrapf(err, "load %s", table)
	}
	for _, row := range rows {
		out[row.PrimaryKey()] = row
	}
	return out, nil
}

func (r *PGRepository) loadTags(ctx context.Context, productIDs []int64) (map[int64][]model.Tag, error) {
	var rows []productTag
	query := `
        SELECT pt.product_id, t.*
        FROM tags t
        JOIN product_tags pt ON pt.tag_id = t.id
        WHERE pt.product_id = ANY($1)
        ORDER BY t.name
    `
	if err := r.Conn(ctx).SelectContext(ctx, &rows, query, pq.Array(productIDs)); err != nil {
		return nil, errors.Wrap(err, "load product tags")
	}

	out := make(map[int64][]model.Tag)
	for _, row := range rows {
		out[row.ProductID] = append(out[row.ProductID], row.Tag)
	}
	return out, nil
}

func (r *PGRepository) loadImages(ctx context.Context, productIDs []int64) (map[int64][]model.Image, error) {
	var rows []productImage
	query := `
        SELECT pi.product_id, i.*
        FROM images i
        JOIN product_images pi ON pi.image_id = i.id
        WHERE pi.product_id = ANY($1)
        ORDER BY i.sort_order, i.id
    `
	if err := r.Conn(ctx).SelectContext(ctx, &rows, query, pq.Array(productIDs)); err != nil {
		return nil, errors.Wrap(err, "load product images")
	}

	out := make(map[int64][]model.Image)
	for _, row := range rows {
		out[row.ProductID] = append(out[row.ProductID], row.Image)
	}
	return out, nil
}

// loadVariants reads variants with their attribute and attribute type in three
// queries regardless of page size.
func (r *PGRepository) loadVariants(ctx context.Context, productIDs []int64) (map[int64][]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.Conn(ctx).SelectContext(ctx, &variants,
		`SELECT * FROM product_variants WHERE product_id = ANY($1) ORDER BY id`, pq.Array(productIDs))
	if err != nil {
		return nil, errors.Wrap(err, "load product variants")
	}

	out := make(map[int64][]model.ProductVariant)
	if len(variants) == 0 {
		return out, nil
	}

	attrIDs := make([]int64, 0, len(variants))
	for _, v := range variants {
		attrIDs = append(attrIDs, v.AttributeID)
	}
	var attrs []model.Attribute
	if err := r.Conn(ctx).SelectContext(ctx, &attrs, `SELECT * FROM attributes WHERE id = ANY($1)`, pq.Array(attrIDs)); err != nil {
		return nil, errors.Wrap(err, "load variant attributes")
	}

	typeIDs := make([]int64, 0, len(attrs))
	for _, a := range attrs {
		typeIDs = append(typeIDs, a.AttributeTypeID)
	}
	var types []model.AttributeType
	if len(typeIDs) > 0 {
		if err := r.Conn(ctx).SelectContext(ctx, &types, `SELECT * FROM attribute_types WHERE id = ANY($1)`, pq.Array(typeIDs)); err != nil {
			return nil, errors.Wrap(err, "load attribute types")
		}
	}

	typeByID := make(map[int64]model.AttributeType, len(types))
	for _, t := range types {
		typeByID[t.ID] = t
	}
	attrByID := make(map[int64]model.Attribute, len(attrs))
	for _, a := range attrs {
		if t, ok := typeByID[a.AttributeTypeID]; ok {
			a.AttributeType = &t
		}
		attrByID[a.ID] = a
	}

	for _, v := range variants {
		if a, ok := attrByID[v.AttributeID]; ok {
			v.Attribute = &a
		}
		out[v.ProductID] = append(out[v.ProductID], v)
	}
	return out, nil
}

// ReplaceTags swaps the product's tag set. Unknown tag ids are ignored.
func (r *PGRepository) ReplaceTags(ctx context.Context, productID int64, tagIDs []int64) error {
	conn := r.Conn(ctx)
	if _, err := conn.ExecContext(ctx, `DELETE FROM product_tags WHERE product_id = $1`, productID); err != nil {
		return errors.Wrap(err, "clear product tags")
	}
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := conn.ExecContext(ctx, `
        INSERT INTO product_tags (product_id, tag_id)
        SELECT $1, id FROM tags WHERE id = ANY($2)
    `, productID, pq.Array(tagIDs))
	return errors.Wrap(err, "link product tags")
}

// ReplaceImages swaps the product's image set. Unknown image ids are ignored.
func (r *PGRepository) ReplaceImages(ctx context.Context, productID int64, imageIDs []int64) error {
	conn := r.Conn(ctx)
	if _, err := conn.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return errors.Wrap(err, "clear product images")
	}
	if len(imageIDs) == 0 {
		return nil
	}
	_, err := conn.ExecContext(ctx, `
        INSERT INTO product_images (product_id, image_id)
        SELECT $1, id FROM images WHERE id = ANY($2)
    `, productID, pq.Array(imageIDs))
	return errors.Wrap(err, "link product images")
}

// UpdateWithRelations must run inside a transaction to be atomic.
func (r *PGRepository) UpdateWithRelations(ctx context.Context, id int64, changes crud.Changes, tagIDs, imageIDs []int64) error {
	if err := r.Update(ctx, id, changes); err != nil {
		return err
	}
	if tagIDs != nil {
		if err := r.ReplaceTags(ctx, id, tagIDs); err != nil {
			return err
		}
	}
	if imageIDs != nil {
		if err := r.ReplaceImages(ctx, id, imageIDs); err != nil {
			return err
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
