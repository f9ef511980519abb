// Package catalogtest provides in-memory implementations of the catalog
// repositories and transactor for usecase and handler tests.
package catalogtest

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/crud"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Table stores rows by id and hands out copies.
type Table[T any] struct {
	Rows map[int64]T
	next int64
}

func newTable[T any]() *Table[T] {
	return &Table[T]{Rows: map[int64]T{}}
}

// Insert assigns the next id and timestamps to row and stores a copy.
func (t *Table[T]) Insert(row *T) {
	t.next++
	now := time.Now()
	v := reflect.ValueOf(row).Elem()
	v.FieldByName("ID").SetInt(t.next)
	v.FieldByName("CreatedAt").Set(reflect.ValueOf(now))
	v.FieldByName("UpdatedAt").Set(reflect.ValueOf(now))
	t.Rows[t.next] = *row
}

func (t *Table[T]) Get(id int64) *T {
	row, ok := t.Rows[id]
	if !ok {
		return nil
	}
	return &row
}

func (t *Table[T]) Put(id int64, row T) {
	t.Rows[id] = row
}

// All returns the rows matching keep (every row when keep is nil) in id order.
func (t *Table[T]) All(keep func(*T) bool) []T {
	ids := make([]int64, 0, len(t.Rows))
	for id := range t.Rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []T{}
	for _, id := range ids {
		row := t.Rows[id]
		if keep == nil || keep(&row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table[T]) Find(keep func(*T) bool) *T {
	rows := t.All(keep)
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// Update applies changes by db column name and bumps UpdatedAt.
func (t *Table[T]) Update(id int64, changes crud.Changes) error {
	row, ok := t.Rows[id]
	if !ok || len(changes) == 0 {
		return nil
	}
	if err := Apply(&row, changes); err != nil {
		return err
	}
	reflect.ValueOf(&row).Elem().FieldByName("UpdatedAt").Set(reflect.ValueOf(time.Now()))
	t.Rows[id] = row
	return nil
}

func (t *Table[T]) Delete(id int64) bool {
	if _, ok := t.Rows[id]; !ok {
		return false
	}
	delete(t.Rows, id)
	return true
}

func (t *Table[T]) clone() *Table[T] {
	c := &Table[T]{Rows: make(map[int64]T, len(t.Rows)), next: t.next}
	for id, row := range t.Rows {
		c.Rows[id] = row
	}
	return c
}

// Apply sets the fields of the struct pointed to by dst whose db tag matches
// a key of changes. Plain values are wrapped when the field is a pointer.
func Apply(dst interface{}, changes crud.Changes) error {
	v := reflect.ValueOf(dst).Elem()
	for col, val := range changes {
		field, ok := fieldByColumn(v, col)
		if !ok {
			return errors.Errorf("unknown column %q", col)
		}
		src := reflect.ValueOf(val)
		switch {
		case !src.IsValid():
			field.Set(reflect.Zero(field.Type()))
		case field.Kind() == reflect.Ptr && src.Type() != field.Type():
			p := reflect.New(field.Type().Elem())
			p.Elem().Set(src.Convert(field.Type().Elem()))
			field.Set(p)
		default:
			field.Set(src.Convert(field.Type()))
		}
	}
	return nil
}

func fieldByColumn(v reflect.Value, col string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if inner, ok := fieldByColumn(v.Field(i), col); ok {
				return inner, true
			}
			continue
		}
		if strings.Split(f.Tag.Get("db"), ",")[0] == col {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Store is an in-memory catalog database.
type Store struct {
	Categories     *Table[model.Category]
	Brands         *Table[model.Brand]
	Shops          *Table[model.Shop]
	Tags           *Table[model.Tag]
	Images         *Table[model.Image]
	AttributeTypes *Table[model.AttributeType]
	Attributes     *Table[model.Attribute]
	Products       *Table[model.Product]
	Variants       *Table[model.ProductVariant]

	ProductTags   map[int64][]int64
	ProductImages map[int64][]int64
	// OrderItems counts order lines per product id.
	OrderItems map[int64]int

	// Fail makes the named repository operation return the error.
	Fail map[string]error
}

func NewStore() *Store {
	return &Store{
		Categories:     newTable[model.Category](),
		Brands:         newTable[model.Brand](),
		Shops:          newTable[model.Shop](),
		Tags:           newTable[model.Tag](),
		Images:         newTable[model.Image](),
		AttributeTypes: newTable[model.AttributeType](),
		Attributes:     newTable[model.Attribute](),
		Products:       newTable[model.Product](),
		Variants:       newTable[model.ProductVariant](),
		ProductTags:    map[int64][]int64{},
		ProductImages:  map[int64][]int64{},
		OrderItems:     map[int64]int{},
		Fail:           map[string]error{},
	}
}

func (s *Store) fail(op string) error {
	return s.Fail[op]
}

func (s *Store) snapshot() *Store {
	return &Store{
		Categories:     s.Categories.clone(),
		Brands:         s.Brands.clone(),
		Shops:          s.Shops.clone(),
		Tags:           s.Tags.clone(),
		Images:         s.Images.clone(),
		AttributeTypes: s.AttributeTypes.clone(),
		Attributes:     s.Attributes.clone(),
		Products:       s.Products.clone(),
		Variants:       s.Variants.clone(),
		ProductTags:    cloneLinks(s.ProductTags),
		ProductImages:  cloneLinks(s.ProductImages),
		OrderItems:     s.OrderItems,
		Fail:           s.Fail,
	}
}

func (s *Store) restore(snap *Store) {
	*s = *snap
}

func cloneLinks(m map[int64][]int64) map[int64][]int64 {
	c := make(map[int64][]int64, len(m))
	for k, v := range m {
		c[k] = append([]int64(nil), v...)
	}
	return c
}

type txKey struct{}

// Transactor restores the store to its state before WithinTx when fn fails.
type Transactor struct {
	Store *Store
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	snap := t.Store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.Store.restore(snap)
		return err
	}
	return nil
}

func paginate[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
