// Package transform maps loaded products onto the storefront response shapes.
package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

const (
	DefaultShopName = "L&M Zone"
	DefaultRating   = "3.8"
	DefaultReviews  = "0"
	DeliveredBy     = "Aug 02"
	DefaultColor    = "Default"
)

var hundred = decimal.NewFromInt(100)

type Specifications struct {
	SpecImages []string `json:"spec_images"`
}

// Listing is the compact product card returned by list endpoints.
type Listing struct {
	ID             int64            `json:"id"`
	StockState     model.StockState `json:"stock_state"`
	TotalStock     int              `json:"total_stock"`
	Rating         string           `json:"rating"`
	ReviewCount    string           `json:"reviewCount"`
	Title          string           `json:"title"`
	ShopName       string           `json:"shop_name"`
	Price          float64          `json:"price"`
	OldPrice       string           `json:"old_price"`
	NewPrice       string           `json:"new_price"`
	Image          string           `json:"image"`
	DeliveredBy    string           `json:"delivered_by"`
	Discount       string           `json:"discount"`
	SKU            string           `json:"sku"`
	Description    string           `json:"description"`
	Specifications Specifications   `json:"specifications"`
	Colors         []string         `json:"colors"`
	Tags           []string         `json:"tags"`
	Slug           string           `json:"slug"`
}

// Detail is the full product with its relations plus the storefront fields.
// Its price fields shadow the decimal ones of the embedded product so they
// serialize as numbers.
type Detail struct {
	*model.Product
	BasePrice          float64        `json:"base_price"`
	OldPrice           *float64       `json:"old_price"`
	Price              float64        `json:"price"`
	NewPrice           float64        `json:"new_price"`
	OldPriceFormatted  string         `json:"old_price_formatted"`
	NewPriceFormatted  string         `json:"new_price_formatted"`
	DiscountPercentage *float64       `json:"discount_percentage"`
	Discount           string         `json:"discount"`
	Rating             string         `json:"rating"`
	ReviewCount        string         `json:"reviewCount"`
	ShopName           string         `json:"shop_name"`
	Image              string         `json:"image"`
	DeliveredBy        string         `json:"delivered_by"`
	Specifications     Specifications `json:"specifications"`
	Colors             []string       `json:"colors"`
	TagsNames          []string       `json:"tags_names"`
}

func ToListing(p *model.Product) Listing {
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return Listing{
		ID:             p.ID,
		StockState:     p.StockState,
		TotalStock:     p.TotalStock,
		Rating:         DefaultRating,
		ReviewCount:    DefaultReviews,
		Title:          p.Title,
		ShopName:       ShopName(p),
		Price:          p.BasePrice.InexactFloat64(),
		OldPrice:       FormatOptionalPrice(p.OldPrice),
		NewPrice:       FormatPrice(p.BasePrice),
		Image:          PrimaryImage(p.Images),
		DeliveredBy:    DeliveredBy,
		Discount:       Discount(p.BasePrice, p.OldPrice),
		SKU:            p.SKU,
		Description:    description,
		Specifications: Specifications{SpecImages: imageURLs(p.Images)},
		Colors:         Colors(p.Variants),
		Tags:           tagNames(p.Tags),
		Slug:           p.Slug,
	}
}

func ToListings(products []model.Product) []Listing {
	out := make([]Listing, 0, len(products))
	for i := range products {
		out = append(out, ToListing(&products[i]))
	}
	return out
}

func ToDetail(p *model.Product) Detail {
	cp := *p
	if cp.Tags == nil {
		cp.Tags = []model.Tag{}
	}
	if cp.Images == nil {
		cp.Images = []model.Image{}
	}
	if cp.Variants == nil {
		cp.Variants = []model.ProductVariant{}
	}

	d := Detail{
		Product:            &cp,
		BasePrice:          p.BasePrice.InexactFloat64(),
		Price:              p.BasePrice.InexactFloat64(),
		NewPrice:           p.BasePrice.InexactFloat64(),
		OldPriceFormatted:  FormatOptionalPrice(p.OldPrice),
		NewPriceFormatted:  FormatPrice(p.BasePrice),
		DiscountPercentage: DiscountPercentage(p.BasePrice, p.OldPrice),
		Discount:           Discount(p.BasePrice, p.OldPrice),
		Rating:             DefaultRating,
		ReviewCount:        DefaultReviews,
		ShopName:           ShopName(p),
		Image:              PrimaryImage(p.Images),
		DeliveredBy:        DeliveredBy,
		Specifications:     Specifications{SpecImages: imageURLs(p.Images)},
		Colors:             Colors(p.Variants),
		TagsNames:          tagNames(p.Tags),
	}
	if p.OldPrice != nil {
		old := p.OldPrice.InexactFloat64()
		d.OldPrice = &old
	}
	return d
}

// FormatPrice renders v followed by "$", keeping one decimal for whole
// amounts: 500 becomes "500.0$" and 79.99 stays "79.99$".
func FormatPrice(v decimal.Decimal) string {
	if v.Equal(v.Truncate(0)) {
		return v.StringFixed(1) + "$"
	}
	return v.String() + "$"
}

func FormatOptionalPrice(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return FormatPrice(*v)
}

// Discount returns "<N>%OFF" with N rounded half to even, or "" unless old > base.
func Discount(base decimal.Decimal, old *decimal.Decimal) string {
	pct, ok := discount(base, old)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d%%OFF", pct.RoundBank(0).IntPart())
}

// DiscountPercentage is the reduction rounded to one decimal, nil unless old > base.
func DiscountPercentage(base decimal.Decimal, old *decimal.Decimal) *float64 {
	pct, ok := discount(base, old)
	if !ok {
		return nil
	}
	v := pct.RoundBank(1).InexactFloat64()
	return &v
}

func discount(base decimal.Decimal, old *decimal.Decimal) (decimal.Decimal, bool) {
	if old == nil || !old.IsPositive() || !old.GreaterThan(base) {
		return decimal.Zero, false
	}
	return old.Sub(base).Div(*old).Mul(hundred), true
}

// PrimaryImage picks the first primary image, then the first image, then "".
func PrimaryImage(images []model.Image) string {
	for _, img := range images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

// Colors lists the values of color attributes across variants.
func Colors(variants []model.ProductVariant) []string {
	var colors []string
	for _, v := range variants {
		a := v.Attribute
		if a == nil || a.AttributeType == nil || !strings.EqualFold(a.AttributeType.Name, "color") {
			continue
		}
		colors = append(colors, a.Value)
	}
	if len(colors) == 0 {
		return []string{DefaultColor}
	}
	return colors
}

func ShopName(p *model.Product) string {
	if p.Shop != nil && p.Shop.Name != "" {
		return p.Shop.Name
	}
	return DefaultShopName
}

func imageURLs(images []model.Image) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return urls
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
