package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/transform"
	"github.com/fekuna/omnipos-catalog-service/internal/server/request"
	"github.com/fekuna/omnipos-catalog-service/internal/server/response"
)

const totalCountHeader = "X-Total-Count"

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/products")
	g.GET("", h.ListProducts)
	g.GET("/featured", h.GetFeatured)
	g.GET("/search", h.SearchProducts)
	g.GET("/slug/:slug", h.GetProductBySlug)
	g.GET("/sku/:sku", h.GetProductBySKU)
	g.GET("/category/:id", h.GetByCategory)
	g.GET("/brand/:id", h.GetByBrand)
	g.GET("/:id", h.GetProduct)
	g.POST("", h.CreateProduct)
	g.PUT("/:id", h.UpdateProduct)
	g.DELETE("/:id", h.DeleteProduct)
	g.PATCH("/:id/stock", h.UpdateStock)
	g.POST("/:id/stock/decrease", h.DecreaseStock)
	g.POST("/:id/stock/increase", h.IncreaseStock)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Header(totalCountHeader, strconv.Itoa(total))
	response.OK(c, transform.ToListings(products))
}

func (h *ProductHandler) GetFeatured(c *gin.Context) {
	limit, err := request.Int(c, "limit", request.DefaultLimit)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	products, err := h.uc.GetFeaturedProducts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, transform.ToListings(products))
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Invalid(c, errors.New("q is required"))
		return
	}
	offset, limit, err := request.Pagination(c)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	products, err := h.uc.SearchProducts(c.Request.Context(), q, offset, limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, transform.ToListings(products))
}

func (h *ProductHandler) GetByCategory(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	offset, limit, err := request.Pagination(c)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	products, err := h.uc.GetProductsByCategory(c.Request.Context(), id, offset, limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, transform.ToListings(products))
}

func (h *ProductHandler) GetByBrand(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	offset, limit, err := request.Pagination(c)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	products, err := h.uc.GetProductsByBrand(c.Request.Context(), id, offset, limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, transform.ToListings(products))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	p, err := h.uc.GetProduct(c.Request.Context(), id)
	h.detail(c, p, err)
}

func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	p, err := h.uc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	h.detail(c, p, err)
}

func (h *ProductHandler) GetProductBySKU(c *gin.Context) {
	p, err := h.uc.GetProductBySKU(c.Request.Context(), c.Param("sku"))
	h.detail(c, p, err)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input dto.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, transform.ToDetail(p))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), id, &input)
	h.detail(c, p, err)
}

// DeleteProduct removes the row, or only deactivates it with ?soft=true.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	soft, err := request.Bool(c, "soft", false)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	var deleted bool
	if soft {
		deleted, err = h.uc.SoftDeleteProduct(c.Request.Context(), id)
	} else {
		deleted, err = h.uc.DeleteProduct(c.Request.Context(), id)
	}
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if !deleted {
		response.NotFound(c, fmt.Sprintf("Product %d not found", id))
		return
	}
	response.NoContent(c)
}

func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}
	if _, ok := c.GetQuery("quantity"); !ok {
		response.Invalid(c, errors.New("quantity is required"))
		return
	}
	quantity, err := request.Int(c, "quantity", 0)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	p, err := h.uc.UpdateStock(c.Request.Context(), id, quantity)
	h.stock(c, p, err)
}

func (h *ProductHandler) DecreaseStock(c *gin.Context) {
	h.changeStock(c, h.uc.DecreaseStock)
}

func (h *ProductHandler) IncreaseStock(c *gin.Context) {
	h.changeStock(c, h.uc.IncreaseStock)
}

type stockFunc func(ctx context.Context, id int64, quantity int) (*model.Product, error)

func (h *ProductHandler) changeStock(c *gin.Context, apply stockFunc) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	var input dto.StockChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	p, err := apply(c.Request.Context(), id, input.Quantity)
	h.stock(c, p, err)
}

func (h *ProductHandler) detail(c *gin.Context, p *model.Product, err error) {
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if p == nil {
		response.NotFound(c, "Product not found")
		return
	}
	response.OK(c, transform.ToDetail(p))
}

func (h *ProductHandler) stock(c *gin.Context, p *model.Product, err error) {
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if p == nil {
		response.NotFound(c, "Product not found")
		return
	}
	response.OK(c, dto.NewStockResponse(p))
}

func parseFilters(c *gin.Context) (*dto.ProductFilters, error) {
	offset, limit, err := request.Pagination(c)
	if err != nil {
		return nil, err
	}
	f := &dto.ProductFilters{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
		Offset:    offset,
		Limit:     limit,
	}

	if f.CategoryID, err = request.OptionalInt64(c, "category_id"); err != nil {
		return nil, err
	}
	if f.BrandID, err = request.OptionalInt64(c, "brand_id"); err != nil {
		return nil, err
	}
	if f.MinPrice, err = request.OptionalDecimal(c, "min_price"); err != nil {
		return nil, err
	}
	if f.MaxPrice, err = request.OptionalDecimal(c, "max_price"); err != nil {
		return nil, err
	}
	if f.InStock, err = request.Bool(c, "in_stock", false); err != nil {
		return nil, err
	}
	if f.Featured, err = request.OptionalBool(c, "featured"); err != nil {
		return nil, err
	}
	if raw := c.Query("stock_state"); raw != "" {
		state := model.StockState(raw)
		if !state.Valid() {
			return nil, errors.Errorf("stock_state must be one of Available, OutOfStock, Discontinued")
		}
		f.StockState = &state
	}
	return f, nil
}
