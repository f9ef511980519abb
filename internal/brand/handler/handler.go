package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-catalog-service/internal/brand"
	"github.com/fekuna/omnipos-catalog-service/internal/brand/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/server/request"
	"github.com/fekuna/omnipos-catalog-service/internal/server/response"
)

type BrandHandler struct {
	uc     brand.UseCase
	logger logger.ZapLogger
}

func NewBrandHandler(uc brand.UseCase, log logger.ZapLogger) *BrandHandler {
	return &BrandHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *BrandHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/brands")
	g.GET("", h.ListBrands)
	g.GET("/popular", h.GetPopular)
	g.GET("/slug/:slug", h.GetBrandBySlug)
	g.GET("/:id", h.GetBrand)
	g.POST("", h.CreateBrand)
	g.PUT("/:id", h.UpdateBrand)
	g.DELETE("/:id", h.DeleteBrand)
}

func (h *BrandHandler) ListBrands(c *gin.Context) {
	offset, limit, err := request.Pagination(c)
	if err != nil {
		response.Invalid(c, err)
		return
	}
	activeOnly, err := request.Bool(c, "active_only", true)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	brands, err := h.uc.ListBrands(c.Request.Context(), &dto.BrandFilters{
		Search:     c.Query("search"),
		ActiveOnly: activeOnly,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, brands)
}

func (h *BrandHandler) GetPopular(c *gin.Context) {
	limit, err := request.Int(c, "limit", request.DefaultLimit)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	brands, err := h.uc.GetPopularBrands(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, brands)
}

func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	b, err := h.uc.GetBrand(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if b == nil {
		response.NotFound(c, "Brand not found")
		return
	}
	response.OK(c, b)
}

func (h *BrandHandler) GetBrandBySlug(c *gin.Context) {
	b, err := h.uc.GetBrandBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if b == nil {
		response.NotFound(c, "Brand not found")
		return
	}
	response.OK(c, b)
}

func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var input dto.CreateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	b, err := h.uc.CreateBrand(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, b)
}

func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	var input dto.UpdateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	b, err := h.uc.UpdateBrand(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if b == nil {
		response.NotFound(c, "Brand not found")
		return
	}
	response.OK(c, b)
}

func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	deleted, err := h.uc.DeleteBrand(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if !deleted {
		response.NotFound(c, "Brand not found")
		return
	}
	response.NoContent(c)
}
