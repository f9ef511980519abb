package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/server/request"
	"github.com/fekuna/omnipos-catalog-service/internal/server/response"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.GET("", h.ListCategories)
	g.GET("/tree", h.GetTree)
	g.GET("/roots", h.GetRoots)
	g.GET("/slug/:slug", h.GetCategoryBySlug)
	g.GET("/:id", h.GetCategory)
	g.GET("/:id/children", h.GetChildren)
	g.POST("", h.CreateCategory)
	g.PUT("/:id", h.UpdateCategory)
	g.DELETE("/:id", h.DeleteCategory)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
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

	categories, err := h.uc.ListCategories(c.Request.Context(), &dto.CategoryFilters{
		Search:     c.Query("search"),
		ActiveOnly: activeOnly,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, dto.NewCategoryResponses(categories))
}

func (h *CategoryHandler) GetTree(c *gin.Context) {
	tree, err := h.uc.GetTree(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, dto.NewCategoryResponses(tree))
}

func (h *CategoryHandler) GetRoots(c *gin.Context) {
	roots, err := h.uc.GetRootCategories(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, dto.NewCategoryResponses(roots))
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if cat == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, dto.NewCategoryResponse(cat))
}

func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	cat, err := h.uc.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if cat == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, dto.NewCategoryResponse(cat))
}

func (h *CategoryHandler) GetChildren(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	children, err := h.uc.GetChildren(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, dto.NewCategoryResponses(children))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, dto.NewCategoryResponse(cat))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	var input dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if cat == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, dto.NewCategoryResponse(cat))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	deleted, err := h.uc.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if !deleted {
		response.NotFound(c, fmt.Sprintf("Category %d not found", id))
		return
	}
	response.NoContent(c)
}
