package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/server/request"
	"github.com/fekuna/omnipos-catalog-service/internal/server/response"
	"github.com/fekuna/omnipos-catalog-service/internal/tag"
	"github.com/fekuna/omnipos-catalog-service/internal/tag/dto"
)

type TagHandler struct {
	uc     tag.UseCase
	logger logger.ZapLogger
}

func NewTagHandler(uc tag.UseCase, log logger.ZapLogger) *TagHandler {
	return &TagHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *TagHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/tags")
	g.GET("", h.ListTags)
	g.GET("/popular", h.GetPopular)
	g.GET("/slug/:slug", h.GetTagBySlug)
	g.GET("/:id", h.GetTag)
	g.POST("", h.CreateTag)
	g.PUT("/:id", h.UpdateTag)
	g.DELETE("/:id", h.DeleteTag)
}

func (h *TagHandler) ListTags(c *gin.Context) {
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

	tags, err := h.uc.ListTags(c.Request.Context(), &dto.TagFilters{
		Search:     c.Query("search"),
		ActiveOnly: activeOnly,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, tags)
}

func (h *TagHandler) GetPopular(c *gin.Context) {
	limit, err := request.Int(c, "limit", request.DefaultLimit)
	if err != nil {
		response.Invalid(c, err)
		return
	}

	tags, err := h.uc.GetPopularTags(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	t, err := h.uc.GetTag(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if t == nil {
		response.NotFound(c, "Tag not found")
		return
	}
	response.OK(c, t)
}

func (h *TagHandler) GetTagBySlug(c *gin.Context) {
	t, err := h.uc.GetTagBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if t == nil {
		response.NotFound(c, "Tag not found")
		return
	}
	response.OK(c, t)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var input dto.CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	t, err := h.uc.CreateTag(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, t)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	var input dto.UpdateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Invalid(c, err)
		return
	}

	t, err := h.uc.UpdateTag(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if t == nil {
		response.NotFound(c, "Tag not found")
		return
	}
	response.OK(c, t)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := request.ID(c, "id")
	if err != nil {
		response.Invalid(c, err)
		return
	}

	deleted, err := h.uc.DeleteTag(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if !deleted {
		response.NotFound(c, "Tag not found")
		return
	}
	response.NoContent(c)
}
