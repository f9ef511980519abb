package dto

import (
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type CategoryFilters struct {
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
}

type CategoryResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description *string            `json:"description"`
	ParentID    *int64             `json:"parent_id"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Children    []CategoryResponse `json:"children"`
}

func NewCategoryResponse(c *model.Category) CategoryResponse {
	res := CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Children:    make([]CategoryResponse, 0, len(c.Children)),
	}
	for i := range c.Children {
		res.Children = append(res.Children, NewCategoryResponse(&c.Children[i]))
	}
	return res
}

func NewCategoryResponses(categories []model.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}
