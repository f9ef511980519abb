package dto

type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        *string `json:"slug" validate:"omitnil,max=100"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parent_id" validate:"omitnil,gt=0"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCategoryInput is a partial update; nil fields are left untouched.
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitnil,max=100"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parent_id" validate:"omitnil,gt=0"`
	IsActive    *bool   `json:"is_active"`
}
