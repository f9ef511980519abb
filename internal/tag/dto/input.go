package dto

type CreateTagInput struct {
	Name     string  `json:"name" validate:"required,max=50"`
	Slug     *string `json:"slug" validate:"omitnil,max=50"`
	IsActive *bool   `json:"is_active"`
}

type UpdateTagInput struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=50"`
	Slug     *string `json:"slug" validate:"omitnil,max=50"`
	IsActive *bool   `json:"is_active"`
}
