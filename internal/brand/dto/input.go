package dto

type CreateBrandInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        *string `json:"slug" validate:"omitnil,max=100"`
	LogoURL     *string `json:"logo_url" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateBrandInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitnil,max=100"`
	LogoURL     *string `json:"logo_url" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
