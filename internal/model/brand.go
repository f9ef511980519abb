package model

type Brand struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Slug        string  `db:"slug" json:"slug"`
	LogoURL     *string `db:"logo_url" json:"logo_url"`
	Description *string `db:"description" json:"description"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

func (Brand) TableName() string { return "brands" }

type Shop struct {
	BaseModel
	Name         string  `db:"name" json:"name"`
	Slug         string  `db:"slug" json:"slug"`
	Description  *string `db:"description" json:"description"`
	ContactEmail *string `db:"contact_email" json:"contact_email"`
	ContactPhone *string `db:"contact_phone" json:"contact_phone"`
	Address      *string `db:"address" json:"address"`
	IsActive     bool    `db:"is_active" json:"is_active"`
}

func (Shop) TableName() string { return "shops" }
