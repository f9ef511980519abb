package model

type Category struct {
	BaseModel
	Name        string     `db:"name" json:"name"`
	Slug        string     `db:"slug" json:"slug"`
	Description *string    `db:"description" json:"description"`
	ParentID    *int64     `db:"parent_id" json:"parent_id"` // Nullable
	IsActive    bool       `db:"is_active" json:"is_active"`
	Children    []Category `db:"-" json:"children,omitempty"` // Populated by tree queries only
}

func (Category) TableName() string { return "categories" }
