package model

type Tag struct {
	BaseModel
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

func (Tag) TableName() string { return "tags" }

type Image struct {
	BaseModel
	URL       string  `db:"url" json:"url"`
	AltText   *string `db:"alt_text" json:"alt_text"`
	IsPrimary bool    `db:"is_primary" json:"is_primary"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
}

type AttributeType struct {
	BaseModel
	Name       string `db:"name" json:"name"`
	Slug       string `db:"slug" json:"slug"`
	InputType  string `db:"input_type" json:"input_type"`
	IsRequired bool   `db:"is_required" json:"is_required"`
	IsActive   bool   `db:"is_active" json:"is_active"`
}

type Attribute struct {
	BaseModel
	AttributeTypeID int64          `db:"attribute_type_id" json:"attribute_type_id"`
	Value           string         `db:"value" json:"value"`
	Slug            string         `db:"slug" json:"slug"`
	HexColor        *string        `db:"hex_color" json:"hex_color"`
	SortOrder       int            `db:"sort_order" json:"sort_order"`
	IsActive        bool           `db:"is_active" json:"is_active"`
	AttributeType   *AttributeType `db:"-" json:"attribute_type,omitempty"`
}
