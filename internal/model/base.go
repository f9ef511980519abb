package model

import "time"

type BaseModel struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (b BaseModel) PrimaryKey() int64 {
	return b.ID
}
