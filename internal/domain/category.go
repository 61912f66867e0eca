package domain

import "time"

// Catalog module related models

// Category groups articles in the catalog. Deleting a category removes its
// articles and, transitively, any cart items referencing them.
type Category struct {
	ID        int64     `json:"id,string" form:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" form:"name" gorm:"size:200;not null;index"`
	Articles  []Article `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}
