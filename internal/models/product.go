package models

import "gorm.io/gorm"

// Product represents an item in the inventory catalog.
//
// DescriptionAI and CategoryAI are machine-generated at creation time (or
// later by the enrichment retry worker) and may be empty. OwnerID is set once
// at creation and never changes.
type Product struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,min=3,max=100"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	SerialNumber  string  `json:"serialNumber" gorm:"uniqueIndex;type:varchar(30)" validate:"required,alphanum,min=3,max=30"`
	DescriptionAI string  `json:"descriptionAI" validate:"omitempty,max=500"`
	CategoryAI    string  `json:"categoryAI" validate:"omitempty,max=100"`
	ImageURL      string  `json:"imageUrl"`
	OwnerID       string  `json:"-" gorm:"index;type:varchar(36)"`
	Owner         *User   `json:"-" gorm:"foreignKey:OwnerID"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
