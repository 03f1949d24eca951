package models

import "gorm.io/gorm"

// User represents an account that owns products.
//
// The product list is not stored on the user row: it is the association
// derived from Product.OwnerID, so it never drifts out of sync with the
// products table.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string    `json:"name" validate:"required"`
	UserName     string    `json:"userName" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // Never serialized to clients
	Products     []Product `json:"products" gorm:"foreignKey:OwnerID"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
