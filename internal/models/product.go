package models

import "time"

// Product represents a catalog product.
//
// gorm.Model is deliberately not embedded: its DeletedAt column would make
// GORM hide soft-deleted rows from every query, but a soft-deleted product
// must stay retrievable by ID. Deletion state is the explicit IsDeleted
// flag instead.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductName string    `json:"product_name" gorm:"type:varchar(200)"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Image       *string   `json:"image"` // nil when no upload was attached
	Brand       string    `json:"brand" gorm:"type:varchar(100)"`
	Category    string    `json:"category" gorm:"type:varchar(100);index"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductInput is the request payload for creating or updating a product.
// It carries exactly the editable fields; every one of them is written on
// update, so a field omitted from the payload ends up as its zero value.
type ProductInput struct {
	ProductName string  `json:"product_name" form:"product_name" validate:"required"`
	Description string  `json:"description" form:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" form:"price"`
	Stock       int     `json:"stock" form:"stock"`
	Image       *string `json:"image" form:"image"`
	Brand       string  `json:"brand" form:"brand"`
	Category    string  `json:"category" form:"category"`
}

// CategoryAll disables the category filter when used as ListFilter.Category.
const CategoryAll = "All"

// ListFilter holds the listing query parameters after defaults are applied.
type ListFilter struct {
	Limit    int
	Skip     int
	Category string
	Query    string
}
