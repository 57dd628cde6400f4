package models

import "time"

// Roles recognized by the authorization checks.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents a user of the store.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role      string    `json:"role" gorm:"type:varchar(20);default:customer" validate:"omitempty,oneof=admin customer"`
	Image     *string   `json:"image"` // profile image path, nil until one is uploaded
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
