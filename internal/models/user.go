package models

import (
	"time"
)

// User is an account that can sign in to the API. Stored directly through
// GORM rather than the record-store boundary.
type User struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"-" gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
