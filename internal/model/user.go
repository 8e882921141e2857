package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"
	RoleUser  = "USER"
)

// User is the minimal principal record. Credentials and token issuance live
// in the identity service, not here.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Role      string         `json:"role" gorm:"not null;index"` // "ADMIN", "OWNER", "USER"
	Location  string         `json:"location,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
