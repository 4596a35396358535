package users

import (
	"time"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Lastname string
	Phone    string
	Company  string
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password *string `gorm:""`

	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`

	Role string `gorm:"type:varchar(20);not null;default:'client';index"`

	// Registration lifecycle, mirrors access.ApprovalStatus values. New
	// accounts start pending and only an admin moves them to approved.
	ApprovalStatus string `gorm:"type:varchar(20);not null;default:'pending';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
