package tickets

import (
	"time"

	"services-portal/internal/domain/users"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

type Ticket struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	ClientID uint       `gorm:"not null;index" json:"client_id"`
	Client   users.User `gorm:"foreignKey:ClientID" json:"-"`

	Subject  string `gorm:"not null" json:"subject"`
	Message  string `gorm:"not null" json:"message"`
	Status   string `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Priority string `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
