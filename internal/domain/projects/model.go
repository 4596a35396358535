package projects

import (
	"time"

	"github.com/shopspring/decimal"

	"services-portal/internal/domain/catalog"
	"services-portal/internal/domain/users"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is a known project status. Transitions are
// admin-driven and otherwise unconstrained.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Project struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	ClientID uint       `gorm:"not null;index" json:"client_id"`
	Client   users.User `gorm:"foreignKey:ClientID" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`

	CategoryID *uint             `gorm:"index" json:"category_id,omitempty"`
	Category   *catalog.Category `json:"category,omitempty"`

	// Selected tier key; set by a completed checkout.
	TierKey *string `gorm:"type:varchar(20)" json:"tier_key,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
