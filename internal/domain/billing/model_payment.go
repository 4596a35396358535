package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"services-portal/internal/domain/projects"
	"services-portal/internal/domain/users"
)

const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

type Payment struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"not null;index" json:"user_id"`
	User      users.User        `json:"-"`
	ProjectID uint              `gorm:"not null;index" json:"project_id"`
	Project   *projects.Project `json:"project,omitempty"`

	TierKey string          `gorm:"type:varchar(20);not null" json:"tier_key"`
	Amount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status  string          `gorm:"type:varchar(20);not null;index" json:"status"`

	// Processor reference (uuid for the simulated processor, PaymentIntent
	// id for Stripe). Only the last four card digits are ever stored.
	Reference string `gorm:"uniqueIndex" json:"reference"`
	CardLast4 string `gorm:"type:varchar(4)" json:"card_last4"`

	CreatedAt time.Time `json:"created_at"`
}
