package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tier key constants (single source of truth).
const (
	TierBasic   = "basic"
	TierNormal  = "normal"
	TierPremium = "premium"
)

// Tier is a named service package. Its multipliers scale a project's base
// amount and the delivery baseline; both must be strictly positive.
type Tier struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	TierKey string `gorm:"type:varchar(20);not null;index" json:"tier_key"`
	Name    string `gorm:"not null" json:"name"`

	PriceMultiplier    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price_multiplier"`
	DeliveryMultiplier decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"delivery_multiplier"`

	Features []string `gorm:"serializer:json" json:"features"`

	IsActive     bool `gorm:"not null;default:true;index" json:"is_active"`
	DisplayOrder int  `gorm:"not null;default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeTierKey lower-cases and trims a tier key and reports whether it
// is one of the allowed values. Unknown keys are rejected at the boundary,
// never defaulted.
func NormalizeTierKey(s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case TierBasic, TierNormal, TierPremium:
		return key, true
	}
	return "", false
}
