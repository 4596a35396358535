package catalog

import "time"

// Category classifies projects and carries the pricing knobs admins edit:
// the base delivery estimate and the upfront deposit percentage.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"not null;uniqueIndex:idx_categories_slug" json:"slug"`
	Description string `json:"description"`

	BaseDeliveryDays  int `gorm:"not null;default:30" json:"base_delivery_days"`
	DepositPercentage int `gorm:"not null;default:50" json:"deposit_percentage"`

	IsActive     bool `gorm:"not null;default:true;index" json:"is_active"`
	DisplayOrder int  `gorm:"not null;default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClampDeliveryDays enforces the input-time minimum of one day.
func ClampDeliveryDays(days int) int {
	if days < 1 {
		return 1
	}
	return days
}

// ClampDepositPercentage keeps the deposit within 0..100.
func ClampDepositPercentage(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
