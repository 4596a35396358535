package checkout

import (
	"github.com/shopspring/decimal"

	"services-portal/internal/domain/catalog"
)

// deliveryBaselineDays is a flat baseline applied to every tier's delivery
// multiplier, independent of a category's BaseDeliveryDays. Kept as the
// single knob should product ever decide estimates must follow the category.
const deliveryBaselineDays = 30

// Price derives the display price for a tier: totalAmount × priceMultiplier,
// exact decimal arithmetic, no rounding before presentation.
func Price(totalAmount, priceMultiplier decimal.Decimal) decimal.Decimal {
	return totalAmount.Mul(priceMultiplier)
}

// DeliveryDays derives the delivery estimate: round(30 × deliveryMultiplier).
func DeliveryDays(deliveryMultiplier decimal.Decimal) int {
	return int(decimal.NewFromInt(deliveryBaselineDays).
		Mul(deliveryMultiplier).
		Round(0).
		IntPart())
}

// TierQuote is one priced row of the tier-selection step.
type TierQuote struct {
	TierKey      string          `json:"tier_key"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDays int             `json:"delivery_days"`
	Features     []string        `json:"features"`
}

// BuildQuote prices every tier against the project's base amount. An empty
// tier catalog yields an empty quote; the wizard cannot advance from it.
// A missing amount is treated as zero.
func BuildQuote(totalAmount decimal.Decimal, tiers []catalog.Tier) []TierQuote {
	quotes := make([]TierQuote, 0, len(tiers))
	for _, t := range tiers {
		quotes = append(quotes, TierQuote{
			TierKey:      t.TierKey,
			Name:         t.Name,
			Price:        Price(totalAmount, t.PriceMultiplier),
			DeliveryDays: DeliveryDays(t.DeliveryMultiplier),
			Features:     t.Features,
		})
	}
	return quotes
}
