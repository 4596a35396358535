package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"services-portal/internal/domain/checkout"
)

// ChargeRequest describes one charge attempt. Card details pass through to
// the processor and are never retained past the call.
type ChargeRequest struct {
	UserID    uint
	ProjectID uint
	TierKey   string
	Amount    decimal.Decimal
	Card      checkout.CardDetails
}

// Receipt is the processor's answer for a completed charge attempt.
type Receipt struct {
	Reference string
	Status    string
}

// Processor is the payment-gateway seam. Implementations are interchangeable
// and selected once at boot: the simulated processor for development/demo
// and the Stripe-backed one for real charges.
type Processor interface {
	Charge(ctx context.Context, req ChargeRequest) (Receipt, error)
}
