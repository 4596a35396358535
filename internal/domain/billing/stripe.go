package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
)

var decimalHundred = decimal.NewFromInt(100)

// StripeProcessor charges through Stripe PaymentIntents. Raw card data is
// never forwarded: the intent is created server-side and confirmed by the
// client against Stripe directly, keeping the card out of this process's
// PCI scope.
type StripeProcessor struct {
	Key      string
	Currency string
}

func NewStripeProcessor(key string) *StripeProcessor {
	return &StripeProcessor{Key: key, Currency: string(stripe.CurrencyEUR)}
}

func (p *StripeProcessor) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	if p.Key == "" {
		return Receipt{}, fmt.Errorf("stripe key not configured")
	}
	stripe.Key = p.Key

	// Stripe amounts are integer minor units.
	cents := req.Amount.Mul(decimalHundred).Round(0).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(p.Currency),
		Metadata: map[string]string{
			"user_id":    fmt.Sprint(req.UserID),
			"project_id": fmt.Sprint(req.ProjectID),
			"tier_key":   req.TierKey,
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{
		Reference: intent.ID,
		Status:    NormalizeIntentStatus(string(intent.Status)),
	}, nil
}

// NormalizeIntentStatus folds Stripe's PaymentIntent statuses into the
// portal's payment statuses.
func NormalizeIntentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "succeeded":
		return PaymentPaid
	case "processing", "requires_payment_method", "requires_confirmation", "requires_action":
		return PaymentPending
	case "canceled":
		return PaymentFailed
	default:
		return PaymentPending
	}
}
