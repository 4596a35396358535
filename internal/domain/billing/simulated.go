package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const defaultProcessingDelay = 2 * time.Second

// SimulatedProcessor mimics a gateway round-trip with a fixed artificial
// delay and an unconditional success. It performs no real I/O, so no
// timeout or retry semantics apply beyond context cancellation.
type SimulatedProcessor struct {
	Delay time.Duration
}

func NewSimulatedProcessor() *SimulatedProcessor {
	return &SimulatedProcessor{Delay: defaultProcessingDelay}
}

func (p *SimulatedProcessor) Charge(ctx context.Context, _ ChargeRequest) (Receipt, error) {
	delay := p.Delay
	if delay <= 0 {
		delay = defaultProcessingDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	case <-timer.C:
	}

	return Receipt{
		Reference: uuid.NewString(),
		Status:    PaymentPaid,
	}, nil
}
