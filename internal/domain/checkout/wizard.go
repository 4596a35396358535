package checkout

import "errors"

// Step names the two states of the checkout wizard.
type Step string

const (
	StepChoosingTier    Step = "choosing_tier"
	StepEnteringPayment Step = "entering_payment"
)

var (
	ErrNoTierSelected = errors.New("no tier selected")
	ErrWrongStep      = errors.New("not in the payment step")
)

// Wizard tracks the two-step order flow: tier choice, then payment details.
// Selecting a tier is required to advance; going back keeps the selection.
// A closed wizard is discarded by its owner, so reopening always starts a
// fresh one with no selection.
type Wizard struct {
	step     Step
	tierKey  string
	selected bool
}

func NewWizard() *Wizard {
	return &Wizard{step: StepChoosingTier}
}

func (w *Wizard) Step() Step {
	return w.step
}

// SelectTier records the chosen tier key. Only meaningful while choosing.
func (w *Wizard) SelectTier(tierKey string) {
	w.tierKey = tierKey
	w.selected = true
}

// SelectedTier returns the chosen tier key, if any.
func (w *Wizard) SelectedTier() (string, bool) {
	return w.tierKey, w.selected
}

// Next advances to the payment step. Fails when no tier is selected, which
// also covers the empty-catalog case where nothing could be selected.
func (w *Wizard) Next() error {
	if !w.selected {
		return ErrNoTierSelected
	}
	w.step = StepEnteringPayment
	return nil
}

// Back returns to tier choice without clearing the selection.
func (w *Wizard) Back() {
	w.step = StepChoosingTier
}

// RequirePayment guards submission: paying is only valid from the payment
// step with a selected tier.
func (w *Wizard) RequirePayment() error {
	if w.step != StepEnteringPayment {
		return ErrWrongStep
	}
	if !w.selected {
		return ErrNoTierSelected
	}
	return nil
}
