package checkout

import (
	"fmt"
	"strings"
)

// maxFormattedCardLen caps the formatted card number at 19 characters:
// sixteen digits in four space-separated groups.
const maxFormattedCardLen = 19

// DigitsOnly strips everything but ASCII digits. Applied to card number,
// expiry month/year and CVV as the user types.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber strips non-digits and groups the result into blocks of
// four, truncated at 19 formatted characters. No Luhn or BIN validation is
// performed here.
func FormatCardNumber(raw string) string {
	digits := DigitsOnly(raw)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	formatted := b.String()
	if len(formatted) > maxFormattedCardLen {
		formatted = formatted[:maxFormattedCardLen]
	}
	return formatted
}

// Last4 returns the last four digits of a card number for receipts. The
// full number is never persisted or logged.
func Last4(number string) string {
	digits := DigitsOnly(number)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// CardDetails is the checkout form input. It exists only for the lifetime
// of a wizard session.
type CardDetails struct {
	Number      string `json:"card_number"`
	HolderName  string `json:"holder_name"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

// MissingFieldsError lists which required form fields were empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate checks that all five fields are non-empty. Expiry and CVV carry
// no range validation; digit filtering happens at input time.
func (d CardDetails) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Number) == "" {
		missing = append(missing, "card_number")
	}
	if strings.TrimSpace(d.HolderName) == "" {
		missing = append(missing, "holder_name")
	}
	if strings.TrimSpace(d.ExpiryMonth) == "" {
		missing = append(missing, "expiry_month")
	}
	if strings.TrimSpace(d.ExpiryYear) == "" {
		missing = append(missing, "expiry_year")
	}
	if strings.TrimSpace(d.CVV) == "" {
		missing = append(missing, "cvv")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
