package checkout_test

import (
	"testing"

	"services-portal/internal/domain/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"sixteen digits grouped in fours", "4111111111111111", "4111 1111 1111 1111"},
		{"non-digits stripped before grouping", "4111-1111 1111abcd1111", "4111 1111 1111 1111"},
		{"more than sixteen digits truncated at 19 chars", "41111111111111112345", "4111 1111 1111 1111"},
		{"partial input", "41112", "4111 2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkout.FormatCardNumber(tt.in))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "122026", checkout.DigitsOnly("12 / 2026"))
	assert.Equal(t, "", checkout.DigitsOnly("abc"))
}

func TestLast4(t *testing.T) {
	assert.Equal(t, "1111", checkout.Last4("4111 1111 1111 1111"))
	assert.Equal(t, "123", checkout.Last4("123"))
}

func TestCardDetailsValidate(t *testing.T) {
	full := checkout.CardDetails{
		Number:      "4111111111111111",
		HolderName:  "Ada Lovelace",
		ExpiryMonth: "12",
		ExpiryYear:  "2027",
		CVV:         "123",
	}
	assert.NoError(t, full.Validate())

	noCVV := full
	noCVV.CVV = ""
	err := noCVV.Validate()
	require.Error(t, err)

	var missing *checkout.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"cvv"}, missing.Fields)

	empty := checkout.CardDetails{}
	err = empty.Validate()
	require.ErrorAs(t, err, &missing)
	assert.Len(t, missing.Fields, 5)
}
