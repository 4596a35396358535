package catalog_test

import (
	"testing"

	"services-portal/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand and punctuation collapse", "Web & Mobile Dev!", "web-mobile-dev"},
		{"plain name", "Cloud Hosting", "cloud-hosting"},
		{"already slug-like", "it-consulting", "it-consulting"},
		{"leading and trailing junk trimmed", "  --Security Audits--  ", "security-audits"},
		{"digits kept", "24/7 Support", "24-7-support"},
		{"only punctuation yields empty", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.MakeSlug(tt.in))
		})
	}
}

func TestNormalizeTierKey(t *testing.T) {
	key, ok := catalog.NormalizeTierKey("  Premium ")
	assert.True(t, ok)
	assert.Equal(t, catalog.TierPremium, key)

	_, ok = catalog.NormalizeTierKey("platinum")
	assert.False(t, ok)

	_, ok = catalog.NormalizeTierKey("")
	assert.False(t, ok)
}

func TestClamps(t *testing.T) {
	assert.Equal(t, 1, catalog.ClampDeliveryDays(0))
	assert.Equal(t, 1, catalog.ClampDeliveryDays(-3))
	assert.Equal(t, 45, catalog.ClampDeliveryDays(45))

	assert.Equal(t, 0, catalog.ClampDepositPercentage(-10))
	assert.Equal(t, 100, catalog.ClampDepositPercentage(120))
	assert.Equal(t, 50, catalog.ClampDepositPercentage(50))
}
