package database

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"services-portal/internal/domain/access"
	"services-portal/internal/domain/catalog"
	"services-portal/internal/domain/users"
)

// Demo credential pairs. A deliberate design seam for demos, never a
// security boundary; demo mode must not be enabled in production.
const (
	DemoClientEmail    = "client@demo.local"
	DemoClientPassword = "client-demo-1234"
	DemoAdminEmail     = "admin@demo.local"
	DemoAdminPassword  = "admin-demo-1234"
)

// SeedDemoData populates the in-memory store with the two fixture accounts
// and a small catalog so every screen has data.
func SeedDemoData(db *gorm.DB) error {
	for _, fixture := range []struct {
		name, lastname, email, password, role string
	}{
		{"Demo", "Client", DemoClientEmail, DemoClientPassword, users.RoleClient},
		{"Demo", "Admin", DemoAdminEmail, DemoAdminPassword, users.RoleAdmin},
	} {
		hashed, err := bcrypt.GenerateFromPassword([]byte(fixture.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash := string(hashed)
		user := users.User{
			Name:           fixture.name,
			Lastname:       fixture.lastname,
			Email:          fixture.email,
			Password:       &hash,
			AuthProvider:   "local",
			Role:           fixture.role,
			ApprovalStatus: string(access.StatusApproved),
		}
		if err := db.Where("email = ?", fixture.email).FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}

	categories := []catalog.Category{
		{Name: "Web Development", Slug: "web-development", BaseDeliveryDays: 30, DepositPercentage: 50, DisplayOrder: 1, IsActive: true},
		{Name: "Mobile Apps", Slug: "mobile-apps", BaseDeliveryDays: 45, DepositPercentage: 40, DisplayOrder: 2, IsActive: true},
		{Name: "Cloud & DevOps", Slug: "cloud-devops", BaseDeliveryDays: 20, DepositPercentage: 60, DisplayOrder: 3, IsActive: true},
	}
	for i := range categories {
		if err := db.Where("slug = ?", categories[i].Slug).FirstOrCreate(&categories[i]).Error; err != nil {
			return err
		}
	}

	tiers := []catalog.Tier{
		{
			TierKey:            catalog.TierBasic,
			Name:               "Basic",
			PriceMultiplier:    decimal.NewFromFloat(1.0),
			DeliveryMultiplier: decimal.NewFromFloat(1.0),
			Features:           []string{"core implementation", "email support"},
			DisplayOrder:       1,
			IsActive:           true,
		},
		{
			TierKey:            catalog.TierNormal,
			Name:               "Normal",
			PriceMultiplier:    decimal.NewFromFloat(1.5),
			DeliveryMultiplier: decimal.NewFromFloat(0.75),
			Features:           []string{"core implementation", "priority email support", "one revision round"},
			DisplayOrder:       2,
			IsActive:           true,
		},
		{
			TierKey:            catalog.TierPremium,
			Name:               "Premium",
			PriceMultiplier:    decimal.NewFromFloat(2.0),
			DeliveryMultiplier: decimal.NewFromFloat(0.5),
			Features:           []string{"core implementation", "dedicated support", "unlimited revisions", "post-launch maintenance"},
			DisplayOrder:       3,
			IsActive:           true,
		},
	}
	for i := range tiers {
		if err := db.Where("tier_key = ?", tiers[i].TierKey).FirstOrCreate(&tiers[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
