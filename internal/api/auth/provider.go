package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"services-portal/database"
	"services-portal/internal/domain/users"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Provider authenticates a credential pair. Two interchangeable
// implementations exist — the real database-backed one and the demo
// fixture — selected once at boot, never interleaved per call.
type Provider interface {
	Authenticate(ctx context.Context, email, password string) (*users.User, error)
}

// DBProvider verifies credentials against the user table.
type DBProvider struct {
	db *gorm.DB
}

func NewDBProvider(db *gorm.DB) *DBProvider {
	return &DBProvider{db: db}
}

func (p *DBProvider) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	var user users.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Password == nil || *user.Password == "" {
		// Google-only account; no local password to compare.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// DemoProvider accepts only the two fixture credential pairs seeded in demo
// mode and resolves them to the seeded rows.
type DemoProvider struct {
	db *gorm.DB
}

func NewDemoProvider(db *gorm.DB) *DemoProvider {
	return &DemoProvider{db: db}
}

func (p *DemoProvider) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	valid := (email == database.DemoClientEmail && password == database.DemoClientPassword) ||
		(email == database.DemoAdminEmail && password == database.DemoAdminPassword)
	if !valid {
		return nil, ErrInvalidCredentials
	}

	var user users.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
