// Package authority answers the role and registration-status capability
// checks against the relational store. Each check runs behind its own
// circuit breaker so a struggling database short-circuits to the caller's
// fail-closed fallback instead of piling up queries.
package authority

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"gorm.io/gorm"

	"services-portal/internal/domain/access"
	"services-portal/internal/domain/users"
)

type GormAuthority struct {
	db            *gorm.DB
	adminBreaker  *gobreaker.CircuitBreaker
	statusBreaker *gobreaker.CircuitBreaker
}

func NewGormAuthority(db *gorm.DB) *GormAuthority {
	return &GormAuthority{
		db:            db,
		adminBreaker:  newBreaker("authority-admin-role"),
		statusBreaker: newBreaker("authority-registration-status"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

func (a *GormAuthority) HasAdminRole(ctx context.Context, principalID uint) (bool, error) {
	out, err := a.adminBreaker.Execute(func() (interface{}, error) {
		var user users.User
		if err := a.db.WithContext(ctx).Select("role").First(&user, principalID).Error; err != nil {
			return false, err
		}
		return user.Role == users.RoleAdmin, nil
	})
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}

func (a *GormAuthority) RegistrationStatus(ctx context.Context, principalID uint) (access.ApprovalStatus, error) {
	out, err := a.statusBreaker.Execute(func() (interface{}, error) {
		var user users.User
		if err := a.db.WithContext(ctx).Select("approval_status").First(&user, principalID).Error; err != nil {
			return access.ApprovalStatus(""), err
		}
		return access.ApprovalStatus(user.ApprovalStatus), nil
	})
	if err != nil {
		return "", err
	}
	return out.(access.ApprovalStatus), nil
}
