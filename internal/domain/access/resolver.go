package access

import (
	"context"

	"go.uber.org/zap"
)

// Authority answers the two capability questions about a principal. Each
// check can fail independently of the other.
type Authority interface {
	HasAdminRole(ctx context.Context, principalID uint) (bool, error)
	RegistrationStatus(ctx context.Context, principalID uint) (ApprovalStatus, error)
}

// Resolver derives the session view of an authenticated principal. Both
// checks fail closed: an unavailable authority can never grant access, only
// deny it. There are no retries; a failed check resolves immediately with
// the closed fallback.
type Resolver struct {
	authority Authority
	log       *zap.Logger
}

func NewResolver(authority Authority, log *zap.Logger) *Resolver {
	return &Resolver{authority: authority, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, principalID uint) Session {
	isAdmin, err := r.authority.HasAdminRole(ctx, principalID)
	if err != nil {
		r.log.Warn("admin role check failed, resolving as non-admin",
			zap.Uint("principal_id", principalID),
			zap.Error(err))
		isAdmin = false
	}

	status, err := r.authority.RegistrationStatus(ctx, principalID)
	if err != nil {
		// Fail closed: pending denies every approval-gated surface while
		// still rendering the account as signed in.
		r.log.Warn("registration status check failed, resolving as pending",
			zap.Uint("principal_id", principalID),
			zap.Error(err))
		status = StatusPending
	}

	return Session{IsAdmin: isAdmin, Status: status}
}
