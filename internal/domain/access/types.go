package access

// ApprovalStatus is the registration lifecycle flag gating client dashboards.
// It is distinct from authentication: a signed-in principal can still be
// pending, rejected or suspended.
type ApprovalStatus string

const (
	StatusPending   ApprovalStatus = "pending"
	StatusApproved  ApprovalStatus = "approved"
	StatusRejected  ApprovalStatus = "rejected"
	StatusSuspended ApprovalStatus = "suspended"
)

// ValidStatus reports whether s is one of the known approval statuses.
func ValidStatus(s ApprovalStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// Session is the resolved view of a signed-in principal.
type Session struct {
	IsAdmin bool           `json:"is_admin"`
	Status  ApprovalStatus `json:"approval_status"`
}

// View is the full input tuple the gate decides on. Loading covers the
// window between sign-in and resolver completion.
type View struct {
	Loading       bool
	Authenticated bool
	IsAdmin       bool
	Status        ApprovalStatus
}

type DecisionKind int

const (
	DecideLoading DecisionKind = iota
	DecideRender
	DecideRedirect
	DecidePending
)

// Decision is the gate outcome: render the protected content, redirect to a
// login surface (the caller preserves the attempted path), or show the
// not-approved placeholder carrying the literal status.
type Decision struct {
	Kind   DecisionKind
	To     string
	Status ApprovalStatus
}
