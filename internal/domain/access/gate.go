package access

const (
	LoginPath      = "/login"
	AdminLoginPath = "/admin/login"
)

// Decide is the routing gate. It is a pure function of the view and the
// route requirements; rules are evaluated in order:
//
//  1. still loading: neutral loading state, no redirect
//  2. no principal: redirect to the admin login for admin routes, else the
//     client login
//  3. principal present but not admin on an admin route: redirect to the
//     CLIENT login (asymmetric on purpose, matching the product behavior)
//  4. approval required and status not approved: placeholder with the
//     literal status, no redirect
//  5. render
func Decide(view View, requireAdmin, requireApproved bool) Decision {
	if view.Loading {
		return Decision{Kind: DecideLoading}
	}

	if !view.Authenticated {
		to := LoginPath
		if requireAdmin {
			to = AdminLoginPath
		}
		return Decision{Kind: DecideRedirect, To: to}
	}

	if requireAdmin && !view.IsAdmin {
		return Decision{Kind: DecideRedirect, To: LoginPath}
	}

	if requireApproved && view.Status != StatusApproved {
		return Decision{Kind: DecidePending, Status: view.Status}
	}

	return Decision{Kind: DecideRender}
}
