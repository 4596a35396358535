package middleware

import (
	"fmt"
	"net/http"
	"net/url"

	"services-portal/internal/domain/access"

	"github.com/gin-gonic/gin"
)

// Gate translates the pure routing decision into HTTP: render passes
// through, redirects carry the attempted path in ?next= for the post-login
// return, and the not-approved placeholder is a 403 with the literal status.
func Gate(resolver *access.Resolver, requireAdmin, requireApproved bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := access.View{}

		if principalID := c.GetUint("user_id"); principalID != 0 {
			view.Authenticated = true
			session := resolver.Resolve(c.Request.Context(), principalID)
			view.IsAdmin = session.IsAdmin
			view.Status = session.Status

			c.Set("is_admin", session.IsAdmin)
			c.Set("approval_status", string(session.Status))
		}

		decision := access.Decide(view, requireAdmin, requireApproved)
		switch decision.Kind {
		case access.DecideRender:
			c.Next()

		case access.DecideRedirect:
			target := decision.To + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()

		case access.DecidePending:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"approval_status": string(decision.Status),
				"message":         fmt.Sprintf("Your account is %s. Access opens once an administrator approves it.", decision.Status),
			})

		default:
			// DecideLoading cannot occur server-side; the resolver has
			// already completed by the time we decide.
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}

// RequireApproved gates client dashboard routes.
func RequireApproved(resolver *access.Resolver) gin.HandlerFunc {
	return Gate(resolver, false, true)
}

// RequireAdmin gates admin routes. Approval is still required; admin
// accounts are provisioned approved.
func RequireAdmin(resolver *access.Resolver) gin.HandlerFunc {
	return Gate(resolver, true, true)
}
