package routes

import (
	adminapi "services-portal/internal/api/admin"
	authapi "services-portal/internal/api/auth"
	catalogapi "services-portal/internal/api/catalog"
	checkoutapi "services-portal/internal/api/checkout"
	contentapi "services-portal/internal/api/content"
	notificationsapi "services-portal/internal/api/notifications"
	paymentsapi "services-portal/internal/api/payments"
	projectsapi "services-portal/internal/api/projects"
	ticketsapi "services-portal/internal/api/tickets"
	usersapi "services-portal/internal/api/users"
	"services-portal/internal/app/http/middleware"
	"services-portal/internal/domain/access"
	"services-portal/internal/infra/observability"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Resolver *access.Resolver
	Auth     *authapi.Handler
	Users    *usersapi.Handler
	Checkout *checkoutapi.Handler
	Metrics  *observability.Metrics
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// Public brochure surface + sign-in. Input sanitization applies to the
	// public write endpoints only.
	public := r.Group("/")
	public.Use(middleware.SanitizePublicInput())

	public.POST("/register", d.Auth.Register)
	public.POST("/login", d.Auth.Login)
	public.POST("/admin/login", d.Auth.Login)

	public.GET("/auth/google", d.Auth.GoogleStart)
	public.GET("/auth/google/callback", d.Auth.GoogleCallback)

	public.GET("/services", contentapi.ListServices)
	public.GET("/blog", contentapi.ListPosts)
	public.GET("/blog/:slug", contentapi.GetPost)
	public.POST("/contact", contentapi.CreateContactMessage)
	public.GET("/categories", catalogapi.ListCategories)
	public.GET("/tiers", catalogapi.ListTiers)

	// Signed in, approval not required: account surface the SPA needs to
	// render the pending placeholder in the first place.
	authed := r.Group("/")
	authed.Use(middleware.OptionalAuth(), middleware.Gate(d.Resolver, false, false))
	authed.GET("/me", d.Users.GetCurrentUser)
	authed.PUT("/me", d.Users.UpdateProfile)
	authed.POST("/change-password", d.Auth.ChangePassword)
	authed.GET("/notifications", notificationsapi.ListMine)
	authed.POST("/notifications/:id/read", notificationsapi.MarkRead)

	// Client dashboard: signed in AND approved.
	client := r.Group("/")
	client.Use(middleware.OptionalAuth(), middleware.RequireApproved(d.Resolver))

	client.GET("/projects", projectsapi.ListMine)
	client.GET("/projects/:id", projectsapi.GetMine)
	client.GET("/projects/:id/quote", d.Checkout.GetQuote)

	client.POST("/checkout", d.Checkout.Start)
	client.GET("/checkout/:id", d.Checkout.GetState)
	client.POST("/checkout/:id/tier", d.Checkout.SelectTier)
	client.POST("/checkout/:id/next", d.Checkout.Next)
	client.POST("/checkout/:id/back", d.Checkout.Back)
	client.POST("/checkout/:id/pay", d.Checkout.Pay)
	client.DELETE("/checkout/:id", d.Checkout.Close)

	client.GET("/payments", paymentsapi.GetPaymentHistory)

	client.POST("/tickets", ticketsapi.Create)
	client.GET("/tickets", ticketsapi.ListMine)
	client.GET("/tickets/:id", ticketsapi.GetMine)

	// Admin dashboard.
	admin := r.Group("/admin")
	admin.Use(middleware.OptionalAuth(), middleware.RequireAdmin(d.Resolver))

	admin.GET("/dashboard", adminapi.Dashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/users/:id", adminapi.GetUserDetails)
	admin.PUT("/users/:id/status", adminapi.SetApprovalStatus)
	admin.GET("/payments", adminapi.ListAllPayments)

	admin.GET("/categories", catalogapi.AdminListCategories)
	admin.POST("/categories", catalogapi.CreateCategory)
	admin.PUT("/categories/:id", catalogapi.UpdateCategory)
	admin.DELETE("/categories/:id", catalogapi.DeleteCategory)
	admin.POST("/categories/:id/toggle", catalogapi.ToggleCategory)

	admin.GET("/tiers", catalogapi.AdminListTiers)
	admin.POST("/tiers", catalogapi.CreateTier)
	admin.PUT("/tiers/:id", catalogapi.UpdateTier)
	admin.DELETE("/tiers/:id", catalogapi.DeleteTier)
	admin.POST("/tiers/:id/toggle", catalogapi.ToggleTier)

	admin.GET("/projects", projectsapi.AdminList)
	admin.POST("/projects", projectsapi.AdminCreate)
	admin.PUT("/projects/:id", projectsapi.AdminUpdate)
	admin.DELETE("/projects/:id", projectsapi.AdminDelete)

	admin.GET("/tickets", ticketsapi.AdminList)
	admin.PUT("/tickets/:id", ticketsapi.AdminUpdate)

	admin.POST("/services", contentapi.CreateService)
	admin.PUT("/services/:id", contentapi.UpdateService)
	admin.DELETE("/services/:id", contentapi.DeleteService)

	admin.POST("/blog", contentapi.CreatePost)
	admin.PUT("/blog/:id", contentapi.UpdatePost)
	admin.DELETE("/blog/:id", contentapi.DeletePost)

	admin.GET("/contact-messages", contentapi.AdminListContactMessages)
}
