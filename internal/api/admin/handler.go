package admin

import (
	"fmt"
	"net/http"
	"time"

	"services-portal/database"
	"services-portal/internal/domain/access"
	"services-portal/internal/domain/billing"
	"services-portal/internal/domain/notifications"
	"services-portal/internal/domain/projects"
	"services-portal/internal/domain/tickets"
	"services-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Lastname       string    `json:"lastname"`
	Phone          string    `json:"phone"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status"`
	AuthProvider   string    `json:"auth_provider"`
	CreatedAt      time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalClients     int     `json:"total_clients"`
	PendingApprovals int     `json:"pending_approvals"`
	OpenTickets      int     `json:"open_tickets"`
	ActiveProjects   int     `json:"active_projects"`
	TotalRevenue     float64 `json:"total_revenue"`
	RecentRevenue    float64 `json:"recent_revenue"`
}

func toAdminUser(u users.User) AdminUser {
	return AdminUser{
		ID:             u.ID,
		Name:           u.Name,
		Lastname:       u.Lastname,
		Phone:          u.Phone,
		Company:        u.Company,
		Email:          u.Email,
		Role:           u.Role,
		ApprovalStatus: u.ApprovalStatus,
		AuthProvider:   u.AuthProvider,
		CreatedAt:      u.CreatedAt,
	}
}

// GET /admin/dashboard
func Dashboard(c *gin.Context) {
	var stats AdminStats

	var totalClients, pendingApprovals, openTickets, activeProjects int64
	database.DB.Model(&users.User{}).Where("role = ?", users.RoleClient).Count(&totalClients)
	database.DB.Model(&users.User{}).
		Where("approval_status = ?", string(access.StatusPending)).Count(&pendingApprovals)
	database.DB.Model(&tickets.Ticket{}).
		Where("status IN ?", []string{tickets.StatusOpen, tickets.StatusInProgress}).Count(&openTickets)
	database.DB.Model(&projects.Project{}).
		Where("status = ?", projects.StatusInProgress).Count(&activeProjects)

	database.DB.Model(&billing.Payment{}).
		Where("status = ?", billing.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", billing.PaymentPaid, thirtyDaysAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.RecentRevenue)

	stats.TotalClients = int(totalClients)
	stats.PendingApprovals = int(pendingApprovals)
	stats.OpenTickets = int(openTickets)
	stats.ActiveProjects = int(activeProjects)

	c.JSON(http.StatusOK, stats)
}

// GET /admin/users
func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(list))
	for _, u := range list {
		out = append(out, toAdminUser(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /admin/users/:id — profile plus the account's projects and payments.
func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var userProjects []projects.Project
	if err := database.DB.Preload("Category").
		Where("client_id = ?", userID).Find(&userProjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	var userPayments []billing.Payment
	if err := database.DB.Preload("Project").
		Where("user_id = ?", userID).Find(&userPayments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     toAdminUser(user),
		"projects": userProjects,
		"payments": userPayments,
	})
}

// PUT /admin/users/:id/status — the approval decision. Moves an account
// between pending/approved/rejected/suspended and notifies the client.
func SetApprovalStatus(c *gin.Context) {
	var user users.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := access.ApprovalStatus(input.Status)
	if !access.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown approval status"})
		return
	}

	if err := database.DB.Model(&user).
		Update("approval_status", string(status)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	database.DB.Create(&notifications.Notification{
		UserID:  user.ID,
		Kind:    notifications.KindApproval,
		Message: fmt.Sprintf("Your account status changed to %s.", status),
	})

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "approval_status": string(status)})
}

// GET /admin/payments
func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := database.DB.
		Preload("User").
		Preload("Project").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}
