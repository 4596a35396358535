package users

import (
	"net/http"
	"time"

	"services-portal/database"
	"services-portal/internal/domain/access"
	"services-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Resolver *access.Resolver
}

func NewHandler(resolver *access.Resolver) *Handler {
	return &Handler{Resolver: resolver}
}

type meDTO struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Lastname       string    `json:"lastname"`
	Phone          string    `json:"phone"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	IsAdmin        bool      `json:"is_admin"`
	ApprovalStatus string    `json:"approval_status"`
	AuthProvider   string    `json:"auth_provider"`
	CreatedAt      time.Time `json:"created_at"`
}

// GET /me — profile plus the freshly resolved session, so the client's
// gate state follows every auth-state change.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	session := h.Resolver.Resolve(c.Request.Context(), userID)

	c.JSON(http.StatusOK, meDTO{
		ID:             user.ID,
		Name:           user.Name,
		Lastname:       user.Lastname,
		Phone:          user.Phone,
		Company:        user.Company,
		Email:          user.Email,
		Role:           user.Role,
		IsAdmin:        session.IsAdmin,
		ApprovalStatus: string(session.Status),
		AuthProvider:   user.AuthProvider,
		CreatedAt:      user.CreatedAt,
	})
}

// PUT /me — profile fields only; email, role and status are not
// self-service.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		Lastname string `json:"lastname" binding:"required"`
		Phone    string `json:"phone"`
		Company  string `json:"company"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":     input.Name,
		"lastname": input.Lastname,
		"phone":    input.Phone,
		"company":  input.Company,
	}
	if err := database.DB.Model(&users.User{}).Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
