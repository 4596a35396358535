package projects

import (
	"net/http"

	"services-portal/database"
	"services-portal/internal/domain/projects"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// GET /projects — the caller's own projects.
func ListMine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []projects.Project
	if err := database.DB.
		Preload("Category").
		Where("client_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /projects/:id
func GetMine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var project projects.Project
	if err := database.DB.
		Preload("Category").
		Where("client_id = ?", userID).
		First(&project, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// ------------------------------
// Admin
// ------------------------------

type projectRequest struct {
	ClientID    uint            `json:"client_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CategoryID  *uint           `json:"category_id"`
	Status      string          `json:"status"`
}

// GET /admin/projects
func AdminList(c *gin.Context) {
	var list []projects.Project
	if err := database.DB.
		Preload("Category").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /admin/projects
func AdminCreate(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TotalAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "total_amount must not be negative"})
		return
	}

	status := req.Status
	if status == "" {
		status = projects.StatusPending
	}
	if !projects.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown project status"})
		return
	}

	project := projects.Project{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		CategoryID:  req.CategoryID,
		Status:      status,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// PUT /admin/projects/:id — status transitions are admin-driven and
// unconstrained within the enum.
func AdminUpdate(c *gin.Context) {
	var project projects.Project
	if err := database.DB.First(&project, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TotalAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "total_amount must not be negative"})
		return
	}
	if req.Status != "" && !projects.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown project status"})
		return
	}

	updates := map[string]interface{}{
		"client_id":    req.ClientID,
		"title":        req.Title,
		"description":  req.Description,
		"total_amount": req.TotalAmount,
		"category_id":  req.CategoryID,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := database.DB.Model(&project).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, project)
}

// DELETE /admin/projects/:id
func AdminDelete(c *gin.Context) {
	result := database.DB.Delete(&projects.Project{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
