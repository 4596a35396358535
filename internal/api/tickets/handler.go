package tickets

import (
	"net/http"

	"services-portal/database"
	"services-portal/internal/domain/tickets"

	"github.com/gin-gonic/gin"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// POST /tickets
func Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		Subject  string `json:"subject" binding:"required"`
		Message  string `json:"message" binding:"required"`
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = tickets.PriorityNormal
	}
	if !tickets.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown priority"})
		return
	}

	ticket := tickets.Ticket{
		ClientID: userID,
		Subject:  input.Subject,
		Message:  input.Message,
		Status:   tickets.StatusOpen,
		Priority: priority,
	}
	if err := database.DB.Create(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// GET /tickets
func ListMine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []tickets.Ticket
	if err := database.DB.
		Where("client_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /tickets/:id
func GetMine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var ticket tickets.Ticket
	if err := database.DB.
		Where("client_id = ?", userID).
		First(&ticket, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GET /admin/tickets
func AdminList(c *gin.Context) {
	var list []tickets.Ticket
	if err := database.DB.
		Preload("Client").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /admin/tickets/:id — status/priority updates only.
func AdminUpdate(c *gin.Context) {
	var ticket tickets.Ticket
	if err := database.DB.First(&ticket, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}

	var input struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Status != "" {
		if !tickets.ValidStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		updates["status"] = input.Status
	}
	if input.Priority != "" {
		if !tickets.ValidPriority(input.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown priority"})
			return
		}
		updates["priority"] = input.Priority
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&ticket).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ticket)
}
