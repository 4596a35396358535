package content

import (
	"net/http"
	"time"

	"services-portal/database"
	"services-portal/internal/domain/catalog"
	"services-portal/internal/domain/content"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// Public
// ------------------------------

// GET /services
func ListServices(c *gin.Context) {
	var services []content.Service
	if err := database.DB.
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load services"})
		return
	}
	c.JSON(http.StatusOK, services)
}

// GET /blog — published posts only.
func ListPosts(c *gin.Context) {
	var posts []content.BlogPost
	if err := database.DB.
		Where("published_at IS NOT NULL").
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GET /blog/:slug
func GetPost(c *gin.Context) {
	var post content.BlogPost
	if err := database.DB.
		Where("slug = ? AND published_at IS NOT NULL", c.Param("slug")).
		First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// POST /contact
func CreateContactMessage(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := content.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for reaching out. We will get back to you shortly."})
}

// ------------------------------
// Admin
// ------------------------------

type serviceRequest struct {
	Name         string `json:"name" binding:"required"`
	Summary      string `json:"summary"`
	Body         string `json:"body"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

func validIcon(icon string) bool {
	return icon == "" || content.AllowedIcons[icon]
}

// POST /admin/services
func CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validIcon(req.Icon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown icon"})
		return
	}

	service := content.Service{
		Name:         req.Name,
		Slug:         catalog.MakeSlug(req.Name),
		Summary:      req.Summary,
		Body:         req.Body,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, service)
}

// PUT /admin/services/:id
func UpdateService(c *gin.Context) {
	var service content.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validIcon(req.Icon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown icon"})
		return
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"summary":       req.Summary,
		"body":          req.Body,
		"icon":          req.Icon,
		"display_order": req.DisplayOrder,
	}
	if err := database.DB.Model(&service).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, service)
}

// DELETE /admin/services/:id
func DeleteService(c *gin.Context) {
	result := database.DB.Delete(&content.Service{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

type postRequest struct {
	Title   string `json:"title" binding:"required"`
	Excerpt string `json:"excerpt"`
	Body    string `json:"body"`
	Publish bool   `json:"publish"`
}

// POST /admin/blog
func CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := content.BlogPost{
		AuthorID: c.GetUint("user_id"),
		Title:    req.Title,
		Slug:     catalog.MakeSlug(req.Title),
		Excerpt:  req.Excerpt,
		Body:     req.Body,
	}
	if req.Publish {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// PUT /admin/blog/:id
func UpdatePost(c *gin.Context) {
	var post content.BlogPost
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":   req.Title,
		"excerpt": req.Excerpt,
		"body":    req.Body,
	}
	if req.Publish && post.PublishedAt == nil {
		updates["published_at"] = time.Now()
	}

	if err := database.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

// DELETE /admin/blog/:id
func DeletePost(c *gin.Context) {
	result := database.DB.Delete(&content.BlogPost{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// GET /admin/contact-messages
func AdminListContactMessages(c *gin.Context) {
	var messages []content.ContactMessage
	if err := database.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
