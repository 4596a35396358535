package catalog

import (
	"net/http"

	"services-portal/database"
	"services-portal/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ------------------------------
// Public reads
// ------------------------------

// GET /categories — active categories in display order.
func ListCategories(c *gin.Context) {
	var categories []catalog.Category
	if err := database.DB.
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /tiers — active tiers in display order.
func ListTiers(c *gin.Context) {
	var tiers []catalog.Tier
	if err := database.DB.
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&tiers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tiers"})
		return
	}
	c.JSON(http.StatusOK, tiers)
}

// ------------------------------
// Admin: categories
// ------------------------------

type categoryRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	BaseDeliveryDays  int    `json:"base_delivery_days"`
	DepositPercentage int    `json:"deposit_percentage"`
	DisplayOrder      int    `json:"display_order"`
}

// GET /admin/categories — includes inactive entries for the editor.
func AdminListCategories(c *gin.Context) {
	var categories []catalog.Category
	if err := database.DB.Order("display_order ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// POST /admin/categories — slug is derived from the name here and only here.
func CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := catalog.MakeSlug(req.Name)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name yields an empty slug"})
		return
	}

	category := catalog.Category{
		Name:              req.Name,
		Slug:              slug,
		Description:       req.Description,
		BaseDeliveryDays:  catalog.ClampDeliveryDays(req.BaseDeliveryDays),
		DepositPercentage: catalog.ClampDepositPercentage(req.DepositPercentage),
		DisplayOrder:      req.DisplayOrder,
		IsActive:          true,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// PUT /admin/categories/:id — never re-derives the slug from name edits.
func UpdateCategory(c *gin.Context) {
	var category catalog.Category
	if err := database.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":               req.Name,
		"description":        req.Description,
		"base_delivery_days": catalog.ClampDeliveryDays(req.BaseDeliveryDays),
		"deposit_percentage": catalog.ClampDepositPercentage(req.DepositPercentage),
		"display_order":      req.DisplayOrder,
	}

	if err := database.DB.Model(&category).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// DELETE /admin/categories/:id
func DeleteCategory(c *gin.Context) {
	result := database.DB.Delete(&catalog.Category{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// POST /admin/categories/:id/toggle
func ToggleCategory(c *gin.Context) {
	var category catalog.Category
	if err := database.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if err := database.DB.Model(&category).
		Update("is_active", !category.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// ------------------------------
// Admin: tiers
// ------------------------------

type tierRequest struct {
	TierKey            string          `json:"tier_key" binding:"required"`
	Name               string          `json:"name" binding:"required"`
	PriceMultiplier    decimal.Decimal `json:"price_multiplier"`
	DeliveryMultiplier decimal.Decimal `json:"delivery_multiplier"`
	Features           []string        `json:"features"`
	DisplayOrder       int             `json:"display_order"`
}

func (r *tierRequest) validate() (string, string) {
	key, ok := catalog.NormalizeTierKey(r.TierKey)
	if !ok {
		return "", "tier_key must be one of: basic, normal, premium"
	}
	if !r.PriceMultiplier.IsPositive() {
		return "", "price_multiplier must be strictly positive"
	}
	if !r.DeliveryMultiplier.IsPositive() {
		return "", "delivery_multiplier must be strictly positive"
	}
	return key, ""
}

// activeTierKeyTaken enforces "tier key unique among active tiers".
func activeTierKeyTaken(key string, excludeID uint) bool {
	var count int64
	database.DB.Model(&catalog.Tier{}).
		Where("tier_key = ? AND is_active = ? AND id <> ?", key, true, excludeID).
		Count(&count)
	return count > 0
}

// GET /admin/tiers
func AdminListTiers(c *gin.Context) {
	var tiers []catalog.Tier
	if err := database.DB.Order("display_order ASC").Find(&tiers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tiers"})
		return
	}
	c.JSON(http.StatusOK, tiers)
}

// POST /admin/tiers
func CreateTier(c *gin.Context) {
	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, problem := req.validate()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	if activeTierKeyTaken(key, 0) {
		c.JSON(http.StatusConflict, gin.H{"error": "An active tier with this key already exists"})
		return
	}

	tier := catalog.Tier{
		TierKey:            key,
		Name:               req.Name,
		PriceMultiplier:    req.PriceMultiplier,
		DeliveryMultiplier: req.DeliveryMultiplier,
		Features:           req.Features,
		DisplayOrder:       req.DisplayOrder,
		IsActive:           true,
	}

	if err := database.DB.Create(&tier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tier)
}

// PUT /admin/tiers/:id
func UpdateTier(c *gin.Context) {
	var tier catalog.Tier
	if err := database.DB.First(&tier, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tier not found"})
		return
	}

	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, problem := req.validate()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	if tier.IsActive && activeTierKeyTaken(key, tier.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "An active tier with this key already exists"})
		return
	}

	tier.TierKey = key
	tier.Name = req.Name
	tier.PriceMultiplier = req.PriceMultiplier
	tier.DeliveryMultiplier = req.DeliveryMultiplier
	tier.Features = req.Features
	tier.DisplayOrder = req.DisplayOrder

	if err := database.DB.Save(&tier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tier)
}

// DELETE /admin/tiers/:id
func DeleteTier(c *gin.Context) {
	result := database.DB.Delete(&catalog.Tier{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tier not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tier deleted"})
}

// POST /admin/tiers/:id/toggle — re-activating checks key uniqueness among
// active tiers.
func ToggleTier(c *gin.Context) {
	var tier catalog.Tier
	if err := database.DB.First(&tier, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tier not found"})
		return
	}

	if !tier.IsActive && activeTierKeyTaken(tier.TierKey, tier.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "An active tier with this key already exists"})
		return
	}

	if err := database.DB.Model(&tier).Update("is_active", !tier.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tier)
}
