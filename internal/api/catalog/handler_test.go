package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"services-portal/database"
	"services-portal/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func newCatalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/categories", ListCategories)
	r.GET("/tiers", ListTiers)

	r.GET("/admin/categories", AdminListCategories)
	r.POST("/admin/categories", CreateCategory)
	r.PUT("/admin/categories/:id", UpdateCategory)
	r.DELETE("/admin/categories/:id", DeleteCategory)
	r.POST("/admin/categories/:id/toggle", ToggleCategory)

	r.GET("/admin/tiers", AdminListTiers)
	r.POST("/admin/tiers", CreateTier)
	r.PUT("/admin/tiers/:id", UpdateTier)
	r.DELETE("/admin/tiers/:id", DeleteTier)
	r.POST("/admin/tiers/:id/toggle", ToggleTier)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 && json.Valid(w.Body.Bytes()) {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	w, body := doJSON(t, r, http.MethodPost, "/admin/categories",
		`{"name":"Web & Mobile Dev!","base_delivery_days":14,"deposit_percentage":25}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "web-mobile-dev", body["slug"])
	assert.Equal(t, true, body["is_active"])
}

func TestCreateCategoryRejectsEmptySlug(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/admin/categories", `{"name":"!!!"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCategoryClampsFields(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	w, body := doJSON(t, r, http.MethodPost, "/admin/categories",
		`{"name":"Branding","base_delivery_days":0,"deposit_percentage":150}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), body["base_delivery_days"])
	assert.Equal(t, float64(100), body["deposit_percentage"])
}

func TestUpdateCategoryKeepsSlug(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	w, body := doJSON(t, r, http.MethodPost, "/admin/categories", `{"name":"Web Development"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := fmt.Sprint(body["id"])
	require.Equal(t, "web-development", body["slug"])

	w, _ = doJSON(t, r, http.MethodPut, "/admin/categories/"+id,
		`{"name":"App Development","base_delivery_days":7,"deposit_percentage":20}`)
	require.Equal(t, http.StatusOK, w.Code)

	var stored catalog.Category
	require.NoError(t, database.DB.First(&stored, id).Error)
	assert.Equal(t, "App Development", stored.Name)
	assert.Equal(t, "web-development", stored.Slug, "slug is derived on create only")
}

func TestToggleCategoryFlipsVisibility(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	_, body := doJSON(t, r, http.MethodPost, "/admin/categories", `{"name":"Consulting"}`)
	id := fmt.Sprint(body["id"])

	w, _ := doJSON(t, r, http.MethodPost, "/admin/categories/"+id+"/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Hidden from the public list, still present for admins.
	_, _ = doJSON(t, r, http.MethodGet, "/categories", "")
	var publicList []catalog.Category
	require.NoError(t, database.DB.Where("is_active = ?", true).Find(&publicList).Error)
	assert.Empty(t, publicList)

	var all []catalog.Category
	require.NoError(t, database.DB.Find(&all).Error)
	assert.Len(t, all, 1)
}

func TestCreateTierValidation(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/admin/tiers",
		`{"tier_key":"gold","name":"Gold","price_multiplier":"1.5","delivery_multiplier":"0.8"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown tier keys are rejected")

	w, _ = doJSON(t, r, http.MethodPost, "/admin/tiers",
		`{"tier_key":"basic","name":"Basic","price_multiplier":"0","delivery_multiplier":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "zero multiplier is rejected")

	w, _ = doJSON(t, r, http.MethodPost, "/admin/tiers",
		`{"tier_key":"basic","name":"Basic","price_multiplier":"-1","delivery_multiplier":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "negative multiplier is rejected")

	w, body := doJSON(t, r, http.MethodPost, "/admin/tiers",
		`{"tier_key":"Basic ","name":"Basic","price_multiplier":"1.0","delivery_multiplier":"1.0"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "basic", body["tier_key"], "keys are normalized at the boundary")
}

func TestActiveTierKeyUniqueness(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/admin/tiers",
		`{"tier_key":"premium","name":"Premium","price_multiplier":"2.0","delivery_multiplier":"0.5"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/admin/tiers",
		`{"tier_key":"premium","name":"Premium Again","price_multiplier":"2.5","delivery_multiplier":"0.4"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Deactivating the first frees the key; re-activating it is then blocked.
	w, _ = doJSON(t, r, http.MethodPost, "/admin/tiers/1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/admin/tiers",
		`{"tier_key":"premium","name":"Premium Again","price_multiplier":"2.5","delivery_multiplier":"0.4"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/admin/tiers/1/toggle", "")
	assert.Equal(t, http.StatusConflict, w.Code, "re-activation collides with the live key")
}

func TestPublicTierListOrdersAndFilters(t *testing.T) {
	setupDB(t)
	r := newCatalogRouter()

	tiers := []catalog.Tier{
		{TierKey: catalog.TierPremium, Name: "Premium", PriceMultiplier: decimal.NewFromFloat(2), DeliveryMultiplier: decimal.NewFromFloat(0.5), IsActive: true, DisplayOrder: 3},
		{TierKey: catalog.TierBasic, Name: "Basic", PriceMultiplier: decimal.NewFromFloat(1), DeliveryMultiplier: decimal.NewFromFloat(1), IsActive: true, DisplayOrder: 1},
		{TierKey: catalog.TierNormal, Name: "Normal", PriceMultiplier: decimal.NewFromFloat(1.5), DeliveryMultiplier: decimal.NewFromFloat(0.75), IsActive: false, DisplayOrder: 2},
	}
	require.NoError(t, database.DB.Create(&tiers).Error)

	req := httptest.NewRequest(http.MethodGet, "/tiers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "basic", out[0]["tier_key"])
	assert.Equal(t, "premium", out[1]["tier_key"])
}
