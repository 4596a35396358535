package checkout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"services-portal/database"
	"services-portal/internal/domain/billing"
	"services-portal/internal/domain/catalog"
	"services-portal/internal/domain/notifications"
	"services-portal/internal/domain/projects"
	"services-portal/internal/domain/users"
	"services-portal/internal/infra/observability"
	"services-portal/internal/infra/sessions"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

func seedCheckoutFixtures(t *testing.T) {
	t.Helper()

	user := users.User{Name: "Ada", Lastname: "Client", Email: "ada@example.com", Role: users.RoleClient, ApprovalStatus: "approved"}
	require.NoError(t, database.DB.Create(&user).Error)

	project := projects.Project{
		ClientID:    user.ID,
		Title:       "Company Website",
		TotalAmount: decimal.NewFromInt(1000),
		Status:      projects.StatusInProgress,
	}
	require.NoError(t, database.DB.Create(&project).Error)

	tiers := []catalog.Tier{
		{TierKey: catalog.TierBasic, Name: "Basic", PriceMultiplier: decimal.NewFromFloat(1.0), DeliveryMultiplier: decimal.NewFromFloat(1.0), IsActive: true, DisplayOrder: 1},
		{TierKey: catalog.TierPremium, Name: "Premium", PriceMultiplier: decimal.NewFromFloat(2.0), DeliveryMultiplier: decimal.NewFromFloat(0.5), IsActive: true, DisplayOrder: 3},
	}
	require.NoError(t, database.DB.Create(&tiers).Error)
}

func newCheckoutRouter(t *testing.T, userID uint) (*Handler, *gin.Engine) {
	t.Helper()

	h := NewHandler(
		sessions.NewStore(time.Minute),
		&billing.SimulatedProcessor{Delay: time.Millisecond},
		observability.NewMetrics(),
		zap.NewNop(),
	)
	t.Cleanup(h.Sessions.Close)
	return h, routerFor(h, userID)
}

func routerFor(h *Handler, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})

	r.GET("/projects/:id/quote", h.GetQuote)
	r.POST("/checkout", h.Start)
	r.GET("/checkout/:id", h.GetState)
	r.POST("/checkout/:id/tier", h.SelectTier)
	r.POST("/checkout/:id/next", h.Next)
	r.POST("/checkout/:id/back", h.Back)
	r.POST("/checkout/:id/pay", h.Pay)
	r.DELETE("/checkout/:id", h.Close)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestGetQuotePricesEveryActiveTier(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	_, r := newCheckoutRouter(t, 1)

	w, body := doJSON(t, r, http.MethodGet, "/projects/1/quote", "")
	require.Equal(t, http.StatusOK, w.Code)

	tiers, ok := body["tiers"].([]interface{})
	require.True(t, ok)
	require.Len(t, tiers, 2)

	byKey := map[string]map[string]interface{}{}
	for _, raw := range tiers {
		entry := raw.(map[string]interface{})
		byKey[entry["tier_key"].(string)] = entry
	}

	assert.Equal(t, "1000", fmt.Sprint(byKey["basic"]["price"]))
	assert.Equal(t, "2000", fmt.Sprint(byKey["premium"]["price"]))
	assert.Equal(t, float64(30), byKey["basic"]["delivery_days"])
	assert.Equal(t, float64(15), byKey["premium"]["delivery_days"])
}

func TestQuoteRejectsForeignProject(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	_, r := newCheckoutRouter(t, 99)

	w, _ := doJSON(t, r, http.MethodGet, "/projects/1/quote", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardFullFlow(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	_, r := newCheckoutRouter(t, 1)

	w, body := doJSON(t, r, http.MethodPost, "/checkout", `{"project_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := body["checkout_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "choosing_tier", body["step"])

	// Advancing with nothing selected is refused.
	w, _ = doJSON(t, r, http.MethodPost, "/checkout/"+id+"/next", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = doJSON(t, r, http.MethodPost, "/checkout/"+id+"/tier", `{"tier_key":"premium"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "premium", body["selected_tier"])

	w, body = doJSON(t, r, http.MethodPost, "/checkout/"+id+"/next", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "entering_payment", body["step"])

	// Going back keeps the selection.
	w, body = doJSON(t, r, http.MethodPost, "/checkout/"+id+"/back", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "choosing_tier", body["step"])
	assert.Equal(t, "premium", body["selected_tier"])

	w, _ = doJSON(t, r, http.MethodPost, "/checkout/"+id+"/next", "")
	require.Equal(t, http.StatusOK, w.Code)

	card := `{"card_number":"4242 4242 4242 4242","holder_name":"Ada Client","expiry_month":"12","expiry_year":"27","cvv":"123"}`
	w, body = doJSON(t, r, http.MethodPost, "/checkout/"+id+"/pay", card)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", body["status"])
	assert.NotEmpty(t, body["reference"])
	assert.Equal(t, "2000", fmt.Sprint(body["amount"]))

	var payment billing.Payment
	require.NoError(t, database.DB.First(&payment).Error)
	assert.Equal(t, "premium", payment.TierKey)
	assert.Equal(t, "4242", payment.CardLast4)
	assert.True(t, decimal.NewFromInt(2000).Equal(payment.Amount))

	var project projects.Project
	require.NoError(t, database.DB.First(&project, 1).Error)
	require.NotNil(t, project.TierKey)
	assert.Equal(t, "premium", *project.TierKey)

	// One notification per successful charge.
	var note notifications.Notification
	require.NoError(t, database.DB.Where("user_id = ?", 1).First(&note).Error)
	assert.Equal(t, notifications.KindPayment, note.Kind)
	assert.Contains(t, note.Message, "Company Website")

	// Session is torn down after a successful payment.
	w, _ = doJSON(t, r, http.MethodGet, "/checkout/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayRejectsIncompleteCard(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	_, r := newCheckoutRouter(t, 1)

	_, body := doJSON(t, r, http.MethodPost, "/checkout", `{"project_id":1}`)
	id := body["checkout_id"].(string)
	doJSON(t, r, http.MethodPost, "/checkout/"+id+"/tier", `{"tier_key":"basic"}`)
	doJSON(t, r, http.MethodPost, "/checkout/"+id+"/next", "")

	card := `{"card_number":"4242424242424242","holder_name":"Ada Client","expiry_month":"12","expiry_year":"27","cvv":""}`
	w, resp := doJSON(t, r, http.MethodPost, "/checkout/"+id+"/pay", card)
	require.Equal(t, http.StatusBadRequest, w.Code)

	missing := resp["missing_fields"].([]interface{})
	assert.Contains(t, missing, "cvv")

	var count int64
	database.DB.Model(&billing.Payment{}).Count(&count)
	assert.Zero(t, count, "no payment row is written for a rejected form")

	// The wizard stays open on the payment step.
	w, resp = doJSON(t, r, http.MethodGet, "/checkout/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "entering_payment", resp["step"])
}

func TestPayRequiresPaymentStep(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	_, r := newCheckoutRouter(t, 1)

	_, body := doJSON(t, r, http.MethodPost, "/checkout", `{"project_id":1}`)
	id := body["checkout_id"].(string)

	card := `{"card_number":"4242424242424242","holder_name":"Ada Client","expiry_month":"12","expiry_year":"27","cvv":"123"}`
	w, _ := doJSON(t, r, http.MethodPost, "/checkout/"+id+"/pay", card)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCloseDiscardsSession(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	_, r := newCheckoutRouter(t, 1)

	_, body := doJSON(t, r, http.MethodPost, "/checkout", `{"project_id":1}`)
	id := body["checkout_id"].(string)
	doJSON(t, r, http.MethodPost, "/checkout/"+id+"/tier", `{"tier_key":"basic"}`)

	w, _ := doJSON(t, r, http.MethodDelete, "/checkout/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/checkout/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Reopening starts fresh with no selection.
	w, body = doJSON(t, r, http.MethodPost, "/checkout", `{"project_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "choosing_tier", body["step"])
	_, state := doJSON(t, r, http.MethodGet, "/checkout/"+body["checkout_id"].(string), "")
	_, hasSelection := state["selected_tier"]
	assert.False(t, hasSelection)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	h, owner := newCheckoutRouter(t, 1)

	_, body := doJSON(t, owner, http.MethodPost, "/checkout", `{"project_id":1}`)
	id := body["checkout_id"].(string)

	// Same handler (and session store), different principal.
	intruder := routerFor(h, 2)
	w, _ := doJSON(t, intruder, http.MethodGet, "/checkout/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, intruder, http.MethodPost, "/checkout/"+id+"/tier", `{"tier_key":"basic"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConcurrentPayChargesOnce(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)

	// A slow processor widens the window in which a second submission could
	// slip in before the first finishes.
	h := NewHandler(
		sessions.NewStore(time.Minute),
		&billing.SimulatedProcessor{Delay: 50 * time.Millisecond},
		observability.NewMetrics(),
		zap.NewNop(),
	)
	t.Cleanup(h.Sessions.Close)
	r := routerFor(h, 1)

	_, body := doJSON(t, r, http.MethodPost, "/checkout", `{"project_id":1}`)
	id := body["checkout_id"].(string)
	doJSON(t, r, http.MethodPost, "/checkout/"+id+"/tier", `{"tier_key":"premium"}`)
	doJSON(t, r, http.MethodPost, "/checkout/"+id+"/next", "")

	card := `{"card_number":"4242424242424242","holder_name":"Ada Client","expiry_month":"12","expiry_year":"27","cvv":"123"}`

	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/checkout/"+id+"/pay", strings.NewReader(card))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	// Exactly one submission owns the session; the other finds it gone.
	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusNotFound}, codes)

	var count int64
	database.DB.Model(&billing.Payment{}).Count(&count)
	assert.Equal(t, int64(1), count, "one checkout session yields one charge")
}

func TestPayValidationFailureKeepsSessionOpen(t *testing.T) {
	setupDB(t)
	seedCheckoutFixtures(t)
	_, r := newCheckoutRouter(t, 1)

	_, body := doJSON(t, r, http.MethodPost, "/checkout", `{"project_id":1}`)
	id := body["checkout_id"].(string)
	doJSON(t, r, http.MethodPost, "/checkout/"+id+"/tier", `{"tier_key":"basic"}`)
	doJSON(t, r, http.MethodPost, "/checkout/"+id+"/next", "")

	card := `{"card_number":"","holder_name":"Ada Client","expiry_month":"12","expiry_year":"27","cvv":"123"}`
	w, _ := doJSON(t, r, http.MethodPost, "/checkout/"+id+"/pay", card)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The rejected submission releases its claim; a corrected retry succeeds.
	card = `{"card_number":"4242424242424242","holder_name":"Ada Client","expiry_month":"12","expiry_year":"27","cvv":"123"}`
	w, resp := doJSON(t, r, http.MethodPost, "/checkout/"+id+"/pay", card)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", resp["status"])
}
