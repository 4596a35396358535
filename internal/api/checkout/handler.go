package checkout

import (
	"errors"
	"fmt"
	"net/http"

	"services-portal/database"
	"services-portal/internal/domain/billing"
	"services-portal/internal/domain/catalog"
	"services-portal/internal/domain/checkout"
	"services-portal/internal/domain/notifications"
	"services-portal/internal/domain/projects"
	"services-portal/internal/infra/observability"
	"services-portal/internal/infra/sessions"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Sessions  *sessions.Store
	Processor billing.Processor
	Metrics   *observability.Metrics
	Log       *zap.Logger
}

func NewHandler(store *sessions.Store, processor billing.Processor, metrics *observability.Metrics, log *zap.Logger) *Handler {
	return &Handler{Sessions: store, Processor: processor, Metrics: metrics, Log: log}
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func ownedProject(c *gin.Context, userID uint, projectID interface{}) (*projects.Project, bool) {
	var project projects.Project
	if err := database.DB.Where("client_id = ?", userID).First(&project, projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, false
	}
	return &project, true
}

func activeTiers() ([]catalog.Tier, error) {
	var tiers []catalog.Tier
	err := database.DB.
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&tiers).Error
	return tiers, err
}

// session fetches the checkout session and verifies the caller owns it.
func (h *Handler) session(c *gin.Context, userID uint) (*sessions.Checkout, string, bool) {
	id := c.Param("id")
	cs, ok := h.Sessions.Get(id)
	if !ok || cs.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
		return nil, "", false
	}
	return cs, id, true
}

// GET /projects/:id/quote — every active tier priced against the project.
func (h *Handler) GetQuote(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	project, ok := ownedProject(c, userID, c.Param("id"))
	if !ok {
		return
	}

	tiers, err := activeTiers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tiers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id":   project.ID,
		"total_amount": project.TotalAmount,
		"tiers":        checkout.BuildQuote(project.TotalAmount, tiers),
	})
}

// POST /checkout — opens a wizard for a project. Reopening after a close
// always lands here again, so the flow restarts with nothing selected.
func (h *Handler) Start(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var body struct {
		ProjectID uint `json:"project_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, ok := ownedProject(c, userID, body.ProjectID)
	if !ok {
		return
	}

	id := h.Sessions.Create(&sessions.Checkout{
		UserID:    userID,
		ProjectID: project.ID,
		Wizard:    checkout.NewWizard(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"checkout_id": id,
		"step":        checkout.StepChoosingTier,
	})
}

// GET /checkout/:id
func (h *Handler) GetState(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	cs, _, ok := h.session(c, userID)
	if !ok {
		return
	}

	cs.Lock()
	defer cs.Unlock()

	resp := gin.H{"step": cs.Wizard.Step()}
	if key, selected := cs.Wizard.SelectedTier(); selected {
		resp["selected_tier"] = key
	}
	c.JSON(http.StatusOK, resp)
}

// POST /checkout/:id/tier
func (h *Handler) SelectTier(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	cs, _, ok := h.session(c, userID)
	if !ok {
		return
	}

	var body struct {
		TierKey string `json:"tier_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, valid := catalog.NormalizeTierKey(body.TierKey)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tier key"})
		return
	}

	var tier catalog.Tier
	if err := database.DB.Where("tier_key = ? AND is_active = ?", key, true).
		First(&tier).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tier not available"})
		return
	}

	cs.Lock()
	cs.Wizard.SelectTier(key)
	step := cs.Wizard.Step()
	cs.Unlock()

	c.JSON(http.StatusOK, gin.H{"step": step, "selected_tier": key})
}

// POST /checkout/:id/next
func (h *Handler) Next(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	cs, _, ok := h.session(c, userID)
	if !ok {
		return
	}

	cs.Lock()
	err := cs.Wizard.Next()
	step := cs.Wizard.Step()
	cs.Unlock()

	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Select a tier before continuing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

// POST /checkout/:id/back — selection survives the back-transition.
func (h *Handler) Back(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	cs, _, ok := h.session(c, userID)
	if !ok {
		return
	}

	cs.Lock()
	cs.Wizard.Back()
	resp := gin.H{"step": cs.Wizard.Step()}
	if key, selected := cs.Wizard.SelectedTier(); selected {
		resp["selected_tier"] = key
	}
	cs.Unlock()

	c.JSON(http.StatusOK, resp)
}

// DELETE /checkout/:id — closing discards the session and everything in it.
func (h *Handler) Close(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	_, id, ok := h.session(c, userID)
	if !ok {
		return
	}

	h.Sessions.Delete(id)
	c.JSON(http.StatusOK, gin.H{"message": "Checkout discarded"})
}

// POST /checkout/:id/pay — validates the form, charges through the
// processor, records the payment and tears the session down. Card data is
// used for the charge call and the last four digits only; it is never
// persisted or logged.
//
// Submission is single-flight: the session is claimed out of the store
// before the processor is invoked, so of two racing submissions exactly one
// reaches the charge and the other sees no session. A claim that fails
// before charging is restored so the wizard stays open.
func (h *Handler) Pay(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	cs, ok := h.Sessions.Claim(id, userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
		return
	}

	charged := false
	defer func() {
		if !charged {
			h.Sessions.Restore(id, cs)
		}
	}()

	cs.Lock()
	wizardErr := cs.Wizard.RequirePayment()
	tierKey, _ := cs.Wizard.SelectedTier()
	cs.Unlock()

	if wizardErr != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout is not in the payment step"})
		return
	}

	var card checkout.CardDetails
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Same filtering the form applies as the user types.
	card.Number = checkout.FormatCardNumber(card.Number)
	card.ExpiryMonth = checkout.DigitsOnly(card.ExpiryMonth)
	card.ExpiryYear = checkout.DigitsOnly(card.ExpiryYear)
	card.CVV = checkout.DigitsOnly(card.CVV)

	if err := card.Validate(); err != nil {
		var missing *checkout.MissingFieldsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Please fill in all payment fields",
				"missing_fields": missing.Fields,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, ok := ownedProject(c, userID, cs.ProjectID)
	if !ok {
		return
	}

	var tier catalog.Tier
	if err := database.DB.Where("tier_key = ? AND is_active = ?", tierKey, true).
		First(&tier).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Selected tier is no longer available"})
		return
	}

	amount := checkout.Price(project.TotalAmount, tier.PriceMultiplier)

	receipt, err := h.Processor.Charge(c.Request.Context(), billing.ChargeRequest{
		UserID:    userID,
		ProjectID: project.ID,
		TierKey:   tierKey,
		Amount:    amount,
		Card:      card,
	})
	if err != nil {
		h.Metrics.ObserveCharge(billing.PaymentFailed)
		h.Log.Warn("charge failed",
			zap.Uint("user_id", userID),
			zap.Uint("project_id", project.ID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment could not be processed"})
		return
	}
	charged = true

	payment := billing.Payment{
		UserID:    userID,
		ProjectID: project.ID,
		TierKey:   tierKey,
		Amount:    amount,
		Status:    receipt.Status,
		Reference: receipt.Reference,
		CardLast4: checkout.Last4(card.Number),
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&projects.Project{}).Where("id = ?", project.ID).
		Update("tier_key", tierKey).Error; err != nil {
		h.Log.Error("charged but tier update failed",
			zap.Uint("project_id", project.ID),
			zap.String("reference", receipt.Reference),
			zap.Error(err))
	}

	if err := database.DB.Create(&notifications.Notification{
		UserID:  userID,
		Kind:    notifications.KindPayment,
		Message: fmt.Sprintf("Payment of %s received for %q (%s tier).", amount.StringFixed(2), project.Title, tier.Name),
	}).Error; err != nil {
		h.Log.Error("charged but notification insert failed",
			zap.Uint("user_id", userID),
			zap.String("reference", receipt.Reference),
			zap.Error(err))
	}

	h.Metrics.ObserveCharge(receipt.Status)

	c.JSON(http.StatusOK, gin.H{
		"reference": receipt.Reference,
		"status":    receipt.Status,
		"amount":    amount,
		"tier_key":  tierKey,
	})
}
