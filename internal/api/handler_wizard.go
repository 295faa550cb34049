package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartwaste-backend/internal/wizard"
)

type wizardResponse struct {
	SessionID string       `json:"sessionId"`
	State     wizard.State `json:"state"`
}

// CreateWizard starts a scheduling session. ?type= pre-fills the category.
func (h *Handler) CreateWizard(c *gin.Context) {
	id, w := h.sessions.Create(c.Query("type"))
	c.JSON(http.StatusCreated, wizardResponse{SessionID: id, State: w.State()})
}

// GetWizard returns the current state of a session.
func (h *Handler) GetWizard(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wizardResponse{SessionID: c.Param("sid"), State: w.State()})
}

type categoryRequest struct {
	Type string `json:"type" binding:"required"`
}

type scheduleRequest struct {
	Date   string `json:"date"`
	SlotID string `json:"slotId"`
}

type addressRequest struct {
	Address string `json:"address"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type paymentRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

func (h *Handler) SelectCategory(c *gin.Context) {
	var req categoryRequest
	h.update(c, &req, func(w *wizard.Wizard) error { return w.SelectCategory(req.Type) })
}

func (h *Handler) SelectSchedule(c *gin.Context) {
	var req scheduleRequest
	h.update(c, &req, func(w *wizard.Wizard) error { return w.SelectSchedule(req.Date, req.SlotID) })
}

func (h *Handler) SetAddress(c *gin.Context) {
	var req addressRequest
	h.update(c, &req, func(w *wizard.Wizard) error { return w.SetAddress(req.Address) })
}

func (h *Handler) SetNotes(c *gin.Context) {
	var req notesRequest
	h.update(c, &req, func(w *wizard.Wizard) error { return w.SetNotes(req.Notes) })
}

func (h *Handler) SelectPayment(c *gin.Context) {
	var req paymentRequest
	h.update(c, &req, func(w *wizard.Wizard) error { return w.SelectPayment(req.PaymentID) })
}

func (h *Handler) NextStep(c *gin.Context) {
	h.update(c, nil, (*wizard.Wizard).Next)
}

func (h *Handler) PreviousStep(c *gin.Context) {
	h.update(c, nil, (*wizard.Wizard).Back)
}

func (h *Handler) ResetWizard(c *gin.Context) {
	h.update(c, nil, func(w *wizard.Wizard) error {
		w.Reset()
		return nil
	})
}

// SubmitWizard creates the pickup from a session at the review step.
func (h *Handler) SubmitWizard(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}
	p, err := w.Submit()
	if err != nil {
		h.wizardError(c, w, err)
		return
	}
	h.logger.Debug("wizard submitted", zap.String("session", c.Param("sid")), zap.String("pickup", p.ID))
	c.JSON(http.StatusCreated, gin.H{"pickup": p, "state": w.State()})
}

// update binds the optional body, applies fn and replies with the new state.
func (h *Handler) update(c *gin.Context, body any, fn func(*wizard.Wizard) error) {
	w, ok := h.session(c)
	if !ok {
		return
	}
	if body != nil {
		if err := c.ShouldBindJSON(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := fn(w); err != nil {
		h.wizardError(c, w, err)
		return
	}
	c.JSON(http.StatusOK, wizardResponse{SessionID: c.Param("sid"), State: w.State()})
}

func (h *Handler) session(c *gin.Context) (*wizard.Wizard, bool) {
	w, ok := h.sessions.Get(c.Param("sid"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "wizard session not found"})
		return nil, false
	}
	return w, true
}

func (h *Handler) wizardError(c *gin.Context, w *wizard.Wizard, err error) {
	c.JSON(wizardErrorStatus(err), gin.H{"error": err.Error(), "state": w.State()})
}

// wizardErrorStatus maps guard failures to 422 and step-order errors to 409.
func wizardErrorStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrCategoryRequired),
		errors.Is(err, wizard.ErrDateRequired),
		errors.Is(err, wizard.ErrSlotRequired),
		errors.Is(err, wizard.ErrAddressTooShort),
		errors.Is(err, wizard.ErrPaymentRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrNoPreviousStep),
		errors.Is(err, wizard.ErrNotAtReview),
		errors.Is(err, wizard.ErrUseSubmit),
		errors.Is(err, wizard.ErrAlreadySubmitted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
