package wizard

import (
	"smartwaste-backend/internal/model"
)

// State is a read-only view of a wizard for rendering.
type State struct {
	Step       Step            `json:"step"`
	StepName   string          `json:"stepName"`
	WasteType  model.WasteType `json:"wasteType,omitempty"`
	Date       string          `json:"date,omitempty"`
	SlotID     string          `json:"slotId,omitempty"`
	SlotLabel  string          `json:"slotLabel,omitempty"`
	Address    string          `json:"address,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	PaymentID  string          `json:"paymentId,omitempty"`
	Payment    string          `json:"payment,omitempty"`
	Price      int             `json:"price"`
	CanProceed bool            `json:"canProceed"`
	Blocker    string          `json:"blocker,omitempty"`
	Submitted  *model.Pickup   `json:"submitted,omitempty"`
}

// State returns the current view of the wizard.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := State{
		Step:      w.step,
		StepName:  w.step.String(),
		WasteType: w.wasteType,
		Date:      w.date,
		SlotID:    w.slotID,
		Address:   w.address,
		Notes:     w.notes,
		PaymentID: w.paymentID,
		Price:     w.priceLocked(),
	}
	if slot, ok := w.catalog.Slot(w.slotID); ok {
		st.SlotLabel = slot.Label
	}
	if pm, ok := w.catalog.PaymentMethod(w.paymentID); ok {
		st.Payment = pm.Name
	}
	if w.submitted != nil {
		p := *w.submitted
		st.Submitted = &p
	}
	if w.step != StepSubmitted {
		if err := w.guardLocked(); err != nil {
			st.Blocker = err.Error()
		} else {
			st.CanProceed = true
		}
	}
	return st
}
