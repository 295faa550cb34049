// Package wizard implements the four-step scheduling flow that turns user
// selections into a pickup draft.
package wizard

import (
	"errors"
	"strings"
	"sync"
	"time"

	"smartwaste-backend/internal/catalog"
	"smartwaste-backend/internal/model"
)

// Step is a wizard state.
type Step int

const (
	StepCategory Step = iota + 1
	StepDateTime
	StepAddress
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepCategory:
		return "category"
	case StepDateTime:
		return "date_time"
	case StepAddress:
		return "address"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// minAddressLength is exclusive: a trimmed address must be longer.
const minAddressLength = 3

var (
	ErrCategoryRequired = errors.New("select a waste category")
	ErrDateRequired     = errors.New("select a date within the next 7 days")
	ErrSlotRequired     = errors.New("select a time slot")
	ErrAddressTooShort  = errors.New("address must be longer than 3 characters")
	ErrPaymentRequired  = errors.New("select a payment method")
	ErrNoPreviousStep   = errors.New("already at the first step")
	ErrNotAtReview      = errors.New("submit is only possible from the review step")
	ErrUseSubmit        = errors.New("use submit to complete the review step")
	ErrAlreadySubmitted = errors.New("wizard already submitted; reset to schedule another")
)

// PickupAdder receives the completed draft.
type PickupAdder interface {
	AddPickup(draft model.PickupDraft) model.Pickup
}

// Wizard is safe for concurrent use.
type Wizard struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	adder   PickupAdder
	now     func() time.Time

	step      Step
	wasteType model.WasteType
	date      string
	slotID    string
	address   string
	notes     string
	paymentID string
	submitted *model.Pickup
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithClock sets the time source for the selectable date window.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// New creates a wizard at the first step.
func New(c *catalog.Catalog, adder PickupAdder, opts ...Option) *Wizard {
	w := &Wizard{
		catalog: c,
		adder:   adder,
		now:     time.Now,
		step:    StepCategory,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Prefill seeds the category from a navigation parameter without advancing.
// The step guard still applies on Next.
func (w *Wizard) Prefill(wasteType string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepCategory && wasteType != "" {
		w.wasteType = model.WasteType(wasteType)
	}
}

// SelectCategory records the waste category.
func (w *Wizard) SelectCategory(wasteType string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if _, ok := w.catalog.Category(model.WasteType(wasteType)); !ok {
		return ErrCategoryRequired
	}
	w.wasteType = model.WasteType(wasteType)
	return nil
}

// SelectSchedule records the date and time slot. Either may be empty to
// keep the current value.
func (w *Wizard) SelectSchedule(date, slotID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if date != "" {
		if !catalog.InWindow(w.now(), date) {
			return ErrDateRequired
		}
		w.date = date
	}
	if slotID != "" {
		if _, ok := w.catalog.Slot(slotID); !ok {
			return ErrSlotRequired
		}
		w.slotID = slotID
	}
	return nil
}

// SetAddress records the pickup address as typed.
func (w *Wizard) SetAddress(address string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	w.address = address
	return nil
}

// SetNotes records optional notes for the driver.
func (w *Wizard) SetNotes(notes string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	w.notes = notes
	return nil
}

// SelectPayment records the payment method id.
func (w *Wizard) SelectPayment(paymentID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if _, ok := w.catalog.PaymentMethod(paymentID); !ok {
		return ErrPaymentRequired
	}
	w.paymentID = paymentID
	return nil
}

// Next advances one step when the current step's guard holds.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepReview:
		return ErrUseSubmit
	case StepSubmitted:
		return ErrAlreadySubmitted
	}
	if err := w.guardLocked(); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back returns to the previous step keeping every field.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepCategory:
		return ErrNoPreviousStep
	case StepSubmitted:
		return ErrAlreadySubmitted
	}
	w.step--
	return nil
}

// Submit completes the review step, hands the draft to the adder and returns
// the created pickup.
func (w *Wizard) Submit() (model.Pickup, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepSubmitted:
		return model.Pickup{}, ErrAlreadySubmitted
	case StepReview:
	default:
		return model.Pickup{}, ErrNotAtReview
	}
	if err := w.guardLocked(); err != nil {
		return model.Pickup{}, err
	}

	created := w.adder.AddPickup(w.draftLocked())
	w.submitted = &created
	w.step = StepSubmitted
	return created, nil
}

// Reset clears every field and returns to the first step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepCategory
	w.wasteType = ""
	w.date = ""
	w.slotID = ""
	w.address = ""
	w.notes = ""
	w.paymentID = ""
	w.submitted = nil
}

// CanProceed reports the guard error of the current step, if any.
func (w *Wizard) CanProceed() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	return w.guardLocked()
}

// Price is the amount for the selected category, or 0 when none is selected.
func (w *Wizard) Price() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.priceLocked()
}

func (w *Wizard) priceLocked() int {
	if w.wasteType == "" {
		return 0
	}
	return w.catalog.Price(w.wasteType)
}

func (w *Wizard) guardLocked() error {
	switch w.step {
	case StepCategory:
		if _, ok := w.catalog.Category(w.wasteType); !ok {
			return ErrCategoryRequired
		}
	case StepDateTime:
		if w.date == "" || !catalog.InWindow(w.now(), w.date) {
			return ErrDateRequired
		}
		if _, ok := w.catalog.Slot(w.slotID); !ok {
			return ErrSlotRequired
		}
	case StepAddress:
		if len(strings.TrimSpace(w.address)) <= minAddressLength {
			return ErrAddressTooShort
		}
	case StepReview:
		if _, ok := w.catalog.PaymentMethod(w.paymentID); !ok {
			return ErrPaymentRequired
		}
	}
	return nil
}

func (w *Wizard) draftLocked() model.PickupDraft {
	slot, _ := w.catalog.Slot(w.slotID)
	payment, _ := w.catalog.PaymentMethod(w.paymentID)
	return model.PickupDraft{
		WasteType:     w.wasteType,
		ScheduledDate: w.date,
		TimeSlot:      slot.Label,
		Location:      LocationSummary(w.address),
		Address:       w.address,
		Amount:        w.catalog.Price(w.wasteType),
		PaymentMethod: payment.Name,
		Notes:         strings.TrimSpace(w.notes),
	}
}

// LocationSummary is the part of address before the first comma, or the
// whole address when that part is empty.
func LocationSummary(address string) string {
	if i := strings.Index(address, ","); i > 0 {
		return address[:i]
	}
	return address
}
