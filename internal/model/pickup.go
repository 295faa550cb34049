package model

import "time"

// PickupStatus is the lifecycle state of a pickup.
type PickupStatus string

const (
	StatusPending    PickupStatus = "pending"
	StatusConfirmed  PickupStatus = "confirmed"
	StatusInProgress PickupStatus = "in_progress"
	StatusCompleted  PickupStatus = "completed"
	StatusCancelled  PickupStatus = "cancelled"
)

// Statuses lists every known status in lifecycle order.
var Statuses = []PickupStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s PickupStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Live reports whether a pickup in this status is still in flight.
func (s PickupStatus) Live() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// WasteType identifies a waste category.
type WasteType string

const (
	WasteGeneral    WasteType = "general"
	WasteRecyclable WasteType = "recyclable"
	WasteOrganic    WasteType = "organic"
	WasteEWaste     WasteType = "ewaste"
	WasteHazardous  WasteType = "hazardous"
	WasteMedical    WasteType = "medical"
)

// Pickup is a requested waste collection. The JSON shape is also the
// persisted shape.
type Pickup struct {
	ID            string       `json:"id"`
	WasteType     WasteType    `json:"wasteType"`
	Status        PickupStatus `json:"status"`
	ScheduledDate string       `json:"scheduledDate"`
	TimeSlot      string       `json:"timeSlot"`
	Location      string       `json:"location"`
	Address       string       `json:"address"`
	Amount        int          `json:"amount"`
	PaymentMethod string       `json:"paymentMethod"`
	DriverName    string       `json:"driverName,omitempty"`
	DriverPhone   string       `json:"driverPhone,omitempty"`
	DriverRating  float64      `json:"driverRating,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// PickupDraft carries every Pickup field except the ones assigned at
// creation: ID, Status and CreatedAt.
type PickupDraft struct {
	WasteType     WasteType
	ScheduledDate string
	TimeSlot      string
	Location      string
	Address       string
	Amount        int
	PaymentMethod string
	DriverName    string
	DriverPhone   string
	DriverRating  float64
	Notes         string
}

// ProgressStep is one stage of the pickup timeline.
type ProgressStep struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Progress returns the timeline shown on the detail screen. Cancelled
// pickups have none.
func (p Pickup) Progress() []ProgressStep {
	if p.Status == StatusCancelled {
		return nil
	}
	reached := func(statuses ...PickupStatus) bool {
		for _, s := range statuses {
			if p.Status == s {
				return true
			}
		}
		return false
	}
	return []ProgressStep{
		{Label: "Scheduled", Done: true},
		{Label: "Confirmed", Done: reached(StatusConfirmed, StatusInProgress, StatusCompleted)},
		{Label: "Driver En Route", Done: reached(StatusInProgress, StatusCompleted)},
		{Label: "Completed", Done: reached(StatusCompleted)},
	}
}
