// Package catalog holds the static configuration the scheduling flow reads
// from: categories, prices, time slots and payment methods.
package catalog

import (
	"time"

	"smartwaste-backend/internal/model"
)

// FallbackPrice is charged for a category missing from the price table.
const FallbackPrice = 25

// DateWindowDays is the number of selectable days after today.
const DateWindowDays = 7

// DateLayout is the format of scheduled dates.
const DateLayout = "2006-01-02"

// Category describes a waste category shown to the user.
type Category struct {
	Type  model.WasteType `json:"type"`
	Label string          `json:"label"`
}

// TimeSlot is one of the fixed collection windows.
type TimeSlot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// PaymentMethod is a mobile-money provider.
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Day is a selectable calendar date.
type Day struct {
	Value   string `json:"value"`
	DayName string `json:"dayName"`
	Day     string `json:"day"`
	Month   string `json:"month"`
}

// Catalog is treated as immutable once built.
type Catalog struct {
	Currency       string                  `json:"currency"`
	CurrencySymbol string                  `json:"currencySymbol"`
	Categories     []Category              `json:"categories"`
	Prices         map[model.WasteType]int `json:"prices"`
	TimeSlots      []TimeSlot              `json:"timeSlots"`
	PaymentMethods []PaymentMethod         `json:"paymentMethods"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Currency:       "GHS",
		CurrencySymbol: "₵",
		Categories: []Category{
			{Type: model.WasteGeneral, Label: "General"},
			{Type: model.WasteRecyclable, Label: "Recyclable"},
			{Type: model.WasteOrganic, Label: "Organic"},
			{Type: model.WasteEWaste, Label: "E-Waste"},
			{Type: model.WasteHazardous, Label: "Hazardous"},
			{Type: model.WasteMedical, Label: "Medical"},
		},
		Prices: map[model.WasteType]int{
			model.WasteGeneral:    25,
			model.WasteRecyclable: 15,
			model.WasteOrganic:    20,
			model.WasteEWaste:     40,
			model.WasteHazardous:  60,
			model.WasteMedical:    55,
		},
		TimeSlots: []TimeSlot{
			{ID: "1", Label: "6:00 AM - 8:00 AM", Value: "06:00-08:00"},
			{ID: "2", Label: "8:00 AM - 10:00 AM", Value: "08:00-10:00"},
			{ID: "3", Label: "10:00 AM - 12:00 PM", Value: "10:00-12:00"},
			{ID: "4", Label: "12:00 PM - 2:00 PM", Value: "12:00-14:00"},
			{ID: "5", Label: "2:00 PM - 4:00 PM", Value: "14:00-16:00"},
			{ID: "6", Label: "4:00 PM - 6:00 PM", Value: "16:00-18:00"},
		},
		PaymentMethods: []PaymentMethod{
			{ID: "mtn", Name: "MTN MoMo"},
			{ID: "vodafone", Name: "Vodafone Cash"},
			{ID: "airteltigo", Name: "AirtelTigo Money"},
		},
	}
}

// WithPrices returns a copy of c with the given prices overriding the table.
// Keys that are not known categories are ignored.
func (c *Catalog) WithPrices(overrides map[string]int) *Catalog {
	out := *c
	out.Prices = make(map[model.WasteType]int, len(c.Prices))
	for k, v := range c.Prices {
		out.Prices[k] = v
	}
	for k, v := range overrides {
		if _, ok := c.Category(model.WasteType(k)); ok {
			out.Prices[model.WasteType(k)] = v
		}
	}
	return &out
}

// Category looks up a category by type.
func (c *Catalog) Category(t model.WasteType) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Type == t {
			return cat, true
		}
	}
	return Category{}, false
}

// Price returns the price for a category, or FallbackPrice when absent.
func (c *Catalog) Price(t model.WasteType) int {
	if p, ok := c.Prices[t]; ok {
		return p
	}
	return FallbackPrice
}

// Slot looks up a time slot by id.
func (c *Catalog) Slot(id string) (TimeSlot, bool) {
	for _, s := range c.TimeSlots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// PaymentMethod looks up a payment method by id.
func (c *Catalog) PaymentMethod(id string) (PaymentMethod, bool) {
	for _, pm := range c.PaymentMethods {
		if pm.ID == id {
			return pm, true
		}
	}
	return PaymentMethod{}, false
}

// NextDays returns the n calendar days following now's date. Today is never
// included.
func NextDays(now time.Time, n int) []Day {
	days := make([]Day, 0, n)
	y, m, d := now.Date()
	for i := 1; i <= n; i++ {
		t := time.Date(y, m, d+i, 0, 0, 0, 0, now.Location())
		days = append(days, Day{
			Value:   t.Format(DateLayout),
			DayName: t.Format("Mon"),
			Day:     t.Format("2"),
			Month:   t.Format("Jan"),
		})
	}
	return days
}

// InWindow reports whether date is one of the selectable days after now.
func InWindow(now time.Time, date string) bool {
	for _, d := range NextDays(now, DateWindowDays) {
		if d.Value == date {
			return true
		}
	}
	return false
}
