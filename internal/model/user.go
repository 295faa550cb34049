package model

// UserProfile is the single signed-in user.
type UserProfile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Area          string `json:"area"`
	TotalPickups  int    `json:"totalPickups"`
	WasteRecycled int    `json:"wasteRecycled"` // kg
	EcoPoints     int    `json:"ecoPoints"`
}
