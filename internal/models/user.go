package models

// Identity is the authenticated caller, taken from the bearer token
type Identity struct {
	UserID string `json:"user_id" example:"8f14e45f-ceea-467f-a1f1-8f2a4e9c1d20"` // Identity provider user id
	Name   string `json:"name" example:"Jordan"`                                  // Display name
}

// DisplayName falls back to a generic name when the token carries none
func (i Identity) DisplayName() string {
	if i.Name == "" {
		return "Player"
	}
	return i.Name
}
