package models

// DefaultUniversity is the placeholder shown until the user edits
// their institution.
const DefaultUniversity = "University Student"

// UserProfile is the signed-in identity supplied by the external
// provider. Absence of a profile means sign-in is required.
type UserProfile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture,omitempty"`
	University string `json:"university,omitempty"`
}
