package models

// Holiday is a named non-class day, independent of any subject. The
// collection is kept sorted ascending by date.
type Holiday struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}
