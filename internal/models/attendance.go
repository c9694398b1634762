package models

import "time"

// AttendanceStatus represents the status of a logged class.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "P"
	AttendanceStatusAbsent  AttendanceStatus = "A"
	AttendanceStatusHoliday AttendanceStatus = "H"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusHoliday:
		return true
	default:
		return false
	}
}

// DateLayout is the calendar-date form used throughout the state
// document. Dates carry no time component and no timezone semantics.
const DateLayout = "2006-01-02"

// ParseDate parses a stored calendar date. Malformed dates sort to the
// zero instant rather than failing the caller.
func ParseDate(raw string) time.Time {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AttendanceRecord is one dated Present/Absent/Holiday entry belonging
// to exactly one subject.
type AttendanceRecord struct {
	ID     string           `json:"id"`
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// AttendanceStats summarises a subject's log collection. Holiday
// entries are excluded from the denominator.
type AttendanceStats struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Holiday    int     `json:"holiday"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}
