package models

import "regexp"

// Days lists the supported weekday labels, Monday first to match the
// routine UI.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidDay reports whether day is one of the seven weekday labels.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// Times are fixed-width zero-padded 24h "HH:MM"; the invariant makes
// lexicographic ordering equal chronological ordering.
var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether raw is a well-formed "HH:MM" value.
func ValidTimeOfDay(raw string) bool {
	return timeOfDay.MatchString(raw)
}

// RoutineEntry is one scheduled weekly class occurrence. SubjectID is a
// weak reference: the subject may have been deleted, in which case
// consumers render a placeholder instead of failing.
type RoutineEntry struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room,omitempty"`
}
