package dto

import "github.com/uniflow-app/uniflow-api/internal/models"

// Placeholder rendering for routine entries whose subject was deleted.
// The subjectId on a routine entry is a weak reference by design.
const (
	PlaceholderSubjectName  = "Deleted subject"
	PlaceholderSubjectColor = "#EEEEEE"
)

// ScheduleSlot is one resolved routine entry for a given day.
type ScheduleSlot struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	Color       string `json:"color"`
	Day         string `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Room        string `json:"room,omitempty"`
}

// SubjectAlert flags a subject running below the attendance target.
type SubjectAlert struct {
	SubjectID string                 `json:"subjectId"`
	Name      string                 `json:"name"`
	Color     string                 `json:"color"`
	Stats     models.AttendanceStats `json:"stats"`
}

// DashboardResponse is the composed home-screen summary.
type DashboardResponse struct {
	User             *models.UserProfile    `json:"user"`
	Attendance       models.AttendanceStats `json:"attendance"`
	Syllabus         models.SyllabusStats   `json:"syllabus"`
	BelowTarget      []SubjectAlert         `json:"belowTarget"`
	TargetPercentage float64                `json:"targetPercentage"`
	Day              string                 `json:"day"`
	TodaysSchedule   []ScheduleSlot         `json:"todaysSchedule"`
}

// SubjectDetail pairs a subject with its derived attendance stats.
type SubjectDetail struct {
	models.Subject
	Stats models.AttendanceStats `json:"stats"`
}
