package models

// SyllabusItem is one topic within a subject's curriculum.
type SyllabusItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Subject is a tracked course. It owns its attendance log and syllabus
// exclusively; records are never shared across subjects.
type Subject struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Color    string             `json:"color"`
	Logs     []AttendanceRecord `json:"logs"`
	Syllabus []SyllabusItem     `json:"syllabus"`
}

// SyllabusStats summarises syllabus completion across subjects.
type SyllabusStats struct {
	Completed   int     `json:"completed"`
	TotalTopics int     `json:"totalTopics"`
	Percentage  float64 `json:"percentage"`
}

// Clone returns a deep copy so appliers can rewrite a subject without
// touching the source snapshot.
func (s Subject) Clone() Subject {
	out := s
	out.Logs = make([]AttendanceRecord, len(s.Logs))
	copy(out.Logs, s.Logs)
	out.Syllabus = make([]SyllabusItem, len(s.Syllabus))
	copy(out.Syllabus, s.Syllabus)
	return out
}
