package models

// StateKey is the single fixed document key. The schema version lives
// in the key itself: bumping it orphans old data instead of migrating.
const StateKey = "uniflow_app_data_v4"

// DefaultTargetPercentage is the seed attendance target.
const DefaultTargetPercentage = 75

// AppState is the root aggregate and the unit of persistence. It is
// treated as an immutable snapshot: every mutation produces a new copy.
type AppState struct {
	User             *UserProfile   `json:"user"`
	Subjects         []Subject      `json:"subjects"`
	Holidays         []Holiday      `json:"holidays"`
	Routine          []RoutineEntry `json:"routine"`
	TargetPercentage float64        `json:"targetPercentage"`
}

// DefaultState returns the hard-coded seed used when no persisted
// document exists: one sample subject, nothing else, target 75.
func DefaultState() *AppState {
	return &AppState{
		User: nil,
		Subjects: []Subject{
			{
				ID:    "1",
				Name:  "Computer Networks",
				Color: "#3B82F6",
				Logs:  []AttendanceRecord{},
				Syllabus: []SyllabusItem{
					{ID: "s1", Title: "OSI Model", IsCompleted: false},
				},
			},
		},
		Holidays:         []Holiday{},
		Routine:          []RoutineEntry{},
		TargetPercentage: DefaultTargetPercentage,
	}
}

// Clone returns a deep copy of the snapshot.
func (s *AppState) Clone() *AppState {
	if s == nil {
		return nil
	}
	out := &AppState{TargetPercentage: s.TargetPercentage}
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	out.Subjects = make([]Subject, len(s.Subjects))
	for i, sub := range s.Subjects {
		out.Subjects[i] = sub.Clone()
	}
	out.Holidays = make([]Holiday, len(s.Holidays))
	copy(out.Holidays, s.Holidays)
	out.Routine = make([]RoutineEntry, len(s.Routine))
	copy(out.Routine, s.Routine)
	return out
}

// FindSubject returns the subject with the given id, or nil.
func (s *AppState) FindSubject(id string) *Subject {
	for i := range s.Subjects {
		if s.Subjects[i].ID == id {
			return &s.Subjects[i]
		}
	}
	return nil
}
