package service

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/uniflow-app/uniflow-api/internal/models"
)

// Appliers are pure reducers over an AppState snapshot. Each takes the
// current state, returns a new state with exactly one logical change
// applied, and reports whether anything changed. The input snapshot is
// never mutated. A stale id is a no-op, not an error: the intended
// effect already holds, which makes every applier safe to retry.

func newID() string {
	return uuid.NewString()
}

func randomColor() string {
	return fmt.Sprintf("#%06X", rand.Intn(0x1000000))
}

func applySetUser(state *models.AppState, user *models.UserProfile) (*models.AppState, bool) {
	next := state.Clone()
	if user == nil {
		next.User = nil
		return next, true
	}
	profile := *user
	if strings.TrimSpace(profile.University) == "" {
		profile.University = models.DefaultUniversity
	}
	next.User = &profile
	return next, true
}

func applyUpdateUser(state *models.AppState, user models.UserProfile) (*models.AppState, bool) {
	if state.User == nil || state.User.ID != user.ID {
		return state, false
	}
	next := state.Clone()
	profile := user
	next.User = &profile
	return next, true
}

func applyAddSubject(state *models.AppState, name, color string) (*models.AppState, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return state, false
	}
	if color == "" {
		color = randomColor()
	}
	next := state.Clone()
	next.Subjects = append(next.Subjects, models.Subject{
		ID:       newID(),
		Name:     name,
		Color:    color,
		Logs:     []models.AttendanceRecord{},
		Syllabus: []models.SyllabusItem{},
	})
	return next, true
}

func applyUpdateSubject(state *models.AppState, subject models.Subject) (*models.AppState, bool) {
	if strings.TrimSpace(subject.Name) == "" {
		return state, false
	}
	next := state.Clone()
	for i := range next.Subjects {
		if next.Subjects[i].ID == subject.ID {
			next.Subjects[i] = subject.Clone()
			sortLogsDesc(next.Subjects[i].Logs)
			return next, true
		}
	}
	return state, false
}

// applyDeleteSubject removes the subject and, by ownership, all its
// logs and syllabus items. Routine entries referencing the id are left
// dangling on purpose; readers resolve them to a placeholder.
func applyDeleteSubject(state *models.AppState, id string) (*models.AppState, bool) {
	next := state.Clone()
	kept := next.Subjects[:0]
	for _, sub := range next.Subjects {
		if sub.ID != id {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(next.Subjects) {
		return state, false
	}
	next.Subjects = kept
	return next, true
}

func applyAddAttendanceRecord(state *models.AppState, subjectID, date string, status models.AttendanceStatus) (*models.AppState, bool) {
	if date == "" || !status.Valid() {
		return state, false
	}
	next := state.Clone()
	sub := next.FindSubject(subjectID)
	if sub == nil {
		return state, false
	}
	sub.Logs = append(sub.Logs, models.AttendanceRecord{
		ID:     newID(),
		Date:   date,
		Status: status,
	})
	sortLogsDesc(sub.Logs)
	return next, true
}

func applyRemoveAttendanceRecord(state *models.AppState, subjectID, recordID string) (*models.AppState, bool) {
	next := state.Clone()
	sub := next.FindSubject(subjectID)
	if sub == nil {
		return state, false
	}
	kept := sub.Logs[:0]
	for _, log := range sub.Logs {
		if log.ID != recordID {
			kept = append(kept, log)
		}
	}
	if len(kept) == len(sub.Logs) {
		return state, false
	}
	sub.Logs = kept
	return next, true
}

func applyToggleSyllabusItem(state *models.AppState, subjectID, itemID string) (*models.AppState, bool) {
	next := state.Clone()
	sub := next.FindSubject(subjectID)
	if sub == nil {
		return state, false
	}
	for i := range sub.Syllabus {
		if sub.Syllabus[i].ID == itemID {
			sub.Syllabus[i].IsCompleted = !sub.Syllabus[i].IsCompleted
			return next, true
		}
	}
	return state, false
}

func applyAddSyllabusItem(state *models.AppState, subjectID, title string) (*models.AppState, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return state, false
	}
	next := state.Clone()
	sub := next.FindSubject(subjectID)
	if sub == nil {
		return state, false
	}
	sub.Syllabus = append(sub.Syllabus, models.SyllabusItem{
		ID:    newID(),
		Title: title,
	})
	return next, true
}

func applyRemoveSyllabusItem(state *models.AppState, subjectID, itemID string) (*models.AppState, bool) {
	next := state.Clone()
	sub := next.FindSubject(subjectID)
	if sub == nil {
		return state, false
	}
	kept := sub.Syllabus[:0]
	for _, item := range sub.Syllabus {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(sub.Syllabus) {
		return state, false
	}
	sub.Syllabus = kept
	return next, true
}

func applyAddHoliday(state *models.AppState, name, date string) (*models.AppState, bool) {
	name = strings.TrimSpace(name)
	if name == "" || date == "" {
		return state, false
	}
	next := state.Clone()
	next.Holidays = append(next.Holidays, models.Holiday{
		ID:   newID(),
		Name: name,
		Date: date,
	})
	sort.SliceStable(next.Holidays, func(i, j int) bool {
		return models.ParseDate(next.Holidays[i].Date).Before(models.ParseDate(next.Holidays[j].Date))
	})
	return next, true
}

func applyRemoveHoliday(state *models.AppState, id string) (*models.AppState, bool) {
	next := state.Clone()
	kept := next.Holidays[:0]
	for _, h := range next.Holidays {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(next.Holidays) {
		return state, false
	}
	next.Holidays = kept
	return next, true
}

// applyAddRoutineEntry sorts the whole flat collection by start time.
// Cross-day key collisions are fine: reads filter by day first.
func applyAddRoutineEntry(state *models.AppState, subjectID, day, startTime, endTime, room string) (*models.AppState, bool) {
	if !models.ValidDay(day) || !models.ValidTimeOfDay(startTime) || !models.ValidTimeOfDay(endTime) {
		return state, false
	}
	if state.FindSubject(subjectID) == nil {
		return state, false
	}
	next := state.Clone()
	next.Routine = append(next.Routine, models.RoutineEntry{
		ID:        newID(),
		SubjectID: subjectID,
		Day:       day,
		StartTime: startTime,
		EndTime:   endTime,
		Room:      strings.TrimSpace(room),
	})
	sort.SliceStable(next.Routine, func(i, j int) bool {
		return next.Routine[i].StartTime < next.Routine[j].StartTime
	})
	return next, true
}

func applyRemoveRoutineEntry(state *models.AppState, id string) (*models.AppState, bool) {
	next := state.Clone()
	kept := next.Routine[:0]
	for _, entry := range next.Routine {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(next.Routine) {
		return state, false
	}
	next.Routine = kept
	return next, true
}

func applySetTargetPercentage(state *models.AppState, target float64) (*models.AppState, bool) {
	if target < 0 {
		target = 0
	}
	if target > 100 {
		target = 100
	}
	next := state.Clone()
	next.TargetPercentage = target
	return next, true
}

// Most recent class first.
func sortLogsDesc(logs []models.AttendanceRecord) {
	sort.SliceStable(logs, func(i, j int) bool {
		return models.ParseDate(logs[i].Date).After(models.ParseDate(logs[j].Date))
	})
}
