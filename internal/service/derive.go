package service

import (
	"sort"

	"github.com/uniflow-app/uniflow-api/internal/dto"
	"github.com/uniflow-app/uniflow-api/internal/models"
)

// Derivation functions are pure: they compute views from a snapshot and
// cache nothing, so every read reflects the current records.

// AttendanceStats partitions a log collection into Present/Absent/
// Holiday counts. Holidays never count towards the denominator, and a
// subject with no countable classes reports 0%, never NaN.
func AttendanceStats(logs []models.AttendanceRecord) models.AttendanceStats {
	stats := models.AttendanceStats{}
	for _, log := range logs {
		switch log.Status {
		case models.AttendanceStatusPresent:
			stats.Present++
		case models.AttendanceStatusAbsent:
			stats.Absent++
		case models.AttendanceStatusHoliday:
			stats.Holiday++
		}
	}
	stats.Total = stats.Present + stats.Absent
	if stats.Total > 0 {
		stats.Percentage = float64(stats.Present) / float64(stats.Total) * 100
	}
	return stats
}

// AggregateAttendance pools attended and total counts across all
// subjects before dividing. This is a weighted ratio, deliberately not
// the mean of per-subject percentages.
func AggregateAttendance(subjects []models.Subject) models.AttendanceStats {
	agg := models.AttendanceStats{}
	for _, sub := range subjects {
		stats := AttendanceStats(sub.Logs)
		agg.Present += stats.Present
		agg.Absent += stats.Absent
		agg.Holiday += stats.Holiday
	}
	agg.Total = agg.Present + agg.Absent
	if agg.Total > 0 {
		agg.Percentage = float64(agg.Present) / float64(agg.Total) * 100
	}
	return agg
}

// SyllabusCompletion reports completed vs total topics across all
// subjects.
func SyllabusCompletion(subjects []models.Subject) models.SyllabusStats {
	stats := models.SyllabusStats{}
	for _, sub := range subjects {
		for _, item := range sub.Syllabus {
			stats.TotalTopics++
			if item.IsCompleted {
				stats.Completed++
			}
		}
	}
	if stats.TotalTopics > 0 {
		stats.Percentage = float64(stats.Completed) / float64(stats.TotalTopics) * 100
	}
	return stats
}

// SubjectsBelowTarget returns subjects with at least one countable
// class whose percentage falls below the target. Subjects with zero
// logged classes are never flagged.
func SubjectsBelowTarget(subjects []models.Subject, target float64) []dto.SubjectAlert {
	alerts := make([]dto.SubjectAlert, 0)
	for _, sub := range subjects {
		stats := AttendanceStats(sub.Logs)
		if stats.Total > 0 && stats.Percentage < target {
			alerts = append(alerts, dto.SubjectAlert{
				SubjectID: sub.ID,
				Name:      sub.Name,
				Color:     sub.Color,
				Stats:     stats,
			})
		}
	}
	return alerts
}

// ScheduleFor resolves the routine entries for one weekday, sorted by
// start time. Entries whose subject was deleted resolve to a
// placeholder rather than an error.
func ScheduleFor(routine []models.RoutineEntry, subjects []models.Subject, day string) []dto.ScheduleSlot {
	names := make(map[string]*models.Subject, len(subjects))
	for i := range subjects {
		names[subjects[i].ID] = &subjects[i]
	}

	slots := make([]dto.ScheduleSlot, 0)
	for _, entry := range routine {
		if entry.Day != day {
			continue
		}
		slot := dto.ScheduleSlot{
			ID:          entry.ID,
			SubjectID:   entry.SubjectID,
			SubjectName: dto.PlaceholderSubjectName,
			Color:       dto.PlaceholderSubjectColor,
			Day:         entry.Day,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			Room:        entry.Room,
		}
		if sub, ok := names[entry.SubjectID]; ok {
			slot.SubjectName = sub.Name
			slot.Color = sub.Color
		}
		slots = append(slots, slot)
	}

	// "HH:MM" is fixed-width zero-padded, so lexicographic order is
	// chronological order.
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots
}
