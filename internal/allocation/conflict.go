package allocation

import "github.com/Freeeeeet/proctor_bot/internal/model"

// CheckConflicts возвращает занятия из расписания, которые приходятся на выбранный день.
// Пустой результат означает отсутствие конфликта.
func CheckConflicts(entries []model.TimetableEntry, weekday string) []model.TimetableEntry {
	var conflicts []model.TimetableEntry
	for _, entry := range entries {
		if model.SameWeekday(entry.Weekday, weekday) {
			conflicts = append(conflicts, entry)
		}
	}
	return conflicts
}
