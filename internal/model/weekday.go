package model

import (
	"strings"
	"time"
)

// Weekdays дни недели в календарном порядке, начиная с понедельника
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// WeekdayOf возвращает название дня недели для даты ("Monday", ...)
func WeekdayOf(date time.Time) string {
	return date.Weekday().String()
}

// ParseWeekday приводит название дня к каноническому виду.
// Принимает полное или трёхбуквенное английское название в любом регистре.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for _, d := range Weekdays {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, true
		}
	}
	return 0, false
}

// NormalizeWeekday возвращает каноническое название дня или исходную строку, если день не распознан
func NormalizeWeekday(s string) string {
	if d, ok := ParseWeekday(s); ok {
		return d.String()
	}
	return strings.TrimSpace(s)
}

// SameWeekday сравнивает два названия дня без учёта регистра и сокращений
func SameWeekday(a, b string) bool {
	return strings.EqualFold(NormalizeWeekday(a), NormalizeWeekday(b))
}

// WeekdayIndex порядковый номер дня в неделе (понедельник = 0), -1 для неизвестного
func WeekdayIndex(s string) int {
	d, ok := ParseWeekday(s)
	if !ok {
		return -1
	}
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}
