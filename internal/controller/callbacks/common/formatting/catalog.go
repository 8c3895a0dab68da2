package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/model"
)

// Professor карточка нового преподавателя для администратора
func Professor(p *model.Professor) string {
	return fmt.Sprintf("✅ Professor registered\n\nID: <code>%s</code>\nName: %s\nDepartment: %s\nDesignation: %s\nRequired duties: %d\nToken: <code>%s</code>",
		p.ID,
		html.EscapeString(p.Name),
		html.EscapeString(p.Department),
		html.EscapeString(p.Designation),
		model.RequiredSlots(p.Designation),
		p.Token,
	)
}

// Welcome приветствие, которое получает зарегистрированный преподаватель
func Welcome(p *model.Professor) string {
	return fmt.Sprintf("Welcome, %s!\n\nYou have been registered as %s, %s department. You are required to take %d exam duties.\n\nUse /exam to pick a day.",
		p.Name, p.Designation, p.Department, model.RequiredSlots(p.Designation))
}

func Classroom(c *model.Classroom) string {
	facilities := "none"
	if len(c.Facilities) > 0 {
		facilities = strings.Join(c.Facilities, ", ")
	}
	return fmt.Sprintf("✅ Classroom created\n\nID: <code>%s</code>\nName: %s\nDepartment: %s\nFloor: %d\nRoom: %s\nCapacity: %d\nFacilities: %s",
		c.ID,
		html.EscapeString(c.Name),
		html.EscapeString(c.Department),
		c.Floor,
		html.EscapeString(c.RoomNumber),
		c.Capacity,
		html.EscapeString(facilities),
	)
}

func ExamSlot(s *model.ExamSlot) string {
	return fmt.Sprintf("✅ Exam slot created\n\nID: <code>%s</code>\nDate: %s (%s)\nSubject: %s",
		s.ID, s.DateString(), s.Weekday, html.EscapeString(s.Subject))
}

func TimetableEntry(e *model.TimetableEntry) string {
	return fmt.Sprintf("✅ Added to your timetable: %s %s-%s, %s",
		e.Weekday, html.EscapeString(e.StartTime), html.EscapeString(e.EndTime), html.EscapeString(e.Subject))
}
