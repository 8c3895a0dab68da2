package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/service"
)

// maxListedAllocations ограничение длины сообщения Telegram
const maxListedAllocations = 30

// Allocations результаты мгновенного распределения для администратора (HTML)
func Allocations(allocations []model.Allocation) string {
	if len(allocations) == 0 {
		return "📭 No allocations yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Allocations: %d</b>\n", len(allocations))
	for i, a := range allocations {
		if i == maxListedAllocations {
			fmt.Fprintf(&sb, "\n…and %d more", len(allocations)-maxListedAllocations)
			break
		}
		fmt.Fprintf(&sb, "\n%d. <b>%s</b> (%s)\n   %s (%s), %s\n   %s, %s dept, floor %d, room %s\n",
			i+1,
			html.EscapeString(a.ProfessorName),
			html.EscapeString(a.ProfessorDepartment),
			a.DateString(),
			html.EscapeString(a.Weekday),
			html.EscapeString(a.Subject),
			html.EscapeString(a.ClassroomName),
			html.EscapeString(a.ClassroomDepartment),
			a.Floor,
			html.EscapeString(a.RoomNumber),
		)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Overview общая сводка и занятость аудиторий по кафедрам (HTML)
func Overview(o *service.Overview) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 <b>Overview</b>\n\nDepartments: %d\nClassrooms: %d\nProfessors: %d\nExam slots: %d\nAllocations: %d\nWaiting in emergency pool: %d\n",
		o.Departments, o.Classrooms, o.Professors, o.ExamSlots, o.Allocations, o.Waiting)

	sb.WriteString("\n🏫 <b>Classroom utilization by department</b>\n")
	if len(o.Utilization) == 0 {
		sb.WriteString("No classrooms yet.")
		return sb.String()
	}
	for _, u := range o.Utilization {
		fmt.Fprintf(&sb, "• %s: %d/%d classrooms used (%d%%)\n",
			html.EscapeString(u.Department), u.Used, u.Total, u.Percentage())
	}
	return strings.TrimRight(sb.String(), "\n")
}
