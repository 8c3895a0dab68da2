package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/service"
)

// Dashboard сводка преподавателя (HTML)
func Dashboard(d *service.Dashboard) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "👤 <b>%s</b>\n%s, %s\n\n",
		html.EscapeString(d.Professor.Name),
		html.EscapeString(d.Professor.Designation),
		html.EscapeString(d.Professor.Department),
	)
	fmt.Fprintf(&sb, "📋 Allocations: <b>%d/%d</b>\n", len(d.Allocations), d.Required)

	if len(d.Allocations) > 0 {
		sb.WriteString("\n")
		for _, a := range d.Allocations {
			fmt.Fprintf(&sb, "• %s (%s): %s, %s, floor %d, room %s\n",
				a.DateString(),
				html.EscapeString(a.Weekday),
				html.EscapeString(a.Subject),
				html.EscapeString(a.ClassroomName),
				a.Floor,
				html.EscapeString(a.RoomNumber),
			)
		}
	}

	if len(d.Timetable) > 0 {
		sb.WriteString("\n🗓 Timetable:\n")
		for _, e := range d.Timetable {
			fmt.Fprintf(&sb, "• %s %s-%s: %s\n",
				html.EscapeString(e.Weekday),
				html.EscapeString(e.StartTime),
				html.EscapeString(e.EndTime),
				html.EscapeString(e.Subject),
			)
		}
	}

	switch {
	case d.Remaining() == 0:
		sb.WriteString("\n🎉 Your exam duty quota is complete.")
	case len(d.AvailableWeekdays) == 0:
		sb.WriteString("\nNo exam slots are published yet.")
	default:
		sb.WriteString("\nUse /exam to pick a day.")
	}

	return sb.String()
}

// DayButton подпись кнопки дня: количество слотов и отметка о назначении
func DayButton(d *service.Dashboard, weekday string) string {
	label := fmt.Sprintf("%s (%d)", weekday, d.SlotsPerDay[weekday])
	if d.AllocatedOn(weekday) {
		return "✅ " + label
	}
	return label
}
