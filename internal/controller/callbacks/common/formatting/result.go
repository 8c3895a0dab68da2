package formatting

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/proctor_bot/internal/allocation"
	"github.com/Freeeeeet/proctor_bot/internal/model"
)

// Result текст ответа на выбор дня (HTML)
func Result(r *allocation.Result) string {
	switch r.State {
	case allocation.StateConfirmPending:
		return Conflicts(r.Weekday, r.Conflicts)
	case allocation.StateRecorded:
		return "✅ " + html.EscapeString(r.Notice)
	case allocation.StateEscalated:
		return "🚨 " + html.EscapeString(r.Notice)
	default:
		return Rejection(r.Weekday, r.Reason)
	}
}

// Conflicts предупреждение о занятиях в выбранный день
func Conflicts(weekday string, entries []model.TimetableEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚠️ You have classes on <b>%s</b>:\n\n", html.EscapeString(weekday))
	for _, e := range entries {
		fmt.Fprintf(&sb, "• %s, %s-%s\n",
			html.EscapeString(e.Subject), html.EscapeString(e.StartTime), html.EscapeString(e.EndTime))
	}
	sb.WriteString("\nDo you still want to take an exam duty on this day?")
	return sb.String()
}

// Rejection объяснение отказа
func Rejection(weekday string, reason error) string {
	var allocated *allocation.AlreadyAllocatedError
	var escalated *allocation.AlreadyEscalatedError

	switch {
	case errors.As(reason, &allocated):
		a := allocated.Allocation
		return fmt.Sprintf("❌ You already have an exam duty on %s.\n\nClassroom: %s\nSubject: %s\nDate: %s",
			html.EscapeString(a.Weekday),
			html.EscapeString(a.ClassroomName),
			html.EscapeString(a.Subject),
			a.DateString(),
		)
	case errors.As(reason, &escalated):
		e := escalated.Entry
		return fmt.Sprintf("⏳ You are already waiting in the emergency pool (requested %s).\n\nAdmin will contact you soon at %s.",
			html.EscapeString(e.RequestedWeekday), html.EscapeString(e.Phone))
	case errors.Is(reason, allocation.ErrNoSlotsAvailable):
		return fmt.Sprintf("❌ No exam slots available on %s. Please choose another day.", html.EscapeString(weekday))
	case reason == nil:
		return "❌ Request rejected"
	default:
		return "❌ " + html.EscapeString(reason.Error())
	}
}
