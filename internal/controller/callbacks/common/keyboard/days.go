package keyboard

import "github.com/go-telegram/bot/models"

// Callback data выбора дня
const (
	DayPrefix        = "day:"         // day:Monday
	ConfirmDayPrefix = "confirm_day:" // confirm_day:Monday
	CancelDay        = "cancel_day"
)

// DayOption кнопка дня недели
type DayOption struct {
	Weekday string
	Label   string
}

// Days клавиатура выбора дня, по два дня в ряд
func Days(options []DayOption) *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(options))
	for _, o := range options {
		buttons = append(buttons, Button(o.Label, DayPrefix+o.Weekday))
	}
	return NewBuilder().Grid(2, buttons...).Build()
}

// ConfirmDay подтверждение дня, в который у преподавателя есть занятия
func ConfirmDay(weekday string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("✅ Yes, take this day", ConfirmDayPrefix+weekday),
			Button("❌ Choose another day", CancelDay),
		).
		Build()
}
