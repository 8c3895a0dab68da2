package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Преподаватель выбрал день, в который у него есть занятия, и должен подтвердить выбор
	StateConfirmDay UserState = "confirm_day"
)

// Ключи временных данных
const (
	KeyWeekday = "weekday"
)

// DefaultTTL сколько живёт незавершённый диалог
const DefaultTTL = 15 * time.Minute

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{} // Временные данные для текущего диалога
	UpdatedAt time.Time
}
