package model

import "time"

type EmergencyStatus string

const (
	EmergencyStatusWaiting EmergencyStatus = "waiting" // Ждёт решения администратора
)

// EmergencyPoolEntry запрос, который не удалось обработать автоматически.
// Профиль преподавателя копируется на момент создания.
type EmergencyPoolEntry struct {
	ID               string          `json:"id"`
	ProfessorID      string          `json:"professor_id"`
	ProfessorName    string          `json:"professor_name"`
	Department       string          `json:"department"`
	Designation      string          `json:"designation"`
	Phone            string          `json:"phone"`
	RequestedWeekday string          `json:"requested_weekday"`
	RequestedDate    *time.Time      `json:"requested_date"` // nil если на день не было слотов
	ExamSubject      string          `json:"exam_subject"`
	SlotID           *string         `json:"slot_id"`
	Reason           string          `json:"reason"`
	Status           EmergencyStatus `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// IsWaiting проверяет, ожидает ли запись решения
func (e *EmergencyPoolEntry) IsWaiting() bool {
	return e.Status == EmergencyStatusWaiting
}

// RequestedDateString возвращает запрошенную дату или пустую строку
func (e *EmergencyPoolEntry) RequestedDateString() string {
	if e.RequestedDate == nil {
		return ""
	}
	return e.RequestedDate.Format(DateLayout)
}
