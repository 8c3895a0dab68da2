package model

import "time"

type AllocationStatus string

const (
	AllocationStatusAssigned AllocationStatus = "assigned"
)

// Allocation назначение преподавателя на дежурство в аудитории.
// Поля преподавателя, слота и аудитории денормализованы и не меняются после создания.
type Allocation struct {
	ID                  string           `json:"id"`
	ProfessorID         string           `json:"professor_id"`
	ProfessorName       string           `json:"professor_name"`
	ProfessorDepartment string           `json:"professor_department"`
	SlotID              string           `json:"slot_id"`
	Date                time.Time        `json:"date"`
	Weekday             string           `json:"weekday"`
	Subject             string           `json:"subject"`
	ClassroomID         string           `json:"classroom_id"`
	ClassroomName       string           `json:"classroom_name"`
	ClassroomDepartment string           `json:"classroom_department"`
	Floor               int              `json:"floor"`
	RoomNumber          string           `json:"room_number"`
	Status              AllocationStatus `json:"status"`
	CreatedAt           time.Time        `json:"created_at"`
}

// DateString возвращает дату экзамена в формате YYYY-MM-DD
func (a *Allocation) DateString() string {
	return a.Date.Format(DateLayout)
}
