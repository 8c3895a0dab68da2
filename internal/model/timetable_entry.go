package model

import "time"

// TimetableEntry регулярное занятие преподавателя. Используется только для
// поиска конфликтов по дню недели, время не сравнивается.
type TimetableEntry struct {
	ID          string    `json:"id"`
	ProfessorID string    `json:"professor_id" validate:"required"`
	Weekday     string    `json:"weekday" validate:"required,weekday"`
	Subject     string    `json:"subject" validate:"required,max=200"`
	StartTime   string    `json:"start_time" validate:"required,clock"`
	EndTime     string    `json:"end_time" validate:"required,clock"`
	Semester    string    `json:"semester" validate:"max=50"`
	CreatedAt   time.Time `json:"created_at"`
}
