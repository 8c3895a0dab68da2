package model

import "time"

// DateLayout формат даты экзамена, в котором она хранится и показывается
const DateLayout = "2006-01-02"

type ExamSlot struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date" validate:"required"`
	Weekday   string    `json:"weekday"` // вычисляется из Date при создании
	Subject   string    `json:"subject" validate:"required,max=200"`
	CreatedAt time.Time `json:"created_at"`
}

// DateString возвращает дату слота в формате YYYY-MM-DD
func (s *ExamSlot) DateString() string {
	return s.Date.Format(DateLayout)
}
