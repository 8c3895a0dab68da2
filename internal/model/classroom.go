package model

import "time"

type Classroom struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"required,max=100"`
	Department string    `json:"department" validate:"required,max=200"`
	Floor      int       `json:"floor" validate:"gte=0,lte=200"`
	RoomNumber string    `json:"room_number" validate:"required,max=20"`
	Capacity   int       `json:"capacity" validate:"gt=0"`
	Facilities []string  `json:"facilities" validate:"dive,required"`
	CreatedAt  time.Time `json:"created_at"`
}

// DepartmentUtilization сколько аудиторий кафедры занято хотя бы одним назначением
type DepartmentUtilization struct {
	Department string `json:"department"`
	Used       int    `json:"used"`
	Total      int    `json:"total"`
}

// Percentage доля занятых аудиторий, округлённая до целого
func (u DepartmentUtilization) Percentage() int {
	if u.Total == 0 {
		return 0
	}
	return (u.Used*100 + u.Total/2) / u.Total
}
