package model

import "time"

// Должности, от которых зависит обязательная нагрузка по дежурствам
const (
	DesignationAssistantProfessor = "Assistant Professor"
	DesignationAssociateProfessor = "Associate Professor"
	DesignationProfessor          = "Professor"
)

type Professor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name" validate:"required,max=200"`
	Department     string    `json:"department" validate:"required,max=200"`
	Designation    string    `json:"designation" validate:"required,designation"`
	Phone          string    `json:"phone" validate:"omitempty,max=32"`
	ContactChannel string    `json:"contact_channel" validate:"required"` // Telegram chat id
	Token          string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// RequiredSlots возвращает количество дежурств, которое должен взять преподаватель
func RequiredSlots(designation string) int {
	if designation == DesignationAssistantProfessor {
		return 8
	}
	return 4
}

// FollowUpPhone возвращает телефон для связи администратора, "N/A" если не указан
func (p *Professor) FollowUpPhone() string {
	if p.Phone == "" {
		return "N/A"
	}
	return p.Phone
}
