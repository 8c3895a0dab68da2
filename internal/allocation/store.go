package allocation

import (
	"context"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
)

// FactStore внешнее хранилище фактов. Чтения возвращают снимок на момент вызова,
// записи создают ровно одну запись или ничего.
type FactStore interface {
	ListClassrooms(ctx context.Context) ([]model.Classroom, error)
	ListExamSlots(ctx context.Context) ([]model.ExamSlot, error)
	ListAllocations(ctx context.Context) ([]model.Allocation, error)
	ListAllocationsForProfessor(ctx context.Context, professorID string) ([]model.Allocation, error)
	ListTimetable(ctx context.Context, professorID string) ([]model.TimetableEntry, error)
	ListEmergencyPool(ctx context.Context) ([]model.EmergencyPoolEntry, error)

	// CreateAllocation возвращает ErrWriteConflict, если запись нарушает
	// уникальность (преподаватель, день) или (аудитория, день).
	CreateAllocation(ctx context.Context, allocation *model.Allocation) error
	// CreateEmergencyPoolEntry возвращает ErrWriteConflict, если у преподавателя уже есть ожидающая запись.
	CreateEmergencyPoolEntry(ctx context.Context, entry *model.EmergencyPoolEntry) error
}

// Notifier отправляет сообщение в канал связи. Доставка не гарантируется.
type Notifier interface {
	Notify(ctx context.Context, channel, subject, body string) error
}

// AdvisorInput данные, которые получает внешний советчик
type AdvisorInput struct {
	Professor  model.Professor
	Weekday    string
	Slot       model.ExamSlot
	Classrooms []model.Classroom
	Occupied   []string
}

// Advisor предлагает аудиторию. Предложение проходит те же проверки занятости,
// что и детерминированный выбор, и отбрасывается при любой ошибке.
type Advisor interface {
	Suggest(ctx context.Context, in AdvisorInput) (string, error)
}

type EventType string

const (
	EventAllocationRecorded EventType = "allocation.recorded"
	EventEscalationCreated  EventType = "escalation.created"
)

// Event уведомление для внешних подписчиков (администраторские панели, аудит)
type Event struct {
	Type       EventType                 `json:"type"`
	Key        string                    `json:"key"`
	OccurredAt time.Time                 `json:"occurred_at"`
	Allocation *model.Allocation         `json:"allocation,omitempty"`
	Entry      *model.EmergencyPoolEntry `json:"entry,omitempty"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
