package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EscalationRequest неразрешённый запрос преподавателя
type EscalationRequest struct {
	Professor model.Professor
	Weekday   string
	Slot      *model.ExamSlot // nil если на день не нашлось слота
	Cause     error
	Pool      []model.EmergencyPoolEntry
}

// Escalator переносит неразрешённые запросы в emergency pool
type Escalator struct {
	store     FactStore
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewEscalator(store FactStore, publisher EventPublisher, logger *zap.Logger) *Escalator {
	return &Escalator{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// FindWaiting возвращает ожидающую запись преподавателя, если она есть
func FindWaiting(pool []model.EmergencyPoolEntry, professorID string) *model.EmergencyPoolEntry {
	for i := range pool {
		if pool[i].ProfessorID == professorID && pool[i].IsWaiting() {
			return &pool[i]
		}
	}
	return nil
}

// Escalate создаёт запись в emergency pool или возвращает AlreadyEscalatedError
func (e *Escalator) Escalate(ctx context.Context, req EscalationRequest) (*model.EmergencyPoolEntry, error) {
	if existing := FindWaiting(req.Pool, req.Professor.ID); existing != nil {
		return nil, &AlreadyEscalatedError{Entry: *existing}
	}

	entry := e.buildEntry(req)

	err := e.store.CreateEmergencyPoolEntry(ctx, entry)
	if err != nil {
		return nil, storeError("create emergency pool entry", err)
	}

	e.logger.Info("Professor escalated to emergency pool",
		zap.String("entry_id", entry.ID),
		zap.String("professor_id", entry.ProfessorID),
		zap.String("weekday", entry.RequestedWeekday),
		zap.String("subject", entry.ExamSubject),
		zap.String("reason", entry.Reason),
	)

	return entry, nil
}

// Announce публикует событие о новой записи в emergency pool
func (e *Escalator) Announce(ctx context.Context, entry *model.EmergencyPoolEntry) {
	publish(ctx, e.publisher, e.logger, Event{
		Type:       EventEscalationCreated,
		Key:        entry.ProfessorID,
		OccurredAt: entry.CreatedAt,
		Entry:      entry,
	})
}

func (e *Escalator) buildEntry(req EscalationRequest) *model.EmergencyPoolEntry {
	p := req.Professor
	entry := &model.EmergencyPoolEntry{
		ID:               uuid.NewString(),
		ProfessorID:      p.ID,
		ProfessorName:    p.Name,
		Department:       p.Department,
		Designation:      p.Designation,
		Phone:            p.FollowUpPhone(),
		RequestedWeekday: model.NormalizeWeekday(req.Weekday),
		Reason:           EscalationReason(req.Cause, req.Weekday, req.Slot),
		Status:           model.EmergencyStatusWaiting,
		CreatedAt:        e.now().UTC(),
	}

	if req.Slot != nil {
		date := req.Slot.Date
		slotID := req.Slot.ID
		entry.RequestedDate = &date
		entry.ExamSubject = req.Slot.Subject
		entry.SlotID = &slotID
	}

	return entry
}

// EscalationReason текст причины для администратора
func EscalationReason(cause error, weekday string, slot *model.ExamSlot) string {
	day := model.NormalizeWeekday(weekday)
	switch {
	case errors.Is(cause, ErrAllClassroomsOccupiedForDay):
		return fmt.Sprintf("All classrooms are occupied by other professors on %s. No vacant rooms available.", day)
	case errors.Is(cause, ErrNoClassroomAvailable) && slot != nil:
		return fmt.Sprintf("All classrooms are full for the exam slot: %s on %s", slot.Subject, slot.DateString())
	case cause != nil:
		return fmt.Sprintf("Request for %s could not be resolved: %v", day, cause)
	default:
		return fmt.Sprintf("Request for %s could not be resolved", day)
	}
}

// EscalationNotice сообщение преподавателю после записи в emergency pool
func EscalationNotice(entry *model.EmergencyPoolEntry, cause error) string {
	var head string
	switch {
	case errors.Is(cause, ErrAllClassroomsOccupiedForDay):
		head = fmt.Sprintf("All classrooms are already allocated to other professors on %s.", entry.RequestedWeekday)
	case errors.Is(cause, ErrNoClassroomAvailable):
		head = fmt.Sprintf("All classrooms are occupied for %s exam on %s.", entry.ExamSubject, entry.RequestedDateString())
	default:
		head = entry.Reason
	}
	return fmt.Sprintf("%s\n\nYou have been added to the emergency pool. Admin will contact you soon at %s.", head, entry.Phone)
}
