package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfirmationSubject тема уведомления о назначении
const ConfirmationSubject = "Exam Proctoring Assignment Confirmation"

// Recorder сохраняет назначения и уведомляет преподавателя
type Recorder struct {
	store     FactStore
	notifier  Notifier
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewRecorder(store FactStore, notifier Notifier, publisher EventPublisher, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:     store,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Record создаёт назначение. Назначение считается состоявшимся после записи в хранилище.
// Уведомление и событие отправляет Announce.
func (r *Recorder) Record(ctx context.Context, professor model.Professor, slot model.ExamSlot, classroom model.Classroom) (*model.Allocation, error) {
	allocation := &model.Allocation{
		ID:                  uuid.NewString(),
		ProfessorID:         professor.ID,
		ProfessorName:       professor.Name,
		ProfessorDepartment: professor.Department,
		SlotID:              slot.ID,
		Date:                slot.Date,
		Weekday:             model.NormalizeWeekday(slot.Weekday),
		Subject:             slot.Subject,
		ClassroomID:         classroom.ID,
		ClassroomName:       classroom.Name,
		ClassroomDepartment: classroom.Department,
		Floor:               classroom.Floor,
		RoomNumber:          classroom.RoomNumber,
		Status:              model.AllocationStatusAssigned,
		CreatedAt:           r.now().UTC(),
	}

	err := r.store.CreateAllocation(ctx, allocation)
	if err != nil {
		return nil, storeError("create allocation", err)
	}

	r.logger.Info("Allocation recorded",
		zap.String("allocation_id", allocation.ID),
		zap.String("professor_id", professor.ID),
		zap.String("slot_id", slot.ID),
		zap.String("classroom_id", classroom.ID),
		zap.String("weekday", allocation.Weekday),
	)

	return allocation, nil
}

// Announce уведомляет преподавателя и публикует событие. Ошибки только логируются.
func (r *Recorder) Announce(ctx context.Context, professor model.Professor, allocation *model.Allocation) {
	r.notify(ctx, professor, allocation)

	publish(ctx, r.publisher, r.logger, Event{
		Type:       EventAllocationRecorded,
		Key:        allocation.ProfessorID,
		OccurredAt: allocation.CreatedAt,
		Allocation: allocation,
	})
}

func (r *Recorder) notify(ctx context.Context, professor model.Professor, allocation *model.Allocation) {
	if r.notifier == nil || professor.ContactChannel == "" {
		r.logger.Warn("No contact channel for confirmation",
			zap.String("professor_id", professor.ID))
		return
	}

	err := r.notifier.Notify(ctx, professor.ContactChannel, ConfirmationSubject, ConfirmationBody(professor, allocation))
	if err != nil {
		r.logger.Warn("Failed to send allocation confirmation",
			zap.String("allocation_id", allocation.ID),
			zap.String("channel", professor.ContactChannel),
			zap.Error(err),
		)
	}
}

// ConfirmationBody текст подтверждения назначения
func ConfirmationBody(professor model.Professor, a *model.Allocation) string {
	return fmt.Sprintf(
		"Dear %s,\n\nYou have been allocated for exam proctoring:\n\n"+
			"📅 Date: %s (%s)\n📚 Subject: %s\n🏛️ Department: %s\n🏫 Classroom: %s\n🏢 Floor: %d\n🚪 Room Number: %s\n\n"+
			"✅ Status: CONFIRMED\n\nPlease be present 15 minutes before the exam starts.",
		professor.Name,
		a.DateString(), a.Weekday,
		a.Subject,
		a.ClassroomDepartment,
		a.ClassroomName,
		a.Floor,
		a.RoomNumber,
	)
}

// publish отправляет событие, если издатель настроен. Ошибки только логируются.
func publish(ctx context.Context, publisher EventPublisher, logger *zap.Logger, event Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("type", string(event.Type)),
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}
}
