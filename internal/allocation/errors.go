package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/proctor_bot/internal/model"
)

// Ожидаемые исходы запроса. Все они исправляются повторным запросом с другими данными.
var (
	ErrNoSlotsAvailable            = errors.New("no exam slots available for this day")
	ErrAlreadyAllocatedThisDay     = errors.New("professor already has an allocation on this day")
	ErrAllClassroomsOccupiedForDay = errors.New("all classrooms are occupied for this day")
	ErrNoClassroomAvailable        = errors.New("no classroom available for this exam slot")
	ErrAlreadyEscalated            = errors.New("professor is already waiting in the emergency pool")

	// ErrStoreUnavailable ошибка чтения или записи во внешнее хранилище, запрос можно повторить
	ErrStoreUnavailable = errors.New("fact store unavailable")

	// ErrWriteConflict хранилище отклонило запись, потому что данные изменились после чтения
	ErrWriteConflict = errors.New("concurrent write conflict")
)

// AlreadyAllocatedError содержит существующее назначение на этот день
type AlreadyAllocatedError struct {
	Allocation model.Allocation
}

func (e *AlreadyAllocatedError) Error() string {
	return fmt.Sprintf("%s: %s, classroom %s, subject %s",
		ErrAlreadyAllocatedThisDay, e.Allocation.Weekday, e.Allocation.ClassroomName, e.Allocation.Subject)
}

func (e *AlreadyAllocatedError) Is(target error) bool {
	return target == ErrAlreadyAllocatedThisDay
}

// AlreadyEscalatedError содержит запись, которая уже ждёт администратора
type AlreadyEscalatedError struct {
	Entry model.EmergencyPoolEntry
}

func (e *AlreadyEscalatedError) Error() string {
	return fmt.Sprintf("%s: requested %s, subject %s",
		ErrAlreadyEscalated, e.Entry.RequestedWeekday, e.Entry.ExamSubject)
}

func (e *AlreadyEscalatedError) Is(target error) bool {
	return target == ErrAlreadyEscalated
}

// storeError оборачивает ошибку хранилища в ErrStoreUnavailable.
// ErrWriteConflict и отмена контекста пробрасываются как есть.
func storeError(op string, err error) error {
	if errors.Is(err, ErrWriteConflict) || errors.Is(err, ErrStoreUnavailable) || isContextErr(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsEscalationTrigger сообщает, должна ли причина отказа привести к записи в emergency pool
func IsEscalationTrigger(err error) bool {
	return errors.Is(err, ErrAllClassroomsOccupiedForDay) || errors.Is(err, ErrNoClassroomAvailable)
}
