package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// State конечное состояние обработки запроса на выбор дня
type State string

const (
	StateConfirmPending State = "confirm_pending" // найдены занятия в этот день, нужно подтверждение
	StateRecorded       State = "recorded"
	StateEscalated      State = "escalated"
	StateRejected       State = "rejected"
)

const (
	defaultMaxAttempts    = 3
	defaultAdvisorTimeout = 5 * time.Second
)

// Request запрос преподавателя на дежурство в выбранный день
type Request struct {
	Professor model.Professor
	Weekday   string
	// Confirmed преподаватель подтвердил выбор дня несмотря на занятия по расписанию
	Confirmed bool
}

// Result исход запроса. Ожидаемые отказы лежат в Reason, а не в ошибке.
type Result struct {
	State      State
	Weekday    string
	Conflicts  []model.TimetableEntry
	Slot       *model.ExamSlot
	Allocation *model.Allocation
	Entry      *model.EmergencyPoolEntry
	Reason     error
	Notice     string
}

type Option func(*Engine)

// followup побочные эффекты, которые выполняются после снятия блокировок
type followup func(ctx context.Context)

// WithAdvisor подключает внешнего советчика по выбору аудитории
func WithAdvisor(advisor Advisor, timeout time.Duration) Option {
	return func(e *Engine) {
		e.advisor = advisor
		if timeout > 0 {
			e.advisorTimeout = timeout
		}
	}
}

// WithPicker задаёт выбор слота (по умолчанию случайный)
func WithPicker(pick PickFunc) Option {
	return func(e *Engine) {
		e.pick = pick
	}
}

// WithMaxAttempts количество попыток при конфликте записи
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// Engine мгновенное распределение дежурств
type Engine struct {
	store          FactStore
	recorder       *Recorder
	escalator      *Escalator
	advisor        Advisor
	advisorTimeout time.Duration
	locks          *KeyedMutex
	pick           PickFunc
	maxAttempts    int
	tracer         trace.Tracer
	logger         *zap.Logger
}

func NewEngine(
	store FactStore,
	notifier Notifier,
	publisher EventPublisher,
	logger *zap.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		store:          store,
		recorder:       NewRecorder(store, notifier, publisher, logger),
		escalator:      NewEscalator(store, publisher, logger),
		advisorTimeout: defaultAdvisorTimeout,
		locks:          NewKeyedMutex(),
		pick:           RandomPick,
		maxAttempts:    defaultMaxAttempts,
		tracer:         otel.Tracer("github.com/Freeeeeet/proctor_bot/internal/allocation"),
		logger:         logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SelectDay обрабатывает выбор дня преподавателем.
// Возвращает ошибку только при недоступности хранилища или отмене контекста.
func (e *Engine) SelectDay(ctx context.Context, req Request) (*Result, error) {
	weekday := model.NormalizeWeekday(req.Weekday)

	ctx, span := e.tracer.Start(ctx, "allocation.SelectDay", trace.WithAttributes(
		attribute.String("professor.id", req.Professor.ID),
		attribute.String("weekday", weekday),
		attribute.Bool("confirmed", req.Confirmed),
	))
	defer span.End()

	unlock, err := e.locks.Lock(ctx, ProfessorKey(req.Professor.ID), WeekdayKey(weekday))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("acquire allocation lock: %w", err)
	}
	defer unlock()

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		result, after, err := e.attempt(ctx, req.Professor, weekday, req.Confirmed)
		if errors.Is(err, ErrWriteConflict) {
			e.logger.Warn("Allocation write conflict, recomputing",
				zap.String("professor_id", req.Professor.ID),
				zap.String("weekday", weekday),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		span.SetAttributes(attribute.String("state", string(result.State)))
		if result.Reason != nil {
			span.SetAttributes(attribute.String("reason", result.Reason.Error()))
		}

		// Уведомление и событие отправляются уже без блокировок
		unlock()
		if after != nil {
			after(ctx)
		}
		return result, nil
	}

	err = fmt.Errorf("%w: %w after %d attempts", ErrStoreUnavailable, ErrWriteConflict, e.maxAttempts)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}

func (e *Engine) attempt(ctx context.Context, professor model.Professor, weekday string, confirmed bool) (*Result, followup, error) {
	snap, err := LoadSnapshot(ctx, e.store, professor.ID)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{Weekday: weekday}

	// ConflictCheck -> ConfirmPending
	if !confirmed {
		if conflicts := CheckConflicts(snap.Timetable, weekday); len(conflicts) > 0 {
			result.State = StateConfirmPending
			result.Conflicts = conflicts
			return result, nil, nil
		}
	}

	// Повторное назначение на тот же день отклоняется до выбора слота
	if err := CheckSameDay(professor.ID, weekday, snap.Allocations); err != nil {
		return rejected(result, err), nil, nil
	}

	// SlotSelection
	slot, err := SelectSlot(snap.Slots, weekday, e.pick)
	if err != nil {
		return rejected(result, err), nil, nil
	}
	result.Slot = &slot

	// ClassroomResolution
	in := ResolveInput{
		Professor:   professor,
		Weekday:     weekday,
		Slot:        slot,
		Classrooms:  snap.Classrooms,
		Allocations: snap.Allocations,
	}
	resolution, err := Resolve(in)
	switch {
	case err == nil:
		resolution = e.consultAdvisor(ctx, in, resolution)
	case IsEscalationTrigger(err):
		return e.escalate(ctx, result, professor, weekday, &slot, err, snap.Pool)
	default:
		return rejected(result, err), nil, nil
	}

	// Recorded
	allocation, err := e.recorder.Record(ctx, professor, resolution.Slot, resolution.Classroom)
	if err != nil {
		return nil, nil, err
	}

	result.State = StateRecorded
	result.Allocation = allocation
	result.Notice = fmt.Sprintf("Allocation successful!\n\nClassroom: %s\nSubject: %s\nDate: %s",
		allocation.ClassroomName, allocation.Subject, allocation.DateString())
	return result, func(ctx context.Context) {
		e.recorder.Announce(ctx, professor, allocation)
	}, nil
}

func (e *Engine) escalate(
	ctx context.Context,
	result *Result,
	professor model.Professor,
	weekday string,
	slot *model.ExamSlot,
	cause error,
	pool []model.EmergencyPoolEntry,
) (*Result, followup, error) {
	entry, err := e.escalator.Escalate(ctx, EscalationRequest{
		Professor: professor,
		Weekday:   weekday,
		Slot:      slot,
		Cause:     cause,
		Pool:      pool,
	})
	if errors.Is(err, ErrAlreadyEscalated) {
		return rejected(result, err), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	result.State = StateEscalated
	result.Entry = entry
	result.Reason = cause
	result.Notice = EscalationNotice(entry, cause)
	return result, func(ctx context.Context) {
		e.escalator.Announce(ctx, entry)
	}, nil
}

// consultAdvisor спрашивает советчика и перепроверяет предложение теми же правилами.
// При любой ошибке остаётся детерминированный выбор.
func (e *Engine) consultAdvisor(ctx context.Context, in ResolveInput, fallback *Resolution) *Resolution {
	if e.advisor == nil {
		return fallback
	}

	actx, cancel := context.WithTimeout(ctx, e.advisorTimeout)
	defer cancel()

	occupied := OccupiedOnDay(in.Allocations, in.Weekday)
	for id := range OccupiedInSlot(in.Allocations, in.Slot) {
		occupied[id] = struct{}{}
	}

	suggested, err := e.advisor.Suggest(actx, AdvisorInput{
		Professor:  in.Professor,
		Weekday:    in.Weekday,
		Slot:       in.Slot,
		Classrooms: in.Classrooms,
		Occupied:   keys(occupied),
	})
	if err != nil {
		e.logger.Warn("Advisor failed, using deterministic choice",
			zap.String("professor_id", in.Professor.ID),
			zap.Error(err))
		return fallback
	}
	if suggested == "" || suggested == fallback.Classroom.ID {
		return fallback
	}

	in.Suggested = suggested
	resolution, err := Resolve(in)
	if err != nil || !resolution.Suggested {
		e.logger.Info("Advisor suggestion rejected",
			zap.String("professor_id", in.Professor.ID),
			zap.String("suggested", suggested))
		return fallback
	}
	return resolution
}

func rejected(result *Result, reason error) *Result {
	result.State = StateRejected
	result.Reason = reason
	return result
}
