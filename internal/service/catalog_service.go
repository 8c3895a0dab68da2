package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/Freeeeeet/proctor_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfessorStore interface {
	Create(ctx context.Context, p *model.Professor) error
	GetByID(ctx context.Context, id string) (*model.Professor, error)
	GetByContactChannel(ctx context.Context, channel string) (*model.Professor, error)
	List(ctx context.Context) ([]model.Professor, error)
}

type ClassroomStore interface {
	Create(ctx context.Context, c *model.Classroom) error
	List(ctx context.Context) ([]model.Classroom, error)
	UtilizationByDepartment(ctx context.Context) ([]model.DepartmentUtilization, error)
}

type ExamSlotStore interface {
	Create(ctx context.Context, s *model.ExamSlot) error
	List(ctx context.Context) ([]model.ExamSlot, error)
}

type TimetableStore interface {
	Create(ctx context.Context, e *model.TimetableEntry) error
	ListByProfessor(ctx context.Context, professorID string) ([]model.TimetableEntry, error)
}

type WaitingPoolStore interface {
	ListWaiting(ctx context.Context) ([]model.EmergencyPoolEntry, error)
}

// ProfessorInput данные для регистрации преподавателя администратором
type ProfessorInput struct {
	Name           string
	Department     string
	Designation    string
	Phone          string
	ContactChannel string
}

// ClassroomInput данные новой аудитории
type ClassroomInput struct {
	Name       string
	Department string
	Floor      int
	RoomNumber string
	Capacity   int
	Facilities []string
}

// TimetableInput занятие из расписания преподавателя
type TimetableInput struct {
	Weekday   string
	Subject   string
	StartTime string
	EndTime   string
	Semester  string
}

// CatalogService справочники: преподаватели, аудитории, слоты экзаменов, расписание
type CatalogService struct {
	professors  ProfessorStore
	classrooms  ClassroomStore
	slots       ExamSlotStore
	timetable   TimetableStore
	allocations AllocationStore
	pool        WaitingPoolStore
	validator   *Validator
	logger      *zap.Logger
}

func NewCatalogService(
	professors ProfessorStore,
	classrooms ClassroomStore,
	slots ExamSlotStore,
	timetable TimetableStore,
	allocations AllocationStore,
	pool WaitingPoolStore,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		professors:  professors,
		classrooms:  classrooms,
		slots:       slots,
		timetable:   timetable,
		allocations: allocations,
		pool:        pool,
		validator:   NewValidator(),
		logger:      logger,
	}
}

// RegisterProfessor создаёт преподавателя и выдаёт ему токен
func (s *CatalogService) RegisterProfessor(ctx context.Context, in ProfessorInput) (*model.Professor, error) {
	professor := &model.Professor{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Department:     strings.TrimSpace(in.Department),
		Designation:    strings.TrimSpace(in.Designation),
		Phone:          strings.TrimSpace(in.Phone),
		ContactChannel: strings.TrimSpace(in.ContactChannel),
		Token:          uuid.NewString(),
	}

	if err := s.validator.Struct(professor); err != nil {
		return nil, err
	}

	existing, err := s.professors.GetByContactChannel(ctx, professor.ContactChannel)
	if err != nil {
		return nil, fmt.Errorf("check existing professor: %w", err)
	}
	if existing != nil {
		return nil, ErrProfessorExists
	}

	if err := s.professors.Create(ctx, professor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfessorExists
		}
		return nil, fmt.Errorf("create professor: %w", err)
	}

	s.logger.Info("Professor registered",
		zap.String("professor_id", professor.ID),
		zap.String("department", professor.Department),
		zap.String("designation", professor.Designation),
	)

	return professor, nil
}

// CreateClassroom добавляет аудиторию
func (s *CatalogService) CreateClassroom(ctx context.Context, in ClassroomInput) (*model.Classroom, error) {
	classroom := &model.Classroom{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Department: strings.TrimSpace(in.Department),
		Floor:      in.Floor,
		RoomNumber: strings.TrimSpace(in.RoomNumber),
		Capacity:   in.Capacity,
		Facilities: in.Facilities,
	}

	if err := s.validator.Struct(classroom); err != nil {
		return nil, err
	}

	if err := s.classrooms.Create(ctx, classroom); err != nil {
		return nil, fmt.Errorf("create classroom: %w", err)
	}

	s.logger.Info("Classroom created",
		zap.String("classroom_id", classroom.ID),
		zap.String("name", classroom.Name),
		zap.String("department", classroom.Department),
	)

	return classroom, nil
}

// CreateExamSlot добавляет слот экзамена. День недели вычисляется из даты.
func (s *CatalogService) CreateExamSlot(ctx context.Context, date, subject string) (*model.ExamSlot, error) {
	parsed, err := time.Parse(model.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, date)
	}

	slot := &model.ExamSlot{
		ID:      uuid.NewString(),
		Date:    parsed,
		Weekday: model.WeekdayOf(parsed),
		Subject: strings.TrimSpace(subject),
	}

	if err := s.validator.Struct(slot); err != nil {
		return nil, err
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create exam slot: %w", err)
	}

	s.logger.Info("Exam slot created",
		zap.String("slot_id", slot.ID),
		zap.String("date", slot.DateString()),
		zap.String("weekday", slot.Weekday),
		zap.String("subject", slot.Subject),
	)

	return slot, nil
}

// AddTimetableEntry добавляет занятие в расписание преподавателя
func (s *CatalogService) AddTimetableEntry(ctx context.Context, professorID string, in TimetableInput) (*model.TimetableEntry, error) {
	entry := &model.TimetableEntry{
		ID:          uuid.NewString(),
		ProfessorID: professorID,
		Weekday:     model.NormalizeWeekday(in.Weekday),
		Subject:     strings.TrimSpace(in.Subject),
		StartTime:   strings.TrimSpace(in.StartTime),
		EndTime:     strings.TrimSpace(in.EndTime),
		Semester:    strings.TrimSpace(in.Semester),
	}

	if err := s.validator.Struct(entry); err != nil {
		return nil, err
	}
	// HH:MM сравнивается лексикографически
	if entry.EndTime <= entry.StartTime {
		return nil, ErrInvalidTimeRange
	}

	professor, err := s.professors.GetByID(ctx, professorID)
	if err != nil {
		return nil, fmt.Errorf("get professor: %w", err)
	}
	if professor == nil {
		return nil, ErrProfessorNotFound
	}

	if err := s.timetable.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create timetable entry: %w", err)
	}

	s.logger.Info("Timetable entry added",
		zap.String("professor_id", professorID),
		zap.String("weekday", entry.Weekday),
		zap.String("subject", entry.Subject),
	)

	return entry, nil
}

func (s *CatalogService) ListProfessors(ctx context.Context) ([]model.Professor, error) {
	return s.professors.List(ctx)
}

func (s *CatalogService) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	return s.classrooms.List(ctx)
}

func (s *CatalogService) ListExamSlots(ctx context.Context) ([]model.ExamSlot, error) {
	return s.slots.List(ctx)
}

// ListAllocations все назначения, результаты мгновенного распределения
func (s *CatalogService) ListAllocations(ctx context.Context) ([]model.Allocation, error) {
	allocations, err := s.allocations.ListAllocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return allocations, nil
}

// ListWaitingPool ожидающие администратора записи emergency pool
func (s *CatalogService) ListWaitingPool(ctx context.Context) ([]model.EmergencyPoolEntry, error) {
	entries, err := s.pool.ListWaiting(ctx)
	if err != nil {
		return nil, fmt.Errorf("list waiting pool: %w", err)
	}
	return entries, nil
}
