package allocation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
)

// memStore хранилище в памяти с теми же ограничениями уникальности, что и в Postgres
type memStore struct {
	mu          sync.Mutex
	classrooms  []model.Classroom
	slots       []model.ExamSlot
	allocations []model.Allocation
	pool        []model.EmergencyPoolEntry
	timetable   []model.TimetableEntry

	listErr   error
	createErr error
	// conflicts количество ErrWriteConflict, которые вернёт CreateAllocation перед успешной записью
	conflicts int
	// beforeCreate вызывается перед записью назначения (имитация параллельного запроса)
	beforeCreate func(s *memStore)
}

func (s *memStore) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]model.Classroom(nil), s.classrooms...), nil
}

func (s *memStore) ListExamSlots(ctx context.Context) ([]model.ExamSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]model.ExamSlot(nil), s.slots...), nil
}

func (s *memStore) ListAllocations(ctx context.Context) ([]model.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]model.Allocation(nil), s.allocations...), nil
}

func (s *memStore) ListAllocationsForProfessor(ctx context.Context, professorID string) ([]model.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Allocation
	for _, a := range s.allocations {
		if a.ProfessorID == professorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) ListTimetable(ctx context.Context, professorID string) ([]model.TimetableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.TimetableEntry
	for _, e := range s.timetable {
		if e.ProfessorID == professorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) ListEmergencyPool(ctx context.Context) ([]model.EmergencyPoolEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]model.EmergencyPoolEntry(nil), s.pool...), nil
}

func (s *memStore) CreateAllocation(ctx context.Context, allocation *model.Allocation) error {
	s.mu.Lock()
	hook := s.beforeCreate
	s.beforeCreate = nil
	s.mu.Unlock()
	if hook != nil {
		hook(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if s.conflicts > 0 {
		s.conflicts--
		return ErrWriteConflict
	}
	for _, a := range s.allocations {
		sameDay := a.Weekday == allocation.Weekday
		if sameDay && (a.ProfessorID == allocation.ProfessorID || a.ClassroomID == allocation.ClassroomID) {
			return ErrWriteConflict
		}
	}
	s.allocations = append(s.allocations, *allocation)
	return nil
}

func (s *memStore) CreateEmergencyPoolEntry(ctx context.Context, entry *model.EmergencyPoolEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, e := range s.pool {
		if e.ProfessorID == entry.ProfessorID && e.IsWaiting() {
			return ErrWriteConflict
		}
	}
	s.pool = append(s.pool, *entry)
	return nil
}

func (s *memStore) allocationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.allocations)
}

func (s *memStore) poolCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
}

type sentMessage struct {
	channel, subject, body string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, channel, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMessage{channel, subject, body})
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type fakeAdvisor struct {
	suggestion string
	err        error
	calls      int
}

func (a *fakeAdvisor) Suggest(ctx context.Context, in AdvisorInput) (string, error) {
	a.calls++
	return a.suggestion, a.err
}

var errBoom = errors.New("boom")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slotOn(id string, d time.Time, subject string) model.ExamSlot {
	return model.ExamSlot{ID: id, Date: d, Weekday: model.WeekdayOf(d), Subject: subject}
}

func professor(id, department string) model.Professor {
	return model.Professor{
		ID:             id,
		Name:           "Prof " + id,
		Department:     department,
		Designation:    model.DesignationProfessor,
		Phone:          "+1-555-" + id,
		ContactChannel: "chat-" + id,
	}
}

func classroom(id, department string) model.Classroom {
	return model.Classroom{ID: id, Name: "Room " + id, Department: department, Floor: 1, RoomNumber: id, Capacity: 40}
}

func allocationOf(professorID, classroomID string, slot model.ExamSlot) model.Allocation {
	return model.Allocation{
		ID:          "alloc-" + professorID + "-" + classroomID,
		ProfessorID: professorID,
		SlotID:      slot.ID,
		Date:        slot.Date,
		Weekday:     slot.Weekday,
		Subject:     slot.Subject,
		ClassroomID: classroomID,
		Status:      model.AllocationStatusAssigned,
	}
}

func firstPick(n int) int { return 0 }
