package allocation

import (
	"sort"

	"github.com/Freeeeeet/proctor_bot/internal/model"
)

// ResolveInput снимок фактов, по которому принимается решение
type ResolveInput struct {
	Professor   model.Professor
	Weekday     string
	Slot        model.ExamSlot
	Classrooms  []model.Classroom
	Allocations []model.Allocation

	// Suggested аудитория, предложенная советчиком. Принимается только если
	// входит в первый непустой пул кандидатов.
	Suggested string
}

// Resolution результат выбора аудитории
type Resolution struct {
	Slot      model.ExamSlot
	Classroom model.Classroom
	Suggested bool // выбрана аудитория, предложенная советчиком
}

// CheckSameDay проверяет, что у преподавателя нет назначения на этот день
func CheckSameDay(professorID, weekday string, allocations []model.Allocation) error {
	for _, a := range allocations {
		if a.ProfessorID == professorID && model.SameWeekday(a.Weekday, weekday) {
			return &AlreadyAllocatedError{Allocation: a}
		}
	}
	return nil
}

// Resolve выбирает свободную аудиторию для преподавателя.
// Шаги выполняются по порядку, первый сработавший определяет результат:
//  1. у преподавателя уже есть назначение на этот день
//  2. все аудитории заняты на весь день
//  3-5. аудитории своей кафедры, затем остальные, без занятых на день и на слот
//  6. свободных аудиторий нет
func Resolve(in ResolveInput) (*Resolution, error) {
	if err := CheckSameDay(in.Professor.ID, in.Weekday, in.Allocations); err != nil {
		return nil, err
	}

	usedOnDay := OccupiedOnDay(in.Allocations, in.Weekday)
	if coversAll(usedOnDay, in.Classrooms) {
		return nil, ErrAllClassroomsOccupiedForDay
	}

	usedInSlot := OccupiedInSlot(in.Allocations, in.Slot)

	classrooms := sortedClassrooms(in.Classrooms)
	free := func(c model.Classroom) bool {
		_, day := usedOnDay[c.ID]
		_, slot := usedInSlot[c.ID]
		return !day && !slot
	}

	var own, other []model.Classroom
	for _, c := range classrooms {
		if !free(c) {
			continue
		}
		if c.Department == in.Professor.Department {
			own = append(own, c)
		} else {
			other = append(other, c)
		}
	}

	pool := own
	if len(pool) == 0 {
		pool = other
	}
	if len(pool) == 0 {
		return nil, ErrNoClassroomAvailable
	}

	if in.Suggested != "" {
		for _, c := range pool {
			if c.ID == in.Suggested {
				return &Resolution{Slot: in.Slot, Classroom: c, Suggested: true}, nil
			}
		}
	}

	return &Resolution{Slot: in.Slot, Classroom: pool[0]}, nil
}

// OccupiedOnDay аудитории, занятые кем-либо в этот день недели
func OccupiedOnDay(allocations []model.Allocation, weekday string) map[string]struct{} {
	used := make(map[string]struct{})
	for _, a := range allocations {
		if model.SameWeekday(a.Weekday, weekday) {
			used[a.ClassroomID] = struct{}{}
		}
	}
	return used
}

// OccupiedInSlot аудитории, занятые на ту же дату и тот же предмет
func OccupiedInSlot(allocations []model.Allocation, slot model.ExamSlot) map[string]struct{} {
	used := make(map[string]struct{})
	date := slot.DateString()
	for _, a := range allocations {
		if a.DateString() == date && a.Subject == slot.Subject {
			used[a.ClassroomID] = struct{}{}
		}
	}
	return used
}

func coversAll(used map[string]struct{}, classrooms []model.Classroom) bool {
	for _, c := range classrooms {
		if _, ok := used[c.ID]; !ok {
			return false
		}
	}
	return true
}

// sortedClassrooms копия списка, упорядоченная по ID
func sortedClassrooms(classrooms []model.Classroom) []model.Classroom {
	sorted := make([]model.Classroom, len(classrooms))
	copy(sorted, classrooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
