package allocation

import (
	"context"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"golang.org/x/sync/errgroup"
)

// Snapshot факты, прочитанные для одного запроса
type Snapshot struct {
	Classrooms  []model.Classroom
	Slots       []model.ExamSlot
	Allocations []model.Allocation
	Pool        []model.EmergencyPoolEntry
	Timetable   []model.TimetableEntry
}

// LoadSnapshot читает все коллекции параллельно
func LoadSnapshot(ctx context.Context, store FactStore, professorID string) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Classrooms, err = store.ListClassrooms(gctx)
		if err != nil {
			return storeError("list classrooms", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Slots, err = store.ListExamSlots(gctx)
		if err != nil {
			return storeError("list exam slots", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Allocations, err = store.ListAllocations(gctx)
		if err != nil {
			return storeError("list allocations", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Pool, err = store.ListEmergencyPool(gctx)
		if err != nil {
			return storeError("list emergency pool", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Timetable, err = store.ListTimetable(gctx, professorID)
		if err != nil {
			return storeError("list timetable", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
