package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEscalate_CreatesWaitingEntryWithProfile(t *testing.T) {
	store := &memStore{}
	publisher := &fakePublisher{}
	escalator := NewEscalator(store, publisher, zap.NewNop())
	slot := slotOn("s1", date(2025, time.January, 6), "Calculus")
	prof := professor("p1", "Math")
	prof.Designation = model.DesignationAssistantProfessor

	entry, err := escalator.Escalate(context.Background(), EscalationRequest{
		Professor: prof,
		Weekday:   "monday",
		Slot:      &slot,
		Cause:     ErrNoClassroomAvailable,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, model.EmergencyStatusWaiting, entry.Status)
	assert.Equal(t, "p1", entry.ProfessorID)
	assert.Equal(t, prof.Name, entry.ProfessorName)
	assert.Equal(t, "Math", entry.Department)
	assert.Equal(t, model.DesignationAssistantProfessor, entry.Designation)
	assert.Equal(t, prof.Phone, entry.Phone)
	assert.Equal(t, "Monday", entry.RequestedWeekday)
	assert.Equal(t, "2025-01-06", entry.RequestedDateString())
	assert.Equal(t, "Calculus", entry.ExamSubject)
	require.NotNil(t, entry.SlotID)
	assert.Equal(t, "s1", *entry.SlotID)
	assert.Equal(t, "All classrooms are full for the exam slot: Calculus on 2025-01-06", entry.Reason)

	assert.Equal(t, 1, store.poolCount())
	assert.Empty(t, publisher.events, "event is published by Announce")

	escalator.Announce(context.Background(), entry)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventEscalationCreated, publisher.events[0].Type)
	assert.Equal(t, "p1", publisher.events[0].Key)
}

func TestEscalate_WithoutSlot(t *testing.T) {
	store := &memStore{}
	escalator := NewEscalator(store, nil, zap.NewNop())

	prof := professor("p1", "Math")
	prof.Phone = ""
	entry, err := escalator.Escalate(context.Background(), EscalationRequest{
		Professor: prof,
		Weekday:   "Friday",
		Cause:     ErrAllClassroomsOccupiedForDay,
	})
	require.NoError(t, err)
	assert.Nil(t, entry.SlotID)
	assert.Nil(t, entry.RequestedDate)
	assert.Equal(t, "N/A", entry.Phone)
	assert.Contains(t, entry.Reason, "Friday")
}

func TestEscalate_RejectsDuplicateWaitingEntry(t *testing.T) {
	existing := model.EmergencyPoolEntry{
		ID:               "e1",
		ProfessorID:      "p1",
		RequestedWeekday: "Tuesday",
		ExamSubject:      "Physics",
		Status:           model.EmergencyStatusWaiting,
	}
	store := &memStore{pool: []model.EmergencyPoolEntry{existing}}
	escalator := NewEscalator(store, nil, zap.NewNop())

	entry, err := escalator.Escalate(context.Background(), EscalationRequest{
		Professor: professor("p1", "Math"),
		Weekday:   "Monday",
		Cause:     ErrNoClassroomAvailable,
		Pool:      store.pool,
	})
	assert.Nil(t, entry)
	require.ErrorIs(t, err, ErrAlreadyEscalated)

	var already *AlreadyEscalatedError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "e1", already.Entry.ID)
	assert.Equal(t, 1, store.poolCount())
}

func TestEscalate_ResolvedEntryDoesNotBlock(t *testing.T) {
	resolved := model.EmergencyPoolEntry{ID: "e1", ProfessorID: "p1", Status: "resolved"}
	store := &memStore{pool: []model.EmergencyPoolEntry{resolved}}
	escalator := NewEscalator(store, nil, zap.NewNop())

	_, err := escalator.Escalate(context.Background(), EscalationRequest{
		Professor: professor("p1", "Math"),
		Weekday:   "Monday",
		Cause:     ErrAllClassroomsOccupiedForDay,
		Pool:      store.pool,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, store.poolCount())
}

func TestEscalate_StoreFailure(t *testing.T) {
	store := &memStore{createErr: errBoom}
	escalator := NewEscalator(store, nil, zap.NewNop())

	_, err := escalator.Escalate(context.Background(), EscalationRequest{
		Professor: professor("p1", "Math"),
		Weekday:   "Monday",
		Cause:     ErrAllClassroomsOccupiedForDay,
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, errBoom)
}

func TestEscalationNotice_NamesPhone(t *testing.T) {
	entry := &model.EmergencyPoolEntry{RequestedWeekday: "Monday", Phone: "+1-555-0100"}

	notice := EscalationNotice(entry, ErrAllClassroomsOccupiedForDay)
	assert.Contains(t, notice, "Monday")
	assert.Contains(t, notice, "+1-555-0100")
}
