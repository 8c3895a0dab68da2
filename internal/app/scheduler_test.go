package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubPool struct {
	entries []model.EmergencyPoolEntry
	err     error
}

func (p *stubPool) ListWaiting(ctx context.Context) ([]model.EmergencyPoolEntry, error) {
	return p.entries, p.err
}

type sentDigest struct {
	channel, subject, body string
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []sentDigest
	err  error
}

func (n *stubNotifier) Notify(ctx context.Context, channel, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentDigest{channel, subject, body})
	return n.err
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func waitingEntry(name string) model.EmergencyPoolEntry {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return model.EmergencyPoolEntry{
		ProfessorID:      "p-" + name,
		ProfessorName:    name,
		Department:       "CS",
		Designation:      model.DesignationProfessor,
		Phone:            "+1-555-0100",
		RequestedWeekday: "Monday",
		RequestedDate:    &date,
		Reason:           "All classrooms are occupied by other professors on Monday. No vacant rooms available.",
		Status:           model.EmergencyStatusWaiting,
	}
}

func TestScheduler_SendsDigestOnStart(t *testing.T) {
	pool := &stubPool{entries: []model.EmergencyPoolEntry{waitingEntry("Ada")}}
	notifier := &stubNotifier{}

	s := NewScheduler(pool, notifier, "42", time.Hour, zap.NewNop())
	s.Start(context.Background())

	require.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, "42", notifier.sent[0].channel)
	assert.Equal(t, DigestSubject, notifier.sent[0].subject)
	assert.Contains(t, notifier.sent[0].body, "Ada")
}

func TestScheduler_RepeatsOnTick(t *testing.T) {
	pool := &stubPool{entries: []model.EmergencyPoolEntry{waitingEntry("Ada")}}
	notifier := &stubNotifier{}

	s := NewScheduler(pool, notifier, "42", 10*time.Millisecond, zap.NewNop())
	s.Start(context.Background())

	require.Eventually(t, func() bool { return notifier.count() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_SkipsEmptyPool(t *testing.T) {
	notifier := &stubNotifier{}

	s := NewScheduler(&stubPool{}, notifier, "42", time.Hour, zap.NewNop())
	s.sendDigest(context.Background())

	assert.Zero(t, notifier.count())
}

func TestScheduler_ListErrorDoesNotNotify(t *testing.T) {
	notifier := &stubNotifier{}

	s := NewScheduler(&stubPool{err: errors.New("db down")}, notifier, "42", time.Hour, zap.NewNop())
	s.sendDigest(context.Background())

	assert.Zero(t, notifier.count())
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(&stubPool{}, &stubNotifier{}, "42", time.Hour, zap.NewNop())
	s.Start(ctx)
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("digest task did not stop after cancel")
	}
}

func TestFormatDigest(t *testing.T) {
	noDate := waitingEntry("Grace")
	noDate.RequestedDate = nil

	body := FormatDigest([]model.EmergencyPoolEntry{waitingEntry("Ada"), noDate})

	assert.Contains(t, body, "2 professor(s) waiting")
	assert.Contains(t, body, "1. Ada (CS, Professor)")
	assert.Contains(t, body, "Monday, 2024-03-04")
	assert.Contains(t, body, "2. Grace")
	assert.Contains(t, body, "Phone: +1-555-0100")
}
