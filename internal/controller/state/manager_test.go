package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StateAndData(t *testing.T) {
	sm := NewManager(time.Minute)

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateConfirmDay)
	sm.SetData(1, KeyWeekday, "Monday")

	assert.Equal(t, StateConfirmDay, sm.GetState(1))
	value, ok := sm.GetData(1, KeyWeekday)
	require.True(t, ok)
	assert.Equal(t, "Monday", value)

	sm.SetState(1, StateNone)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok = sm.GetData(1, KeyWeekday)
	assert.False(t, ok)
}

func TestManager_SetStateResetsData(t *testing.T) {
	sm := NewManager(time.Minute)

	sm.SetState(1, StateConfirmDay)
	sm.SetData(1, KeyWeekday, "Monday")
	sm.SetState(1, StateConfirmDay)

	_, ok := sm.GetData(1, KeyWeekday)
	assert.False(t, ok)
}

func TestManager_Take(t *testing.T) {
	sm := NewManager(time.Minute)
	sm.SetState(1, StateConfirmDay)
	sm.SetData(1, KeyWeekday, "Friday")

	data, ok := sm.Take(1, StateConfirmDay)
	require.True(t, ok)
	assert.Equal(t, "Friday", data[KeyWeekday])

	_, ok = sm.Take(1, StateConfirmDay)
	assert.False(t, ok, "second take must fail")
}

func TestManager_TakeWrongState(t *testing.T) {
	sm := NewManager(time.Minute)
	sm.SetData(1, KeyWeekday, "Friday")

	_, ok := sm.Take(1, StateConfirmDay)
	assert.False(t, ok)
}

func TestManager_Expiry(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	sm := NewManager(time.Minute)
	sm.now = func() time.Time { return now }

	sm.SetState(1, StateConfirmDay)
	now = now.Add(2 * time.Minute)

	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.Take(1, StateConfirmDay)
	assert.False(t, ok)
}

func TestManager_ConcurrentTakeSingleWinner(t *testing.T) {
	sm := NewManager(time.Minute)
	sm.SetState(1, StateConfirmDay)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := sm.Take(1, StateConfirmDay); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
