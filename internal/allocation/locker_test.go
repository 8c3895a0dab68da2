package allocation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locks := NewKeyedMutex()
	var inside, maxInside int32

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locks.Lock(context.Background(), ProfessorKey("p1"), WeekdayKey("Monday"))
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Zero(t, locks.Len(), "released locks are removed")
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	locks := NewKeyedMutex()

	unlockA, err := locks.Lock(context.Background(), ProfessorKey("p1"), WeekdayKey("Monday"))
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := locks.Lock(ctx, ProfessorKey("p2"), WeekdayKey("Tuesday"))
	require.NoError(t, err)
	unlockB()
}

func TestKeyedMutex_OverlappingKeyOrderDoesNotDeadlock(t *testing.T) {
	locks := NewKeyedMutex()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keys := []string{"k1", "k2"}
			if i%2 == 1 {
				keys = []string{"k2", "k1"}
			}
			unlock, err := locks.Lock(ctx, keys...)
			if assert.NoError(t, err) {
				unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Zero(t, locks.Len())
}

func TestKeyedMutex_ContextCancelReleasesPartialLocks(t *testing.T) {
	locks := NewKeyedMutex()

	hold, err := locks.Lock(context.Background(), "b")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = locks.Lock(ctx, "a", "b")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// "a" должен быть свободен
	unlockA, err := locks.Lock(context.Background(), "a")
	require.NoError(t, err)
	unlockA()

	hold()
	assert.Zero(t, locks.Len())
}

func TestKeyedMutex_UnlockIsIdempotent(t *testing.T) {
	locks := NewKeyedMutex()

	unlock, err := locks.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock()
	unlock()

	assert.Zero(t, locks.Len())
}
