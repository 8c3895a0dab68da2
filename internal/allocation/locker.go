package allocation

import (
	"context"
	"sort"
	"sync"
)

// KeyedMutex сериализует запросы по ключам (преподаватель, день недели).
// Блокировки создаются по требованию и удаляются, когда их никто не держит.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyedLock),
	}
}

// Lock захватывает все ключи в порядке сортировки и возвращает функцию освобождения.
// Ожидание прерывается отменой контекста.
func (k *KeyedMutex) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := uniqueSorted(keys)

	acquired := make([]string, 0, len(sorted))
	unlockAll := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			k.release(acquired[i])
		}
	}

	for _, key := range sorted {
		l := k.ref(key)
		select {
		case l.ch <- struct{}{}:
			acquired = append(acquired, key)
		case <-ctx.Done():
			k.unref(key)
			unlockAll()
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() { once.Do(unlockAll) }, nil
}

// Len количество ключей, которые сейчас удерживаются или ожидаются
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

func (k *KeyedMutex) ref(key string) *keyedLock {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	return l
}

func (k *KeyedMutex) unref(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *KeyedMutex) release(key string) {
	k.mu.Lock()
	l := k.locks[key]
	k.mu.Unlock()

	<-l.ch
	k.unref(key)
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// ProfessorKey ключ блокировки преподавателя
func ProfessorKey(professorID string) string {
	return "professor:" + professorID
}

// WeekdayKey ключ блокировки дня. Занятость аудиторий считается на весь день,
// поэтому ключ дня покрывает и пару (дата, предмет).
func WeekdayKey(weekday string) string {
	return "weekday:" + weekday
}
