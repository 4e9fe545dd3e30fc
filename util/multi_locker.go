package util

import (
	"sync"
)

type refCounter struct {
	readers int64
	writers int64
}

// MultiLocker hands out non-blocking read/write locks keyed by K.
type MultiLocker[K comparable] interface {
	TryLock(K) bool
	TryRLock(K) bool
	Unlock(K)
	RUnlock(K)
}

type lock[K comparable] struct {
	inUse map[K]*refCounter
	mtx   sync.Mutex
}

func NewMultiLocker[K comparable]() MultiLocker[K] {
	return &lock[K]{
		inUse: make(map[K]*refCounter),
	}
}

func (l *lock[K]) TryLock(key K) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	m := l.getLocker(key)
	if m.readers > 0 || m.writers > 0 {
		return false
	}
	m.writers++
	return true
}

func (l *lock[K]) TryRLock(key K) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	m := l.getLocker(key)
	if m.writers > 0 {
		return false
	}
	m.readers++
	return true
}

func (l *lock[K]) Unlock(key K) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	m := l.getLocker(key)
	if m.writers != 1 {
		panic("unlocking unlocked multi locker")
	}
	m.writers--
	l.release(key, m)
}

func (l *lock[K]) RUnlock(key K) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	m := l.getLocker(key)
	if m.readers < 1 {
		panic("unlocking unlocked multi locker")
	}
	m.readers--
	l.release(key, m)
}

func (l *lock[K]) getLocker(key K) *refCounter {
	res, ok := l.inUse[key]
	if !ok {
		res = &refCounter{}
		l.inUse[key] = res
	}

	return res
}

func (l *lock[K]) release(key K, m *refCounter) {
	if m.readers == 0 && m.writers == 0 {
		delete(l.inUse, key)
	}
}
