package iostore

import (
	"sync"

	"github.com/cardlab/cardlab/pkg/schema"
)

type lockKey struct {
	kind schema.Kind
	id   uint
}

type lockEntry struct {
	sync.Mutex
	refs int
}

// locker serialises version bumps of one entity. Entries are removed
// when nobody holds or waits for them.
type locker struct {
	mu sync.Mutex
	m  map[lockKey]*lockEntry
}

func newLocker() *locker {
	return &locker{m: make(map[lockKey]*lockEntry)}
}

// lock blocks until the entity is free and returns its release function.
func (l *locker) lock(kind schema.Kind, id uint) func() {
	key := lockKey{kind: kind, id: id}

	l.mu.Lock()
	e, ok := l.m[key]
	if !ok {
		e = &lockEntry{}
		l.m[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.Lock()
	return func() {
		e.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}

func (l *locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
