package services

import "sync"

type slotKey struct {
	tableID uint
	date    string
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

// SlotLocker serializes conflict-check + insert per (table, date).
// Requests against different tables, or the same table on different
// dates, proceed fully in parallel. Entries are reference counted and
// reclaimed when the last holder releases, so past dates do not pile up
// in the map.
type SlotLocker struct {
	mu    sync.Mutex
	locks map[slotKey]*slotLock
}

func NewSlotLocker() *SlotLocker {
	return &SlotLocker{locks: make(map[slotKey]*slotLock)}
}

// SlotGuard releases a held slot via Unlock.
type SlotGuard struct {
	locker *SlotLocker
	key    slotKey
	lock   *slotLock
}

// Lock acquires the mutex for the slot and returns a guard for
// unlocking.
func (sl *SlotLocker) Lock(tableID uint, date string) *SlotGuard {
	key := slotKey{tableID: tableID, date: date}

	sl.mu.Lock()
	l, ok := sl.locks[key]
	if !ok {
		l = &slotLock{}
		sl.locks[key] = l
	}
	l.refs++
	sl.mu.Unlock()

	l.mu.Lock()
	return &SlotGuard{locker: sl, key: key, lock: l}
}

func (g *SlotGuard) Unlock() {
	g.lock.mu.Unlock()

	g.locker.mu.Lock()
	g.lock.refs--
	if g.lock.refs == 0 {
		delete(g.locker.locks, g.key)
	}
	g.locker.mu.Unlock()
}
