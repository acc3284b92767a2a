package engine

import "sync"

// ItemLocks is a thread-safe map of item_id → mutex. It provides the one
// mandatory critical section of the core: every read-modify-write on a
// single item (bid admission, finalization, settlement) runs under that
// item's lock, while operations on disjoint items proceed in parallel.
type ItemLocks struct {
	mu    sync.RWMutex
	locks map[string]*sync.Mutex
}

// NewItemLocks creates an empty ItemLocks.
func NewItemLocks() *ItemLocks {
	return &ItemLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// GetOrCreate returns the mutex for the given item, creating one if it
// doesn't already exist.
func (l *ItemLocks) GetOrCreate(itemID string) *sync.Mutex {
	l.mu.RLock()
	m, ok := l.locks[itemID]
	l.mu.RUnlock()
	if ok {
		return m
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Double-check after acquiring write lock.
	if m, ok = l.locks[itemID]; ok {
		return m
	}
	m = &sync.Mutex{}
	l.locks[itemID] = m
	return m
}
