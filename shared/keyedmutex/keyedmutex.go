package keyedmutex

import (
	"strings"
	"sync"
)

// KeyedMutex serializes critical sections per string key while letting
// unrelated keys proceed in parallel. Booking admission locks on the
// (restaurant, date, slot) key so only one check-then-act sequence runs per
// slot on this instance.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyedMutex {
	return &KeyedMutex{
		locks: map[string]*entry{},
	}
}

// Lock acquires the mutex for key, blocking while another caller holds it.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()

	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}

	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key, dropping the entry once nobody waits on
// it so the map does not grow with every slot ever booked.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()

	e, ok := k.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
	}

	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}

// Key joins the identifying parts of a critical section into a lock key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}
