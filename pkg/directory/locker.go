package directory

import "sync"

// Locker hands out one mutex per identity. Callers holding the lock for an
// identity are serialized; different identities never contend. Entries are
// reference counted and dropped once no goroutine holds or waits on them.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*identityLock
}

type identityLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*identityLock)}
}

// Lock blocks until the identity is free and returns the matching unlock func.
func (l *Locker) Lock(identity string) (unlock func()) {
	l.mu.Lock()
	il, ok := l.locks[identity]
	if !ok {
		il = &identityLock{}
		l.locks[identity] = il
	}
	il.refs++
	l.mu.Unlock()

	il.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			il.mu.Unlock()

			l.mu.Lock()
			il.refs--
			if il.refs == 0 {
				delete(l.locks, identity)
			}
			l.mu.Unlock()
		})
	}
}

// Size returns the number of identities currently locked or awaited.
func (l *Locker) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
