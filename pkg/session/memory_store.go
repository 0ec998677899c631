package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory, indexed by token and by identity.
// Everything is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	byToken    map[string]Session
	byIdentity map[string]map[string]struct{}

	stop     context.CancelFunc
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore returns an empty store. A positive cleanupInterval starts a
// goroutine sweeping expired sessions until Close is called.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		byToken:    make(map[string]Session),
		byIdentity: make(map[string]map[string]struct{}),
		stopped:    make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.stop = cancel
	if cleanupInterval > 0 {
		go m.sweep(ctx, cleanupInterval)
	} else {
		close(m.stopped)
	}
	return m
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.byToken[s.Token]; ok {
		m.unindex(old)
	}
	m.byToken[s.Token] = *s
	tokens, ok := m.byIdentity[s.Identity]
	if !ok {
		tokens = make(map[string]struct{})
		m.byIdentity[s.Identity] = tokens
	}
	tokens[s.Token] = struct{}{}
	return nil
}

// Get returns a copy of the session. An expired session is removed on access.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.byToken[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.IsExpired(time.Now()) {
		m.mu.Lock()
		m.remove(token)
		m.mu.Unlock()
		return nil, ErrSessionExpired
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	m.remove(token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context) error {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.byToken {
		if s.IsExpired(now) {
			m.remove(token)
		}
	}
	return nil
}

func (m *MemoryStore) DeleteByIdentity(_ context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token := range m.byIdentity[identity] {
		delete(m.byToken, token)
	}
	delete(m.byIdentity, identity)
	return nil
}

// Close stops the cleanup goroutine and waits for it to exit.
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(m.stop)
	<-m.stopped
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byToken)
}

func (m *MemoryStore) sweep(ctx context.Context, every time.Duration) {
	defer close(m.stopped)

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = m.DeleteExpired(ctx)
		}
	}
}

// remove deletes token from both indexes. The caller holds the write lock.
func (m *MemoryStore) remove(token string) {
	s, ok := m.byToken[token]
	if !ok {
		return
	}
	delete(m.byToken, token)
	m.unindex(s)
}

func (m *MemoryStore) unindex(s Session) {
	tokens := m.byIdentity[s.Identity]
	delete(tokens, s.Token)
	if len(tokens) == 0 {
		delete(m.byIdentity, s.Identity)
	}
}
