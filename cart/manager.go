package cart

import (
	"context"
	"sync"
)

// Manager hands out one engine per session id, rehydrating it from the
// store on first access.
type Manager struct {
	store  Store
	events Events

	mu      sync.RWMutex
	engines map[string]*Engine
}

func NewManager(store Store, events Events) *Manager {
	return &Manager{
		store:   store,
		events:  events,
		engines: make(map[string]*Engine),
	}
}

func (m *Manager) Get(ctx context.Context, session string) *Engine {
	m.mu.RLock()
	e, ok := m.engines[session]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.engines[session]; ok {
		return e
	}
	e = &Engine{
		session: session,
		store:   m.store,
		events:  m.events,
		items:   m.store.Load(ctx, session),
	}
	m.engines[session] = e
	return e
}
