package repository

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
)

// MemoryCartStore keeps snapshots in process memory. Every snapshot still
// passes through the shared codec so the coercion rules match the Redis
// store exactly. Used in tests and Redis-less dev setups.
type MemoryCartStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	themes    map[string]string
	log       *logrus.Logger
}

func NewMemoryCartStore(log *logrus.Logger) *MemoryCartStore {
	return &MemoryCartStore{
		snapshots: make(map[string][]byte),
		themes:    make(map[string]string),
		log:       log,
	}
}

func (s *MemoryCartStore) Load(ctx context.Context, session string) []models.CartLineItem {
	s.mu.RLock()
	raw, ok := s.snapshots[session]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	items, err := decodeCart(raw)
	if err != nil {
		s.log.WithError(err).WithField("session", session).Warn("corrupt cart snapshot, starting empty")
		return nil
	}
	return items
}

func (s *MemoryCartStore) Save(ctx context.Context, session string, items []models.CartLineItem) {
	raw, err := encodeCart(items)
	if err != nil {
		s.log.WithError(err).WithField("session", session).Error("failed to serialize cart snapshot")
		return
	}

	s.mu.Lock()
	s.snapshots[session] = raw
	s.mu.Unlock()
}

// SeedRaw installs an arbitrary snapshot payload, bypassing the codec.
// Lets tests exercise the corrupt-data and legacy-format paths.
func (s *MemoryCartStore) SeedRaw(session string, raw []byte) {
	s.mu.Lock()
	s.snapshots[session] = raw
	s.mu.Unlock()
}

func (s *MemoryCartStore) LoadTheme(ctx context.Context, session string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themes[session]
}

func (s *MemoryCartStore) SaveTheme(ctx context.Context, session, theme string) error {
	s.mu.Lock()
	s.themes[session] = theme
	s.mu.Unlock()
	return nil
}
