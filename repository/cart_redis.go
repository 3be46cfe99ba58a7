package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/Theo-jobs/family-ordering-system/models"
)

const (
	cartKeyPrefix  = "cart:"
	themeKeyPrefix = "theme:"
)

// RedisCartStore keeps one snapshot key per session: a JSON array of line
// items under cart:<session>. Loading and saving never fail the caller;
// a broken Redis degrades to an empty cart and skipped saves.
type RedisCartStore struct {
	rdb *redis.Client
	cb  *gobreaker.CircuitBreaker
	log *logrus.Logger
}

func NewRedisCartStore(rdb *redis.Client, log *logrus.Logger) *RedisCartStore {
	st := gobreaker.Settings{
		Name:        "cart-redis",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("CircuitBreaker %s state changed from %s to %s", name, from, to)
		},
	}

	return &RedisCartStore{
		rdb: rdb,
		cb:  gobreaker.NewCircuitBreaker(st),
		log: log,
	}
}

// Load reads the session's snapshot. A missing key, corrupt payload or
// unreachable Redis all yield an empty cart.
func (s *RedisCartStore) Load(ctx context.Context, session string) []models.CartLineItem {
	raw, err := s.cb.Execute(func() (interface{}, error) {
		b, err := s.rdb.Get(ctx, cartKeyPrefix+session).Bytes()
		if err == redis.Nil {
			return []byte(nil), nil
		}
		return b, err
	})
	if err != nil {
		s.log.WithError(err).WithField("session", session).Warn("failed to load cart snapshot")
		return nil
	}

	b := raw.([]byte)
	if len(b) == 0 {
		return nil
	}

	items, err := decodeCart(b)
	if err != nil {
		s.log.WithError(err).WithField("session", session).Warn("corrupt cart snapshot, starting empty")
		return nil
	}
	return items
}

// Save writes the session's snapshot. Failures are logged and swallowed;
// the in-memory cart stays authoritative.
func (s *RedisCartStore) Save(ctx context.Context, session string, items []models.CartLineItem) {
	b, err := encodeCart(items)
	if err != nil {
		s.log.WithError(err).WithField("session", session).Error("failed to serialize cart snapshot")
		return
	}

	if _, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.rdb.Set(ctx, cartKeyPrefix+session, b, 0).Err()
	}); err != nil {
		s.log.WithError(err).WithField("session", session).Warn("failed to persist cart snapshot")
	}
}

// LoadTheme returns the stored theme preference, or "" when unset.
func (s *RedisCartStore) LoadTheme(ctx context.Context, session string) string {
	raw, err := s.cb.Execute(func() (interface{}, error) {
		v, err := s.rdb.Get(ctx, themeKeyPrefix+session).Result()
		if err == redis.Nil {
			return "", nil
		}
		return v, err
	})
	if err != nil {
		s.log.WithError(err).WithField("session", session).Warn("failed to load theme preference")
		return ""
	}
	return raw.(string)
}

func (s *RedisCartStore) SaveTheme(ctx context.Context, session, theme string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.rdb.Set(ctx, themeKeyPrefix+session, theme, 0).Err()
	})
	return err
}
