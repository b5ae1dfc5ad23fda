package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/flatexp/internal/logging"
	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the number of callers waiting on it.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates snapshot access.
// Unused per-ID locks are dropped once their reference count reaches zero.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.Locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.Locker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[id]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Publish stores set under id. An existing snapshot is only replaced when overwrite is set;
// otherwise domain.ErrSnapshotExists is returned.
func (m *Manager) Publish(ctx context.Context, id string, set *domain.ExperimentSet, overwrite bool) error {
	if id == "" {
		return domain.ErrInvalidSnapshotID
	}
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		if !overwrite {
			_, err := m.store.Load(ctx, id)
			switch {
			case err == nil:
				return fmt.Errorf("%w: %q", domain.ErrSnapshotExists, id)
			case !errors.Is(err, domain.ErrSnapshotNotFound):
				return fmt.Errorf("failed to check snapshot existence: %w", err)
			}
		}
		if err := m.store.Save(ctx, id, set); err != nil {
			return err
		}
		m.logger.Info("snapshot published",
			"snapshot_id", id,
			"experiments", len(set.Experiments),
			"runs", set.RunCount(),
		)
		return nil
	})
}

// Load retrieves the snapshot stored under id.
func (m *Manager) Load(ctx context.Context, id string) (*domain.ExperimentSet, error) {
	var set *domain.ExperimentSet
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		set, err = m.store.Load(ctx, id)
		return err
	})
	return set, err
}

// Delete removes the snapshot stored under id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes fn while holding the lock for id.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock, it will expire via TTL",
					"snapshot_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
