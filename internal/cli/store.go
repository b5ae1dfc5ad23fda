package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/flatexp/internal/config"
	"github.com/aretw0/flatexp/pkg/adapters/file"
	"github.com/aretw0/flatexp/pkg/adapters/memory"
	"github.com/aretw0/flatexp/pkg/adapters/redis"
	"github.com/aretw0/flatexp/pkg/catalog"
	"github.com/aretw0/flatexp/pkg/persistence/middleware"
	"github.com/aretw0/flatexp/pkg/ports"
)

// OpenCatalog creates the snapshot catalog for the configured backend.
// The returned close function releases backend connections.
func OpenCatalog(cfg *config.Config, logger *slog.Logger) (*catalog.Manager, func() error, error) {
	store, locker, closeFn, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Store.Redact) > 0 {
		redact, err := middleware.NewRedactMiddleware(cfg.Store.Redact)
		if err != nil {
			return nil, nil, errors.Join(fmt.Errorf("%w: %v", config.ErrInvalidConfig, err), closeFn())
		}
		store = middleware.Chain(store, redact)
	}

	opts := []catalog.Option{catalog.WithLogger(logger)}
	if locker != nil {
		opts = append(opts, catalog.WithLocker(locker))
	}
	logger.Debug("snapshot store opened", "backend", cfg.Store.Backend)
	return catalog.NewManager(store, opts...), closeFn, nil
}

func openStore(cfg *config.Config) (ports.SnapshotStore, ports.Locker, func() error, error) {
	nop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, nop, nil
	case config.BackendFile:
		return file.New(cfg.Store.Dir), nil, nop, nil
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return store, redis.NewLocker(store.Client(), store.Prefix()), store.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalidConfig, cfg.Store.Backend)
}
