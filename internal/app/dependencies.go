package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
	healthcheck "github.com/0101Programmer/orderManagementSystem/internal/health"
	"github.com/0101Programmer/orderManagementSystem/internal/storage/memory"
	"github.com/0101Programmer/orderManagementSystem/internal/storage/postgres"
)

// runtimeDependencies — хранилище заказов, выбранное конфигурацией.
type runtimeDependencies struct {
	repo           domain.OrderRepository
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	switch driver {
	case "", StorageDriverMemory:
		logger.WithField("storage", StorageDriverMemory).Info("используем in-memory хранилище заказов")
		return runtimeDependencies{
			repo: memory.NewOrderRepository(),
			storageChecker: healthcheck.NewPingChecker("storage", func(context.Context) error {
				return nil
			}),
		}, nil
	case StorageDriverPostgres:
		return initPostgresDependencies(ctx, cfg, logger)
	default:
		return runtimeDependencies{}, fmt.Errorf("unsupported storage driver: %q (use %s|%s)",
			cfg.StorageDriver, StorageDriverMemory, StorageDriverPostgres)
	}
}

func initPostgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	dsn := strings.TrimSpace(cfg.PostgresDSN)
	if dsn == "" {
		return runtimeDependencies{}, errors.New("postgres storage requires OMS_POSTGRES_DSN")
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return runtimeDependencies{}, err
	}

	if cfg.PostgresAutoMigrate {
		if err := store.MigrateUp(ctx, 0); err != nil {
			_ = store.Close()
			return runtimeDependencies{}, fmt.Errorf("apply migrations: %w", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			_ = store.Close()
			return runtimeDependencies{}, fmt.Errorf("migration status: %w", err)
		}
		logger.WithFields(log.Fields{
			"schema_version": version,
			"applied":        count,
		}).Info("миграции PostgreSQL применены")
	}

	logger.WithField("storage", StorageDriverPostgres).Info("используем PostgreSQL хранилище заказов")
	return runtimeDependencies{
		repo:           postgres.NewOrderRepository(store),
		storageChecker: healthcheck.NewPingChecker("storage", store.Ping),
		closeFn:        store.Close,
	}, nil
}
