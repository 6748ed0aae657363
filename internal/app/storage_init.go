package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/disk"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/memory"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/postgres"
)

// initEventLog создаёт журнал событий по выбранному драйверу.
// Для postgres дополнительно возвращает открытое соединение — оно нужно
// для health check и закрытия при остановке.
func initEventLog(ctx context.Context, cfg Config, logger *log.Entry) (domain.EventLog, *postgres.Store, error) {
	switch cfg.StorageDriver {
	case "", StorageMemory:
		logger.Info("using in-memory event log")
		return memory.NewEventStore(), nil, nil

	case StorageDisk:
		logger.WithField("path", cfg.EventStorePath).Info("using disk-backed event log")
		return disk.NewEventStore(cfg.EventStorePath, logger), nil, nil

	case StoragePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		events, err := postgres.NewEventStore(ctx, store, logger)
		if err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("load event log: %w", err)
		}
		logger.Info("using postgres-backed event log")
		return events, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
