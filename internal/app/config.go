package app

import "fmt"

// Драйверы журнала событий.
const (
	StorageMemory   = "memory"
	StorageDisk     = "disk"
	StoragePostgres = "postgres"
)

// Config описывает настройки запуска сервиса исполнения заказов.
type Config struct {
	// HTTPAddr — адрес query API (статус и журнал заказа).
	HTTPAddr string
	// MetricsAddr — адрес служебного HTTP: /metrics и health checks.
	MetricsAddr string

	// KafkaBrokers — список брокеров через запятую; пусто — без Kafka.
	KafkaBrokers string
	// OrdersTopic — topic входящих уведомлений о заказах.
	OrdersTopic string
	// EventsTopic — topic исходящих событий исполнения.
	EventsTopic string
	// GroupID — consumer group входящего потока.
	GroupID string

	// StorageDriver — memory, disk или postgres.
	StorageDriver string
	// EventStorePath — путь snapshot-файла журнала для драйвера disk.
	EventStorePath string
	// PostgresDSN — DSN для драйвера postgres.
	PostgresDSN string
}

// DefaultConfig возвращает конфигурацию для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		MetricsAddr:    ":9090",
		OrdersTopic:    "orders",
		EventsTopic:    "fulfillment-events",
		GroupID:        "fulfillment-service",
		StorageDriver:  StorageMemory,
		EventStorePath: "data/events.json",
	}
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case "", StorageMemory:
	case StorageDisk:
		if c.EventStorePath == "" {
			return fmt.Errorf("storage driver %q requires event store path", StorageDisk)
		}
	case StoragePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("storage driver %q requires postgres dsn", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	return nil
}
