package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/app"
)

// Переменные окружения сервиса.
const (
	envHTTPAddr       = "FULFILLMENT_HTTP_ADDR"
	envMetricsAddr    = "FULFILLMENT_METRICS_ADDR"
	envKafkaBrokers   = "FULFILLMENT_KAFKA_BROKERS"
	envOrdersTopic    = "FULFILLMENT_ORDERS_TOPIC"
	envEventsTopic    = "FULFILLMENT_EVENTS_TOPIC"
	envGroupID        = "FULFILLMENT_GROUP_ID"
	envStorageDriver  = "FULFILLMENT_STORAGE_DRIVER"
	envEventStorePath = "FULFILLMENT_EVENT_STORE_PATH"
	envPostgresDSN    = "FULFILLMENT_POSTGRES_DSN"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию из переменных окружения.
// Некорректные значения не валят процесс: остаётся значение по умолчанию,
// а причина возвращается в warnings.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	readString := func(key string, dst *string) {
		if value, ok := lookup(key); ok {
			*dst = strings.TrimSpace(value)
		}
	}

	readString(envHTTPAddr, &cfg.HTTPAddr)
	readString(envMetricsAddr, &cfg.MetricsAddr)
	readString(envKafkaBrokers, &cfg.KafkaBrokers)
	readString(envOrdersTopic, &cfg.OrdersTopic)
	readString(envEventsTopic, &cfg.EventsTopic)
	readString(envGroupID, &cfg.GroupID)
	readString(envEventStorePath, &cfg.EventStorePath)
	readString(envPostgresDSN, &cfg.PostgresDSN)

	if value, ok := lookup(envStorageDriver); ok {
		driver := strings.ToLower(strings.TrimSpace(value))
		switch driver {
		case app.StorageMemory, app.StorageDisk, app.StoragePostgres:
			cfg.StorageDriver = driver
		default:
			warnings = append(warnings, fmt.Sprintf("%s: unknown driver %q, using %q", envStorageDriver, value, cfg.StorageDriver))
		}
	}

	return cfg, warnings
}

func main() {
	setupLogger()

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warn(warning)
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("некорректная конфигурация")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_brokers":  cfg.KafkaBrokers,
	}).Info("запускаем fulfillment service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("fulfillment service остановлен")
}
