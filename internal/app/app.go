package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/health"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/query"
	"github.com/vladislavdragonenkov/fulfillment/internal/version"
)

// Run собирает сервис исполнения заказов и работает до отмены ctx:
// Kafka consumer входящих заказов → saga orchestrator → журнал событий,
// плюс query API и служебный HTTP с метриками и health checks.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Producer опционален: без Kafka сага работает, события только пишутся в журнал.
	producer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(producer, logger)

	orchestrator := createOrchestrator(deps, producer, cfg)

	consumer, _ := initOrdersConsumer(cfg, orchestrator, producer, logger)
	if consumer != nil {
		if err := consumer.Start(ctx); err != nil {
			return fmt.Errorf("start kafka consumer: %w", err)
		}
	}

	v, _, _ := version.Info()
	healthHandler := health.NewHandler(v)
	healthHandler.RegisterChecker("event-store", health.NewSimpleChecker("event-store", func() error {
		if deps.Events == nil {
			return errors.New("event log is not initialized")
		}
		return nil
	}))
	if deps.PG != nil {
		healthHandler.RegisterChecker("postgres", health.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return deps.PG.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(cfg.MetricsAddr, logger, healthHandler)
	apiSrv := startAPIServer(cfg.HTTPAddr, query.NewFacade(deps.Events), logger)

	logger.WithField("version", version.String()).Info("fulfillment service started")

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем сервис")

	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			logger.WithError(err).Warn("failed to stop kafka consumer")
		}
	}
	shutdownHTTP(apiSrv, logger)
	shutdownHTTP(metricsSrv, logger)

	return ctx.Err()
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
