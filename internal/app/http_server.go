package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/health"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/query"
)

// statusResponse — ответ на запрос текущего статуса заказа.
type statusResponse struct {
	OrderID string                   `json:"orderId"`
	Status  domain.FulfillmentStatus `json:"status"`
}

// newQueryMux строит маршруты query API поверх фасада чтения.
func newQueryMux(facade *query.Facade) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /fulfillment/{orderId}/status", func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("orderId")

		status := facade.CurrentStatus(orderID)
		if status == domain.StatusUnknown {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		writeJSON(w, statusResponse{OrderID: orderID, Status: status})
	})

	mux.HandleFunc("GET /fulfillment/{orderId}/events", func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("orderId")

		events := facade.EventLog(orderID)
		if events == nil {
			// Неизвестный заказ — пустой журнал, не ошибка.
			events = []domain.FulfillmentEvent{}
		}

		writeJSON(w, events)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// startAPIServer запускает HTTP-сервер query API.
func startAPIServer(addr string, facade *query.Facade, logger *log.Entry) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newQueryMux(facade),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("query API слушает %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("query API server failed")
		}
	}()

	return srv
}

// startMetricsServer запускает служебный HTTP: /metrics и health checks.
func startMetricsServer(addr string, logger *log.Entry, healthHandler *health.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", health.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	return srv
}
