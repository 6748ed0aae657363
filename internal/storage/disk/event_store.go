package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

var (
	persistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_event_persist_failures_total",
		Help: "Total number of failed event store snapshot writes.",
	})
	snapshotOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fulfillment_event_store_orders",
		Help: "Number of orders currently tracked by the event store.",
	})
)

// eventStoreOnDisk — журнал событий с полным снимком на диске.
// Память остаётся источником истины: сбой записи логируется и учитывается
// в метриках, но не откатывает уже добавленное событие.
type eventStoreOnDisk struct {
	mu     sync.RWMutex
	path   string
	logger *log.Entry
	events map[string][]domain.FulfillmentEvent
	status map[string]domain.FulfillmentStatus
}

// NewEventStore загружает журнал из path. Отсутствующий файл — пустой журнал,
// повреждённый — warning и пустой журнал; запуск не прерывается.
func NewEventStore(path string, logger *log.Entry) domain.EventLog {
	if logger == nil {
		logger = log.WithField("component", "event-store")
	}

	store := &eventStoreOnDisk{
		path:   path,
		logger: logger,
		events: make(map[string][]domain.FulfillmentEvent),
		status: make(map[string]domain.FulfillmentStatus),
	}
	store.load()
	return store
}

func (s *eventStoreOnDisk) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.WithField("path", s.path).Info("no persisted event store, starting empty")
			return
		}
		s.logger.WithError(err).WithField("path", s.path).Warn("failed to read event store, starting empty")
		return
	}

	var events map[string][]domain.FulfillmentEvent
	if err := json.Unmarshal(data, &events); err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("corrupt event store, starting empty")
		return
	}

	s.events = events
	for orderID, seq := range events {
		if len(seq) == 0 {
			continue
		}
		s.status[orderID] = seq[len(seq)-1].Status
	}
	snapshotOrders.Set(float64(len(s.events)))

	s.logger.WithFields(log.Fields{
		"path":   s.path,
		"orders": len(s.events),
	}).Info("event store loaded from disk")
}

// Append добавляет событие, обновляет проекцию статуса и пишет снимок на диск.
// Событие и статус меняются под одной блокировкой: читатель не увидит одно без другого.
func (s *eventStoreOnDisk) Append(event domain.FulfillmentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.OrderID] = append(s.events[event.OrderID], event)
	s.status[event.OrderID] = event.Status
	snapshotOrders.Set(float64(len(s.events)))

	if err := s.persistLocked(); err != nil {
		persistFailures.Inc()
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": event.OrderID,
			"event":    event.Type,
		}).Warn("failed to persist event store, in-memory state remains authoritative")
	}
	return nil
}

// persistLocked пишет весь журнал во временный файл и атомарно подменяет снимок.
// Вызывается только под s.mu.
func (s *eventStoreOnDisk) persistLocked() error {
	data, err := json.Marshal(s.events)
	if err != nil {
		return fmt.Errorf("marshal event store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// EventsFor возвращает копию событий заказа в порядке добавления.
func (s *eventStoreOnDisk) EventsFor(orderID string) []domain.FulfillmentEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[orderID]
	result := make([]domain.FulfillmentEvent, len(events))
	copy(result, events)
	return result
}

// StatusFor возвращает статус последнего события или StatusUnknown.
func (s *eventStoreOnDisk) StatusFor(orderID string) domain.FulfillmentStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status[orderID]
}

var _ domain.EventLog = (*eventStoreOnDisk)(nil)
