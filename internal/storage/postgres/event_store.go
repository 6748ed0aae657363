package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

const queryTimeout = 3 * time.Second

// eventStorePostgres — EventLog поверх PostgreSQL. Память остаётся источником
// истины внутри процесса (как у дискового снимка); база даёт долговечность
// между рестартами. Сбой записи в БД логируется и не откатывает append.
type eventStorePostgres struct {
	mu     sync.RWMutex
	store  *Store
	logger *log.Entry
	events map[string][]domain.FulfillmentEvent
	status map[string]domain.FulfillmentStatus
}

// NewEventStore загружает журнал из базы. Ошибка загрузки не фатальна:
// журнал стартует пустым с warning в логе.
func NewEventStore(ctx context.Context, store *Store, logger *log.Entry) (domain.EventLog, error) {
	if logger == nil {
		logger = log.WithField("component", "event-store-postgres")
	}

	s := &eventStorePostgres{
		store:  store,
		logger: logger,
		events: make(map[string][]domain.FulfillmentEvent),
		status: make(map[string]domain.FulfillmentStatus),
	}
	if err := s.load(ctx); err != nil {
		s.logger.WithError(err).Warn("failed to load event store from postgres, starting empty")
	}
	return s, nil
}

func (s *eventStorePostgres) load(ctx context.Context) error {
	rows, err := s.store.DB().QueryContext(ctx, `
		SELECT event_id, order_id, status, event_type, payload, occurred_at, correlation_id, compensation_for
		FROM fulfillment_events
		ORDER BY order_id, seq`)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var evt domain.FulfillmentEvent
		if err := rows.Scan(&evt.EventID, &evt.OrderID, &evt.Status, &evt.Type,
			&evt.Payload, &evt.Timestamp, &evt.CorrelationID, &evt.CompensationFor); err != nil {
			return fmt.Errorf("scan event: %w", err)
		}
		s.events[evt.OrderID] = append(s.events[evt.OrderID], evt)
		s.status[evt.OrderID] = evt.Status
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate events: %w", err)
	}

	s.logger.WithField("orders", len(s.events)).Info("event store loaded from postgres")
	return nil
}

// Append добавляет событие в память и пишет его в базу одной транзакцией
// вместе с проекцией статуса.
func (s *eventStorePostgres) Append(event domain.FulfillmentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.OrderID] = append(s.events[event.OrderID], event)
	s.status[event.OrderID] = event.Status

	if err := s.persist(event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": event.OrderID,
			"event":    event.Type,
		}).Warn("failed to persist event to postgres, in-memory state remains authoritative")
	}
	return nil
}

func (s *eventStorePostgres) persist(event domain.FulfillmentEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := s.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO fulfillment_events
			(event_id, order_id, status, event_type, payload, occurred_at, correlation_id, compensation_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING`,
		event.EventID, event.OrderID, string(event.Status), event.Type,
		event.Payload, event.Timestamp, event.CorrelationID, event.CompensationFor); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO fulfillment_status (order_id, status, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`,
		event.OrderID, string(event.Status), event.Timestamp); err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// EventsFor возвращает копию событий заказа в порядке добавления.
func (s *eventStorePostgres) EventsFor(orderID string) []domain.FulfillmentEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[orderID]
	result := make([]domain.FulfillmentEvent, len(events))
	copy(result, events)
	return result
}

// StatusFor возвращает статус последнего события или StatusUnknown.
func (s *eventStorePostgres) StatusFor(orderID string) domain.FulfillmentStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status[orderID]
}

var _ domain.EventLog = (*eventStorePostgres)(nil)
