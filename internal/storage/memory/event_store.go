package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// eventStoreInMemory — in-memory реализация EventLog для разработки и тестов.
type eventStoreInMemory struct {
	mu     sync.RWMutex
	events map[string][]domain.FulfillmentEvent
	status map[string]domain.FulfillmentStatus
}

// NewEventStore возвращает пустой in-memory журнал событий.
func NewEventStore() domain.EventLog {
	return &eventStoreInMemory{
		events: make(map[string][]domain.FulfillmentEvent),
		status: make(map[string]domain.FulfillmentStatus),
	}
}

// Append добавляет событие и обновляет проекцию статуса под одной блокировкой.
func (s *eventStoreInMemory) Append(event domain.FulfillmentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.OrderID] = append(s.events[event.OrderID], event)
	s.status[event.OrderID] = event.Status
	return nil
}

// EventsFor возвращает копию последовательности событий заказа.
func (s *eventStoreInMemory) EventsFor(orderID string) []domain.FulfillmentEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[orderID]
	result := make([]domain.FulfillmentEvent, len(events))
	copy(result, events)
	return result
}

// StatusFor возвращает статус последнего события или StatusUnknown.
func (s *eventStoreInMemory) StatusFor(orderID string) domain.FulfillmentStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status[orderID]
}

var _ domain.EventLog = (*eventStoreInMemory)(nil)
