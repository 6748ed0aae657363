package query

import (
	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// Facade — read-only доступ к статусу и журналу событий заказа.
// Делегирует в EventLog и никогда не мутирует состояние.
type Facade struct {
	events domain.EventLog
}

// NewFacade создаёт фасад поверх журнала событий.
func NewFacade(events domain.EventLog) *Facade {
	return &Facade{events: events}
}

// CurrentStatus возвращает статус последнего события заказа.
// Для неизвестного заказа — StatusUnknown, никогда не ошибка.
func (f *Facade) CurrentStatus(orderID string) domain.FulfillmentStatus {
	return f.events.StatusFor(orderID)
}

// EventLog возвращает события заказа в порядке добавления.
// Для неизвестного заказа — пустой срез.
func (f *Facade) EventLog(orderID string) []domain.FulfillmentEvent {
	return f.events.EventsFor(orderID)
}
