package domain

import (
	"time"

	"github.com/google/uuid"
)

// FulfillmentStatus описывает стадию исполнения заказа в саге.
type FulfillmentStatus string

const (
	// StatusUnknown — заказ никогда не попадал в журнал.
	StatusUnknown FulfillmentStatus = ""
	// StatusNew — уведомление о заказе принято, обработка не начата.
	StatusNew FulfillmentStatus = "NEW"
	// StatusAllocating — запрошено резервирование на складе.
	StatusAllocating FulfillmentStatus = "ALLOCATING"
	// StatusAllocated — склад подтвердил резервирование.
	StatusAllocated FulfillmentStatus = "ALLOCATED"
	// StatusPaymentPending и далее — зарезервированные расширения жизненного цикла,
	// текущая сага их не использует.
	StatusPaymentPending  FulfillmentStatus = "PAYMENT_PENDING"
	StatusPaymentReceived FulfillmentStatus = "PAYMENT_RECEIVED"
	StatusShipping        FulfillmentStatus = "SHIPPING"
	// StatusShipped — терминальный статус успешного пути.
	StatusShipped   FulfillmentStatus = "SHIPPED"
	StatusDelivered FulfillmentStatus = "DELIVERED"
	StatusCancelled FulfillmentStatus = "CANCELLED"
	// StatusFailed — резервирование отклонено, начинается компенсация.
	StatusFailed FulfillmentStatus = "FAILED"
	// StatusCompensated — терминальный статус пути компенсации.
	StatusCompensated FulfillmentStatus = "COMPENSATED"
)

// IsTerminal сообщает, завершает ли статус жизненный цикл заказа.
func (s FulfillmentStatus) IsTerminal() bool {
	switch s {
	case StatusShipped, StatusCompensated, StatusCancelled, StatusDelivered:
		return true
	default:
		return false
	}
}

// FulfillmentEvent — одно событие журнала исполнения заказа.
// События неизменяемы: журнал только растёт, записи не правятся и не удаляются.
type FulfillmentEvent struct {
	// EventID уникален глобально и используется для дедупликации downstream.
	EventID string `json:"eventId"`
	// OrderID группирует события одного заказа.
	OrderID string            `json:"orderId"`
	Status  FulfillmentStatus `json:"status"`
	// Type — человекочитаемая метка перехода, например "AllocationSucceeded".
	Type string `json:"type"`
	// Payload — сериализованный снимок исходного уведомления для аудита.
	Payload   string    `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	// CorrelationID связывает события одного запуска саги (равен OrderID).
	CorrelationID string `json:"correlationId"`
	// CompensationFor заполняется только на событиях отката.
	CompensationFor string `json:"compensationFor,omitempty"`
}

// NewFulfillmentEvent создаёт событие с новым UUID и текущим временем.
func NewFulfillmentEvent(orderID string, status FulfillmentStatus, eventType, payload string) FulfillmentEvent {
	return FulfillmentEvent{
		EventID:       uuid.NewString(),
		OrderID:       orderID,
		Status:        status,
		Type:          eventType,
		Payload:       payload,
		Timestamp:     time.Now().UTC(),
		CorrelationID: orderID,
	}
}

// NewCompensationEvent создаёт событие отката с заполненным CompensationFor.
func NewCompensationEvent(orderID string, status FulfillmentStatus, eventType, payload string) FulfillmentEvent {
	evt := NewFulfillmentEvent(orderID, status, eventType, payload)
	evt.CompensationFor = orderID
	return evt
}
