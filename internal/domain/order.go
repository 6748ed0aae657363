package domain

import (
	"encoding/json"
	"time"
)

// OrderPlaced — входящее уведомление о размещённом заказе.
// Владелец модели — upstream order-service, мы его только читаем.
type OrderPlaced struct {
	OrderID    string    `json:"orderId"`
	ProductID  string    `json:"productId"`
	Quantity   int       `json:"quantity"`
	CustomerID string    `json:"customerId"`
	Created    time.Time `json:"created"`
}

// ValidateInvariants проверяет минимальные инварианты уведомления
// и возвращает список замечаний.
func (o *OrderPlaced) ValidateInvariants() []error {
	var errs []error

	if o.OrderID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if o.ProductID == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if o.Quantity <= 0 {
		errs = append(errs, ErrQuantityInvalid)
	}

	return errs
}

// ParseOrderPlaced разбирает JSON уведомления. Возвращает ошибку и для
// синтаксически корректного JSON без orderId: такое сообщение обрабатывать нельзя.
func ParseOrderPlaced(payload []byte) (OrderPlaced, error) {
	var order OrderPlaced
	if err := json.Unmarshal(payload, &order); err != nil {
		return OrderPlaced{}, err
	}
	if order.OrderID == "" {
		return OrderPlaced{}, ErrOrderIDRequired
	}
	return order, nil
}
