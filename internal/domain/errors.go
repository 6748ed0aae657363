package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора заказа в уведомлении.
	ErrOrderIDRequired = errors.New("order_id is required")
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = errors.New("product_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// ErrProductNotFound возвращается складом, если товар не заведён в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock — бизнес-исход склада: доступного остатка не хватает.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPublisherUnavailable — паблишер событий не инициализирован.
	ErrPublisherUnavailable = errors.New("event publisher is not initialized")
)

// IsAllocationRejected сообщает, является ли ошибка ожидаемым бизнес-отказом
// склада (в отличие от инфраструктурного сбоя).
func IsAllocationRejected(err error) bool {
	return errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrProductNotFound)
}
