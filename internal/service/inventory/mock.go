package inventory

import (
	"sync"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// MockGateway — конфигурируемая заглушка InventoryGateway для тестов.
type MockGateway struct {
	mu          sync.Mutex
	AllocateErr error
	RollbackErr error

	AllocateCalls int
	RollbackCalls int
}

// NewMockGateway возвращает mock с успешным сценарием по умолчанию.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Allocate возвращает заранее настроенную ошибку и считает вызовы.
func (m *MockGateway) Allocate(orderID, productID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AllocateCalls++
	return m.AllocateErr
}

// Rollback возвращает заранее настроенную ошибку и считает вызовы.
func (m *MockGateway) Rollback(orderID, productID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RollbackCalls++
	return m.RollbackErr
}

var _ domain.InventoryGateway = (*MockGateway)(nil)
