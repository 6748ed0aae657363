package inventory

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// productStock хранит остаток одного товара. Проверка и списание количества
// выполняются под мьютексом товара, чтобы резервы разных товаров не
// блокировали друг друга.
type productStock struct {
	mu    sync.Mutex
	name  string
	stock int
}

// allocationKey идентифицирует резерв: один заказ может резервировать
// только одну позицию в этой саге.
type allocationKey struct {
	orderID   string
	productID string
}

// Service — in-memory реализация склада для локальной разработки и демо.
// Реализует domain.InventoryGateway; в production заменяется клиентом
// внешнего inventory-сервиса.
type Service struct {
	mu          sync.RWMutex
	products    map[string]*productStock
	allocations map[allocationKey]int
	logger      *log.Entry
}

// NewService возвращает пустой склад.
func NewService(logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "inventory")
	}
	return &Service{
		products:    make(map[string]*productStock),
		allocations: make(map[allocationKey]int),
		logger:      logger,
	}
}

// AddProduct заводит товар в каталоге с начальным остатком.
func (s *Service) AddProduct(productID, name string, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[productID]; exists {
		return fmt.Errorf("product %s already exists", productID)
	}
	s.products[productID] = &productStock{name: name, stock: stock}
	return nil
}

// Restock увеличивает остаток товара (поставка).
func (s *Service) Restock(productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrQuantityInvalid
	}

	product, err := s.product(productID)
	if err != nil {
		return err
	}

	product.mu.Lock()
	product.stock += qty
	product.mu.Unlock()
	return nil
}

// Stock возвращает доступный остаток товара.
func (s *Service) Stock(productID string) (int, error) {
	product, err := s.product(productID)
	if err != nil {
		return 0, err
	}

	product.mu.Lock()
	defer product.mu.Unlock()
	return product.stock, nil
}

// Allocate атомарно проверяет и списывает qty единиц под заказ.
// Недостаток остатка — бизнес-исход ErrInsufficientStock, не сбой.
func (s *Service) Allocate(orderID, productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrQuantityInvalid
	}

	product, err := s.product(productID)
	if err != nil {
		return err
	}

	product.mu.Lock()
	if product.stock < qty {
		product.mu.Unlock()
		return domain.ErrInsufficientStock
	}
	product.stock -= qty
	product.mu.Unlock()

	s.mu.Lock()
	s.allocations[allocationKey{orderID, productID}] += qty
	s.mu.Unlock()

	s.logger.WithFields(log.Fields{
		"order_id":   orderID,
		"product_id": productID,
		"qty":        qty,
	}).Debug("stock allocated")
	return nil
}

// Rollback возвращает на склад ровно то, что заказ успел зарезервировать.
// Идемпотентен: без резерва (или повторно) — no-op, не ошибка.
func (s *Service) Rollback(orderID, productID string, qty int) error {
	key := allocationKey{orderID, productID}

	s.mu.Lock()
	allocated := s.allocations[key]
	if allocated == 0 {
		s.mu.Unlock()
		return nil
	}
	if qty <= 0 || qty > allocated {
		qty = allocated
	}
	if qty == allocated {
		delete(s.allocations, key)
	} else {
		s.allocations[key] = allocated - qty
	}
	s.mu.Unlock()

	product, err := s.product(productID)
	if err != nil {
		// Товар исчез из каталога после резерва: компенсировать нечем.
		return nil
	}

	product.mu.Lock()
	product.stock += qty
	product.mu.Unlock()

	s.logger.WithFields(log.Fields{
		"order_id":   orderID,
		"product_id": productID,
		"qty":        qty,
	}).Debug("allocation rolled back")
	return nil
}

func (s *Service) product(productID string) (*productStock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

var _ domain.InventoryGateway = (*Service)(nil)
