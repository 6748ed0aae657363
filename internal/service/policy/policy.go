package policy

import (
	"strings"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// Evaluator решает, допускается ли заказ к исполнению.
// Это точка расширения для внешнего правил-движка; сам движок не входит
// в этот сервис.
type Evaluator interface {
	Eligible(order domain.OrderPlaced) bool
}

// StaticEvaluator — фиксированный набор правил для разработки и демо.
type StaticEvaluator struct {
	// BlockedProducts — идентификаторы товаров, запрещённых к исполнению
	// (сравнение без учёта регистра).
	BlockedProducts []string
	// MaxQuantity ограничивает размер заказа; 0 — без ограничения.
	MaxQuantity int
}

// NewStaticEvaluator возвращает правила по умолчанию: блокируется только
// зарезервированный товар "RESTRICTED".
func NewStaticEvaluator() *StaticEvaluator {
	return &StaticEvaluator{BlockedProducts: []string{"RESTRICTED"}}
}

// Eligible применяет правила к заказу.
func (e *StaticEvaluator) Eligible(order domain.OrderPlaced) bool {
	for _, blocked := range e.BlockedProducts {
		if strings.EqualFold(order.ProductID, blocked) {
			return false
		}
	}
	if e.MaxQuantity > 0 && order.Quantity > e.MaxQuantity {
		return false
	}
	return true
}

var _ Evaluator = (*StaticEvaluator)(nil)
