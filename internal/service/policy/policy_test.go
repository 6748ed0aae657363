package policy

import (
	"testing"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func TestStaticEvaluator_Defaults(t *testing.T) {
	eval := NewStaticEvaluator()

	if !eval.Eligible(domain.OrderPlaced{OrderID: "O1", ProductID: "SKU42", Quantity: 3}) {
		t.Fatal("regular order must be eligible")
	}
	if eval.Eligible(domain.OrderPlaced{OrderID: "O2", ProductID: "RESTRICTED", Quantity: 1}) {
		t.Fatal("restricted product must be blocked")
	}
	if eval.Eligible(domain.OrderPlaced{OrderID: "O3", ProductID: "restricted", Quantity: 1}) {
		t.Fatal("restricted product check must be case-insensitive")
	}
}

func TestStaticEvaluator_MaxQuantity(t *testing.T) {
	eval := &StaticEvaluator{MaxQuantity: 5}

	if !eval.Eligible(domain.OrderPlaced{OrderID: "O1", ProductID: "SKU42", Quantity: 5}) {
		t.Fatal("order at the limit must be eligible")
	}
	if eval.Eligible(domain.OrderPlaced{OrderID: "O2", ProductID: "SKU42", Quantity: 6}) {
		t.Fatal("order over the limit must be blocked")
	}
}
