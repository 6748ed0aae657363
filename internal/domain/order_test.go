package domain

import (
	"errors"
	"testing"
	"time"
)

func TestOrderPlaced_ValidateInvariants_OK(t *testing.T) {
	order := OrderPlaced{
		OrderID:    "O1",
		ProductID:  "SKU42",
		Quantity:   3,
		CustomerID: "C7",
		Created:    time.Now().UTC(),
	}

	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no violations, got %v", errs)
	}
}

func TestOrderPlaced_ValidateInvariants_Violations(t *testing.T) {
	order := OrderPlaced{Quantity: 0}
	errs := order.ValidateInvariants()

	if len(errs) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(errs), errs)
	}

	expect := []error{ErrOrderIDRequired, ErrProductIDRequired, ErrQuantityInvalid}
	for _, want := range expect {
		found := false
		for _, got := range errs {
			if errors.Is(got, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("expected violation %v", want)
		}
	}
}

func TestParseOrderPlaced(t *testing.T) {
	order, err := ParseOrderPlaced([]byte(`{"orderId":"O1","productId":"SKU42","quantity":3,"customerId":"C7","created":"2026-08-01T10:00:00Z"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if order.OrderID != "O1" || order.ProductID != "SKU42" || order.Quantity != 3 || order.CustomerID != "C7" {
		t.Fatalf("unexpected order: %#v", order)
	}
	if order.Created.IsZero() {
		t.Fatal("expected parsed created timestamp")
	}
}

func TestParseOrderPlaced_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"not json":       "{not valid json}",
		"missing id":     `{"productId":"SKU42","quantity":1}`,
		"null":           "null",
		"wrong type":     `{"orderId":42}`,
		"empty order id": `{"orderId":"","quantity":1}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseOrderPlaced([]byte(payload)); err == nil {
				t.Fatalf("expected error for payload %q", payload)
			}
		})
	}
}
