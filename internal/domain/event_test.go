package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewFulfillmentEvent_Fields(t *testing.T) {
	evt := NewFulfillmentEvent("order-1", StatusNew, "OrderPlaced", `{"orderId":"order-1"}`)

	if evt.EventID == "" {
		t.Fatal("expected generated event id")
	}
	if evt.OrderID != "order-1" {
		t.Fatalf("unexpected order id: %s", evt.OrderID)
	}
	if evt.Status != StatusNew {
		t.Fatalf("unexpected status: %s", evt.Status)
	}
	if evt.Type != "OrderPlaced" {
		t.Fatalf("unexpected type: %s", evt.Type)
	}
	if evt.CorrelationID != "order-1" {
		t.Fatalf("correlation id must equal order id, got %s", evt.CorrelationID)
	}
	if evt.CompensationFor != "" {
		t.Fatalf("compensation_for must be empty for regular events, got %s", evt.CompensationFor)
	}
	if evt.Timestamp.IsZero() {
		t.Fatal("expected default timestamp")
	}
	if time.Since(evt.Timestamp) > time.Minute {
		t.Fatalf("timestamp too old: %s", evt.Timestamp)
	}
}

func TestNewFulfillmentEvent_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		evt := NewFulfillmentEvent("order-1", StatusNew, "OrderPlaced", "")
		if _, dup := seen[evt.EventID]; dup {
			t.Fatalf("duplicate event id: %s", evt.EventID)
		}
		seen[evt.EventID] = struct{}{}
	}
}

func TestNewCompensationEvent(t *testing.T) {
	evt := NewCompensationEvent("order-2", StatusCompensated, "AllocationRolledBack", "")

	if evt.CompensationFor != "order-2" {
		t.Fatalf("expected compensation_for order-2, got %s", evt.CompensationFor)
	}
	if evt.Status != StatusCompensated {
		t.Fatalf("unexpected status: %s", evt.Status)
	}
}

func TestFulfillmentStatus_IsTerminal(t *testing.T) {
	terminal := []FulfillmentStatus{StatusShipped, StatusCompensated, StatusCancelled, StatusDelivered}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	nonTerminal := []FulfillmentStatus{StatusUnknown, StatusNew, StatusAllocating, StatusAllocated, StatusFailed}
	for _, s := range nonTerminal {
		if s.IsTerminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestFulfillmentEvent_JSONWireFormat(t *testing.T) {
	evt := NewFulfillmentEvent("order-3", StatusAllocating, "AllocationRequested", `{"orderId":"order-3"}`)

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	for _, field := range []string{"eventId", "orderId", "status", "type", "payload", "timestamp", "correlationId"} {
		if _, ok := wire[field]; !ok {
			t.Errorf("missing wire field %q", field)
		}
	}
	if _, ok := wire["compensationFor"]; ok {
		t.Error("compensationFor must be omitted when empty")
	}
}
