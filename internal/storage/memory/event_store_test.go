package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func TestEventStore_AppendAndRead(t *testing.T) {
	store := NewEventStore()

	first := domain.NewFulfillmentEvent("order-1", domain.StatusNew, "OrderPlaced", "")
	second := domain.NewFulfillmentEvent("order-1", domain.StatusAllocating, "AllocationRequested", "")

	if err := store.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("append: %v", err)
	}

	events := store.EventsFor("order-1")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != "OrderPlaced" || events[1].Type != "AllocationRequested" {
		t.Fatalf("append order not preserved: %s, %s", events[0].Type, events[1].Type)
	}

	if got := store.StatusFor("order-1"); got != domain.StatusAllocating {
		t.Fatalf("status index must match last event, got %s", got)
	}
}

func TestEventStore_UnknownOrder(t *testing.T) {
	store := NewEventStore()

	if events := store.EventsFor("missing"); len(events) != 0 {
		t.Fatalf("expected empty sequence, got %d events", len(events))
	}
	if got := store.StatusFor("missing"); got != domain.StatusUnknown {
		t.Fatalf("expected unknown status, got %q", got)
	}
}

func TestEventStore_ReadDoesNotAliasInternalState(t *testing.T) {
	store := NewEventStore()
	if err := store.Append(domain.NewFulfillmentEvent("order-1", domain.StatusNew, "OrderPlaced", "")); err != nil {
		t.Fatalf("append: %v", err)
	}

	events := store.EventsFor("order-1")
	events[0].Type = "mutated"

	if got := store.EventsFor("order-1")[0].Type; got != "OrderPlaced" {
		t.Fatalf("internal state mutated through read copy: %s", got)
	}
}

func TestEventStore_ConcurrentAppends(t *testing.T) {
	store := NewEventStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			orderID := fmt.Sprintf("order-%d", n)
			_ = store.Append(domain.NewFulfillmentEvent(orderID, domain.StatusNew, "OrderPlaced", ""))
			_ = store.Append(domain.NewFulfillmentEvent(orderID, domain.StatusShipped, "ShippingDone", ""))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		orderID := fmt.Sprintf("order-%d", i)
		if len(store.EventsFor(orderID)) != 2 {
			t.Fatalf("expected 2 events for %s", orderID)
		}
		if store.StatusFor(orderID) != domain.StatusShipped {
			t.Fatalf("expected terminal status for %s", orderID)
		}
	}
}
