package query

import (
	"testing"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/memory"
)

func TestFacade_CurrentStatus(t *testing.T) {
	events := memory.NewEventStore()
	facade := NewFacade(events)

	if got := facade.CurrentStatus("missing"); got != domain.StatusUnknown {
		t.Fatalf("expected unknown status, got %q", got)
	}

	if err := events.Append(domain.NewFulfillmentEvent("O1", domain.StatusNew, "OrderPlaced", "")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := events.Append(domain.NewFulfillmentEvent("O1", domain.StatusAllocating, "AllocationRequested", "")); err != nil {
		t.Fatalf("append: %v", err)
	}

	if got := facade.CurrentStatus("O1"); got != domain.StatusAllocating {
		t.Fatalf("expected status of last event, got %s", got)
	}
}

func TestFacade_EventLog(t *testing.T) {
	events := memory.NewEventStore()
	facade := NewFacade(events)

	if got := facade.EventLog("missing"); len(got) != 0 {
		t.Fatalf("expected empty log for unknown order, got %d events", len(got))
	}

	for _, status := range []domain.FulfillmentStatus{domain.StatusNew, domain.StatusAllocating, domain.StatusAllocated} {
		if err := events.Append(domain.NewFulfillmentEvent("O2", status, "step", "")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	log := facade.EventLog("O2")
	if len(log) != 3 {
		t.Fatalf("expected 3 events, got %d", len(log))
	}
	if log[0].Status != domain.StatusNew || log[2].Status != domain.StatusAllocated {
		t.Fatalf("events out of order: %v", log)
	}
}
