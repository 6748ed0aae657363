package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/query"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/memory"
)

func newTestQueryServer(t *testing.T) (*httptest.Server, domain.EventLog) {
	t.Helper()

	events := memory.NewEventStore()
	srv := httptest.NewServer(newQueryMux(query.NewFacade(events)))
	t.Cleanup(srv.Close)
	return srv, events
}

func TestQueryAPI_StatusUnknownOrder(t *testing.T) {
	srv, _ := newTestQueryServer(t)

	resp, err := http.Get(srv.URL + "/fulfillment/missing/status")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", resp.StatusCode)
	}
}

func TestQueryAPI_Status(t *testing.T) {
	srv, events := newTestQueryServer(t)

	if err := events.Append(domain.NewFulfillmentEvent("O1", domain.StatusNew, "OrderPlaced", "")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := events.Append(domain.NewFulfillmentEvent("O1", domain.StatusShipped, "ShippingDone", "")); err != nil {
		t.Fatalf("append: %v", err)
	}

	resp, err := http.Get(srv.URL + "/fulfillment/O1/status")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OrderID != "O1" || body.Status != domain.StatusShipped {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestQueryAPI_EventsUnknownOrder(t *testing.T) {
	srv, _ := newTestQueryServer(t)

	resp, err := http.Get(srv.URL + "/fulfillment/missing/events")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with empty log, got %d", resp.StatusCode)
	}

	var body []domain.FulfillmentEvent
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body == nil || len(body) != 0 {
		t.Fatalf("expected empty JSON array, got %v", body)
	}
}

func TestQueryAPI_Events(t *testing.T) {
	srv, events := newTestQueryServer(t)

	for _, status := range []domain.FulfillmentStatus{domain.StatusNew, domain.StatusAllocating} {
		if err := events.Append(domain.NewFulfillmentEvent("O2", status, "step", "")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	resp, err := http.Get(srv.URL + "/fulfillment/O2/events")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body []domain.FulfillmentEvent
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 events, got %d", len(body))
	}
	if body[0].Status != domain.StatusNew || body[1].Status != domain.StatusAllocating {
		t.Fatalf("events out of order: %v", body)
	}
}

func TestQueryAPI_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestQueryServer(t)

	resp, err := http.Post(srv.URL+"/fulfillment/O1/status", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
