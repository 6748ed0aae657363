package app

import (
	"context"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func testLogger() *log.Entry {
	return log.New().WithField("test", "app")
}

func TestInitEventLog_Memory(t *testing.T) {
	events, pg, err := initEventLog(context.Background(), Config{StorageDriver: StorageMemory}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events == nil {
		t.Fatal("expected event log")
	}
	if pg != nil {
		t.Fatal("memory driver must not open postgres")
	}
}

func TestInitEventLog_Disk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	events, pg, err := initEventLog(context.Background(), Config{StorageDriver: StorageDisk, EventStorePath: path}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg != nil {
		t.Fatal("disk driver must not open postgres")
	}

	evt := domain.NewFulfillmentEvent("O1", domain.StatusNew, "OrderPlaced", "")
	if err := events.Append(evt); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Новый экземпляр должен увидеть событие на диске.
	reloaded, _, err := initEventLog(context.Background(), Config{StorageDriver: StorageDisk, EventStorePath: path}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(reloaded.EventsFor("O1")); got != 1 {
		t.Fatalf("expected 1 event after reload, got %d", got)
	}
}

func TestInitEventLog_UnknownDriver(t *testing.T) {
	if _, _, err := initEventLog(context.Background(), Config{StorageDriver: "etcd"}, testLogger()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
