package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/fulfillment/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		direction string
		dsn       string
	)

	flag.StringVar(&direction, "direction", "up", "migration direction: up|status")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: FULFILLMENT_POSTGRES_DSN)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("FULFILLMENT_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("FULFILLMENT_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "up":
		if err := store.EnsureSchema(ctx); err != nil {
			fail("migrate up failed: %v", err)
		}
		tables, events, err := store.SchemaStatus(ctx)
		if err != nil {
			fail("schema status failed: %v", err)
		}
		fmt.Printf("migrate up ok: tables=%d events=%d\n", tables, events)
	case "status":
		tables, events, err := store.SchemaStatus(ctx)
		if err != nil {
			fail("schema status failed: %v", err)
		}
		fmt.Printf("schema status: tables=%d events=%d\n", tables, events)
	default:
		fail("unsupported direction: %s (use up|status)", direction)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
