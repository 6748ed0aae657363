package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/inventory"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/postgres"
)

// Dependencies содержит зависимости приложения.
type Dependencies struct {
	Events    domain.EventLog
	Inventory *inventory.Service
	// PG не nil только для драйвера postgres.
	PG     *postgres.Store
	Logger *log.Entry
}

// NewDependencies создаёт журнал событий и склад.
// NOTE: in-memory склад с demo-каталогом — для разработки; в production
// его заменяет клиент внешнего inventory-сервиса.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	events, pg, err := initEventLog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	stock := inventory.NewService(logger.WithField("component", "inventory"))
	seedDemoCatalog(stock, logger)

	return &Dependencies{
		Events:    events,
		Inventory: stock,
		PG:        pg,
		Logger:    logger,
	}, nil
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close() {
	if d.PG != nil {
		if err := d.PG.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres connection")
		}
	}
}

// seedDemoCatalog наполняет demo-склад.
func seedDemoCatalog(stock *inventory.Service, logger *log.Entry) {
	seed := []struct {
		id    string
		name  string
		stock int
	}{
		{"SKU42", "widget", 100},
		{"SKU7", "gadget", 25},
		{"SKU99", "gizmo", 10},
	}
	for _, p := range seed {
		if err := stock.AddProduct(p.id, p.name, p.stock); err != nil {
			logger.WithError(err).WithField("product_id", p.id).Warn("failed to seed product")
		}
	}
}
