package app

import (
	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/advisor"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/policy"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/saga"
)

// createOrchestrator собирает saga orchestrator с политикой допуска и
// ML-советником. Без Kafka producer события саги только пишутся в журнал.
func createOrchestrator(deps *Dependencies, producer *kafka.Producer, cfg Config) saga.Orchestrator {
	// Типизированный nil не должен попасть в интерфейс publisher.
	var publisher domain.EventPublisher
	if producer != nil {
		publisher = producer
	}

	return saga.NewOrchestrator(
		deps.Events,
		deps.Inventory,
		publisher,
		saga.Options{
			Policy:  policy.NewStaticEvaluator(),
			Advisor: advisor.NewStubAdvisor(),
			Topic:   cfg.EventsTopic,
		},
		deps.Logger.WithField("component", "saga"),
	)
}
