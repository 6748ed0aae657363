package app

import (
	"context"
	"strings"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/saga"
)

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Возвращает nil, nil если brokers пустой.
func initKafkaProducer(brokers string, logger *log.Entry) (*kafka.Producer, error) {
	if brokers == "" {
		return nil, nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer, nil
}

// initOrdersConsumer подписывает оркестратор на topic входящих заказов.
// DLQ producer переиспользует producer исходящих событий.
func initOrdersConsumer(cfg Config, orchestrator saga.Orchestrator, dlqProducer *kafka.Producer, logger *log.Entry) (*kafka.Consumer, error) {
	if cfg.KafkaBrokers == "" {
		return nil, nil
	}

	handler := func(_ context.Context, message *sarama.ConsumerMessage) error {
		// Оркестратор сам отбрасывает некорректные и повторные уведомления.
		orchestrator.HandleOrderPlaced(message.Value)
		return nil
	}

	brokerList := strings.Split(cfg.KafkaBrokers, ",")
	consumer, err := kafka.NewConsumerWithDLQ(brokerList, cfg.GroupID, []string{cfg.OrdersTopic}, handler, dlqProducer, 3)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka consumer, continuing without inbound stream")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"topic":    cfg.OrdersTopic,
		"group_id": cfg.GroupID,
	}).Info("kafka consumer initialized")
	return consumer, nil
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
