package kafka

// Topics сервиса исполнения заказов.
const (
	// TopicOrders — входящие уведомления OrderPlaced от order-service.
	TopicOrders = "orders"
	// TopicFulfillmentEvents — исходящий поток событий исполнения.
	TopicFulfillmentEvents = "fulfillment-events"
	// TopicDeadLetterQueue — сообщения, не обработанные после всех retry.
	TopicDeadLetterQueue = "fulfillment.dlq"
)

// ConsumerGroupID — group id консьюмера входящих заказов.
const ConsumerGroupID = "fulfillment-service"

// Kafka headers для retry логики.
const (
	HeaderRetryCount    = "x-retry-count"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)
