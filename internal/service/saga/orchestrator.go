package saga

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fulfillment/internal/metrics"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/advisor"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/policy"
)

// Orchestrator описывает обработку входящих уведомлений о заказах.
type Orchestrator interface {
	// HandleOrderPlaced прогоняет сагу для одного уведомления до терминального
	// статуса. Некорректные и повторные уведомления отбрасываются молча.
	HandleOrderPlaced(payload []byte)
}

// orchestrator реализует последовательность шагов саги:
// NEW → ALLOCATING → (ALLOCATED, SHIPPED) либо (FAILED, rollback, COMPENSATED).
type orchestrator struct {
	events    domain.EventLog
	inventory domain.InventoryGateway
	publisher domain.EventPublisher
	policy    policy.Evaluator // опциональный gate допуска заказа
	advisor   advisor.Advisor  // опциональный ML-советник
	topic     string
	logger    *log.Entry
	metrics   *metrics.FulfillmentMetrics
}

// Options задаёт опциональные зависимости оркестратора.
type Options struct {
	// Policy отклоняет заказ до первого события; nil — все заказы допущены.
	Policy policy.Evaluator
	// Advisor даёт рекомендацию по маршрутизации перед резервированием.
	Advisor advisor.Advisor
	// Topic переопределяет topic исходящих событий.
	Topic string
}

// NewOrchestrator создаёт рабочий экземпляр оркестратора.
func NewOrchestrator(
	events domain.EventLog,
	inventory domain.InventoryGateway,
	publisher domain.EventPublisher,
	opts Options,
	logger *log.Entry,
) Orchestrator {
	o := build(events, inventory, publisher, opts, logger)
	o.metrics = metrics.NewFulfillmentMetrics()
	return o
}

// NewOrchestratorWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewOrchestratorWithoutMetrics(
	events domain.EventLog,
	inventory domain.InventoryGateway,
	publisher domain.EventPublisher,
	opts Options,
	logger *log.Entry,
) Orchestrator {
	return build(events, inventory, publisher, opts, logger)
}

func build(
	events domain.EventLog,
	inventory domain.InventoryGateway,
	publisher domain.EventPublisher,
	opts Options,
	logger *log.Entry,
) *orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "saga")
	}
	topic := opts.Topic
	if topic == "" {
		topic = kafka.TopicFulfillmentEvents
	}
	return &orchestrator{
		events:    events,
		inventory: inventory,
		publisher: publisher,
		policy:    opts.Policy,
		advisor:   opts.Advisor,
		topic:     topic,
		logger:    logger,
	}
}

// HandleOrderPlaced обрабатывает уведомление. Метод идемпотентен: заказ с уже
// записанной историей игнорируется целиком, без событий и side effects.
func (o *orchestrator) HandleOrderPlaced(payload []byte) {
	order, err := domain.ParseOrderPlaced(payload)
	if err != nil {
		o.logger.WithError(err).Debug("discarding malformed order notification")
		if o.metrics != nil {
			o.metrics.RecordMalformedDropped()
		}
		return
	}
	if violations := order.ValidateInvariants(); len(violations) > 0 {
		o.logger.WithFields(log.Fields{
			"order_id":   order.OrderID,
			"violations": violations,
		}).Debug("discarding invalid order notification")
		if o.metrics != nil {
			o.metrics.RecordMalformedDropped()
		}
		return
	}

	if len(o.events.EventsFor(order.OrderID)) > 0 {
		o.logger.WithField("order_id", order.OrderID).Debug("duplicate order id, ignoring notification")
		if o.metrics != nil {
			o.metrics.RecordDuplicateIgnored()
		}
		return
	}

	if o.policy != nil && !o.policy.Eligible(order) {
		o.logger.WithFields(log.Fields{
			"order_id":   order.OrderID,
			"product_id": order.ProductID,
		}).Warn("order rejected by fulfillment policy")
		if o.metrics != nil {
			o.metrics.RecordPolicyRejected()
		}
		return
	}

	start := time.Now()
	if o.metrics != nil {
		o.metrics.RecordSagaStarted()
		defer func() {
			o.metrics.RecordSagaFinished(time.Since(start))
		}()
	}

	o.appendAndPublish(domain.NewFulfillmentEvent(order.OrderID, domain.StatusNew, "OrderPlaced", string(payload)))
	o.allocate(order)
}

// allocate выполняет шаг резервирования и выбирает успешную либо
// компенсационную ветку саги.
func (o *orchestrator) allocate(order domain.OrderPlaced) {
	snapshot := o.orderSnapshot(order)
	o.appendAndPublish(domain.NewFulfillmentEvent(order.OrderID, domain.StatusAllocating, "AllocationRequested", snapshot))

	if o.advisor != nil {
		prediction := o.advisor.Predict(order)
		o.logger.WithFields(log.Fields{
			"order_id":   order.OrderID,
			"risk_score": prediction.RiskScore,
			"warehouse":  prediction.RecommendedWarehouse,
			"expedite":   prediction.Expedite,
		}).Debug("fulfillment advisor prediction")
	}

	if err := o.inventory.Allocate(order.OrderID, order.ProductID, order.Quantity); err != nil {
		if domain.IsAllocationRejected(err) {
			o.logger.WithError(err).WithField("order_id", order.OrderID).Info("allocation rejected")
		} else {
			o.logger.WithError(err).WithField("order_id", order.OrderID).Warn("allocation failed")
		}
		o.compensate(order, snapshot)
		return
	}

	o.appendAndPublish(domain.NewFulfillmentEvent(order.OrderID, domain.StatusAllocated, "AllocationSucceeded", snapshot))

	// Отгрузка в этой саге смоделирована синхронным завершающим шагом;
	// отдельная асинхронная стадия — предмет будущего редизайна.
	o.appendAndPublish(domain.NewFulfillmentEvent(order.OrderID, domain.StatusShipped, "ShippingDone", ""))

	if o.metrics != nil {
		o.metrics.RecordSagaShipped()
	}
	o.logger.WithField("order_id", order.OrderID).Info("saga completed, order shipped")
}

// compensate фиксирует отказ, откатывает резерв и завершает сагу статусом COMPENSATED.
func (o *orchestrator) compensate(order domain.OrderPlaced, snapshot string) {
	o.appendAndPublish(domain.NewFulfillmentEvent(order.OrderID, domain.StatusFailed, "AllocationFailed", snapshot))

	if err := o.inventory.Rollback(order.OrderID, order.ProductID, order.Quantity); err != nil {
		o.logger.WithError(err).WithField("order_id", order.OrderID).Warn("inventory rollback failed")
	}

	o.appendAndPublish(domain.NewCompensationEvent(order.OrderID, domain.StatusCompensated, "AllocationRolledBack", snapshot))

	if o.metrics != nil {
		o.metrics.RecordSagaCompensated()
	}
	o.logger.WithField("order_id", order.OrderID).Info("saga compensated")
}

// appendAndPublish добавляет событие в журнал и публикует его в topic событий.
// Публикация выполняется независимо от исхода персистентности: downstream
// живёт на потоке сообщений, а не на файле журнала.
func (o *orchestrator) appendAndPublish(evt domain.FulfillmentEvent) {
	if err := o.events.Append(evt); err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"order_id": evt.OrderID,
			"event":    evt.Type,
		}).Error("append event failed")
	} else if o.metrics != nil {
		o.metrics.RecordEventAppended()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"order_id": evt.OrderID,
			"event":    evt.Type,
		}).Error("marshal event failed")
		return
	}

	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(o.topic, evt.OrderID, data); err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"order_id": evt.OrderID,
			"event":    evt.Type,
			"topic":    o.topic,
		}).Warn("failed to publish fulfillment event")
		if o.metrics != nil {
			o.metrics.RecordPublishFailure()
		}
	}
}

func (o *orchestrator) orderSnapshot(order domain.OrderPlaced) string {
	data, err := json.Marshal(order)
	if err != nil {
		return ""
	}
	return string(data)
}

var _ Orchestrator = (*orchestrator)(nil)
