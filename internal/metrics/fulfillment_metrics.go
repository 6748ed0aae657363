package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FulfillmentMetrics содержит метрики саги исполнения заказов.
type FulfillmentMetrics struct {
	// Счётчики исходов саги
	sagasStarted     prometheus.Counter
	sagasShipped     prometheus.Counter
	sagasCompensated prometheus.Counter

	// Счётчики отброшенных уведомлений
	duplicatesIgnored prometheus.Counter
	malformedDropped  prometheus.Counter
	policyRejected    prometheus.Counter

	// События и публикация
	eventsAppended  prometheus.Counter
	publishFailures prometheus.Counter

	// Гистограмма времени выполнения саги
	sagaDuration prometheus.Histogram

	// Gauge для активных саг
	activeSagas prometheus.Gauge
}

// NewFulfillmentMetrics создаёт метрики в default registry.
func NewFulfillmentMetrics() *FulfillmentMetrics {
	return newFulfillmentMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newFulfillmentMetricsWithRegisterer(registerer prometheus.Registerer) *FulfillmentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &FulfillmentMetrics{
		sagasStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_sagas_started_total",
			Help: "Total number of fulfillment sagas started",
		}),
		sagasShipped: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_sagas_shipped_total",
			Help: "Total number of sagas completed on the shipped path",
		}),
		sagasCompensated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_sagas_compensated_total",
			Help: "Total number of sagas completed on the compensation path",
		}),
		duplicatesIgnored: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_duplicates_ignored_total",
			Help: "Total number of duplicate order notifications ignored",
		}),
		malformedDropped: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_malformed_dropped_total",
			Help: "Total number of malformed order notifications dropped",
		}),
		policyRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_policy_rejected_total",
			Help: "Total number of orders rejected by the eligibility policy",
		}),
		eventsAppended: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_events_appended_total",
			Help: "Total number of events appended to the fulfillment log",
		}),
		publishFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_event_publish_failures_total",
			Help: "Total number of failed event publish attempts",
		}),
		sagaDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "fulfillment_saga_duration_seconds",
			Help:    "Duration of a full saga run in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		activeSagas: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "fulfillment_active_sagas",
			Help: "Number of currently running saga invocations",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordSagaStarted увеличивает счётчик запущенных саг.
func (m *FulfillmentMetrics) RecordSagaStarted() {
	m.sagasStarted.Inc()
	m.activeSagas.Inc()
}

// RecordSagaFinished уменьшает количество активных саг и записывает длительность.
func (m *FulfillmentMetrics) RecordSagaFinished(duration time.Duration) {
	m.activeSagas.Dec()
	m.sagaDuration.Observe(duration.Seconds())
}

// RecordSagaShipped увеличивает счётчик успешно отгруженных саг.
func (m *FulfillmentMetrics) RecordSagaShipped() {
	m.sagasShipped.Inc()
}

// RecordSagaCompensated увеличивает счётчик компенсированных саг.
func (m *FulfillmentMetrics) RecordSagaCompensated() {
	m.sagasCompensated.Inc()
}

// RecordDuplicateIgnored увеличивает счётчик проигнорированных дублей.
func (m *FulfillmentMetrics) RecordDuplicateIgnored() {
	m.duplicatesIgnored.Inc()
}

// RecordMalformedDropped увеличивает счётчик отброшенных некорректных сообщений.
func (m *FulfillmentMetrics) RecordMalformedDropped() {
	m.malformedDropped.Inc()
}

// RecordPolicyRejected увеличивает счётчик заказов, отклонённых политикой.
func (m *FulfillmentMetrics) RecordPolicyRejected() {
	m.policyRejected.Inc()
}

// RecordEventAppended увеличивает счётчик добавленных в журнал событий.
func (m *FulfillmentMetrics) RecordEventAppended() {
	m.eventsAppended.Inc()
}

// RecordPublishFailure увеличивает счётчик неудачных публикаций.
func (m *FulfillmentMetrics) RecordPublishFailure() {
	m.publishFailures.Inc()
}
