package app

import "testing"

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	producer, err := initKafkaProducer("", testLogger())
	if err != nil {
		t.Fatalf("empty brokers must not be an error: %v", err)
	}
	if producer != nil {
		t.Fatal("expected nil producer without brokers")
	}
}

func TestInitOrdersConsumer_EmptyBrokers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KafkaBrokers = ""

	consumer, err := initOrdersConsumer(cfg, nil, nil, testLogger())
	if err != nil {
		t.Fatalf("empty brokers must not be an error: %v", err)
	}
	if consumer != nil {
		t.Fatal("expected nil consumer without brokers")
	}
}

func TestCloseKafka_Nil(t *testing.T) {
	// nil producer не должен приводить к панике.
	closeKafka(nil, testLogger())
}
