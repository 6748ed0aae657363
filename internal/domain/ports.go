package domain

// EventLog — append-only журнал событий исполнения с проекцией текущего статуса.
// Последовательность событий одного заказа монотонно растёт и никогда не
// переупорядочивается; читатель не должен увидеть обновлённый статус без
// соответствующего события (и наоборот).
type EventLog interface {
	// Append добавляет событие в журнал заказа и обновляет проекцию статуса.
	// Ошибка персистентности не считается фатальной: реализация обязана
	// сохранить событие в памяти и отразить сбой в логах/метриках.
	Append(event FulfillmentEvent) error
	// EventsFor возвращает события заказа в порядке добавления.
	// Для неизвестного заказа — пустой срез, никогда не ошибка.
	EventsFor(orderID string) []FulfillmentEvent
	// StatusFor возвращает статус последнего события заказа
	// или StatusUnknown, если заказ не встречался.
	StatusFor(orderID string) FulfillmentStatus
}

// InventoryGateway описывает взаимодействие со складом.
type InventoryGateway interface {
	// Allocate пытается зарезервировать qty единиц товара под заказ.
	// Бизнес-отказ выражается через ErrInsufficientStock/ErrProductNotFound.
	Allocate(orderID, productID string, qty int) error
	// Rollback возвращает ранее зарезервированное количество (компенсация).
	// Безопасен, даже если резервирования не было: тогда это no-op, не ошибка.
	Rollback(orderID, productID string, qty int) error
}

// EventPublisher публикует сериализованное событие в topic с ключом заказа.
// Реализуется транспортными адаптерами: Kafka в проде, заглушки в тестах.
type EventPublisher interface {
	Publish(topic, key string, value []byte) error
}
