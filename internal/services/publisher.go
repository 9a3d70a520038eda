package services

// EventPublisher publishes messages to the broker. *rabbitmq.Client satisfies
// it; services treat a nil publisher as "messaging disabled" and only log.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
