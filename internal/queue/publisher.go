package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const orderQueue = "order.events"

// EventPublisher pushes order events to the broker. Callers treat publishing
// as best-effort and ignore the returned error after logging.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// Publisher implements EventPublisher over RabbitMQ. It dials per publish;
// order volume does not justify holding a connection open.
type Publisher struct {
	url string
}

// NewPublisher creates a RabbitMQ publisher for the given AMQP URL.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// Publish sends the event to the order.events queue as a persistent JSON
// message. Errors are logged and returned so the caller can ignore them
// without interrupting the request.
func (p *Publisher) Publish(ctx context.Context, event OrderEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(orderQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", orderQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
