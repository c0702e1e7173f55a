// internal/queue/amqp.go
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const eventQueueName = "campaign_events"

// AMQPQueue publishes campaign events to a durable RabbitMQ queue as JSON
// envelopes of the form {"event": topic, "data": payload}.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ Queue = (*AMQPQueue)(nil)

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	if url == "" {
		return nil, ErrNoBrokerURL
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open broker channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		eventQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", eventQueueName, err)
	}

	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(map[string]any{
		"event": topic,
		"data":  payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", topic, err)
	}

	err = q.ch.Publish(
		"",             // default exchange
		eventQueueName, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event %s: %w", topic, err)
	}
	return nil
}

func (q *AMQPQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}
