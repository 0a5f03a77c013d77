// internal/queue/amqp.go
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// AMQPQueue publishes campaign upload events to RabbitMQ. Consumption is
// the worker process's job (cmd/worker), so Subscribe is not supported on
// the publisher side.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialAMQP connects, opens a channel and declares the upload queue so
// events survive until a worker drains them.
func DialAMQP(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		TopicCampaignUploads, // name
		true,                 // durable
		false,                // delete when unused
		false,                // exclusive
		false,                // no-wait
		nil,                  // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",    // default exchange
		topic, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	return fmt.Errorf("subscriptions on %s are handled by the worker process", topic)
}

func (q *AMQPQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
