package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Exchange is the direct exchange all notification events go through.
const Exchange = "notifications"

// QueueConfig binds one queue to the exchange under a routing key.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// DeliveryQueues is the topology consumed by the notifier: one durable
// queue per event type.
var DeliveryQueues = []QueueConfig{
	{QueueName: "notifications.message", RoutingKey: "message"},
	{QueueName: "notifications.like", RoutingKey: "like"},
	{QueueName: "notifications.system", RoutingKey: "system"},
}

// SetupChannel opens a channel, declares the exchange and binds the given
// queues. Prefetch is capped so a slow SMTP server cannot flood a consumer.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			Exchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
