// Package rabbitmq contains the publishing helper for the notifications
// exchange.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Publisher binds a channel to one exchange.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewPublisher creates a Publisher over an open channel.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// Publish sends message to the bound exchange under routingkey.
func (p *Publisher) Publish(routingkey string, message any) error {
	return PublishMessage(p.ch, p.exchange, routingkey, message)
}

// PublishMessage marshals message to JSON and publishes it persistently.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
