// Package event publishes booking events to RabbitMQ so downstream
// consumers (notifications, analytics) can react to completed orders.
package event

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

const orderCreatedQueue = "order.created"

// OrderCreated is the message emitted after an order has been persisted.
type OrderCreated struct {
	OrderID   string          `json:"order_id"`
	Email     string          `json:"email"`
	Total     decimal.Decimal `json:"total"`
	SeatCount int             `json:"seat_count"`
	CreatedAt time.Time       `json:"created_at"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to the broker and declares the order.created queue.
// The queue is durable and messages are published as persistent, so a broker
// restart does not lose confirmed orders.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = channel.QueueDeclare(
		orderCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
	}, nil
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		"",                // default exchange
		orderCreatedQueue, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.CreatedAt,
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}

	return p.conn.Close()
}
