package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/logger"
)

const routingKeyOrderConfirmed = "order.confirmed"

// Publisher emits order lifecycle events for downstream consumers
// (fulfillment, photography booking, analytics).
type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, order *domain.Order) error
	Close() error
}

// OrderConfirmedEvent is the wire payload for a confirmed order.
type OrderConfirmedEvent struct {
	OrderNumber         string               `json:"order_number"`
	CustomerID          int32                `json:"customer_id"`
	TotalCents          int64                `json:"total_cents"`
	InitialDepositCents int64                `json:"initial_deposit_cents"`
	Currency            string               `json:"currency"`
	Items               []domain.RentalItem  `json:"items"`
	PhotographyItems    []domain.ServiceItem `json:"photography_items"`
	ConfirmedAt         string               `json:"confirmed_at"`
}

type rabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewRabbitPublisher connects to RabbitMQ and declares the orders exchange.
func NewRabbitPublisher(url, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &rabbitPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *rabbitPublisher) PublishOrderConfirmed(ctx context.Context, order *domain.Order) error {
	event := OrderConfirmedEvent{
		OrderNumber:         order.OrderNumber,
		CustomerID:          order.CustomerID,
		TotalCents:          order.Summary.TotalCents,
		InitialDepositCents: order.Summary.InitialDepositCents,
		Currency:            order.Summary.Currency,
		Items:               order.Items,
		PhotographyItems:    order.PhotographyItems,
		ConfirmedAt:         time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	logger.ExternalServiceCall("rabbitmq", "PublishOrderConfirmed", "order_number", order.OrderNumber)
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKeyOrderConfirmed,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
	logger.ExternalServiceResult("rabbitmq", "PublishOrderConfirmed", err, "order_number", order.OrderNumber)
	return err
}

func (p *rabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NoopPublisher is used when no broker is configured (local development).
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderConfirmed(ctx context.Context, order *domain.Order) error {
	logger.Debug("Event publishing disabled, dropping order.confirmed event", "order_number", order.OrderNumber)
	return nil
}

func (NoopPublisher) Close() error { return nil }
