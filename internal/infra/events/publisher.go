package events

import (
	"context"

	"furnish-admin/internal/pkg/config"
	"furnish-admin/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers outbox events to a durable topic exchange. Routing keys
// are the outbox topics (booking.created, payment.succeeded, ...).
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(cfg config.BrokerConfig) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open channel")
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}
	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, topic string, body []byte) error {
	return p.ch.PublishWithContext(ctx, p.exchange, topic, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
