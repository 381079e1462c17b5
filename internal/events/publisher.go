// Package events publishes transaction audit events to an AMQP topic
// exchange for downstream reporting. Publishing is best-effort: a broker
// outage never affects a transfer's outcome.
package events

import (
	"context"
	"encoding/json"
	"time"

	"credittransfer/internal/models"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher emits transaction lifecycle events.
type Publisher interface {
	TransactionChanged(ctx context.Context, tx *models.Transaction)
	Close() error
}

// TransactionEvent is the published payload of one state transition.
type TransactionEvent struct {
	TransactionID uint                     `json:"transaction_id"`
	ReferenceID   string                   `json:"reference_id"`
	SourceMsisdn  string                   `json:"source_msisdn"`
	DestMsisdn    string                   `json:"dest_msisdn"`
	Amount        float64                  `json:"amount"`
	Status        models.TransactionStatus `json:"status"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

type amqpPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      func(format string, args ...interface{})
}

// NewAMQPPublisher connects to the broker and declares the topic exchange.
func NewAMQPPublisher(url, exchange string, logf func(format string, args ...interface{})) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &amqpPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      logf,
	}, nil
}

func (p *amqpPublisher) TransactionChanged(ctx context.Context, tx *models.Transaction) {
	event := TransactionEvent{
		TransactionID: tx.ID,
		ReferenceID:   tx.ReferenceID,
		SourceMsisdn:  tx.SourceMsisdn,
		DestMsisdn:    tx.DestMsisdn,
		Amount:        tx.Amount,
		Status:        tx.Status,
		OccurredAt:    time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log("failed to marshal transaction event: %v", err)
		return
	}

	routingKey := "transaction." + string(tx.Status)
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   event.OccurredAt,
	})
	if err != nil {
		p.log("failed to publish transaction event: %v", err)
	}
}

func (p *amqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) TransactionChanged(context.Context, *models.Transaction) {}
func (NoopPublisher) Close() error                                           { return nil }
