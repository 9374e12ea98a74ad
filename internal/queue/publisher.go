package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// ExchangeName is the topic exchange all mutation events go through.
const ExchangeName = "airline_events"

// Publisher sends EntityMutation events to the broker. Publishing is best
// effort: a broker outage is logged and the submission that produced the
// event still succeeds.
type Publisher struct {
	url string
	log *logrus.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string, log *logrus.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// Publish marshals the event and sends it to the topic exchange under the
// event's routing key. The connection is dialed lazily and reused; a dead
// channel is dropped so the next call redials.
func (p *Publisher) Publish(ctx context.Context, ev EntityMutation) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		p.log.WithError(err).Warn("event broker unavailable")
		return err
	}

	err = ch.PublishWithContext(ctx,
		ExchangeName,
		ev.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		p.drop()
		p.log.WithError(err).WithField("routing_key", ev.RoutingKey()).Warn("event publish failed")
		return err
	}

	p.log.WithFields(logrus.Fields{
		"routing_key": ev.RoutingKey(),
		"entity_id":   ev.EntityID,
	}).Debug("event published")
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop()
}

// channel returns a live channel, dialing and declaring the exchange on
// first use. Caller holds p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.drop()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	p.ch = ch
	return ch, nil
}

func (p *Publisher) drop() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
