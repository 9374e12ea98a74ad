package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const auditQueueName = "audit.mutations"

// StartAuditConsumer binds a durable queue to every routing key on the
// airline_events exchange and appends each mutation to a rotated audit log.
// It runs a reconnect loop with capped backoff and never returns under
// normal operation; run it in its own goroutine.
func StartAuditConsumer(url, auditFile string, log *logrus.Logger) {
	audit := &lumberjack.Logger{
		Filename:   auditFile,
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		MaxAge:     90, // days
		Compress:   true,
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("audit consumer: broker dial failed, retrying in %s", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeAudit(conn, audit, log); err != nil {
			log.WithError(err).Warn("audit consumer: consume loop ended, reconnecting")
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeAudit(conn *amqp.Connection, audit *lumberjack.Logger, log *logrus.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := ch.QueueDeclare(auditQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(auditQueueName, "#", ExchangeName, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}
	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("audit consumer: set QoS failed")
	}

	msgs, err := ch.Consume(auditQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := appendAuditLine(audit, d.Body); err != nil {
			log.WithError(err).Warn("audit consumer: message rejected")
			_ = d.Nack(false, false) // do not requeue, avoids tight redelivery loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func appendAuditLine(audit *lumberjack.Logger, body []byte) error {
	var ev EntityMutation
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	actor := ev.Actor
	if actor == "" {
		actor = "-"
	}
	line := fmt.Sprintf("[%s] %s %s | entity_id=%d | actor=%s | event_id=%s\n",
		ev.Timestamp, ev.Entity, ev.Action, ev.EntityID, actor, ev.EventID)
	if _, err := audit.Write([]byte(line)); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}
