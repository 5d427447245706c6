package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"hrportal/internal/domain/notifications"
	"hrportal/internal/platform/email"
	"hrportal/internal/platform/metrics"
)

// Consumer drains the email queue and hands each job to the mailer. Run
// blocks until the context is cancelled, reconnecting with backoff when
// the broker connection drops.
type Consumer struct {
	URL       string
	QueueName string
	Mailer    email.Mailer
	Metrics   *metrics.Metrics
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if err := c.consume(ctx); err != nil {
			slog.Warn("email consumer disconnected", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return err
	}
	defer channel.Close()

	if _, err := channel.QueueDeclare(c.QueueName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := channel.Qos(10, 0, false); err != nil {
		return err
	}

	deliveries, err := channel.Consume(c.QueueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var job notifications.EmailJob
	if err := json.Unmarshal(delivery.Body, &job); err != nil {
		slog.Warn("malformed email job dropped", "error", err)
		_ = delivery.Reject(false)
		c.record("malformed")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err := c.Mailer.Send(sendCtx, job.To, job.Subject, job.Body)
	cancel()
	if err != nil {
		slog.Warn("email send failed", "to", job.To, "error", err)
		// Requeue once; a redelivered failure is dropped.
		_ = delivery.Reject(!delivery.Redelivered)
		c.record("failed")
		return
	}
	_ = delivery.Ack(false)
	c.record("sent")
}

func (c *Consumer) record(outcome string) {
	if c.Metrics != nil {
		c.Metrics.EmailJob(outcome)
	}
}
