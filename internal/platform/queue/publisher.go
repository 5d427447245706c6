package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"hrportal/internal/domain/notifications"
)

// Publisher pushes email jobs onto a durable queue. It lazily redials on
// publish so a broker restart does not take the service down with it.
type Publisher struct {
	url       string
	queueName string
	timeout   time.Duration

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url, queueName string, timeout time.Duration) *Publisher {
	return &Publisher{url: url, queueName: queueName, timeout: timeout}
}

func (p *Publisher) PublishEmail(ctx context.Context, job notifications.EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	channel, err := p.ensureChannel()
	if err != nil {
		return fmt.Errorf("connecting to broker: %w", err)
	}

	err = channel.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		// Drop the channel so the next publish redials.
		p.reset()
		return err
	}
	return nil
}

func (p *Publisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.conn.IsClosed() {
		return p.channel, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := channel.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	p.channel = channel
	return channel, nil
}

func (p *Publisher) reset() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}
