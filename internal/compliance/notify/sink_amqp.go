package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPSink publishes notifications to a durable topic exchange with publisher
// confirms, so Send only succeeds once the broker has accepted the message.
type AMQPSink struct {
	conn       *amqp.Connection
	exchange   string
	routingKey string
	now        func() time.Time

	mu sync.Mutex
	ch *amqp.Channel
}

func NewAMQPSink(url, exchange, routingKey string) (*AMQPSink, error) {
	if url == "" {
		return nil, errors.New("amqp url is required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	s := &AMQPSink{conn: conn, exchange: exchange, routingKey: routingKey, now: time.Now}
	if _, err := s.channel(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// channel returns the open publisher channel, reopening it after a close.
func (s *AMQPSink) channel() (*amqp.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch != nil && !s.ch.IsClosed() {
		return s.ch, nil
	}
	ch, err := s.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(s.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", s.exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}
	s.ch = ch
	return ch, nil
}

func (s *AMQPSink) Send(ctx context.Context, recipient, subject, body string) error {
	payload, err := encodeEnvelope(recipient, subject, body, s.now())
	if err != nil {
		return err
	}
	ch, err := s.channel()
	if err != nil {
		return err
	}
	confirm, err := ch.PublishWithDeferredConfirmWithContext(ctx, s.exchange, s.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         payload,
		DeliveryMode: amqp.Persistent,
		Timestamp:    s.now(),
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await publish confirm: %w", err)
	}
	if !acked {
		return errors.New("broker nacked notification")
	}
	return nil
}

func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch != nil {
		_ = s.ch.Close()
	}
	return s.conn.Close()
}
