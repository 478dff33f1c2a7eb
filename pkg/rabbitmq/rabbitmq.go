package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"storerating/pkg/logger"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// ErrUnavailable is returned by Publish while no broker connection is up.
var ErrUnavailable = errors.New("rabbitmq: broker unavailable")

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Backoff returns the wait before reconnect attempt n (0-based):
// 1s, 2s, 4s ... capped at 30s.
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= 5 {
		return maxBackoff
	}
	wait := initialBackoff << uint(attempt)
	if wait > maxBackoff {
		return maxBackoff
	}
	return wait
}

// Status reports broker availability. It is shared between the producer's
// connect loop, which writes it, and request paths such as /health.
type Status struct {
	connected atomic.Bool
}

// NewStatus returns a Status that starts disconnected.
func NewStatus() *Status {
	return &Status{}
}

// Connected reports whether a channel is currently open.
func (s *Status) Connected() bool {
	return s.connected.Load()
}

func (s *Status) set(v bool) {
	s.connected.Store(v)
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
}

// Producer publishes JSON events to a durable topic exchange. Delivery is
// best effort: while disconnected, Publish fails fast with ErrUnavailable and
// nothing is queued.
type Producer struct {
	cfg    Config
	status *Status
	dial   func(url string) (*amqp.Connection, error)

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel

	done chan struct{}
}

// NewProducer creates a Producer. It does not connect; call Start.
func NewProducer(cfg Config, status *Status) *Producer {
	if status == nil {
		status = NewStatus()
	}
	if cfg.Exchange == "" {
		cfg.Exchange = "storerating.events"
	}
	return &Producer{
		cfg:    cfg,
		status: status,
		dial:   amqp.Dial,
		done:   make(chan struct{}),
	}
}

// Status returns the availability flag the producer maintains.
func (p *Producer) Status() *Status {
	return p.status
}

// Start runs the connect loop in its own goroutine and returns immediately.
// The loop retries forever with Backoff until ctx is cancelled, and resumes
// whenever an established connection drops.
func (p *Producer) Start(ctx context.Context) {
	go p.run(ctx)
}

// Done is closed once the connect loop started by Start has exited.
func (p *Producer) Done() <-chan struct{} {
	return p.done
}

func (p *Producer) run(ctx context.Context) {
	defer close(p.done)

	attempt := 0
	for {
		connClosed, chanClosed, err := p.connect()
		if err != nil {
			wait := Backoff(attempt)
			attempt++
			logger.Log.Warn("RabbitMQ connect failed",
				zap.Error(err), zap.Int("attempt", attempt), zap.Duration("retry_in", wait))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}

		attempt = 0
		logger.Log.Info("RabbitMQ producer connected", zap.String("exchange", p.cfg.Exchange))

		select {
		case <-ctx.Done():
			if err := p.Close(); err != nil {
				logger.Log.Warn("RabbitMQ close failed", zap.Error(err))
			}
			return
		case amqpErr := <-connClosed:
			logger.Log.Warn("RabbitMQ connection closed", zap.Any("reason", amqpErr))
		case amqpErr := <-chanClosed:
			logger.Log.Warn("RabbitMQ channel closed", zap.Any("reason", amqpErr))
		}
		_ = p.Close()
	}
}

// connect dials, opens a channel and declares the exchange. On success the
// status flag is raised and the close notifications are returned.
func (p *Producer) connect() (chan *amqp.Error, chan *amqp.Error, error) {
	conn, err := p.dial(p.cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		p.cfg.Exchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", p.cfg.Exchange, err)
	}

	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chanClosed := ch.NotifyClose(make(chan *amqp.Error, 1))

	p.mu.Lock()
	p.conn = conn
	p.channel = ch
	p.mu.Unlock()
	p.status.set(true)

	return connClosed, chanClosed, nil
}

// Publish JSON-encodes payload and publishes it as a persistent message with
// the given routing key.
func (p *Producer) Publish(routingKey string, payload interface{}) error {
	if !p.status.Connected() {
		return ErrUnavailable
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event to JSON: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return ErrUnavailable
	}

	err = p.channel.Publish(
		p.cfg.Exchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}
	return nil
}

// Close drops the status flag and closes the channel and connection.
func (p *Producer) Close() error {
	p.status.set(false)

	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}
