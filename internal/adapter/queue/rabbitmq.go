package queue

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const rabbitReconnectDelay = 5 * time.Second

// RabbitMQQueue adapts an AMQP broker to the MessageQueue interface, for
// plants that already run RabbitMQ instead of NATS. Each subject maps to
// a durable fanout exchange so every consumer (maintenance tooling,
// dashboards) receives every work-order event.
type RabbitMQQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	url     string
	mu      sync.RWMutex
	log     *zap.Logger
}

func NewRabbitMQQueue(url string, log *zap.Logger) (*RabbitMQQueue, error) {
	conn, ch, err := dialRabbitMQ(url)
	if err != nil {
		return nil, err
	}

	q := &RabbitMQQueue{
		conn:    conn,
		channel: ch,
		url:     url,
		log:     log,
	}
	go q.reconnectLoop()

	log.Info("Successfully connected to RabbitMQ", zap.String("url", url))
	return q, nil
}

func dialRabbitMQ(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	return conn, ch, nil
}

// declareExchange is idempotent; Publish and Subscribe both go through it
// so either side of an event stream can come up first.
func (q *RabbitMQQueue) declareExchange(subject string) error {
	if q.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}
	if err := q.channel.ExchangeDeclare(subject, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declare exchange %s: %w", subject, err)
	}
	return nil
}

func (q *RabbitMQQueue) Publish(subject string, data []byte) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if err := q.declareExchange(subject); err != nil {
		return err
	}

	err := q.channel.Publish(subject, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
		Timestamp:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: publish to %s: %w", subject, err)
	}
	return nil
}

func (q *RabbitMQQueue) Subscribe(subject string, handler func(data []byte) error) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if err := q.declareExchange(subject); err != nil {
		return err
	}

	// Exclusive auto-delete inbox per subscriber: every subscriber sees
	// every event, matching the NATS adapter's semantics.
	inbox, err := q.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: declare queue for %s: %w", subject, err)
	}
	if err := q.channel.QueueBind(inbox.Name, "", subject, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: bind queue for %s: %w", subject, err)
	}

	deliveries, err := q.channel.Consume(inbox.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume %s: %w", subject, err)
	}

	go func() {
		for msg := range deliveries {
			if err := handler(msg.Body); err != nil {
				q.log.Error("Error processing message",
					zap.String("subject", subject),
					zap.Error(err),
				)
			}
		}
	}()

	q.log.Info("Subscribed to RabbitMQ exchange", zap.String("subject", subject))
	return nil
}

func (q *RabbitMQQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

// reconnectLoop redials after the broker drops the connection, so a broker
// restart does not silence work-order events for the rest of the process
// lifetime.
func (q *RabbitMQQueue) reconnectLoop() {
	for {
		reason, ok := <-q.conn.NotifyClose(make(chan *amqp.Error))
		if !ok {
			return
		}
		q.log.Warn("RabbitMQ connection lost, reconnecting...", zap.String("reason", reason.Reason))

		for {
			time.Sleep(rabbitReconnectDelay)
			conn, ch, err := dialRabbitMQ(q.url)
			if err != nil {
				q.log.Error("Failed to reconnect to RabbitMQ", zap.Error(err))
				continue
			}

			q.mu.Lock()
			q.conn = conn
			q.channel = ch
			q.mu.Unlock()

			q.log.Info("Successfully reconnected to RabbitMQ")
			break
		}
	}
}
