package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// DefaultExchange is the topic exchange engagement events are published to.
const DefaultExchange = "vidshare.engagement"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex // guards channel; amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
}

// NewClient connects to RabbitMQ, opens a channel and declares the topic exchange.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, errors.Wrap(err, "failed to open channel")
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrapf(err, "failed to declare exchange %s", cfg.Exchange)
	}

	logrus.WithField("exchange", cfg.Exchange).Info("RabbitMQ client connected")

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close channel"))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close connection"))
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish marshals payload to JSON and publishes it on the exchange with routingKey.
func (c *Client) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event to JSON")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}

	err = c.channel.Publish(
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Make message persistent
			Timestamp:    time.Now(),
		})
	if err != nil {
		return errors.Wrapf(err, "failed to publish %s", routingKey)
	}

	logrus.WithField("routing_key", routingKey).Debug("event published")
	return nil
}

// Handler processes one delivery. A non-nil error requeues the message.
type Handler func(routingKey string, body []byte) error

// Consume declares a durable queue bound to the exchange for every key in
// bindings and dispatches deliveries to handler until ctx is done.
func (c *Client) Consume(ctx context.Context, queue string, bindings []string, handler Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	q, err := c.channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return errors.Wrapf(err, "failed to declare queue %s", queue)
	}
	for _, key := range bindings {
		if err := c.channel.QueueBind(q.Name, key, c.exchange, false, nil); err != nil {
			return errors.Wrapf(err, "failed to bind %s to %s", q.Name, key)
		}
	}

	msgs, err := c.channel.Consume(
		q.Name, // queue
		"",     // consumer tag
		false,  // auto-ack: set to false to manually acknowledge messages
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return errors.Wrap(err, "failed to register consumer")
	}

	log := logrus.WithField("queue", q.Name)
	log.Info("waiting for events")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Warn("delivery channel closed")
					return
				}
				dispatch(log, msg, handler)
			}
		}
	}()

	return nil
}

func dispatch(log *logrus.Entry, msg amqp.Delivery, handler Handler) {
	if err := handler(msg.RoutingKey, msg.Body); err != nil {
		log.WithError(err).WithField("delivery_tag", msg.DeliveryTag).Error("failed to process event")
		// Redelivered messages are dropped so a poison message cannot loop forever.
		if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
			log.WithError(nackErr).Error("failed to nack event")
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		log.WithError(ackErr).Error("failed to ack event")
	}
}
