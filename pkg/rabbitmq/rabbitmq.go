package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

const enrichmentQueue = "enrichment_queue"

// EnrichmentEvent is the retry message for a product persisted without AI
// fields.
type EnrichmentEvent struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient creates a new RabbitMQ client. It connects to RabbitMQ, sets up a
// channel and declares the enrichment retry queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		enrichmentQueue, // name
		true,            // durable (persists messages across broker restarts)
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", enrichmentQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", enrichmentQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishEnrichmentRetry publishes a retry event for a product whose
// enrichment failed at creation time.
func (c *Client) PublishEnrichmentRetry(productID, name string) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(EnrichmentEvent{ProductID: productID, Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal enrichment event to JSON: %w", err)
	}

	err = c.channel.Publish(
		"",              // exchange: default exchange
		enrichmentQueue, // routing key: the queue name
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Make message persistent
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent enrichment retry event: %s", body)
	return nil
}

// ConsumeEnrichmentEvents blocks, delivering each enrichment retry event to
// the handler. Events whose handler fails are dropped with a log line rather
// than requeued, so a permanently failing product cannot loop forever.
func (c *Client) ConsumeEnrichmentEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msgs, err := c.channel.Consume(
		enrichmentQueue, // queue
		"",              // consumer tag
		false,           // auto-ack: we ack manually after handling
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", enrichmentQueue, err)
	}

	for msg := range msgs {
		if err := handler(msg); err != nil {
			log.Printf("Enrichment event handler failed (tag %d), dropping: %v", msg.DeliveryTag, err)
			if nackErr := msg.Nack(false, false); nackErr != nil {
				log.Printf("Failed to nack message: %v", nackErr)
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("Failed to ack message: %v", ackErr)
		}
	}
	return nil
}
