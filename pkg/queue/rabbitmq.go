package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"skillstream/pkg/config"
	"skillstream/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notifications"
	NotificationKey       = "engagement"
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		amqp.Table{
			"x-max-priority": 10, // Enable priority queue (0-10)
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		NotificationQueueName,
		NotificationKey,
		NotificationExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishNotificationTask publishes a notification task to the queue with priority.
func (c *Client) PublishNotificationTask(task map[string]interface{}) error {
	priority := 1
	if p, ok := task["priority"].(int); ok {
		priority = p
		if priority < 0 {
			priority = 0
		}
		if priority > 10 {
			priority = 10
		}
	}

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		NotificationExchange,
		NotificationKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			Priority:     uint8(priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish message to exchange=%s, routing_key=%s: %v", NotificationExchange, NotificationKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published notification task to queue=%s: %s", NotificationQueueName, string(taskJSON))
	return nil
}

// ConsumeNotificationTasks consumes notification tasks from the queue.
func (c *Client) ConsumeNotificationTasks(handler func(task map[string]interface{}) error) error {
	msgs, err := c.channel.Consume(
		NotificationQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack (we'll manually ack after processing)
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from notification queue: %s", NotificationQueueName)

	go func() {
		for msg := range msgs {
			var task map[string]interface{}
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal notification task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false) // Reject and don't requeue
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed to process notification task: %v, task=%+v", err, task)
				msg.Nack(false, true) // Reject and requeue
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// GetQueueLength returns the number of messages in the queue.
func (c *Client) GetQueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(NotificationQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
