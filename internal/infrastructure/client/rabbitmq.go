package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/St1cky1/task-manager/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// amqpChannel - часть *amqp.Channel, нужная для публикации
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
	mu      sync.Mutex // amqp.Channel не безопасен для конкурентной публикации
}

func NewRabbitMQClient(url, queue string) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Объявляем очередь для напоминаний
	q, err := channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
	}, nil
}

// QueueName возвращает имя очереди
func (c *RabbitMQClient) QueueName() string {
	return c.queue
}

func (c *RabbitMQClient) PublishReminder(ctx context.Context, message *entity.ReminderMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode reminder: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(
		ctx,
		"",      // exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    message.ID,
			Timestamp:    message.Timestamp,
			Type:         "task.reminder",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Сообщения сохраняются на диск
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish reminder for task %d: %w", message.TaskID, err)
	}

	log.Debug().Int("task_id", message.TaskID).Str("message_id", message.ID).Msg("reminder published")
	return nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
