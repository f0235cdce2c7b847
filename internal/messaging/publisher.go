package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"cyberwise-server/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ClientUpdatePublisher defines the interface for publishing game updates to the client.
type ClientUpdatePublisher interface {
	PublishClientUpdate(ctx context.Context, payload models.ClientGameUpdate) error
}

// rabbitMQPublisher implements ClientUpdatePublisher for RabbitMQ.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
}

// NewRabbitMQClientUpdatePublisher creates a new instance of ClientUpdatePublisher.
// Паблишер сам объявляет очередь, чтобы не зависеть от порядка запуска
// сервисов. Параметры очереди должны совпадать с консьюмером.
func NewRabbitMQClientUpdatePublisher(conn *amqp.Connection, queueName string) (ClientUpdatePublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("client update publisher: не удалось открыть канал: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		log.Printf("ClientUpdatePublisher ERROR: Не удалось объявить очередь '%s': %v", queueName, err)
		ch.Close()
		return nil, fmt.Errorf("client update publisher: не удалось объявить очередь '%s': %w", queueName, err)
	}
	log.Printf("ClientUpdatePublisher: Очередь '%s' успешно объявлена/найдена.", queueName)
	return &rabbitMQPublisher{channel: ch, queueName: queueName}, nil
}

// PublishClientUpdate publishes a one-shot game update for the client.
func (p *rabbitMQPublisher) PublishClientUpdate(ctx context.Context, payload models.ClientGameUpdate) error {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Publisher: Ошибка маршалинга ClientGameUpdate для сессии %s: %v", payload.SessionID, err)
		return fmt.Errorf("ошибка подготовки сообщения ClientGameUpdate: %w", err)
	}
	// Используем exchange по умолчанию и routing key = имя очереди
	return p.publishMessage(ctx, body)
}

// publishMessage sends the message body to the configured queue.
func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		log.Println("Ошибка публикации: канал RabbitMQ не инициализирован (nil)")
		return errors.New("канал RabbitMQ не инициализирован")
	}
	// Устанавливаем таймаут на публикацию
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	// Попытка публикации с retry до 3 раз
	for attempt := 1; attempt <= 3; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // exchange (используем default)
			p.queueName, // routing key (имя очереди)
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        "cyberwise-server",
			},
		)
		if err == nil {
			break
		}
		log.Printf("Ошибка публикации (attempt %d) в очередь '%s': %v", attempt, p.queueName, err)
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("ошибка публикации в очередь %s после retries: %w", p.queueName, err)
	}
	return nil
}
