package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события в direct exchange RabbitMQ.
// При разрыве соединения переподключается при следующей публикации.
type Publisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	queue    string
	conn     *amqp.Connection
	channel  *amqp.Channel
	log      Logger
}

// NewPublisher подключается к RabbitMQ и объявляет exchange и очередь
func NewPublisher(url, exchange, queue string, log Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: exchange,
		queue:    queue,
		log:      log,
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if p.exchange != "" {
		if err := ch.ExchangeDeclare(p.exchange, "direct", true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("%w: declare exchange: %v", ErrConnect, err)
		}
	}

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("%w: declare queue: %v", ErrConnect, err)
	}

	if p.exchange != "" {
		if err := ch.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("%w: bind queue: %v", ErrConnect, err)
		}
	}

	p.conn = conn
	p.channel = ch
	return nil
}

func (p *Publisher) ensureConnection() error {
	if p.conn != nil && !p.conn.IsClosed() && p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	p.log.Warn("Broker: connection lost, reconnecting to exchange=%s", p.exchange)
	return p.connect()
}

// Publish сериализует событие в JSON и отправляет в очередь админки
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnection(); err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Broker: published event type=%s booking_id=%d", event.Type, event.BookingID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func encodeEvent(event Event) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}
	return body, nil
}
