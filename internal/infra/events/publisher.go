package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Publisher публикует доменные события в topic-exchange RabbitMQ.
// Публикация best-effort: выполняется после фиксации транзакции,
// ошибка публикации логируется и не откатывает мутацию.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      Logger
}

// NewPublisher подключается к RabbitMQ и объявляет exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// BookingCreated публикует событие о созданном бронировании
func (p *Publisher) BookingCreated(ctx context.Context, booking *domain.Booking) {
	p.publish(ctx, newBookingEvent(EventBookingCreated, booking, nil))
}

// BookingCancelled публикует событие об отмене - потребители могут
// уведомить клиента или освободить удержание бонусных баллов
func (p *Publisher) BookingCancelled(ctx context.Context, booking *domain.Booking, reason string) {
	p.publish(ctx, newBookingEvent(EventBookingCancelled, booking, &reason))
}

// BookingCompleted публикует событие о завершении - используется
// внешним контуром начисления лояльности
func (p *Publisher) BookingCompleted(ctx context.Context, booking *domain.Booking) {
	p.publish(ctx, newBookingEvent(EventBookingCompleted, booking, nil))
}

func (p *Publisher) publish(ctx context.Context, event BookingEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("events: failed to marshal event %s for booking id=%d: %v", event.Type, event.BookingID, err)
		return
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("events: failed to publish %s for booking id=%d: %v", event.Type, event.BookingID, err)
		return
	}

	p.log.Info("events: published %s for booking id=%d", event.Type, event.BookingID)
}

// NoopPublisher заглушка, когда публикация событий выключена в конфиге
type NoopPublisher struct{}

// BookingCreated ничего не делает
func (NoopPublisher) BookingCreated(ctx context.Context, booking *domain.Booking) {}

// BookingCancelled ничего не делает
func (NoopPublisher) BookingCancelled(ctx context.Context, booking *domain.Booking, reason string) {}

// BookingCompleted ничего не делает
func (NoopPublisher) BookingCompleted(ctx context.Context, booking *domain.Booking) {}
