// Package messaging publica eventos de dominio en RabbitMQ. Los fallos se
// registran y se devuelven; el caso de uso decide ignorarlos.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
	"github.com/jhoicas/pos-discount-dashboard/pkg/logger"
)

var (
	_ ports.EventPublisher = (*RabbitMQPublisher)(nil)
	_ ports.EventPublisher = NopPublisher{}
)

// DefaultQueue cola de discount.applied.
const DefaultQueue = "discount.applied"

// RabbitMQPublisher abre una conexión por evento: los descuentos son poco
// frecuentes (uno por hora y empresa como máximo).
type RabbitMQPublisher struct {
	url   string
	queue string
	log   *logger.Logger
}

// NewRabbitMQPublisher construye el publicador.
func NewRabbitMQPublisher(url, queue string, log *logger.Logger) *RabbitMQPublisher {
	if queue == "" {
		queue = DefaultQueue
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RabbitMQPublisher{url: url, queue: queue, log: log.Component("rabbitmq")}
}

// PublishDiscountApplied publica el evento como JSON persistente en la cola durable.
func (p *RabbitMQPublisher) PublishDiscountApplied(ctx context.Context, event ports.DiscountAppliedEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("dial fallido")
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: abrir canal: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq: declarar cola %s: %w", p.queue, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ApplicationID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq: publicar: %w", err)
	}

	p.log.Debug().Str("queue", p.queue).Str("application_id", event.ApplicationID).Msg("evento publicado")
	return nil
}

func encodeEvent(event ports.DiscountAppliedEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: serializar evento: %w", err)
	}
	return body, nil
}

// NopPublisher se usa cuando RABBITMQ_URL está vacío.
type NopPublisher struct{}

func (NopPublisher) PublishDiscountApplied(context.Context, ports.DiscountAppliedEvent) error {
	return nil
}
