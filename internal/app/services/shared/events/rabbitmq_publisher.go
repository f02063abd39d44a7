package events

import (
	"context"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPChannel is the subset of *amqp091.Channel the publisher needs.
type AMQPChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type rabbitMQPublisher struct {
	mu       sync.Mutex
	channel  AMQPChannel
	queue    string
	declared bool
	Log      *zap.Logger
}

func NewRabbitMQPublisher(conn *amqp091.Connection, queue string, logger *zap.Logger) (contracts.EventPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQChannel(err)
	}
	return NewChannelPublisher(channel, queue, logger), nil
}

func NewChannelPublisher(channel AMQPChannel, queue string, logger *zap.Logger) contracts.EventPublisher {
	return &rabbitMQPublisher{
		channel: channel,
		queue:   queue,
		Log:     logger,
	}
}

// Publish serializes access to the channel; amqp channels are not safe for concurrent publishers.
func (p *rabbitMQPublisher) Publish(ctx context.Context, event models.Event) error {
	requestID := utils.GetRequestID(ctx)
	if event.RequestID == "" {
		event.RequestID = requestID
	}

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		_, err := p.channel.QueueDeclare(p.queue, true, false, false, false, nil)
		if err != nil {
			p.Log.Error("rabbitMQPublisher.Publish error declaring queue",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQueueKey, p.queue),
				zap.Error(err),
			)
			return exceptions.ErrRabbitMQPublish(err, p.queue)
		}
		p.declared = true
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, p.queue),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublish(err, p.queue)
	}

	p.Log.Debug("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)
	return nil
}
