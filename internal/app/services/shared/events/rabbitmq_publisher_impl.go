package events

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/exceptions"
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type visitCheckedOutEvent struct {
	TransactionID string `json:"transaction_id"`
	VisitID       string `json:"visit_id"`
	PatientID     string `json:"patient_id"`
	TotalCents    int64  `json:"total_cents"`
	CommittedAt   string `json:"committed_at"`
}

type rabbitMQEventPublisher struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

var (
	eventPublisherInstance contracts.EventPublisher
	onceEventPublisher     sync.Once
	eventPublisherError    error
)

func NewRabbitMQEventPublisher(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.EventPublisher, error) {
	onceEventPublisher.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			eventPublisherError = err
			return
		}
		if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			eventPublisherError = err
			return
		}
		instance := &rabbitMQEventPublisher{
			Channel: channel,
			Queue:   queue,
			Log:     logger,
		}
		eventPublisherInstance = instance
	})
	return eventPublisherInstance, eventPublisherError
}

func (s *rabbitMQEventPublisher) PublishVisitCheckedOut(ctx context.Context, transaction *models.CheckoutTransaction) error {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)

	s.Log.Info("rabbitMQEventPublisher.PublishVisitCheckedOut called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, transaction.VisitID),
		zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
	)

	event := visitCheckedOutEvent{
		TransactionID: transaction.ID,
		VisitID:       transaction.VisitID,
		PatientID:     transaction.PatientID,
		TotalCents:    transaction.TotalCents,
		CommittedAt:   transaction.CommittedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.Log.Error("rabbitMQEventPublisher.PublishVisitCheckedOut error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("rabbitMQEventPublisher.PublishVisitCheckedOut error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("rabbitMQEventPublisher.PublishVisitCheckedOut succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, s.Queue),
	)

	return nil
}
