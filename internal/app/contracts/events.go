package contracts

import (
	"caredesk-service/internal/app/models"
	"context"
)

type EventPublisher interface {
	PublishVisitCheckedOut(ctx context.Context, transaction *models.CheckoutTransaction) error
}
