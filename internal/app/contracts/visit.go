package contracts

import (
	"caredesk-service/internal/app/models"
	"context"
)

type VisitRepository interface {
	FindByID(ctx context.Context, visitID string) (*models.Visit, error)
	TransitionStatus(ctx context.Context, visitID string, status models.VisitStatus) error
}
