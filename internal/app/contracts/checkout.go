package contracts

import (
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/dto/requests"
	"context"
)

type CheckoutSessionRepository interface {
	Find(ctx context.Context, visitID string) (*models.CheckoutSession, error)
	Save(ctx context.Context, session *models.CheckoutSession) error
	Delete(ctx context.Context, visitID string) error
}

type CheckoutTransactionRepository interface {
	// Insert persists the transaction under its idempotency key. When the key
	// already exists nothing is written and inserted is false.
	Insert(ctx context.Context, transaction *models.CheckoutTransaction) (inserted bool, err error)
	FindByIdempotencyKey(ctx context.Context, idempotencyKey string) (*models.CheckoutTransaction, error)
}

type CheckoutUsecase interface {
	GetSession(ctx context.Context, visitID string) (*models.CheckoutSession, error)
	SetOverride(ctx context.Context, visitID, code string, request *requests.SetCoverageOverride) (*models.CheckoutSession, error)
	PlanPackageUse(ctx context.Context, visitID string, request *requests.PlanPackageUse) (*models.CheckoutSession, error)
	ComputePayment(ctx context.Context, visitID string, request *requests.ComputePayment) (*models.CheckoutSession, error)
	ConfirmPayment(ctx context.Context, visitID, operator string) (*models.CheckoutSession, error)
	CaptureSignature(ctx context.Context, visitID string, request *requests.CaptureSignature) (*models.CheckoutSession, error)
	Commit(ctx context.Context, visitID, operator string) (*models.CheckoutTransaction, bool, error)
}
