package contracts

import (
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/dto/requests"
	"context"
)

// BillingEntryRepository mirrors ledger mutations into the visit record store.
// Plain storage, no business logic.
type BillingEntryRepository interface {
	InsertBillingEntry(ctx context.Context, visitID string, item models.LineItem) error
	DeleteBillingEntry(ctx context.Context, visitID, code string) error
	InsertDiagnosticEntry(ctx context.Context, visitID, code, description, recordedBy string) error
	DeleteDiagnosticEntry(ctx context.Context, visitID, code string) error
}

type BillingUsecase interface {
	AddLineItem(ctx context.Context, visitID string, request *requests.AddLineItem) (*models.CheckoutSession, error)
	UpdateLineItem(ctx context.Context, visitID, code string, request *requests.UpdateLineItem) (*models.CheckoutSession, error)
	RemoveLineItem(ctx context.Context, visitID, code string) (*models.CheckoutSession, error)
	AddDiagnosticEntry(ctx context.Context, visitID string, request *requests.AddDiagnosticEntry) error
	RemoveDiagnosticEntry(ctx context.Context, visitID, code string) error
}
