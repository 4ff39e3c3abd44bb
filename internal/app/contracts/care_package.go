package contracts

import (
	"caredesk-service/internal/app/models"
	"context"
)

type CarePackageRepository interface {
	ListActive(ctx context.Context, patientID string) ([]models.CarePackage, error)
	FindByID(ctx context.Context, packageID string) (*models.CarePackage, error)
	// DecrementSession decrements remaining_sessions by one only when the
	// current value is above zero, recording usage in the same atomic update.
	// A package whose counter is already zero yields ErrCarePackageExhausted.
	DecrementSession(ctx context.Context, packageID string, usage models.CarePackageUsage) (*models.CarePackage, error)
	// RestoreSession is the compensating increment used when a commit fails
	// after sessions were already consumed.
	RestoreSession(ctx context.Context, packageID string) error
}

type CarePackageUsecase interface {
	ListActive(ctx context.Context, patientID string) ([]models.CarePackage, error)
	UseSession(ctx context.Context, packageID string, usage models.CarePackageUsage) (*models.CarePackage, error)
}
