package contracts

import (
	"caredesk-service/internal/app/models"
	"context"
)

type InsuranceProfileRepository interface {
	ListByPatient(ctx context.Context, patientID string) ([]models.InsuranceProfile, error)
}

type InsuranceUsecase interface {
	ListProfiles(ctx context.Context, patientID string) ([]models.InsuranceProfile, error)
}
