package coverage

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"context"
	"sync"

	"go.uber.org/zap"
)

var (
	insuranceUsecaseInstance contracts.InsuranceUsecase
	onceInsuranceUsecase     sync.Once
)

type insuranceUsecase struct {
	InsuranceProfileRepository contracts.InsuranceProfileRepository
	Log                        *zap.Logger
}

func NewInsuranceUsecase(
	insuranceProfileRepository contracts.InsuranceProfileRepository,
	logger *zap.Logger,
) contracts.InsuranceUsecase {
	onceInsuranceUsecase.Do(func() {
		instance := &insuranceUsecase{
			InsuranceProfileRepository: insuranceProfileRepository,
			Log:                        logger,
		}
		insuranceUsecaseInstance = instance
	})
	return insuranceUsecaseInstance
}

func (uc *insuranceUsecase) ListProfiles(ctx context.Context, patientID string) ([]models.InsuranceProfile, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("insuranceUsecase.ListProfiles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	profiles, err := uc.InsuranceProfileRepository.ListByPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("insuranceUsecase.ListProfiles error calling InsuranceProfileRepository.ListByPatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("insuranceUsecase.ListProfiles succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("profile_count", len(profiles)),
	)
	return profiles, nil
}
