package carepackages

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"context"
	"sync"

	"go.uber.org/zap"
)

var (
	carePackageUsecaseInstance contracts.CarePackageUsecase
	onceCarePackageUsecase     sync.Once
)

type carePackageUsecase struct {
	CarePackageRepository contracts.CarePackageRepository
	Log                   *zap.Logger
}

func NewCarePackageUsecase(
	carePackageRepository contracts.CarePackageRepository,
	logger *zap.Logger,
) contracts.CarePackageUsecase {
	onceCarePackageUsecase.Do(func() {
		instance := &carePackageUsecase{
			CarePackageRepository: carePackageRepository,
			Log:                   logger,
		}
		carePackageUsecaseInstance = instance
	})
	return carePackageUsecaseInstance
}

func (uc *carePackageUsecase) ListActive(ctx context.Context, patientID string) ([]models.CarePackage, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("carePackageUsecase.ListActive called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	packages, err := uc.CarePackageRepository.ListActive(ctx, patientID)
	if err != nil {
		uc.Log.Error("carePackageUsecase.ListActive error calling CarePackageRepository.ListActive",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return packages, nil
}

func (uc *carePackageUsecase) UseSession(ctx context.Context, packageID string, usage models.CarePackageUsage) (*models.CarePackage, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("carePackageUsecase.UseSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPackageIDKey, packageID),
		zap.String(constvars.LoggingVisitIDKey, usage.VisitID),
	)

	updated, err := uc.CarePackageRepository.DecrementSession(ctx, packageID, usage)
	if err != nil {
		uc.Log.Error("carePackageUsecase.UseSession error calling CarePackageRepository.DecrementSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPackageIDKey, packageID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("carePackageUsecase.UseSession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPackageIDKey, packageID),
		zap.Int("remaining_sessions", updated.RemainingSessions),
	)
	return updated, nil
}
