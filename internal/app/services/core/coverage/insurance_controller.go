package coverage

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/dto/responses"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InsuranceController struct {
	Log              *zap.Logger
	InsuranceUsecase contracts.InsuranceUsecase
}

func NewInsuranceController(logger *zap.Logger, insuranceUsecase contracts.InsuranceUsecase) *InsuranceController {
	return &InsuranceController{
		Log:              logger,
		InsuranceUsecase: insuranceUsecase,
	}
}

func (ctrl *InsuranceController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profiles, err := ctrl.InsuranceUsecase.ListProfiles(ctx, patientID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := make([]responses.InsuranceProfile, 0, len(profiles))
	for _, profile := range profiles {
		response = append(response, utils.MapInsuranceProfileToResponse(profile))
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.InsuranceProfilesGetSuccess, response)
}
