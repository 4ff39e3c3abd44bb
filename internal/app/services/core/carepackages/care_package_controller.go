package carepackages

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/dto/requests"
	"caredesk-service/internal/pkg/dto/responses"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type CarePackageController struct {
	Log                *zap.Logger
	CarePackageUsecase contracts.CarePackageUsecase
}

func NewCarePackageController(logger *zap.Logger, carePackageUsecase contracts.CarePackageUsecase) *CarePackageController {
	return &CarePackageController{
		Log:                logger,
		CarePackageUsecase: carePackageUsecase,
	}
}

func (ctrl *CarePackageController) ListActive(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	packages, err := ctrl.CarePackageUsecase.ListActive(ctx, patientID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := make([]responses.CarePackage, 0, len(packages))
	for _, carePackage := range packages {
		response = append(response, utils.MapCarePackageToResponse(carePackage))
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CarePackagesGetSuccess, response)
}

func (ctrl *CarePackageController) UseSession(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, constvars.URLParamPackageID)

	request := new(requests.UseCarePackageSession)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.Operator, _ = r.Context().Value(constvars.ContextOperatorNameKey).(string)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	usage := models.CarePackageUsage{
		PackageID: packageID,
		VisitID:   request.VisitID,
		UsedBy:    request.Operator,
		UsedAt:    time.Now(),
	}

	updated, err := ctrl.CarePackageUsecase.UseSession(ctx, packageID, usage)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CarePackageUsedSuccess, utils.MapCarePackageToResponse(*updated))
}
