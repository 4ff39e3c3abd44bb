package billing

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/dto/requests"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BillingController struct {
	Log            *zap.Logger
	BillingUsecase contracts.BillingUsecase
}

func NewBillingController(logger *zap.Logger, billingUsecase contracts.BillingUsecase) *BillingController {
	return &BillingController{
		Log:            logger,
		BillingUsecase: billingUsecase,
	}
}

func (ctrl *BillingController) AddLineItem(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)

	request := new(requests.AddLineItem)
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

	session, err := ctrl.BillingUsecase.AddLineItem(ctx, visitID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.LineItemAddedSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *BillingController) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)
	code := chi.URLParam(r, constvars.URLParamBillingCode)

	request := new(requests.UpdateLineItem)
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

	session, err := ctrl.BillingUsecase.UpdateLineItem(ctx, visitID, code, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LineItemUpdatedSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *BillingController) RemoveLineItem(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)
	code := chi.URLParam(r, constvars.URLParamBillingCode)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, err := ctrl.BillingUsecase.RemoveLineItem(ctx, visitID, code)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LineItemRemovedSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *BillingController) AddDiagnosticEntry(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)

	request := new(requests.AddDiagnosticEntry)
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

	err = ctrl.BillingUsecase.AddDiagnosticEntry(ctx, visitID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DiagnosticAddedSuccess, nil)
}

func (ctrl *BillingController) RemoveDiagnosticEntry(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)
	code := chi.URLParam(r, constvars.URLParamBillingCode)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.BillingUsecase.RemoveDiagnosticEntry(ctx, visitID, code)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DiagnosticRemovedSuccess, nil)
}
