package checkout

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

type CheckoutController struct {
	Log             *zap.Logger
	CheckoutUsecase contracts.CheckoutUsecase
}

func NewCheckoutController(logger *zap.Logger, checkoutUsecase contracts.CheckoutUsecase) *CheckoutController {
	return &CheckoutController{
		Log:             logger,
		CheckoutUsecase: checkoutUsecase,
	}
}

func (ctrl *CheckoutController) GetSession(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, err := ctrl.CheckoutUsecase.GetSession(ctx, visitID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CheckoutSessionGetSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *CheckoutController) SetOverride(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)
	code := chi.URLParam(r, constvars.URLParamBillingCode)

	request := new(requests.SetCoverageOverride)
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

	session, err := ctrl.CheckoutUsecase.SetOverride(ctx, visitID, code, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CoverageOverrideSetSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *CheckoutController) PlanPackageUse(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)

	request := new(requests.PlanPackageUse)
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

	session, err := ctrl.CheckoutUsecase.PlanPackageUse(ctx, visitID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PackageUsePlannedSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *CheckoutController) ComputePayment(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)

	request := new(requests.ComputePayment)
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

	session, err := ctrl.CheckoutUsecase.ComputePayment(ctx, visitID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentComputedSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *CheckoutController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)
	operator, _ := r.Context().Value(constvars.ContextOperatorNameKey).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, err := ctrl.CheckoutUsecase.ConfirmPayment(ctx, visitID, operator)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentConfirmedSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *CheckoutController) CaptureSignature(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)

	request := new(requests.CaptureSignature)
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

	session, err := ctrl.CheckoutUsecase.CaptureSignature(ctx, visitID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignatureCapturedSuccess, utils.MapCheckoutSessionToResponse(session))
}

func (ctrl *CheckoutController) Commit(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, constvars.URLParamVisitID)
	operator, _ := r.Context().Value(constvars.ContextOperatorNameKey).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	transaction, alreadyCommitted, err := ctrl.CheckoutUsecase.Commit(ctx, visitID, operator)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.CheckoutCommittedSuccess
	statusCode := constvars.StatusCreated
	if alreadyCommitted {
		message = constvars.CheckoutAlreadyCommittedMsg
		statusCode = constvars.StatusOK
	}

	utils.BuildSuccessResponse(w, statusCode, message, utils.MapCheckoutTransactionToResponse(transaction, alreadyCommitted))
}
