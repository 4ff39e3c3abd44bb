package billing

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/app/services/core/coverage"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/dto/requests"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	billingUsecaseInstance contracts.BillingUsecase
	onceBillingUsecase     sync.Once
)

type billingUsecase struct {
	VisitRepository            contracts.VisitRepository
	SessionRepository          contracts.CheckoutSessionRepository
	InsuranceProfileRepository contracts.InsuranceProfileRepository
	BillingEntryRepository     contracts.BillingEntryRepository
	Log                        *zap.Logger
}

func NewBillingUsecase(
	visitRepository contracts.VisitRepository,
	sessionRepository contracts.CheckoutSessionRepository,
	insuranceProfileRepository contracts.InsuranceProfileRepository,
	billingEntryRepository contracts.BillingEntryRepository,
	logger *zap.Logger,
) contracts.BillingUsecase {
	onceBillingUsecase.Do(func() {
		instance := &billingUsecase{
			VisitRepository:            visitRepository,
			SessionRepository:          sessionRepository,
			InsuranceProfileRepository: insuranceProfileRepository,
			BillingEntryRepository:     billingEntryRepository,
			Log:                        logger,
		}
		billingUsecaseInstance = instance
	})
	return billingUsecaseInstance
}

func (uc *billingUsecase) AddLineItem(ctx context.Context, visitID string, request *requests.AddLineItem) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("billingUsecase.AddLineItem called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingBillingCodeKey, request.Code),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}

	if _, exists := session.FindLineItem(request.Code); exists {
		return nil, exceptions.ErrLineItemDuplicate(fmt.Errorf("code %s is already on the ledger for visit %s", request.Code, visitID))
	}

	unitPriceCents, err := utils.ParseNonNegativeAmountToCents(request.UnitPrice)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	units := request.Units
	if units == 0 {
		units = 1
	}

	item := models.LineItem{
		Code:             request.Code,
		Description:      request.Description,
		UnitPriceCents:   unitPriceCents,
		Units:            units,
		InsuranceCovered: request.InsuranceCovered,
		AddedBy:          request.Operator,
	}
	session.LineItems = append(session.LineItems, item)

	if err := uc.BillingEntryRepository.InsertBillingEntry(ctx, visitID, item); err != nil {
		uc.Log.Error("billingUsecase.AddLineItem error mirroring billing entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.refreshAndSave(ctx, session); err != nil {
		return nil, err
	}

	uc.Log.Info("billingUsecase.AddLineItem succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingBillingCodeKey, request.Code),
		zap.Int64(constvars.LoggingAmountCentsKey, item.TotalCents()),
	)
	return session, nil
}

func (uc *billingUsecase) UpdateLineItem(ctx context.Context, visitID, code string, request *requests.UpdateLineItem) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("billingUsecase.UpdateLineItem called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingBillingCodeKey, code),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}

	index, exists := session.FindLineItem(code)
	if !exists {
		return nil, exceptions.ErrLineItemNotFound(fmt.Errorf("code %s is not on the ledger for visit %s", code, visitID))
	}

	item := session.LineItems[index]
	if request.Description != nil {
		item.Description = *request.Description
	}
	if request.UnitPrice != nil {
		unitPriceCents, err := utils.ParseNonNegativeAmountToCents(*request.UnitPrice)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		item.UnitPriceCents = unitPriceCents
	}
	if request.Units != nil {
		if *request.Units < 1 {
			return nil, exceptions.ErrInputValidation(fmt.Errorf("units must be at least 1, got %d", *request.Units))
		}
		item.Units = *request.Units
	}
	if request.InsuranceCovered != nil {
		item.InsuranceCovered = *request.InsuranceCovered
	}
	session.LineItems[index] = item

	if err := uc.BillingEntryRepository.DeleteBillingEntry(ctx, visitID, code); err != nil {
		return nil, err
	}
	if err := uc.BillingEntryRepository.InsertBillingEntry(ctx, visitID, item); err != nil {
		return nil, err
	}

	if err := uc.refreshAndSave(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *billingUsecase) RemoveLineItem(ctx context.Context, visitID, code string) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("billingUsecase.RemoveLineItem called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingBillingCodeKey, code),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}

	index, exists := session.FindLineItem(code)
	if !exists {
		return nil, exceptions.ErrLineItemNotFound(fmt.Errorf("code %s is not on the ledger for visit %s", code, visitID))
	}
	session.LineItems = append(session.LineItems[:index], session.LineItems[index+1:]...)

	// A struck code no longer allows a planned package use against it.
	remainingUses := session.PlannedUses[:0]
	for _, use := range session.PlannedUses {
		if use.BillingCode != code {
			remainingUses = append(remainingUses, use)
		}
	}
	session.PlannedUses = remainingUses

	if err := uc.BillingEntryRepository.DeleteBillingEntry(ctx, visitID, code); err != nil {
		return nil, err
	}

	if err := uc.refreshAndSave(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Diagnostic entries are visit-scoped records with no financial effect; they
// never touch the checkout session or its coverage.

func (uc *billingUsecase) AddDiagnosticEntry(ctx context.Context, visitID string, request *requests.AddDiagnosticEntry) error {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("billingUsecase.AddDiagnosticEntry called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingBillingCodeKey, request.Code),
	)

	if err := uc.ensureVisitOpen(ctx, visitID); err != nil {
		return err
	}
	return uc.BillingEntryRepository.InsertDiagnosticEntry(ctx, visitID, request.Code, request.Description, request.Operator)
}

func (uc *billingUsecase) RemoveDiagnosticEntry(ctx context.Context, visitID, code string) error {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("billingUsecase.RemoveDiagnosticEntry called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingBillingCodeKey, code),
	)

	if err := uc.ensureVisitOpen(ctx, visitID); err != nil {
		return err
	}
	return uc.BillingEntryRepository.DeleteDiagnosticEntry(ctx, visitID, code)
}

func (uc *billingUsecase) ensureVisitOpen(ctx context.Context, visitID string) error {
	visit, err := uc.VisitRepository.FindByID(ctx, visitID)
	if err != nil {
		return err
	}
	if visit == nil {
		return exceptions.ErrVisitNotFound(fmt.Errorf("visit %s does not exist", visitID))
	}
	if visit.IsCheckedOut() {
		return exceptions.ErrVisitAlreadyCheckedOut(fmt.Errorf("visit %s is already checked out", visitID))
	}
	return nil
}

// loadMutableSession fetches the working session for a visit, creating an
// empty one on first touch. Committed sessions and checked-out visits refuse
// further ledger mutation.
func (uc *billingUsecase) loadMutableSession(ctx context.Context, visitID string) (*models.CheckoutSession, error) {
	visit, err := uc.VisitRepository.FindByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, exceptions.ErrVisitNotFound(fmt.Errorf("visit %s does not exist", visitID))
	}
	if visit.IsCheckedOut() {
		return nil, exceptions.ErrVisitAlreadyCheckedOut(fmt.Errorf("visit %s is already checked out", visitID))
	}

	session, err := uc.SessionRepository.Find(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		now := time.Now()
		session = &models.CheckoutSession{
			VisitID:   visitID,
			PatientID: visit.PatientID,
			State:     models.CheckoutOpen,
			Overrides: make(map[string]models.CoverageOverride),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	if session.IsCommitted() {
		return nil, exceptions.ErrCheckoutCommitted(fmt.Errorf("checkout for visit %s is already committed", visitID))
	}
	return session, nil
}

// refreshAndSave bumps the ledger revision, drops the now-stale payment
// record, recomputes coverage eagerly and persists the session.
func (uc *billingUsecase) refreshAndSave(ctx context.Context, session *models.CheckoutSession) error {
	session.Revision++
	session.Payment = nil

	now := time.Now()
	profiles, err := uc.InsuranceProfileRepository.ListByPatient(ctx, session.PatientID)
	if err != nil {
		return err
	}
	profile := coverage.SelectProfile(profiles, now)
	result, _ := coverage.Resolve(session, profile, now)
	session.Coverage = result
	session.UpdatedAt = now

	return uc.SessionRepository.Save(ctx, session)
}
