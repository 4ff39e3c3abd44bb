package checkout

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/app/services/core/coverage"
	"caredesk-service/internal/app/services/core/payments"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/dto/requests"
	"caredesk-service/internal/pkg/exceptions"
	"caredesk-service/internal/pkg/utils"
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	checkoutUsecaseInstance contracts.CheckoutUsecase
	onceCheckoutUsecase     sync.Once
)

type checkoutUsecase struct {
	VisitRepository            contracts.VisitRepository
	SessionRepository          contracts.CheckoutSessionRepository
	TransactionRepository      contracts.CheckoutTransactionRepository
	InsuranceProfileRepository contracts.InsuranceProfileRepository
	CarePackageRepository      contracts.CarePackageRepository
	SignatureStorage           contracts.SignatureStorage
	EventPublisher             contracts.EventPublisher
	LockerService              contracts.LockerService
	CommitLockTTL              time.Duration
	Log                        *zap.Logger
}

func NewCheckoutUsecase(
	visitRepository contracts.VisitRepository,
	sessionRepository contracts.CheckoutSessionRepository,
	transactionRepository contracts.CheckoutTransactionRepository,
	insuranceProfileRepository contracts.InsuranceProfileRepository,
	carePackageRepository contracts.CarePackageRepository,
	signatureStorage contracts.SignatureStorage,
	eventPublisher contracts.EventPublisher,
	lockerService contracts.LockerService,
	commitLockTTL time.Duration,
	logger *zap.Logger,
) contracts.CheckoutUsecase {
	onceCheckoutUsecase.Do(func() {
		instance := &checkoutUsecase{
			VisitRepository:            visitRepository,
			SessionRepository:          sessionRepository,
			TransactionRepository:      transactionRepository,
			InsuranceProfileRepository: insuranceProfileRepository,
			CarePackageRepository:      carePackageRepository,
			SignatureStorage:           signatureStorage,
			EventPublisher:             eventPublisher,
			LockerService:              lockerService,
			CommitLockTTL:              commitLockTTL,
			Log:                        logger,
		}
		checkoutUsecaseInstance = instance
	})
	return checkoutUsecaseInstance
}

func (uc *checkoutUsecase) GetSession(ctx context.Context, visitID string) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("checkoutUsecase.GetSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
	)

	visit, err := uc.VisitRepository.FindByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, exceptions.ErrVisitNotFound(fmt.Errorf("visit %s does not exist", visitID))
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
	return session, nil
}

func (uc *checkoutUsecase) SetOverride(ctx context.Context, visitID, code string, request *requests.SetCoverageOverride) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("checkoutUsecase.SetOverride called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingBillingCodeKey, code),
		zap.Bool("fully_covered", request.FullyCovered),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if _, exists := session.FindLineItem(code); !exists {
		return nil, exceptions.ErrLineItemNotFound(fmt.Errorf("code %s is not on the ledger for visit %s", code, visitID))
	}

	now := time.Now()
	if request.FullyCovered {
		session.Overrides[code] = models.CoverageOverride{
			Code:         code,
			FullyCovered: true,
			OverriddenBy: request.Operator,
			OverrideDate: now,
		}
		session.Audit = append(session.Audit, models.AuditEntry{
			Kind:       models.AuditCoverageOverrideSet,
			Code:       code,
			Actor:      request.Operator,
			Detail:     request.Note,
			RecordedAt: now,
		})
	} else {
		delete(session.Overrides, code)
		session.Audit = append(session.Audit, models.AuditEntry{
			Kind:       models.AuditCoverageOverrideCleared,
			Code:       code,
			Actor:      request.Operator,
			Detail:     request.Note,
			RecordedAt: now,
		})
	}

	if err := uc.refreshAndSave(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *checkoutUsecase) PlanPackageUse(ctx context.Context, visitID string, request *requests.PlanPackageUse) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("checkoutUsecase.PlanPackageUse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingPackageIDKey, request.PackageID),
		zap.String(constvars.LoggingBillingCodeKey, request.BillingCode),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if _, exists := session.FindLineItem(request.BillingCode); !exists {
		return nil, exceptions.ErrLineItemNotFound(fmt.Errorf("code %s is not on the ledger for visit %s", request.BillingCode, visitID))
	}

	for _, use := range session.PlannedUses {
		if use.PackageID == request.PackageID && use.BillingCode == request.BillingCode {
			return nil, exceptions.ErrCheckoutConflict(fmt.Errorf("package %s is already planned for code %s", request.PackageID, request.BillingCode))
		}
	}

	carePackage, err := uc.CarePackageRepository.FindByID(ctx, request.PackageID)
	if err != nil {
		return nil, err
	}
	if carePackage == nil {
		return nil, exceptions.ErrCarePackageNotFound(fmt.Errorf("care package %s does not exist", request.PackageID))
	}
	if carePackage.PatientID != session.PatientID {
		return nil, exceptions.ErrCarePackageWrongPatient(fmt.Errorf("care package %s belongs to a different patient", request.PackageID))
	}
	if !carePackage.Covers(request.BillingCode) {
		return nil, exceptions.ErrCarePackageNotLinked(fmt.Errorf("care package %s is not linked to code %s", request.PackageID, request.BillingCode))
	}
	if carePackage.IsExhausted() {
		return nil, exceptions.ErrCarePackageExhausted(fmt.Errorf("care package %s has no remaining sessions", request.PackageID))
	}

	now := time.Now()
	session.PlannedUses = append(session.PlannedUses, models.PlannedPackageUse{
		PackageID:   carePackage.ID,
		PackageName: carePackage.Name,
		BillingCode: request.BillingCode,
		PlannedBy:   request.Operator,
	})
	session.Audit = append(session.Audit, models.AuditEntry{
		Kind:       models.AuditPackageSessionPlanned,
		Code:       request.BillingCode,
		Actor:      request.Operator,
		Detail:     fmt.Sprintf("package %s (%s)", carePackage.ID, carePackage.Name),
		RecordedAt: now,
	})
	session.UpdatedAt = now

	if err := uc.SessionRepository.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *checkoutUsecase) ComputePayment(ctx context.Context, visitID string, request *requests.ComputePayment) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("checkoutUsecase.ComputePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String("payment_method", request.Method),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if len(session.LineItems) == 0 {
		return nil, exceptions.ErrLedgerEmpty(fmt.Errorf("visit %s has no line items", visitID))
	}
	if session.CoverageIsStale() {
		if err := uc.recomputeCoverage(ctx, session); err != nil {
			return nil, err
		}
	}

	amountReceivedCents, err := utils.ParseNonNegativeAmountToCents(request.AmountReceived)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	session.Payment = payments.Compute(
		models.PaymentMethod(request.Method),
		amountReceivedCents,
		session.Coverage.PatientCents,
	)
	session.UpdatedAt = time.Now()

	if err := uc.SessionRepository.Save(ctx, session); err != nil {
		return nil, err
	}

	uc.Log.Info("checkoutUsecase.ComputePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String("payment_status", string(session.Payment.Status)),
		zap.Int64(constvars.LoggingAmountCentsKey, amountReceivedCents),
	)
	return session, nil
}

func (uc *checkoutUsecase) ConfirmPayment(ctx context.Context, visitID, operator string) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("checkoutUsecase.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingOperatorKey, operator),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if err := payments.Confirm(session.Payment); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now()

	if err := uc.SessionRepository.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *checkoutUsecase) CaptureSignature(ctx context.Context, visitID string, request *requests.CaptureSignature) (*models.CheckoutSession, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("checkoutUsecase.CaptureSignature called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
	)

	session, err := uc.loadMutableSession(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if len(session.LineItems) == 0 {
		return nil, exceptions.ErrLedgerEmpty(fmt.Errorf("visit %s has no line items", visitID))
	}
	if session.Signature.IsCaptured() {
		return nil, exceptions.ErrSignatureAlreadySet(fmt.Errorf("a signature is already captured for visit %s", visitID))
	}

	artifact, err := base64.StdEncoding.DecodeString(request.Artifact)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if len(artifact) == 0 {
		return nil, exceptions.ErrSignatureMissing(fmt.Errorf("signature artifact is empty"))
	}

	contentType := request.ContentType
	if contentType == "" {
		contentType = constvars.MIMEImagePNG
	}

	objectName := utils.GenerateSignatureObjectName(visitID, extensionFor(contentType))
	storedName, err := uc.SignatureStorage.StoreSignature(ctx, objectName, contentType, artifact)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.Signature = &models.SignatureRecord{
		ObjectName:  storedName,
		ContentType: contentType,
		CapturedAt:  now,
	}
	if session.State == models.CheckoutOpen {
		session.State = models.CheckoutSignatureCaptured
	}
	session.Audit = append(session.Audit, models.AuditEntry{
		Kind:       models.AuditSignatureCaptured,
		Actor:      request.Operator,
		Detail:     storedName,
		RecordedAt: now,
	})
	session.UpdatedAt = now

	if err := uc.SessionRepository.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Commit assembles the immutable transaction and persists it exactly once.
// The flow holds the per-visit lock for its whole duration: replay check,
// package decrements, transaction insert, visit transition, event publish and
// the final session state flip. alreadyCommitted is true on an idempotent
// replay; the stored transaction is returned either way.
func (uc *checkoutUsecase) Commit(ctx context.Context, visitID, operator string) (*models.CheckoutTransaction, bool, error) {
	requestID, _ := ctx.Value(constvars.ContextRequestIDKey).(string)
	uc.Log.Info("checkoutUsecase.Commit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingOperatorKey, operator),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeyCheckoutLockFormat, visitID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, uc.CommitLockTTL)
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, exceptions.ErrCheckoutLocked(fmt.Errorf("another commit is in progress for visit %s", visitID))
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("checkoutUsecase.Commit error releasing commit lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingVisitIDKey, visitID),
				zap.Error(unlockErr),
			)
		}
	}()

	idempotencyKey := utils.GenerateIdempotencyKey(visitID)
	session, err := uc.SessionRepository.Find(ctx, visitID)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.TransactionRepository.FindByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if session != nil && !session.IsCommitted() && utils.HashCommitPayload(session) != existing.PayloadHash {
			return nil, false, exceptions.ErrCheckoutConflict(fmt.Errorf("visit %s was already committed with a different payload", visitID))
		}
		uc.Log.Info("checkoutUsecase.Commit idempotent replay",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdempotencyKeyKey, idempotencyKey),
			zap.String(constvars.LoggingTransactionIDKey, existing.ID),
		)
		return existing, true, nil
	}

	if session == nil || len(session.LineItems) == 0 {
		return nil, false, exceptions.ErrLedgerEmpty(fmt.Errorf("visit %s has no line items to commit", visitID))
	}
	if session.CoverageIsStale() {
		return nil, false, exceptions.ErrCoverageStale(fmt.Errorf("coverage for visit %s is stale, recompute before commit", visitID))
	}
	if !session.Signature.IsCaptured() {
		return nil, false, exceptions.ErrSignatureMissing(fmt.Errorf("visit %s has no captured signature", visitID))
	}
	if !session.Payment.Covers() {
		return nil, false, exceptions.ErrPaymentInsufficient(fmt.Errorf("payment does not cover the patient responsibility for visit %s", visitID))
	}

	visit, err := uc.VisitRepository.FindByID(ctx, visitID)
	if err != nil {
		return nil, false, err
	}
	if visit == nil {
		return nil, false, exceptions.ErrVisitNotFound(fmt.Errorf("visit %s does not exist", visitID))
	}
	if visit.IsCheckedOut() {
		return nil, false, exceptions.ErrVisitAlreadyCheckedOut(fmt.Errorf("visit %s is already checked out", visitID))
	}

	// The override-application entries are recomputed here so the stored
	// audit trail reflects the exact coverage the transaction was built from.
	now := time.Now()
	profiles, err := uc.InsuranceProfileRepository.ListByPatient(ctx, session.PatientID)
	if err != nil {
		return nil, false, err
	}
	profile := coverage.SelectProfile(profiles, now)
	coverageResult, overrideAudit := coverage.Resolve(session, profile, now)

	// The payment gate above ran against the session's stored coverage. If the
	// profile data shifted since then, the recomputed patient share no longer
	// matches what the payment was validated against, so the commit must not
	// proceed on the fresher numbers.
	if coverageResult.PatientCents != session.Coverage.PatientCents {
		return nil, false, exceptions.ErrCoverageStale(fmt.Errorf("patient responsibility for visit %s changed since payment was computed", visitID))
	}

	ledgerCodes := make([]string, 0, len(session.LineItems))
	for _, item := range session.LineItems {
		ledgerCodes = append(ledgerCodes, item.Code)
	}

	usages, err := uc.consumePlannedSessions(ctx, session, ledgerCodes, operator, now)
	if err != nil {
		return nil, false, err
	}

	overrides := make([]models.CoverageOverride, 0, len(session.Overrides))
	for _, override := range session.Overrides {
		overrides = append(overrides, override)
	}

	transaction := &models.CheckoutTransaction{
		ID:             utils.GenerateTransactionID(),
		VisitID:        visitID,
		IdempotencyKey: idempotencyKey,
		PatientID:      session.PatientID,
		TotalCents:     coverageResult.SubtotalCents,
		InsuranceCents: coverageResult.InsuranceCents,
		PatientCents:   coverageResult.PatientCents,
		LineItems:      session.LineItems,
		Overrides:      overrides,
		PackageUsages:  usages,
		Payment:        *session.Payment,
		Signature:      *session.Signature,
		Audit:          append(append([]models.AuditEntry{}, session.Audit...), overrideAudit...),
		PayloadHash:    utils.HashCommitPayload(session),
		CommittedAt:    now,
	}

	inserted, err := uc.TransactionRepository.Insert(ctx, transaction)
	if err != nil {
		uc.restoreSessions(ctx, usages)
		return nil, false, err
	}
	if !inserted {
		// A concurrent commit won the key; our decrements are double counted.
		uc.restoreSessions(ctx, usages)
		stored, findErr := uc.TransactionRepository.FindByIdempotencyKey(ctx, idempotencyKey)
		if findErr != nil {
			return nil, false, findErr
		}
		return stored, true, nil
	}

	if err := uc.VisitRepository.TransitionStatus(ctx, visitID, models.VisitCheckedOut); err != nil {
		return nil, false, err
	}

	if err := uc.EventPublisher.PublishVisitCheckedOut(ctx, transaction); err != nil {
		// The transaction is durable; losing the event is recoverable from
		// the transactions table, failing the commit here is not.
		uc.Log.Error("checkoutUsecase.Commit error publishing checked-out event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
			zap.Error(err),
		)
	}

	session.State = models.CheckoutCommitted
	session.UpdatedAt = now
	if err := uc.SessionRepository.Save(ctx, session); err != nil {
		uc.Log.Error("checkoutUsecase.Commit error marking session committed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingVisitIDKey, visitID),
			zap.Error(err),
		)
	}

	uc.Log.Info("checkoutUsecase.Commit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVisitIDKey, visitID),
		zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
		zap.Int64(constvars.LoggingAmountCentsKey, transaction.TotalCents),
	)
	return transaction, false, nil
}

// consumePlannedSessions decrements every planned package use. On any failure
// the decrements done so far are compensated so a retry starts clean.
func (uc *checkoutUsecase) consumePlannedSessions(ctx context.Context, session *models.CheckoutSession, ledgerCodes []string, operator string, now time.Time) ([]models.CarePackageUsage, error) {
	var usages []models.CarePackageUsage
	for _, planned := range session.PlannedUses {
		usage := models.CarePackageUsage{
			PackageID:    planned.PackageID,
			VisitID:      session.VisitID,
			BillingCodes: ledgerCodes,
			UsedBy:       operator,
			UsedAt:       now,
		}
		if _, err := uc.CarePackageRepository.DecrementSession(ctx, planned.PackageID, usage); err != nil {
			uc.restoreSessions(ctx, usages)
			return nil, err
		}
		usages = append(usages, usage)
	}
	return usages, nil
}

func (uc *checkoutUsecase) restoreSessions(ctx context.Context, usages []models.CarePackageUsage) {
	for _, usage := range usages {
		if err := uc.CarePackageRepository.RestoreSession(ctx, usage.PackageID); err != nil {
			uc.Log.Error("checkoutUsecase.restoreSessions error compensating package decrement",
				zap.String(constvars.LoggingPackageIDKey, usage.PackageID),
				zap.Error(err),
			)
		}
	}
}

func (uc *checkoutUsecase) loadMutableSession(ctx context.Context, visitID string) (*models.CheckoutSession, error) {
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

func (uc *checkoutUsecase) recomputeCoverage(ctx context.Context, session *models.CheckoutSession) error {
	now := time.Now()
	profiles, err := uc.InsuranceProfileRepository.ListByPatient(ctx, session.PatientID)
	if err != nil {
		return err
	}
	profile := coverage.SelectProfile(profiles, now)
	result, _ := coverage.Resolve(session, profile, now)
	session.Coverage = result
	return nil
}

// refreshAndSave mirrors the ledger-mutation path: bump the revision, drop the
// stale payment, recompute coverage and persist.
func (uc *checkoutUsecase) refreshAndSave(ctx context.Context, session *models.CheckoutSession) error {
	session.Revision++
	session.Payment = nil
	if err := uc.recomputeCoverage(ctx, session); err != nil {
		return err
	}
	session.UpdatedAt = time.Now()
	return uc.SessionRepository.Save(ctx, session)
}

func extensionFor(contentType string) string {
	switch contentType {
	case constvars.MIMEImagePNG:
		return ".png"
	case constvars.MIMEImageJPEG:
		return ".jpg"
	case constvars.MIMETextPlain:
		return ".txt"
	default:
		return ".bin"
	}
}
