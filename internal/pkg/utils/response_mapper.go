package utils

import (
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/dto/responses"
)

func MapLineItemToResponse(item models.LineItem) responses.LineItem {
	return responses.LineItem{
		Code:             item.Code,
		Description:      item.Description,
		UnitPrice:        FormatCents(item.UnitPriceCents),
		Units:            item.Units,
		Total:            FormatCents(item.TotalCents()),
		InsuranceCovered: item.InsuranceCovered,
	}
}

func MapCoverageToResponse(coverage *models.CoverageResult) *responses.Coverage {
	if coverage == nil {
		return nil
	}
	codes := make([]responses.CodeCoverage, 0, len(coverage.Codes))
	for _, code := range coverage.Codes {
		codes = append(codes, responses.CodeCoverage{
			Code:             code.Code,
			Total:            FormatCents(code.TotalCents),
			Copay:            FormatCents(code.CopayCents),
			PatientAmount:    FormatCents(code.PatientCents),
			InsurancePayment: FormatCents(code.InsuranceCents),
			Overridden:       code.Overridden,
		})
	}
	return &responses.Coverage{
		ProfileID:             coverage.ProfileID,
		SelfPay:               coverage.SelfPay,
		Codes:                 codes,
		Subtotal:              FormatCents(coverage.SubtotalCents),
		InsurancePayment:      FormatCents(coverage.InsuranceCents),
		PatientResponsibility: FormatCents(coverage.PatientCents),
	}
}

func MapPaymentToResponse(payment *models.PaymentRecord) *responses.Payment {
	if payment == nil {
		return nil
	}
	var denominations []responses.DenominationCount
	for _, denomination := range payment.Denominations {
		denominations = append(denominations, responses.DenominationCount{
			Value: FormatCents(denomination.ValueCents),
			Count: denomination.Count,
		})
	}
	response := &responses.Payment{
		Method:         string(payment.Method),
		AmountReceived: FormatCents(payment.AmountReceivedCents),
		TotalDue:       FormatCents(payment.TotalDueCents),
		Change:         FormatCents(payment.ChangeCents),
		Status:         string(payment.Status),
		Denominations:  denominations,
	}
	if payment.DeficitCents > 0 {
		response.Deficit = FormatCents(payment.DeficitCents)
	}
	return response
}

func MapCheckoutSessionToResponse(session *models.CheckoutSession) *responses.CheckoutSession {
	lineItems := make([]responses.LineItem, 0, len(session.LineItems))
	for _, item := range session.LineItems {
		lineItems = append(lineItems, MapLineItemToResponse(item))
	}

	var plannedUses []responses.PlannedPackageUse
	for _, use := range session.PlannedUses {
		plannedUses = append(plannedUses, responses.PlannedPackageUse{
			PackageID:   use.PackageID,
			PackageName: use.PackageName,
			BillingCode: use.BillingCode,
		})
	}

	return &responses.CheckoutSession{
		VisitID:      session.VisitID,
		PatientID:    session.PatientID,
		State:        string(session.State),
		LineItems:    lineItems,
		Coverage:     MapCoverageToResponse(session.Coverage),
		Payment:      MapPaymentToResponse(session.Payment),
		HasSignature: session.Signature.IsCaptured(),
		PlannedUses:  plannedUses,
		UpdatedAt:    session.UpdatedAt,
	}
}

func MapCheckoutTransactionToResponse(transaction *models.CheckoutTransaction, alreadyCommitted bool) *responses.CheckoutTransaction {
	return &responses.CheckoutTransaction{
		ID:                    transaction.ID,
		VisitID:               transaction.VisitID,
		Total:                 FormatCents(transaction.TotalCents),
		InsurancePayment:      FormatCents(transaction.InsuranceCents),
		PatientResponsibility: FormatCents(transaction.PatientCents),
		AlreadyCommitted:      alreadyCommitted,
		CommittedAt:           transaction.CommittedAt,
	}
}

func MapInsuranceProfileToResponse(profile models.InsuranceProfile) responses.InsuranceProfile {
	return responses.InsuranceProfile{
		ID:             profile.ID,
		Provider:       profile.Provider,
		PolicyNumber:   profile.PolicyNumber,
		GroupID:        profile.GroupID,
		GeneralCopay:   FormatCents(profile.GeneralCopayCents),
		IsPrimary:      profile.IsPrimary,
		IsActive:       profile.IsActive,
		ExpirationDate: profile.ExpirationDate,
	}
}

func MapCarePackageToResponse(carePackage models.CarePackage) responses.CarePackage {
	return responses.CarePackage{
		ID:                 carePackage.ID,
		Name:               carePackage.Name,
		PackageType:        carePackage.PackageType,
		TotalSessions:      carePackage.TotalSessions,
		RemainingSessions:  carePackage.RemainingSessions,
		LinkedBillingCodes: carePackage.LinkedBillingCodes,
		Price:              FormatCents(carePackage.PriceCents),
		PurchaseDate:       carePackage.PurchaseDate,
		Exhausted:          carePackage.IsExhausted(),
	}
}
