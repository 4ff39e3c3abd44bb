package coverage

import (
	"caredesk-service/internal/app/models"
	"fmt"
	"time"
)

// SelectProfile picks the profile that covers the visit: the active primary
// profile wins, any other active profile is the fallback, nil means self-pay.
func SelectProfile(profiles []models.InsuranceProfile, now time.Time) *models.InsuranceProfile {
	var fallback *models.InsuranceProfile
	for i := range profiles {
		profile := &profiles[i]
		if !profile.IsUsable(now) {
			continue
		}
		if profile.IsPrimary {
			return profile
		}
		if fallback == nil {
			fallback = profile
		}
	}
	return fallback
}

// Resolve splits the ledger between insurer and patient. Priority per code:
// fullyCovered override, then a code-specific copay rule, then the profile's
// general copay, else the patient pays the code in full. All arithmetic is in
// integer cents so InsuranceCents + PatientCents always equals SubtotalCents.
//
// The general copay is applied once per code, not once per visit. That is the
// historical billing behavior and changing it would shift financial totals.
func Resolve(session *models.CheckoutSession, profile *models.InsuranceProfile, now time.Time) (*models.CoverageResult, []models.AuditEntry) {
	result := &models.CoverageResult{
		Revision: session.Revision,
		SelfPay:  profile == nil,
		Codes:    make([]models.CodeCoverage, 0, len(session.LineItems)),
	}
	if profile != nil {
		result.ProfileID = profile.ID
	}

	var audit []models.AuditEntry
	for _, item := range session.LineItems {
		totalCents := item.TotalCents()
		codeCoverage := models.CodeCoverage{
			Code:       item.Code,
			TotalCents: totalCents,
		}

		override, hasOverride := session.Overrides[item.Code]
		switch {
		case hasOverride && override.FullyCovered:
			codeCoverage.CoveredCents = totalCents
			codeCoverage.InsuranceCents = totalCents
			codeCoverage.Overridden = true
			audit = append(audit, models.AuditEntry{
				Kind:       models.AuditCoverageOverrideApplied,
				Code:       item.Code,
				Actor:      override.OverriddenBy,
				Detail:     fmt.Sprintf("code %s marked fully covered, %d cents shifted to insurer", item.Code, totalCents),
				RecordedAt: now,
			})

		case profile == nil || !item.InsuranceCovered:
			codeCoverage.PatientCents = totalCents

		default:
			copayCents, applied := copayForCode(profile, item, totalCents)
			if !applied {
				codeCoverage.PatientCents = totalCents
				break
			}
			codeCoverage.CopayCents = copayCents
			codeCoverage.PatientCents = copayCents
			codeCoverage.InsuranceCents = totalCents - copayCents
			codeCoverage.CoveredCents = codeCoverage.InsuranceCents
		}

		result.Codes = append(result.Codes, codeCoverage)
		result.SubtotalCents += totalCents
		result.InsuranceCents += codeCoverage.InsuranceCents
		result.PatientCents += codeCoverage.PatientCents
	}

	return result, audit
}

// copayForCode returns the patient copay in cents, capped at the code total so
// the insurer share can never go negative. applied is false when the profile
// carries neither a matching rule nor a general copay.
func copayForCode(profile *models.InsuranceProfile, item models.LineItem, totalCents int64) (copayCents int64, applied bool) {
	if rule, ok := profile.RuleFor(item.Code); ok {
		coveredUnits := rule.UnitsCovered
		if coveredUnits > item.Units {
			coveredUnits = item.Units
		}
		copayCents = int64(coveredUnits) * rule.CopayPerUnitCents
		if copayCents > totalCents {
			copayCents = totalCents
		}
		if copayCents < 0 {
			copayCents = 0
		}
		return copayCents, true
	}

	if profile.GeneralCopayCents > 0 {
		copayCents = profile.GeneralCopayCents
		if copayCents > totalCents {
			copayCents = totalCents
		}
		return copayCents, true
	}

	return 0, false
}
