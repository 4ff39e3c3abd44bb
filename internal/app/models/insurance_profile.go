package models

import "time"

// CopayRule caps the patient cost for a billing code: up to UnitsCovered units
// incur CopayPerUnitCents each, the insurer pays the remainder.
type CopayRule struct {
	CopayPerUnitCents int64 `json:"copay_per_unit_cents" bson:"copay_per_unit_cents"`
	UnitsCovered      int   `json:"units_covered" bson:"units_covered"`
}

type InsuranceProfile struct {
	ID                string               `json:"id" bson:"_id,omitempty"`
	PatientID         string               `json:"patient_id" bson:"patient_id"`
	Provider          string               `json:"provider" bson:"provider"`
	PolicyNumber      string               `json:"policy_number" bson:"policy_number"`
	GroupID           string               `json:"group_id" bson:"group_id"`
	GeneralCopayCents int64                `json:"general_copay_cents" bson:"general_copay_cents"`
	CopayRules        map[string]CopayRule `json:"copay_rules" bson:"copay_rules"`
	IsPrimary         bool                 `json:"is_primary" bson:"is_primary"`
	IsActive          bool                 `json:"is_active" bson:"is_active"`
	ExpirationDate    time.Time            `json:"expiration_date" bson:"expiration_date"`
}

// IsUsable reports whether the profile can cover a visit right now. A zero
// expiration date means the payer has no stated expiry.
func (p *InsuranceProfile) IsUsable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ExpirationDate.IsZero() {
		return true
	}
	return now.Before(p.ExpirationDate)
}

func (p *InsuranceProfile) RuleFor(code string) (CopayRule, bool) {
	rule, ok := p.CopayRules[code]
	return rule, ok
}
