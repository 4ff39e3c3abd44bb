package models

import "time"

// CarePackageUsage records one consumed session together with the visit
// context it was consumed in.
type CarePackageUsage struct {
	PackageID    string    `json:"package_id" bson:"package_id"`
	VisitID      string    `json:"visit_id" bson:"visit_id"`
	BillingCodes []string  `json:"billing_codes" bson:"billing_codes"`
	UsedBy       string    `json:"used_by" bson:"used_by"`
	UsedAt       time.Time `json:"used_at" bson:"used_at"`
}

// CarePackage is a prepaid bundle of treatment sessions tied to a patient.
// RemainingSessions is only ever mutated through the repository's conditional
// decrement so the counter can never go below zero.
type CarePackage struct {
	ID                 string             `json:"id" bson:"_id,omitempty"`
	PatientID          string             `json:"patient_id" bson:"patient_id"`
	Name               string             `json:"name" bson:"name"`
	PackageType        string             `json:"package_type" bson:"package_type"`
	TotalSessions      int                `json:"total_sessions" bson:"total_sessions"`
	RemainingSessions  int                `json:"remaining_sessions" bson:"remaining_sessions"`
	LinkedBillingCodes []string           `json:"linked_billing_codes" bson:"linked_billing_codes"`
	PriceCents         int64              `json:"price_cents" bson:"price_cents"`
	PurchaseDate       time.Time          `json:"purchase_date" bson:"purchase_date"`
	Usages             []CarePackageUsage `json:"usages,omitempty" bson:"usages,omitempty"`
}

func (p *CarePackage) IsExhausted() bool {
	return p.RemainingSessions <= 0
}

func (p *CarePackage) Covers(code string) bool {
	for _, linked := range p.LinkedBillingCodes {
		if linked == code {
			return true
		}
	}
	return false
}
