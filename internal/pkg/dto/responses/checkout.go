package responses

import "time"

type LineItem struct {
	Code             string `json:"code"`
	Description      string `json:"description"`
	UnitPrice        string `json:"unit_price"`
	Units            int    `json:"units"`
	Total            string `json:"total"`
	InsuranceCovered bool   `json:"insurance_covered"`
}

type CodeCoverage struct {
	Code             string `json:"code"`
	Total            string `json:"total"`
	Copay            string `json:"copay"`
	PatientAmount    string `json:"patient_amount"`
	InsurancePayment string `json:"insurance_payment"`
	Overridden       bool   `json:"overridden"`
}

type Coverage struct {
	ProfileID             string         `json:"profile_id,omitempty"`
	SelfPay               bool           `json:"self_pay"`
	Codes                 []CodeCoverage `json:"codes"`
	Subtotal              string         `json:"subtotal"`
	InsurancePayment      string         `json:"insurance_payment"`
	PatientResponsibility string         `json:"patient_responsibility"`
}

type DenominationCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type Payment struct {
	Method         string              `json:"method"`
	AmountReceived string              `json:"amount_received"`
	TotalDue       string              `json:"total_due"`
	Change         string              `json:"change"`
	Deficit        string              `json:"deficit,omitempty"`
	Status         string              `json:"status"`
	Denominations  []DenominationCount `json:"denominations,omitempty"`
}

type PlannedPackageUse struct {
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
	BillingCode string `json:"billing_code"`
}

type CheckoutSession struct {
	VisitID      string              `json:"visit_id"`
	PatientID    string              `json:"patient_id"`
	State        string              `json:"state"`
	LineItems    []LineItem          `json:"line_items"`
	Coverage     *Coverage           `json:"coverage,omitempty"`
	Payment      *Payment            `json:"payment,omitempty"`
	HasSignature bool                `json:"has_signature"`
	PlannedUses  []PlannedPackageUse `json:"planned_package_uses,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type CheckoutTransaction struct {
	ID                    string    `json:"id"`
	VisitID               string    `json:"visit_id"`
	Total                 string    `json:"total"`
	InsurancePayment      string    `json:"insurance_payment"`
	PatientResponsibility string    `json:"patient_responsibility"`
	AlreadyCommitted      bool      `json:"already_committed"`
	CommittedAt           time.Time `json:"committed_at"`
}
