package models

import "time"

type CheckoutState string

const (
	// CheckoutOpen is entered once the ledger has at least one item and a
	// coverage result exists for the current ledger revision.
	CheckoutOpen CheckoutState = "open"
	CheckoutSignatureCaptured CheckoutState = "signature_captured"
	// CheckoutCommitted is terminal.
	CheckoutCommitted CheckoutState = "committed"
)

// CoverageOverride manually marks a code as fully insurer-paid for this visit
// only. Applications are mirrored into the audit trail.
type CoverageOverride struct {
	Code         string    `json:"code" bson:"code"`
	FullyCovered bool      `json:"fully_covered" bson:"fully_covered"`
	OverriddenBy string    `json:"overridden_by" bson:"overridden_by"`
	OverrideDate time.Time `json:"override_date" bson:"override_date"`
}

// SignatureRecord points at the captured artifact in object storage. It is
// immutable once set for a checkout session.
type SignatureRecord struct {
	ObjectName  string    `json:"object_name" bson:"object_name"`
	ContentType string    `json:"content_type" bson:"content_type"`
	CapturedAt  time.Time `json:"captured_at" bson:"captured_at"`
}

func (s *SignatureRecord) IsCaptured() bool {
	return s != nil && s.ObjectName != ""
}

type CodeCoverage struct {
	Code           string `json:"code"`
	TotalCents     int64  `json:"total_cents"`
	CoveredCents   int64  `json:"covered_cents"`
	CopayCents     int64  `json:"copay_cents"`
	PatientCents   int64  `json:"patient_cents"`
	InsuranceCents int64  `json:"insurance_cents"`
	Overridden     bool   `json:"overridden"`
}

// CoverageResult is the resolver output for one ledger revision. It is stale
// (and must be recomputed) whenever Revision no longer matches the session.
type CoverageResult struct {
	Revision       int            `json:"revision"`
	ProfileID      string         `json:"profile_id,omitempty"`
	SelfPay        bool           `json:"self_pay"`
	Codes          []CodeCoverage `json:"codes"`
	SubtotalCents  int64          `json:"subtotal_cents"`
	InsuranceCents int64          `json:"insurance_cents"`
	PatientCents   int64          `json:"patient_cents"`
}

// PlannedPackageUse is a session consumption the operator selected during
// checkout. The actual decrement happens only at commit time.
type PlannedPackageUse struct {
	PackageID   string `json:"package_id" bson:"package_id"`
	PackageName string `json:"package_name" bson:"package_name"`
	BillingCode string `json:"billing_code" bson:"billing_code"`
	PlannedBy   string `json:"planned_by" bson:"planned_by"`
}

// CheckoutSession is the per-visit working state between requests. It lives in
// Redis until commit; afterwards the immutable CheckoutTransaction is the
// record of truth.
type CheckoutSession struct {
	VisitID     string              `json:"visit_id"`
	PatientID   string              `json:"patient_id"`
	State       CheckoutState       `json:"state"`
	Revision    int                 `json:"revision"`
	LineItems   []LineItem          `json:"line_items"`
	Overrides   map[string]CoverageOverride `json:"overrides,omitempty"`
	Coverage    *CoverageResult     `json:"coverage,omitempty"`
	Payment     *PaymentRecord      `json:"payment,omitempty"`
	Signature   *SignatureRecord    `json:"signature,omitempty"`
	PlannedUses []PlannedPackageUse `json:"planned_uses,omitempty"`
	Audit       []AuditEntry        `json:"audit,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (s *CheckoutSession) FindLineItem(code string) (int, bool) {
	for i, item := range s.LineItems {
		if item.Code == code {
			return i, true
		}
	}
	return -1, false
}

func (s *CheckoutSession) SubtotalCents() int64 {
	var subtotal int64
	for _, item := range s.LineItems {
		subtotal += item.TotalCents()
	}
	return subtotal
}

// CoverageIsStale reports whether the coverage result no longer matches the
// ledger. A stale result must be recomputed before payment or commit.
func (s *CheckoutSession) CoverageIsStale() bool {
	return s.Coverage == nil || s.Coverage.Revision != s.Revision
}

func (s *CheckoutSession) IsCommitted() bool {
	return s.State == CheckoutCommitted
}

// CheckoutTransaction is the immutable committed record for one visit.
type CheckoutTransaction struct {
	ID             string             `json:"id"`
	VisitID        string             `json:"visit_id"`
	IdempotencyKey string             `json:"idempotency_key"`
	PatientID      string             `json:"patient_id"`
	TotalCents     int64              `json:"total_cents"`
	InsuranceCents int64              `json:"insurance_cents"`
	PatientCents   int64              `json:"patient_cents"`
	LineItems      []LineItem         `json:"line_items"`
	Overrides      []CoverageOverride `json:"coverage_overrides,omitempty"`
	PackageUsages  []CarePackageUsage `json:"care_package_usages,omitempty"`
	Payment        PaymentRecord      `json:"payment_record"`
	Signature      SignatureRecord    `json:"signature"`
	Audit          []AuditEntry       `json:"audit_trail,omitempty"`
	PayloadHash    string             `json:"payload_hash"`
	CommittedAt    time.Time          `json:"committed_at"`
}
