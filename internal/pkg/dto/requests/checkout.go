package requests

type SetCoverageOverride struct {
	FullyCovered bool   `json:"fully_covered"`
	Note         string `json:"note,omitempty" validate:"omitempty,max=255"`

	Operator string `json:"-"`
}

type PlanPackageUse struct {
	PackageID   string `json:"package_id" validate:"required"`
	BillingCode string `json:"billing_code" validate:"required,billing_code"`

	Operator string `json:"-"`
}

type ComputePayment struct {
	Method         string `json:"method" validate:"required,payment_method"`
	AmountReceived string `json:"amount_received" validate:"required"`

	Operator string `json:"-"`
}

type CaptureSignature struct {
	// Artifact is the base64-encoded signature image or text attestation.
	Artifact    string `json:"artifact" validate:"required,base64"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=image/png image/jpeg text/plain"`

	Operator string `json:"-"`
}

type UseCarePackageSession struct {
	VisitID string `json:"visit_id" validate:"required"`

	Operator string `json:"-"`
}
